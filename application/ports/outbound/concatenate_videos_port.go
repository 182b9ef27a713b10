package outbound

type ConcatenateVideosPort interface {
	Concatenate(clips []SceneClip) (string, error)
}
