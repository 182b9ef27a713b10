package outbound

type SceneClip struct {
	FileName string
	Duration float64
}

// SceneVideoCreatorPort renders a single scene: one still image looped under
// its narration audio. Input files are consumed (removed) by the adapter.
type SceneVideoCreatorPort interface {
	Create(imageFileName string, audioFileName string) (*SceneClip, error)
}
