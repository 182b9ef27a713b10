package outbound

type ThumbnailRendererPort interface {
	Render(imageFileName string, caption string) (string, error)
}
