package adapters

import (
	"os"
	"os/exec"
	"strings"

	"generate-story-lambda/application/ports/outbound"
	"github.com/google/uuid"
)

type ffmpegThumbnailRenderer struct {
	logger outbound.LoggerPort
}

func NewFFmpegThumbnailRenderer(logger outbound.LoggerPort) outbound.ThumbnailRendererPort {
	return &ffmpegThumbnailRenderer{
		logger: logger,
	}
}

// Render scales the source image to 1280x720 and overlays the caption near
// the bottom. The source file is consumed.
func (t *ffmpegThumbnailRenderer) Render(imageFileName string, caption string) (string, error) {
	defer func() {
		err := os.Remove(imageFileName)
		if err != nil {
			t.logger.Error(err, "error removing thumbnail source file")
		}
	}()

	outputFile := "/tmp/" + uuid.NewString() + ".jpg"

	filter := "scale=1280:720:force_original_aspect_ratio=decrease,pad=1280:720:(ow-iw)/2:(oh-ih)/2"
	if caption != "" {
		filter += ",drawtext=text='" + escapeDrawtext(caption) +
			"':fontcolor=white:fontsize=56:borderw=3:bordercolor=black:x=(w-text_w)/2:y=h-text_h-60"
	}

	cmd := exec.Command("ffmpeg", "-i", imageFileName, "-vf", filter, "-frames:v", "1", outputFile)
	err := cmd.Run()
	if err != nil {
		t.logger.Error(err, "error rendering thumbnail")
		return "", err
	}

	return outputFile, nil
}

// escapeDrawtext escapes the characters the drawtext filter treats specially.
func escapeDrawtext(text string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`%`, `\%`,
	)
	return replacer.Replace(text)
}
