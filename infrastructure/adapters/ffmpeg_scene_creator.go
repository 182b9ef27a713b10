package adapters

import (
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"generate-story-lambda/application/ports/outbound"
	"github.com/google/uuid"
)

type ffmpegSceneCreator struct {
	logger         outbound.LoggerPort
	durationRegexp *regexp.Regexp
}

func NewFFmpegSceneCreator(logger outbound.LoggerPort) outbound.SceneVideoCreatorPort {
	return &ffmpegSceneCreator{
		logger:         logger,
		durationRegexp: regexp.MustCompile(`\.\d+`),
	}
}

// Create renders one scene clip: the still image looped under its narration
// audio, scaled and padded to 1920x1080. Input files are removed afterwards.
func (v *ffmpegSceneCreator) Create(imageFileName string, audioFileName string) (*outbound.SceneClip, error) {
	defer func() {
		err := os.Remove(audioFileName)
		if err != nil {
			v.logger.Error(err, "error removing audio file")
		}
		err = os.Remove(imageFileName)
		if err != nil {
			v.logger.Error(err, "error removing image file")
		}
	}()

	clipID := uuid.NewString()
	outputFile := "/tmp/" + clipID + ".mp4"
	cmd := exec.Command("ffmpeg", "-loop", "1", "-i", imageFileName, "-i", audioFileName,
		"-vf", "scale=1920:1080:force_original_aspect_ratio=decrease,pad=1920:1080:(ow-iw)/2:(oh-ih)/2",
		"-c:v", "libx264", "-tune", "stillimage", "-c:a", "aac", "-b:a", "192k",
		"-pix_fmt", "yuv420p", "-shortest", outputFile)
	err := cmd.Run()
	if err != nil {
		v.logger.Error(err, "error creating scene clip")
		return nil, err
	}

	duration, err := v.getVideoDuration(outputFile)
	if err != nil {
		v.logger.Error(err, "error getting scene clip duration")
		return nil, err
	}

	return &outbound.SceneClip{
		FileName: outputFile,
		Duration: duration,
	}, nil
}

func (v *ffmpegSceneCreator) getVideoDuration(filePath string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath)

	out, err := cmd.Output()
	if err != nil {
		v.logger.Error(err, "error getting video duration")
		return 0, err
	}

	durationStr := strings.TrimSpace(string(out))
	durationStr = v.durationRegexp.ReplaceAllString(durationStr, "")

	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		v.logger.Error(err, "error parsing video duration")
		return 0, err
	}

	return duration, nil
}
