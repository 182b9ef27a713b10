package adapters

import (
	"bufio"
	"os"
	"os/exec"

	"generate-story-lambda/application/ports/outbound"
	"github.com/google/uuid"
)

type ffmpegVideoConcatenate struct {
	logger outbound.LoggerPort
}

func NewFFmpegVideoConcatenate(logger outbound.LoggerPort) outbound.ConcatenateVideosPort {
	return &ffmpegVideoConcatenate{
		logger: logger,
	}
}

// Concatenate joins scene clips in the given order via ffmpeg's concat
// demuxer. Clip files are removed once the joined video exists.
func (f *ffmpegVideoConcatenate) Concatenate(clips []outbound.SceneClip) (finalFileName string, err error) {
	listFileName := uuid.NewString()
	fileList, err := os.Create("/tmp/" + listFileName)
	if err != nil {
		f.logger.Error(err, "Failed to create clip list file")
		return
	}

	defer func(fileList *os.File) {
		err := fileList.Close()
		if err != nil {
			f.logger.Error(err, "Failed to close clip list file")
			return
		}
	}(fileList)
	defer func(name string) {
		err := os.Remove(name)
		if err != nil {
			f.logger.Error(err, "Failed to remove clip list file")
			return
		}
	}(fileList.Name())

	writer := bufio.NewWriter(fileList)
	for _, clip := range clips {
		_, err = writer.WriteString("file '" + clip.FileName + "'\n")
		if err != nil {
			f.logger.Error(err, "Failed to write to clip list file")
			return
		}
	}
	err = writer.Flush()
	if err != nil {
		f.logger.Error(err, "Failed to flush clip list file")
		return
	}

	finalFileName = "/tmp/" + uuid.NewString() + ".mp4"

	cmd := exec.Command("ffmpeg", "-f", "concat", "-safe", "0", "-i", fileList.Name(), "-c", "copy", finalFileName)
	err = cmd.Run()
	if err != nil {
		f.logger.Error(err, "Failed to concatenate scene clips")
		return
	}
	for _, clip := range clips {
		err = os.Remove(clip.FileName)
		if err != nil {
			f.logger.Error(err, "Failed to remove scene clip file")
			return
		}
	}

	return
}
