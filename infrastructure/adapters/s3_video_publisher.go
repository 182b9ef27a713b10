package adapters

import (
	"context"
	"fmt"
	"os"

	"generate-story-lambda/application/ports/outbound"
	"generate-story-lambda/config"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

type s3VideoPublisher struct {
	logger   outbound.LoggerPort
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3VideoPublisher(logger outbound.LoggerPort, s3Svc *s3.S3, s3Config *config.S3Config) outbound.VideoPublisherPort {
	return &s3VideoPublisher{
		logger:   logger,
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (s *s3VideoPublisher) Publish(ctx context.Context, req outbound.PublishVideoRequest) (*outbound.PublishVideoResponse, error) {
	videoKey := fmt.Sprintf("runs/%s/video/%s.mp4", req.RunID, uuid.NewString())
	if err := s.uploadFile(ctx, req.VideoFileName, videoKey); err != nil {
		return nil, err
	}

	thumbnailKey := fmt.Sprintf("runs/%s/thumbnail/%s.jpg", req.RunID, uuid.NewString())
	if err := s.uploadFile(ctx, req.ThumbnailFileName, thumbnailKey); err != nil {
		return nil, err
	}

	return &outbound.PublishVideoResponse{
		VideoKey:     videoKey,
		ThumbnailKey: thumbnailKey,
		StoreRegion:  s.s3Config.Region,
	}, nil
}

func (s *s3VideoPublisher) uploadFile(ctx context.Context, fileName string, key string) error {
	file, err := os.Open(fileName)
	if err != nil {
		s.logger.Error(err, "Failed to open file for publishing")
		return err
	}

	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			s.logger.Error(err, "Failed to close published file")
			return
		}
		err = os.Remove(file.Name())
		if err != nil {
			s.logger.Error(err, "Failed to remove published file")
			return
		}
	}(file)

	putInput := &s3.PutObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
		Body:   file,
	}

	_, err = s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to upload object to S3", map[string]interface{}{
			"key": key,
		})
		return err
	}

	return nil
}
