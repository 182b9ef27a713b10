package adapters

import (
	"bytes"
	"context"
	"fmt"

	"generate-story-lambda/application/ports/outbound"
	"generate-story-lambda/config"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
)

type s3ArtifactStore struct {
	logger   outbound.LoggerPort
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3ArtifactStore(logger outbound.LoggerPort, s3Svc *s3.S3, s3Config *config.S3Config) outbound.ArtifactStorePort {
	return &s3ArtifactStore{
		logger:   logger,
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (s *s3ArtifactStore) Save(ctx context.Context, params outbound.SaveArtifactParams) (string, error) {
	key := fmt.Sprintf("runs/%s/%s/%03d", params.RunID, params.Kind, params.Ordinal)

	putInput := &s3.PutObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(params.Content),
	}

	_, err := s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to upload artifact to S3", map[string]interface{}{
			"run_id": params.RunID,
			"kind":   params.Kind,
			"key":    key,
		})
		return "", err
	}

	return key, nil
}
