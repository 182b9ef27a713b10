package adapters

import (
	"context"
	"time"

	"generate-story-lambda/application/ports/outbound"
	"generate-story-lambda/config"
	"generate-story-lambda/domain"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

type dynamoAttemptItem struct {
	AttemptOrdinal int    `dynamodbav:"attempt_ordinal"`
	StartedAt      int64  `dynamodbav:"started_at"`
	Status         string `dynamodbav:"status"`
	ChunkCount     int    `dynamodbav:"chunk_count"`
}

type dynamoRunItem struct {
	RunId            string              `dynamodbav:"run_id"`
	State            string              `dynamodbav:"state"`
	Prompt           string              `dynamodbav:"prompt"`
	Attempts         []dynamoAttemptItem `dynamodbav:"attempts"`
	ValidationReason string              `dynamodbav:"validation_reason,omitempty"`
	SegmentCount     int                 `dynamodbav:"segment_count"`
	ImageCount       int                 `dynamodbav:"image_count"`
	TTL              int64               `dynamodbav:"ttl"`
}

type dynamoRunArchive struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoRunArchive(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig) outbound.RunArchivePort {
	return &dynamoRunArchive{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

// Archive writes a compact diagnostic record for a terminal run. Chunk
// payloads are not persisted, only per-attempt counts.
func (c *dynamoRunArchive) Archive(ctx context.Context, run *domain.PipelineRun) error {
	attempts := make([]dynamoAttemptItem, 0, len(run.Attempts))
	for _, attempt := range run.Attempts {
		attempts = append(attempts, dynamoAttemptItem{
			AttemptOrdinal: attempt.Index,
			StartedAt:      attempt.StartedAt.Unix(),
			Status:         string(attempt.Status),
			ChunkCount:     len(attempt.Chunks),
		})
	}

	item := dynamoRunItem{
		RunId:    run.ID,
		State:    string(run.State),
		Prompt:   run.Request.Prompt,
		Attempts: attempts,
		TTL:      time.Now().Add(time.Duration(c.dynamoConfig.TtlMinutes) * time.Minute).Unix(),
	}
	if run.LastValidation != nil {
		item.ValidationReason = string(run.LastValidation.Reason)
		item.SegmentCount = run.LastValidation.SegmentCount
		item.ImageCount = run.LastValidation.ImageCount
	}

	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to marshal run item", map[string]interface{}{
			"run_id": run.ID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(c.dynamoConfig.TableName),
	}

	_, err = c.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to save run item", map[string]interface{}{
			"run_id": run.ID,
		})
		return err
	}

	return err
}
