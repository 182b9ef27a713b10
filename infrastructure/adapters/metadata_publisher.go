package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"generate-story-lambda/application/ports/outbound"
	"generate-story-lambda/config"
)

type publishMetadataRequest struct {
	RunID       string   `json:"run_id"`
	VideoKey    string   `json:"video_key"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type contentApiMetadataPublisher struct {
	logger     outbound.LoggerPort
	conf       *config.PublisherConfig
	authorizer Authorizer
}

func NewContentApiMetadataPublisher(logger outbound.LoggerPort, conf *config.PublisherConfig, authorizer Authorizer) outbound.MetadataPublisherPort {
	return &contentApiMetadataPublisher{
		logger:     logger,
		conf:       conf,
		authorizer: authorizer,
	}
}

func (p *contentApiMetadataPublisher) Publish(ctx context.Context, params outbound.PublishMetadataParams) error {
	token, err := p.authorizer.Authorize(ctx)
	if err != nil {
		p.logger.Error(err, "Failed to authorize")
		return err
	}

	body := publishMetadataRequest{
		RunID:       params.RunID,
		VideoKey:    params.VideoKey,
		Title:       params.Metadata.Title,
		Description: params.Metadata.Description,
		Tags:        params.Metadata.Tags,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		p.logger.Error(err, "Failed to marshal metadata request")
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.conf.ContentApiUrl, bytes.NewReader(payload))
	if err != nil {
		p.logger.Error(err, "Failed to create request")
		return err
	}

	req.Header.Add("Authorization", "Bearer "+token)
	req.Header.Add("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		p.logger.Error(err, "Failed to send request")
		return err
	}

	defer func(closer io.ReadCloser) {
		err := closer.Close()
		if err != nil {
			p.logger.Error(err, "Failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		p.logger.ErrorWithFields(nil, "Received unexpected status code from content API", map[string]interface{}{
			"status": resp.StatusCode,
			"run_id": params.RunID,
		})
		return fmt.Errorf("content API returned status %d", resp.StatusCode)
	}

	return nil
}
