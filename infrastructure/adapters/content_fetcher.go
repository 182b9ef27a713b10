package adapters

import (
	"errors"
	"io"
	"net/http"

	"generate-story-lambda/application/ports/outbound"
	"generate-story-lambda/domain"
)

type ContentFetcher interface {
	FetchContent(req *http.Request) ([]byte, error)
}

type contentFetcher struct {
	logger outbound.LoggerPort
	client *http.Client
}

func NewContentFetcher(logger outbound.LoggerPort) ContentFetcher {
	return &contentFetcher{
		logger: logger,
		client: &http.Client{},
	}
}

// FetchContent executes the request and maps non-OK responses onto the
// classified error taxonomy so callers can decide whether to retry.
func (c *contentFetcher) FetchContent(req *http.Request) ([]byte, error) {
	res, err := c.client.Do(req)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to send the HTTP request", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, &domain.ApiError{Kind: domain.ErrKindTimeout, Message: err.Error()}
		}
		return nil, err
	}

	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.logger.ErrorWithFields(err, "Failed to close the response body", map[string]interface{}{
				"method": req.Method,
				"URL":    req.URL.String(),
			})
		}
	}(res.Body)

	if res.StatusCode != http.StatusOK {
		bodyPayload, _ := io.ReadAll(res.Body)
		message := string(bodyPayload)
		c.logger.ErrorWithFields(nil, "HTTP request returned non-OK status code", map[string]interface{}{
			"method":  req.Method,
			"URL":     req.URL.String(),
			"status":  res.StatusCode,
			"message": message,
		})
		return nil, domain.ApiErrorFromStatus(res.StatusCode, message)
	}

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to read the response body", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
		return nil, err
	}

	return payload, nil
}
