package adapters

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"generate-story-lambda/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string)                                           {}
func (nopLogger) InfoWithFields(string, map[string]interface{})         {}
func (nopLogger) Error(error, string)                                   {}
func (nopLogger) ErrorWithFields(error, string, map[string]interface{}) {}
func (nopLogger) Debug(string)                                          {}
func (nopLogger) DebugWithFields(string, map[string]interface{})        {}
func (nopLogger) Warn(string)                                           {}
func (nopLogger) WarnWithFields(string, map[string]interface{})         {}

func TestContentFetcher_ReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	fetcher := NewContentFetcher(nopLogger{})
	req, err := http.NewRequest("GET", server.URL, nil)
	if err != nil {
		t.Fatal("Failed to create request:", err)
	}

	payload, err := fetcher.FetchContent(req)
	if err != nil {
		t.Fatal("Failed to fetch content:", err)
	}
	if string(payload) != "payload" {
		t.Fatal("Unexpected payload:", string(payload))
	}
}

func TestContentFetcher_ClassifiesStatusCodes(t *testing.T) {
	cases := []struct {
		status int
		kind   domain.ErrorKind
	}{
		{http.StatusTooManyRequests, domain.ErrKindRateLimited},
		{http.StatusGatewayTimeout, domain.ErrKindTimeout},
		{http.StatusUnauthorized, domain.ErrKindAuthFailed},
		{http.StatusForbidden, domain.ErrKindQuotaExceeded},
		{http.StatusBadRequest, domain.ErrKindInvalidRequest},
		{http.StatusInternalServerError, domain.ErrKindServerError},
	}

	for _, tc := range cases {
		status := tc.status
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		fetcher := NewContentFetcher(nopLogger{})
		req, err := http.NewRequest("GET", server.URL, nil)
		if err != nil {
			t.Fatal("Failed to create request:", err)
		}

		_, err = fetcher.FetchContent(req)
		server.Close()

		var apiErr *domain.ApiError
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: expected ApiError, got %v", tc.status, err)
		}
		if apiErr.Kind != tc.kind {
			t.Fatalf("status %d: expected kind %s, got %s", tc.status, tc.kind, apiErr.Kind)
		}
		if apiErr.StatusCode != tc.status {
			t.Fatalf("status %d: status not preserved, got %d", tc.status, apiErr.StatusCode)
		}
	}
}
