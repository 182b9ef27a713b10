package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	ErrKindRateLimited    ErrorKind = "RATE_LIMITED"
	ErrKindTimeout        ErrorKind = "TIMEOUT"
	ErrKindServerError    ErrorKind = "SERVER_ERROR"
	ErrKindAuthFailed     ErrorKind = "AUTH_FAILED"
	ErrKindInvalidRequest ErrorKind = "INVALID_REQUEST"
	ErrKindQuotaExceeded  ErrorKind = "QUOTA_EXCEEDED"
	ErrKindContentQuality ErrorKind = "CONTENT_QUALITY"
	ErrKindExhausted      ErrorKind = "RETRIES_EXHAUSTED"
	ErrKindCancelled      ErrorKind = "CANCELLED"
	ErrKindUnknown        ErrorKind = "UNKNOWN"
)

// DefaultRetryableKinds are the error classes the api call executor retries
// with backoff. Everything else aborts immediately.
func DefaultRetryableKinds() map[ErrorKind]bool {
	return map[ErrorKind]bool{
		ErrKindRateLimited: true,
		ErrKindTimeout:     true,
		ErrKindServerError: true,
	}
}

type ApiError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *ApiError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api error (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (%s): %s", e.Kind, e.Message)
}

func (e *ApiError) Transient() bool {
	return DefaultRetryableKinds()[e.Kind]
}

// ApiErrorFromStatus classifies an HTTP status into the error taxonomy.
// 403 is treated as a permanent quota denial, which Gemini reports for
// exhausted billing quotas; credentials problems surface as 401.
func ApiErrorFromStatus(status int, message string) *ApiError {
	var kind ErrorKind
	switch {
	case status == http.StatusTooManyRequests:
		kind = ErrKindRateLimited
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		kind = ErrKindTimeout
	case status == http.StatusUnauthorized:
		kind = ErrKindAuthFailed
	case status == http.StatusForbidden:
		kind = ErrKindQuotaExceeded
	case status == http.StatusBadRequest:
		kind = ErrKindInvalidRequest
	case status >= 500:
		kind = ErrKindServerError
	default:
		kind = ErrKindUnknown
	}
	return &ApiError{Kind: kind, StatusCode: status, Message: message}
}

type CancelledError struct {
	Err error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("run cancelled: %v", e.Err)
}

func (e *CancelledError) Unwrap() error { return e.Err }

type ContentQualityError struct {
	Result ValidationResult
}

func (e *ContentQualityError) Error() string {
	return fmt.Sprintf("content rejected (%s): %d segments, %d images",
		e.Result.Reason, e.Result.SegmentCount, e.Result.ImageCount)
}

type ExhaustedRetriesError struct {
	Attempts int
	LastErr  error
}

func (e *ExhaustedRetriesError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *ExhaustedRetriesError) Unwrap() error { return e.LastErr }

// RunFailedError is the structured failure handed to the caller when a run
// terminates in FAILED. No partial artifacts accompany it.
type RunFailedError struct {
	Kind           ErrorKind
	Attempts       int
	LastValidation *ValidationResult
	Err            error
}

func (e *RunFailedError) Error() string {
	return fmt.Sprintf("run failed (%s) after %d attempts: %v", e.Kind, e.Attempts, e.Err)
}

func (e *RunFailedError) Unwrap() error { return e.Err }

// KindOf maps an arbitrary error onto the taxonomy used for retry decisions.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrKindUnknown
	}
	var cancelled *CancelledError
	if errors.As(err, &cancelled) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrKindCancelled
	}
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	var quality *ContentQualityError
	if errors.As(err, &quality) {
		return ErrKindContentQuality
	}
	var exhausted *ExhaustedRetriesError
	if errors.As(err, &exhausted) {
		return ErrKindExhausted
	}
	return ErrKindUnknown
}

func IsCancelled(err error) bool {
	return KindOf(err) == ErrKindCancelled
}
