package retry_utils

import (
	"context"
	"errors"
	"testing"
	"time"

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

func testPolicy(maxAttempts int) domain.RetryPolicy {
	return domain.RetryPolicy{
		MaxAttempts:    maxAttempts,
		BaseDelay:      time.Millisecond,
		MaxDelay:       8 * time.Millisecond,
		RetryableKinds: domain.DefaultRetryableKinds(),
	}
}

func TestBackoffDelay_DoublesAndCaps(t *testing.T) {
	policy := domain.RetryPolicy{BaseDelay: time.Second, MaxDelay: 30 * time.Second}

	expected := []time.Duration{
		time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second,
		16 * time.Second, 30 * time.Second, 30 * time.Second,
	}
	for attempt, want := range expected {
		if got := BackoffDelay(policy, attempt); got != want {
			t.Fatalf("attempt %d: expected %s, got %s", attempt, want, got)
		}
	}
}

func TestExecute_TransientErrorsThenSuccess(t *testing.T) {
	calls := 0
	result, err := Execute(context.Background(), testPolicy(5), domain.KindOf, nopLogger{},
		func(ctx context.Context) (string, error) {
			calls++
			if calls <= 2 {
				return "", domain.ApiErrorFromStatus(429, "rate limited")
			}
			return "ok", nil
		})
	if err != nil {
		t.Fatal("Expected success after transient errors, got", err)
	}
	if result != "ok" {
		t.Fatal("Expected result ok, got", result)
	}
	if calls != 3 {
		t.Fatal("Expected 3 calls, got", calls)
	}
}

func TestExecute_FatalErrorAbortsImmediately(t *testing.T) {
	calls := 0
	start := time.Now()
	_, err := Execute(context.Background(), testPolicy(5), domain.KindOf, nopLogger{},
		func(ctx context.Context) (int, error) {
			calls++
			return 0, domain.ApiErrorFromStatus(401, "bad key")
		})
	if calls != 1 {
		t.Fatal("Expected a single call for a fatal error, got", calls)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatal("Expected no backoff before a fatal abort, took", elapsed)
	}

	var apiErr *domain.ApiError
	if !errors.As(err, &apiErr) || apiErr.Kind != domain.ErrKindAuthFailed {
		t.Fatal("Expected the original auth error to propagate, got", err)
	}
}

func TestExecute_ExhaustsBudget(t *testing.T) {
	calls := 0
	_, err := Execute(context.Background(), testPolicy(3), domain.KindOf, nopLogger{},
		func(ctx context.Context) (int, error) {
			calls++
			return 0, domain.ApiErrorFromStatus(503, "unavailable")
		})
	if calls != 3 {
		t.Fatal("Expected 3 calls, got", calls)
	}

	var exhausted *domain.ExhaustedRetriesError
	if !errors.As(err, &exhausted) {
		t.Fatal("Expected ExhaustedRetriesError, got", err)
	}
	if exhausted.Attempts != 3 {
		t.Fatal("Expected 3 recorded attempts, got", exhausted.Attempts)
	}
	var apiErr *domain.ApiError
	if !errors.As(exhausted.LastErr, &apiErr) || apiErr.Kind != domain.ErrKindServerError {
		t.Fatal("Expected the last transient error to be preserved, got", exhausted.LastErr)
	}
}

func TestExecute_CancellationWins(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := Execute(ctx, testPolicy(5), domain.KindOf, nopLogger{},
		func(ctx context.Context) (int, error) {
			calls++
			cancel()
			return 0, domain.ApiErrorFromStatus(429, "rate limited")
		})

	var cancelled *domain.CancelledError
	if !errors.As(err, &cancelled) {
		t.Fatal("Expected CancelledError, got", err)
	}
	if calls != 1 {
		t.Fatal("Expected no retry after cancellation, got", calls)
	}
}

func TestExecute_CancelledOperationNotRetried(t *testing.T) {
	calls := 0
	_, err := Execute(context.Background(), testPolicy(5), domain.KindOf, nopLogger{},
		func(ctx context.Context) (int, error) {
			calls++
			return 0, context.Canceled
		})

	var cancelled *domain.CancelledError
	if !errors.As(err, &cancelled) {
		t.Fatal("Expected CancelledError, got", err)
	}
	if calls != 1 {
		t.Fatal("Expected a single call, got", calls)
	}
}
