package retry_utils

import (
	"context"
	"time"

	"generate-story-lambda/application/ports/outbound"
	"generate-story-lambda/domain"
)

// Classifier maps an operation error onto the error taxonomy so the executor
// can decide between backoff-retry and immediate abort.
type Classifier func(err error) domain.ErrorKind

// Execute runs op up to policy.MaxAttempts times. Errors whose class is in
// policy.RetryableKinds are retried after an exponential, capped backoff;
// any other class aborts immediately and the error propagates unchanged.
// Cancellation always wins: it is never retried and surfaces as
// *domain.CancelledError.
func Execute[T any](ctx context.Context, policy domain.RetryPolicy, classify Classifier,
	logger outbound.LoggerPort, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := BackoffDelay(policy, attempt-1)
			logger.WarnWithFields("retrying after transient failure", map[string]interface{}{
				"attempt": attempt + 1,
				"delay":   delay.String(),
				"error":   lastErr.Error(),
			})
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, &domain.CancelledError{Err: ctx.Err()}
			case <-timer.C:
			}
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		kind := classify(err)
		if kind == domain.ErrKindCancelled {
			return zero, &domain.CancelledError{Err: err}
		}
		if !policy.Retryable(kind) {
			logger.ErrorWithFields(err, "fatal api error, aborting", map[string]interface{}{
				"kind":    string(kind),
				"attempt": attempt + 1,
			})
			return zero, err
		}
		lastErr = err
	}

	return zero, &domain.ExhaustedRetriesError{Attempts: policy.MaxAttempts, LastErr: lastErr}
}

// BackoffDelay returns min(BaseDelay * 2^attempt, MaxDelay).
func BackoffDelay(policy domain.RetryPolicy, attempt int) time.Duration {
	if policy.BaseDelay <= 0 {
		return 0
	}
	delay := policy.BaseDelay
	for i := 0; i < attempt; i++ {
		delay *= 2
		if policy.MaxDelay > 0 && delay >= policy.MaxDelay {
			return policy.MaxDelay
		}
	}
	if policy.MaxDelay > 0 && delay > policy.MaxDelay {
		return policy.MaxDelay
	}
	return delay
}
