package domain

import (
	"errors"
	"testing"
	"time"
)

func testRun(maxAttempts int) *PipelineRun {
	return NewPipelineRun("run-1", StoryRequest{
		MinSegments: 6,
		Retry:       RetryPolicy{MaxAttempts: maxAttempts},
	})
}

func TestPipelineRun_AttemptLifecycle(t *testing.T) {
	run := testRun(3)

	attempt, err := run.BeginAttempt(time.Now())
	if err != nil {
		t.Fatal("Failed to begin attempt:", err)
	}
	if attempt.Index != 0 {
		t.Fatal("Expected first attempt index 0, got", attempt.Index)
	}
	if attempt.Status != AttemptPending {
		t.Fatal("Expected pending status, got", attempt.Status)
	}

	if _, err := run.BeginAttempt(time.Now()); !errors.Is(err, ErrAttemptInFlight) {
		t.Fatal("Expected ErrAttemptInFlight while an attempt is pending, got", err)
	}

	run.ResolveAttempt(AttemptFailed)
	if run.Attempts[0].Status != AttemptFailed {
		t.Fatal("Expected resolved attempt to be failed, got", run.Attempts[0].Status)
	}

	second, err := run.BeginAttempt(time.Now())
	if err != nil {
		t.Fatal("Failed to begin second attempt:", err)
	}
	if second.Index != 1 {
		t.Fatal("Expected second attempt index 1, got", second.Index)
	}
}

func TestPipelineRun_AttemptBudget(t *testing.T) {
	run := testRun(2)

	for i := 0; i < 2; i++ {
		if _, err := run.BeginAttempt(time.Now()); err != nil {
			t.Fatal("Failed to begin attempt:", err)
		}
		run.ResolveAttempt(AttemptFailed)
	}

	if _, err := run.BeginAttempt(time.Now()); !errors.Is(err, ErrAttemptsExceeded) {
		t.Fatal("Expected ErrAttemptsExceeded after budget spent, got", err)
	}
}

func TestPipelineRun_DiscardCurrentAttempt(t *testing.T) {
	run := testRun(3)

	if _, err := run.BeginAttempt(time.Now()); err != nil {
		t.Fatal("Failed to begin attempt:", err)
	}
	run.DiscardCurrentAttempt()
	if len(run.Attempts) != 0 {
		t.Fatal("Expected discarded pending attempt to leave no record, got", len(run.Attempts))
	}

	if _, err := run.BeginAttempt(time.Now()); err != nil {
		t.Fatal("Failed to begin attempt:", err)
	}
	run.ResolveAttempt(AttemptFailed)
	run.DiscardCurrentAttempt()
	if len(run.Attempts) != 1 {
		t.Fatal("Expected resolved attempt to survive discard, got", len(run.Attempts))
	}
}

func TestPipelineRun_TerminalStatesAreSticky(t *testing.T) {
	for _, terminal := range []RunState{RunAccepted, RunFailed, RunCancelled} {
		run := testRun(3)
		if err := run.Transition(terminal); err != nil {
			t.Fatal("Failed to transition to terminal state:", err)
		}
		if err := run.Transition(RunGenerating); !errors.Is(err, ErrRunTerminal) {
			t.Fatalf("Expected ErrRunTerminal leaving %s, got %v", terminal, err)
		}
		if run.State != terminal {
			t.Fatalf("Expected state to remain %s, got %s", terminal, run.State)
		}
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"rate limited api error", ApiErrorFromStatus(429, "slow down"), ErrKindRateLimited},
		{"server error", ApiErrorFromStatus(503, "unavailable"), ErrKindServerError},
		{"auth failure", ApiErrorFromStatus(401, "bad key"), ErrKindAuthFailed},
		{"quota denial", ApiErrorFromStatus(403, "quota"), ErrKindQuotaExceeded},
		{"cancellation", &CancelledError{Err: errors.New("ctx")}, ErrKindCancelled},
		{"content quality", &ContentQualityError{Result: ValidationResult{Reason: ReasonTooFewSegments}}, ErrKindContentQuality},
		{"exhaustion", &ExhaustedRetriesError{Attempts: 5}, ErrKindExhausted},
		{"plain error", errors.New("boom"), ErrKindUnknown},
	}

	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}
