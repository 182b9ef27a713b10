package domain

import (
	"errors"
	"time"
)

type RunState string

const (
	RunInit         RunState = "INIT"
	RunPrompting    RunState = "PROMPTING"
	RunGenerating   RunState = "GENERATING"
	RunValidating   RunState = "VALIDATING"
	RunAccepted     RunState = "ACCEPTED"
	RunRegenerating RunState = "REGENERATING"
	RunFailed       RunState = "FAILED"
	RunCancelled    RunState = "CANCELLED"
)

func (s RunState) Terminal() bool {
	return s == RunAccepted || s == RunFailed || s == RunCancelled
}

type ChunkKind int

const (
	TextChunk ChunkKind = iota
	ImageChunk
	EndMarker
)

// Chunk is one element of the generation stream. Exactly one payload field is
// meaningful for a given Kind.
type Chunk struct {
	Kind  ChunkKind
	Text  string
	Image []byte
}

func NewTextChunk(text string) Chunk  { return Chunk{Kind: TextChunk, Text: text} }
func NewImageChunk(data []byte) Chunk { return Chunk{Kind: ImageChunk, Image: data} }
func NewEndMarker() Chunk             { return Chunk{Kind: EndMarker} }

type AttemptStatus string

const (
	AttemptPending   AttemptStatus = "PENDING"
	AttemptSucceeded AttemptStatus = "SUCCEEDED"
	AttemptFailed    AttemptStatus = "FAILED"
)

type GenerationAttempt struct {
	Index     int
	StartedAt time.Time
	Chunks    []Chunk
	Status    AttemptStatus
}

type SafetySetting struct {
	Category  string
	Threshold string
}

type RetryPolicy struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RetryableKinds map[ErrorKind]bool
}

func (p RetryPolicy) Retryable(kind ErrorKind) bool {
	return p.RetryableKinds[kind]
}

type StoryRequest struct {
	Prompt      string
	AspectRatio string
	MinSegments int
	Safety      []SafetySetting
	Retry       RetryPolicy
}

type ExtractedContent struct {
	Segments []string
	Images   [][]byte
}

type ValidationReason string

const (
	ReasonOK                 ValidationReason = "OK"
	ReasonTooFewSegments     ValidationReason = "TOO_FEW_SEGMENTS"
	ReasonImageCountMismatch ValidationReason = "IMAGE_COUNT_MISMATCH"
	ReasonEmptyOutput        ValidationReason = "EMPTY_OUTPUT"
)

type ValidationResult struct {
	Passed       bool
	Reason       ValidationReason
	SegmentCount int
	ImageCount   int
}

type VideoMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

var (
	ErrAttemptInFlight  = errors.New("an attempt is already pending for this run")
	ErrAttemptsExceeded = errors.New("attempt budget exhausted")
	ErrRunTerminal      = errors.New("run already reached a terminal state")
)

type PipelineRun struct {
	ID              string
	Request         StoryRequest
	Attempts        []GenerationAttempt
	AcceptedContent *ExtractedContent
	State           RunState
	LastValidation  *ValidationResult
}

func NewPipelineRun(id string, request StoryRequest) *PipelineRun {
	return &PipelineRun{
		ID:      id,
		Request: request,
		State:   RunInit,
	}
}

// Transition moves the run to the next state. Terminal states are sticky: once
// the run is ACCEPTED, FAILED or CANCELLED no further transition is applied.
func (r *PipelineRun) Transition(next RunState) error {
	if r.State.Terminal() {
		return ErrRunTerminal
	}
	r.State = next
	return nil
}

// BeginAttempt appends a new pending attempt. At most one attempt may be
// pending at a time, and the total number of attempts never exceeds the
// request's retry budget.
func (r *PipelineRun) BeginAttempt(now time.Time) (*GenerationAttempt, error) {
	if current := r.CurrentAttempt(); current != nil && current.Status == AttemptPending {
		return nil, ErrAttemptInFlight
	}
	if r.Request.Retry.MaxAttempts > 0 && len(r.Attempts) >= r.Request.Retry.MaxAttempts {
		return nil, ErrAttemptsExceeded
	}
	r.Attempts = append(r.Attempts, GenerationAttempt{
		Index:     len(r.Attempts),
		StartedAt: now,
		Status:    AttemptPending,
	})
	return r.CurrentAttempt(), nil
}

func (r *PipelineRun) CurrentAttempt() *GenerationAttempt {
	if len(r.Attempts) == 0 {
		return nil
	}
	return &r.Attempts[len(r.Attempts)-1]
}

// DiscardCurrentAttempt drops a pending attempt so it does not count against
// the retry budget. Used when the run is cancelled mid-generation.
func (r *PipelineRun) DiscardCurrentAttempt() {
	if current := r.CurrentAttempt(); current != nil && current.Status == AttemptPending {
		r.Attempts = r.Attempts[:len(r.Attempts)-1]
	}
}

func (r *PipelineRun) ResolveAttempt(status AttemptStatus) {
	if current := r.CurrentAttempt(); current != nil && current.Status == AttemptPending {
		current.Status = status
	}
}
