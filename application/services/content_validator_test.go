package services

import (
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

func segmentsOf(n int) []string {
	segments := make([]string, n)
	for i := range segments {
		segments[i] = "segment"
	}
	return segments
}

func imagesOf(n int) [][]byte {
	images := make([][]byte, n)
	for i := range images {
		images[i] = []byte{0x1}
	}
	return images
}

func TestContentValidator_Validate(t *testing.T) {
	validator := NewContentValidator()
	request := domain.StoryRequest{MinSegments: 6}

	cases := []struct {
		name     string
		segments []string
		images   [][]byte
		passed   bool
		reason   domain.ValidationReason
	}{
		{"accepts matching counts", segmentsOf(7), imagesOf(7), true, domain.ReasonOK},
		{"accepts exact minimum", segmentsOf(6), imagesOf(6), true, domain.ReasonOK},
		{"rejects empty output", nil, nil, false, domain.ReasonEmptyOutput},
		{"rejects no segments", nil, imagesOf(3), false, domain.ReasonEmptyOutput},
		{"rejects no images", segmentsOf(7), nil, false, domain.ReasonEmptyOutput},
		{"rejects too few segments", segmentsOf(4), imagesOf(4), false, domain.ReasonTooFewSegments},
		{"too few wins over mismatch", segmentsOf(4), imagesOf(9), false, domain.ReasonTooFewSegments},
		{"rejects fewer images than segments", segmentsOf(6), imagesOf(5), false, domain.ReasonImageCountMismatch},
		{"rejects more images than segments", segmentsOf(6), imagesOf(7), false, domain.ReasonImageCountMismatch},
	}

	for _, tc := range cases {
		result := validator.Validate(tc.segments, tc.images, request)
		if result.Passed != tc.passed || result.Reason != tc.reason {
			t.Fatalf("%s: expected passed=%v reason=%s, got passed=%v reason=%s",
				tc.name, tc.passed, tc.reason, result.Passed, result.Reason)
		}
		if result.SegmentCount != len(tc.segments) || result.ImageCount != len(tc.images) {
			t.Fatalf("%s: counts not reported, got %d/%d", tc.name, result.SegmentCount, result.ImageCount)
		}
	}
}

func TestContentValidator_Deterministic(t *testing.T) {
	validator := NewContentValidator()
	request := domain.StoryRequest{MinSegments: 6}

	first := validator.Validate(segmentsOf(6), imagesOf(5), request)
	second := validator.Validate(segmentsOf(6), imagesOf(5), request)
	if first != second {
		t.Fatalf("Expected identical results for identical inputs: %+v vs %+v", first, second)
	}
}
