package mock

import (
	"context"
	"strings"

	"github.com/caselens/caselens/ai"
)

// MockClassifier is a test double for ai.CategoryClassifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, uses default keyword behavior.
	ClassifyFunc func(ctx context.Context, text string) (string, error)

	callCount int
}

// NewMockClassifier creates a mock classifier with default keyword behavior.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Classify returns a category based on naive keyword matching.
// The default behavior is enough for tests that only need a stable,
// explainable mapping from text to category.
func (m *MockClassifier) Classify(ctx context.Context, text string) (string, error) {
	m.callCount++

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, text)
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "income tax"), strings.Contains(lower, "assessee"):
		return "tax", nil
	// "convict" is a stem so both "convicted" and "conviction" match.
	case strings.Contains(lower, "penal code"), strings.Contains(lower, "convict"):
		return "criminal", nil
	case strings.Contains(lower, "workman"), strings.Contains(lower, "industrial dispute"):
		return "labour", nil
	case strings.Contains(lower, "writ"):
		return "constitutional", nil
	default:
		return ai.CategoryUnknown, nil
	}
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockClassifier) Reset() {
	m.callCount = 0
	m.ClassifyFunc = nil
}
