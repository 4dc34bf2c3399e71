package mock

import (
	"context"
	"fmt"

	"github.com/caselens/caselens/ai"
)

// MockExplainer is a test double for ai.Explainer.
// It allows custom behavior injection via function fields.
type MockExplainer struct {
	// ExplainFunc is called by Explain if set.
	// If nil, uses default canned behavior.
	ExplainFunc func(ctx context.Context, question string, chunks []ai.ContextChunk) (*ai.Explanation, error)

	// PingFunc is called by Ping if set. If nil, Ping succeeds.
	PingFunc func(ctx context.Context) error

	callCount int
}

// NewMockExplainer creates a mock explainer with default canned behavior.
func NewMockExplainer() *MockExplainer {
	return &MockExplainer{}
}

// Explain returns a canned answer naming the first source, mirroring the
// shape of a real grounded response.
func (m *MockExplainer) Explain(ctx context.Context, question string, chunks []ai.ContextChunk) (*ai.Explanation, error) {
	m.callCount++

	if m.ExplainFunc != nil {
		return m.ExplainFunc(ctx, question, chunks)
	}

	if len(chunks) == 0 {
		return nil, ai.ErrNoContext
	}

	sources := make([]string, 0, len(chunks))
	seen := make(map[string]struct{}, len(chunks))
	for _, chunk := range chunks {
		if _, ok := seen[chunk.Case]; ok || chunk.Case == "" {
			continue
		}
		seen[chunk.Case] = struct{}{}
		sources = append(sources, chunk.Case)
	}

	return &ai.Explanation{
		Answer:  fmt.Sprintf("Based on [%s]: mock answer to %q.", sources[0], question),
		Sources: sources,
	}, nil
}

// Ping reports the injected health state, healthy by default.
func (m *MockExplainer) Ping(ctx context.Context) error {
	m.callCount++

	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// CallCount returns the number of times any method was called.
func (m *MockExplainer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockExplainer) Reset() {
	m.callCount = 0
	m.ExplainFunc = nil
	m.PingFunc = nil
}
