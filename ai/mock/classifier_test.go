package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caselens/caselens/ai"
)

func TestMockClassifier_DefaultKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"income tax", "appeal by the assessee against the income tax order", "tax"},
		{"penal code", "offence under the penal code", "criminal"},
		{"convicted", "the appellant was convicted", "criminal"},
		{"conviction", "appeal against conviction for murder under section 302", "criminal"},
		{"industrial dispute", "reference of the industrial dispute", "labour"},
		{"writ", "writ petition under article 226", "constitutional"},
		{"no keyword", "the parties settled the matter", ai.CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, err := NewMockClassifier().Classify(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, category)
		})
	}
}

func TestMockClassifier_Injection(t *testing.T) {
	m := NewMockClassifier()
	m.ClassifyFunc = func(ctx context.Context, text string) (string, error) {
		return "service", nil
	}

	category, err := m.Classify(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "service", category)
	assert.Equal(t, 1, m.CallCount())

	m.Reset()
	assert.Equal(t, 0, m.CallCount())
	assert.Nil(t, m.ClassifyFunc)
}
