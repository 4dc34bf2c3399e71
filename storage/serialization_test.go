package storage

import (
	"testing"
	"time"

	"github.com/caselens/caselens/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("A v. B")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Empty(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalCase(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	original := &core.Case{
		Id:         core.IDFromContent("Olga Tellis v. Bombay Municipal Corporation"),
		Name:       "Olga Tellis v. Bombay Municipal Corporation",
		Text:       "JUDGMENT\nThe right to livelihood is an integral facet of the right to life.",
		Category:   "constitutional",
		Vector:     []float32{0.25, 0.5, -0.75},
		InsertedAt: now,
		UpdatedAt:  now,
		Metadata:   map[string]string{"court": "Supreme Court"},
	}

	data := MarshalCase(original)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalCase(data)
	require.NoError(t, err)

	assert.Equal(t, original.Id, decoded.Id)
	assert.Equal(t, original.Name, decoded.Name)
	assert.Equal(t, original.Text, decoded.Text)
	assert.Equal(t, original.Category, decoded.Category)
	assert.Equal(t, original.Vector, decoded.Vector)
	assert.True(t, original.InsertedAt.Equal(decoded.InsertedAt))
	assert.Equal(t, original.Metadata, decoded.Metadata)
}

func TestUnmarshalCase_Truncated(t *testing.T) {
	c := &core.Case{Id: 1, Name: "A v. B", Text: "judgment text"}
	data := MarshalCase(c)

	_, err := UnmarshalCase(data[:len(data)/2])
	assert.Error(t, err)
}
