package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("Kesavananda Bharati v. State of Kerala")
		id2 := IDFromContent("Kesavananda Bharati v. State of Kerala")
		assert.Equal(t, id1, id2)
	})

	t.Run("distinct content distinct ids", func(t *testing.T) {
		id1 := IDFromContent("Maneka Gandhi v. Union of India")
		id2 := IDFromContent("Minerva Mills v. Union of India")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content is valid", func(t *testing.T) {
		// Zero-length input still hashes to a stable ID.
		assert.Equal(t, IDFromContent(""), IDFromContent(""))
	})
}

func TestCasePreview(t *testing.T) {
	t.Run("short text returned whole", func(t *testing.T) {
		c := &Case{Text: "Appeal dismissed."}
		assert.Equal(t, "Appeal dismissed.", c.Preview())
	})

	t.Run("long text truncated", func(t *testing.T) {
		c := &Case{Text: strings.Repeat("a", PreviewLength+100)}
		assert.Len(t, c.Preview(), PreviewLength)
	})

	t.Run("multibyte text truncated on rune boundary", func(t *testing.T) {
		c := &Case{Text: strings.Repeat("§", PreviewLength+1)}
		preview := c.Preview()
		assert.Equal(t, PreviewLength, len([]rune(preview)))
		assert.True(t, strings.HasPrefix(c.Text, preview))
	})
}

func TestCaseMUSRoundTrip(t *testing.T) {
	original := Case{
		Id:       IDFromContent("Shreya Singhal v. Union of India"),
		Name:     "Shreya Singhal v. Union of India",
		Text:     "JUDGMENT\nSection 66A of the Information Technology Act...",
		Category: "constitutional",
		Vector:   []float32{0.12, -0.4, 0.88},
		Metadata: map[string]string{"court": "Supreme Court", "year": "2015"},
	}

	bs := make([]byte, CaseMUS.Size(original))
	n := CaseMUS.Marshal(original, bs)
	require.Equal(t, len(bs), n)

	decoded, n, err := CaseMUS.Unmarshal(bs)
	require.NoError(t, err)
	require.Equal(t, len(bs), n)

	assert.Equal(t, original.Id, decoded.Id)
	assert.Equal(t, original.Name, decoded.Name)
	assert.Equal(t, original.Text, decoded.Text)
	assert.Equal(t, original.Category, decoded.Category)
	assert.Equal(t, original.Vector, decoded.Vector)
	assert.Equal(t, original.Metadata, decoded.Metadata)
}

func TestCaseMUSSkip(t *testing.T) {
	c := Case{Id: 7, Name: "A v. B", Text: "text", Vector: []float32{1, 2}}
	bs := make([]byte, CaseMUS.Size(c))
	CaseMUS.Marshal(c, bs)

	n, err := CaseMUS.Skip(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
}
