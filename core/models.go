package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Case IDs are content-addressed: derived from the case name so that
// re-ingesting the same judgment never creates a duplicate.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// PreviewLength is the number of characters of judgment text included in
// a result preview.
const PreviewLength = 500

// Case represents a single legal judgment in the corpus.
// It may be enriched with an embedding vector during ingestion.
type Case struct {
	Id         ID
	Name       string    // Case label, e.g. "State of Maharashtra v. Desai (2011)"
	Text       string    // Full judgment text
	Category   string    // Predicted or curated legal category, may be empty
	Vector     []float32 // Embedding vector for semantic search (populated by the ingest pipeline)
	InsertedAt time.Time // When the case was inserted into the database
	UpdatedAt  time.Time // When the case was last updated

	Metadata map[string]string // Optional metadata (e.g. "court", "year")
}

// Preview returns the leading PreviewLength characters of the judgment text.
// Truncation is rune-safe.
func (c *Case) Preview() string {
	runes := []rune(c.Text)
	if len(runes) <= PreviewLength {
		return c.Text
	}
	return string(runes[:PreviewLength])
}

// SearchResult pairs a case with its relevance score for a query.
// Scores from cosine similarity land in [0,1] for normalized vectors;
// a verbatim match boost may push them slightly above 1.
type SearchResult struct {
	Case  *Case
	Score float32
}
