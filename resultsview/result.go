package resultsview

import "math"

// Result is one search hit as presented to the user. Immutable once
// constructed; the view only ever reorders and hides results, never
// rewrites them.
type Result struct {
	// CaseLabel is the case name shown on the card.
	CaseLabel string

	// Score is the relevance score in [0,1].
	Score float64

	// PreviewText is the excerpt shown in the detail view.
	PreviewText string

	// OriginalRank is the 1-based position in the server's response
	// order. Kept for reference; display rank never derives from it.
	OriginalRank int
}

// Percent returns the score as a rounded whole percentage.
func (r Result) Percent() int {
	return int(math.Round(r.Score * 100))
}

// SortKey selects the ordering of the display list.
type SortKey int

const (
	// SimilarityDesc orders by score, highest first. The default.
	SimilarityDesc SortKey = iota

	// SimilarityAsc orders by score, lowest first.
	SimilarityAsc

	// NameAsc orders by case label, A to Z.
	NameAsc

	// NameDesc orders by case label, Z to A.
	NameDesc
)

// String returns a human-readable name for the sort key.
func (k SortKey) String() string {
	switch k {
	case SimilarityDesc:
		return "similarity-desc"
	case SimilarityAsc:
		return "similarity-asc"
	case NameAsc:
		return "name-asc"
	case NameDesc:
		return "name-desc"
	default:
		return "unknown"
	}
}

// ViewState is the pair of user-controlled knobs that derive the
// display list from the result set.
type ViewState struct {
	// FilterThreshold hides results scoring below it. In [0,1].
	FilterThreshold float64

	// SortKey is the active ordering.
	SortKey SortKey
}

// defaultViewState is applied on every load.
func defaultViewState() ViewState {
	return ViewState{FilterThreshold: 0, SortKey: SimilarityDesc}
}
