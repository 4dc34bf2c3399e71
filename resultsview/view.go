package resultsview

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// View owns the full result set for the current query and the derived
// display list. All operations run to completion on the caller's
// goroutine; the view is not safe for concurrent use and does not need
// to be, since a single interaction drives it.
type View struct {
	renderer Renderer
	collator *collate.Collator

	resultSet []Result
	state     ViewState

	// display holds indices into resultSet, filtered then sorted.
	display []int

	detail     Detail
	detailOpen bool
}

// Option configures a View.
type Option func(*View)

// WithRenderer attaches the rendering surface.
// Default is a renderer that discards output.
func WithRenderer(r Renderer) Option {
	return func(v *View) {
		if r != nil {
			v.renderer = r
		}
	}
}

// WithCollationLanguage sets the language used for name ordering.
// Default is language-neutral collation.
func WithCollationLanguage(tag language.Tag) Option {
	return func(v *View) {
		v.collator = collate.New(tag, collate.IgnoreCase)
	}
}

// NewView creates an empty view.
func NewView(opts ...Option) *View {
	v := &View{
		renderer: noopRenderer{},
		collator: collate.New(language.Und, collate.IgnoreCase),
		state:    defaultViewState(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Load replaces the result set, resets the view state to defaults, and
// renders. An empty sequence is valid and renders the no-results state.
func (v *View) Load(results []Result) {
	v.resultSet = make([]Result, len(results))
	copy(v.resultSet, results)

	v.state = defaultViewState()
	v.detailOpen = false
	v.renderer.HideDetail()

	v.recompute()
	v.Render()
}

// SetFilter hides results scoring below threshold and renders.
// Out-of-range thresholds clamp to the nearest bound.
func (v *View) SetFilter(threshold float64) {
	v.state.FilterThreshold = clamp01(threshold)
	v.recompute()
	v.Render()
}

// SetSort reorders the display list and renders.
func (v *View) SetSort(key SortKey) {
	v.state.SortKey = key
	v.recompute()
	v.Render()
}

// Render pushes the current display list to the renderer. One card per
// entry, rank equal to the entry's 1-based display position, plus the
// visible and total counters. An empty display list renders an explicit
// no-results state instead of an empty container.
func (v *View) Render() {
	if len(v.display) == 0 {
		v.renderer.RenderNoResults(len(v.resultSet))
		return
	}

	cards := make([]Card, len(v.display))
	for i, idx := range v.display {
		r := v.resultSet[idx]
		cards[i] = Card{
			Rank:      i + 1,
			CaseLabel: r.CaseLabel,
			Percent:   r.Percent(),
		}
	}
	v.renderer.RenderCards(cards, len(v.display), len(v.resultSet))
}

// SelectDetail opens the detail view for the result at the given
// 1-based display rank. Opening a second detail replaces the first.
// Returns ErrNoSuchResult for ranks outside the display list.
func (v *View) SelectDetail(rank int) error {
	if rank < 1 || rank > len(v.display) {
		return ErrNoSuchResult
	}

	r := v.resultSet[v.display[rank-1]]
	v.detail = Detail{
		CaseLabel:   r.CaseLabel,
		PreviewText: r.PreviewText,
		Percent:     r.Percent(),
		Rank:        rank,
	}
	v.detailOpen = true
	v.renderer.ShowDetail(v.detail)
	return nil
}

// CloseDetail closes the detail view. Closing an already-closed view
// is a no-op.
func (v *View) CloseDetail() {
	if !v.detailOpen {
		return
	}
	v.detailOpen = false
	v.renderer.HideDetail()
}

// DisplayList returns a copy of the currently displayed results in
// display order.
func (v *View) DisplayList() []Result {
	out := make([]Result, len(v.display))
	for i, idx := range v.display {
		out[i] = v.resultSet[idx]
	}
	return out
}

// Visible returns the number of displayed results.
func (v *View) Visible() int {
	return len(v.display)
}

// Total returns the size of the unfiltered result set.
func (v *View) Total() int {
	return len(v.resultSet)
}

// State returns the current filter and sort settings.
func (v *View) State() ViewState {
	return v.state
}

// Detail returns the open detail view, if any.
func (v *View) Detail() (Detail, bool) {
	return v.detail, v.detailOpen
}

// recompute derives the display list from scratch: filter first, then
// a stable sort. Both knobs are reapplied on every change so the
// outcome never depends on which control was touched last.
func (v *View) recompute() {
	display := make([]int, 0, len(v.resultSet))
	for i, r := range v.resultSet {
		if r.Score >= v.state.FilterThreshold {
			display = append(display, i)
		}
	}

	switch v.state.SortKey {
	case SimilarityDesc:
		sort.SliceStable(display, func(i, j int) bool {
			return v.resultSet[display[i]].Score > v.resultSet[display[j]].Score
		})
	case SimilarityAsc:
		sort.SliceStable(display, func(i, j int) bool {
			return v.resultSet[display[i]].Score < v.resultSet[display[j]].Score
		})
	case NameAsc:
		sort.SliceStable(display, func(i, j int) bool {
			return v.collator.CompareString(v.resultSet[display[i]].CaseLabel, v.resultSet[display[j]].CaseLabel) < 0
		})
	case NameDesc:
		sort.SliceStable(display, func(i, j int) bool {
			return v.collator.CompareString(v.resultSet[display[i]].CaseLabel, v.resultSet[display[j]].CaseLabel) > 0
		})
	}

	v.display = display
}

// clamp01 bounds x to [0,1].
func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
