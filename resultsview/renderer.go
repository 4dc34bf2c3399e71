package resultsview

// Card is one rendered result entry.
type Card struct {
	// Rank is the 1-based position in the display list.
	Rank int

	// CaseLabel is the case name.
	CaseLabel string

	// Percent is the score as a rounded whole percentage.
	Percent int
}

// Detail is the expanded view of a single result.
type Detail struct {
	CaseLabel   string
	PreviewText string
	Percent     int

	// Rank is the display rank the result held when it was selected.
	Rank int
}

// Renderer receives the visual output of a View. Implementations draw
// to whatever surface hosts the view; the View itself holds no
// presentation state beyond the open detail.
type Renderer interface {
	// RenderCards draws one card per display list entry, plus the
	// visible and total counters.
	RenderCards(cards []Card, visible, total int)

	// RenderNoResults draws an explicit empty state. The total counter
	// still shows the size of the unfiltered result set.
	RenderNoResults(total int)

	// ShowDetail opens the detail view. A second call replaces the
	// previous detail.
	ShowDetail(d Detail)

	// HideDetail closes the detail view.
	HideDetail()
}

// noopRenderer discards all output. Used when no renderer is attached,
// which keeps the view logic runnable headless.
type noopRenderer struct{}

var _ Renderer = (*noopRenderer)(nil)

func (noopRenderer) RenderCards(_ []Card, _, _ int) {}
func (noopRenderer) RenderNoResults(_ int)          {}
func (noopRenderer) ShowDetail(_ Detail)            {}
func (noopRenderer) HideDetail()                    {}
