package search

import "github.com/caselens/caselens/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterQueryPreparation(prepared string)
	AfterSemanticSearch(matches []*core.SearchResult)
	VerbatimHit(c *core.Case)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                              {}
func (n *noopMonitor) AfterQueryPreparation(_ string)              {}
func (n *noopMonitor) AfterSemanticSearch(_ []*core.SearchResult)  {}
func (n *noopMonitor) VerbatimHit(_ *core.Case)                    {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)               {}
