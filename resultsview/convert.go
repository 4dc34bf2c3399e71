package resultsview

import "github.com/caselens/caselens/core"

// FromSearchResults builds view results from ranked search hits.
// Original rank is the 1-based position in the hit order. Scores above
// 1 (verbatim-boosted hits) clamp to 1 so the percentage stays honest.
func FromSearchResults(hits []*core.SearchResult) []Result {
	results := make([]Result, 0, len(hits))
	for i, hit := range hits {
		if hit == nil || hit.Case == nil {
			continue
		}
		results = append(results, Result{
			CaseLabel:    hit.Case.Name,
			Score:        clamp01(float64(hit.Score)),
			PreviewText:  hit.Case.Preview(),
			OriginalRank: i + 1,
		})
	}
	return results
}
