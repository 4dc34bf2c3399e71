package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caselens/caselens/core"
)

func TestBuildSearchResponse(t *testing.T) {
	t.Run("skips hits without a case record", func(t *testing.T) {
		results := []*core.SearchResult{
			{Case: &core.Case{Name: "State v. Rao", Text: "conviction under the penal code"}, Score: 0.9},
			nil,
			{Case: nil, Score: 0.8},
			{Case: &core.Case{Name: "Mehta v. Union", Text: "assessment order set aside"}, Score: 0.4},
		}

		body := buildSearchResponse(results, "criminal")

		require.Len(t, body.Results, 2)
		assert.Equal(t, 2, body.Total)
		assert.Equal(t, "criminal", body.Category)

		assert.Equal(t, "State v. Rao", body.Results[0].Case)
		assert.Equal(t, "conviction under the penal code", body.Results[0].FullText)
		assert.Equal(t, 1, body.Results[0].Rank)

		assert.Equal(t, "Mehta v. Union", body.Results[1].Case)
		assert.Equal(t, "assessment order set aside", body.Results[1].FullText)
		assert.Equal(t, 2, body.Results[1].Rank)
	})

	t.Run("clamps boosted scores", func(t *testing.T) {
		results := []*core.SearchResult{
			{Case: &core.Case{Name: "State v. Rao", Text: "conviction"}, Score: 1.1},
		}

		body := buildSearchResponse(results, "criminal")

		require.Len(t, body.Results, 1)
		assert.Equal(t, 1.0, body.Results[0].Score)
	})

	t.Run("empty hit list", func(t *testing.T) {
		body := buildSearchResponse(nil, "unknown")
		assert.Empty(t, body.Results)
		assert.Equal(t, 0, body.Total)
	})
}
