package search

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caselens/caselens/ai"
	"github.com/caselens/caselens/ai/mock"
	"github.com/caselens/caselens/core"
	"github.com/caselens/caselens/storage/badger"
)

const validQuery = "appeal against conviction for murder under section 302"

func TestNewSearcher(t *testing.T) {
	caseRepo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		caseRepo.Close()
		backend.Close()
	}()

	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(caseRepo, provider)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with custom logger", func(t *testing.T) {
		searcher, err := NewSearcher(caseRepo, provider, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(caseRepo, provider, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("nil case repository", func(t *testing.T) {
		_, err := NewSearcher(nil, provider)
		assert.Equal(t, ErrCaseRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewSearcher(caseRepo, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

func TestPrepareQuery(t *testing.T) {
	caseRepo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		caseRepo.Close()
		backend.Close()
	}()

	searcher, err := NewSearcher(caseRepo, mock.NewMockProvider())
	require.NoError(t, err)

	t.Run("passes valid query through", func(t *testing.T) {
		prepared, err := searcher.PrepareQuery(validQuery)
		require.NoError(t, err)
		assert.Equal(t, validQuery, prepared)
	})

	t.Run("trims to judgment marker", func(t *testing.T) {
		raw := "IN THE SUPREME COURT cause list header JUDGMENT the appeal is allowed because the conviction is unsound"
		prepared, err := searcher.PrepareQuery(raw)
		require.NoError(t, err)
		assert.True(t, len(prepared) < len(raw))
		assert.Contains(t, prepared, "JUDGMENT")
	})

	t.Run("rejects short query", func(t *testing.T) {
		_, err := searcher.PrepareQuery("too few words")
		assert.ErrorIs(t, err, core.ErrQueryTooShort)
	})

	t.Run("word count checked after trimming", func(t *testing.T) {
		_, err := searcher.PrepareQuery("many words of boilerplate before the marker JUDGMENT allowed")
		assert.ErrorIs(t, err, core.ErrQueryTooShort)
	})
}

func TestFindSimilar_EmptyDatabase(t *testing.T) {
	caseRepo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		caseRepo.Close()
		backend.Close()
	}()

	searcher, err := NewSearcher(caseRepo, mock.NewMockProvider())
	require.NoError(t, err)

	results, err := searcher.FindSimilar(context.Background(), validQuery, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSimilar_RanksBySimilarity(t *testing.T) {
	caseRepo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		caseRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	cases := []*core.Case{
		{Name: "State v. Rao", Text: "conviction under the penal code", Vector: []float32{0.9, 0.1, 0.0}},
		{Name: "Mehta v. Union", Text: "tax assessment dispute", Vector: []float32{0.1, 0.1, 0.8}},
		{Name: "Devi v. State", Text: "appeal against sentence", Vector: []float32{0.85, 0.15, 0.0}},
	}
	_, err = caseRepo.AddCases(ctx, cases...)
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1.0, 0.0, 0.0}, nil
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockClassifier(), mock.NewMockExplainer())

	searcher, err := NewSearcher(caseRepo, provider)
	require.NoError(t, err)

	results, err := searcher.FindSimilar(ctx, validQuery, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "State v. Rao", results[0].Case.Name)
	assert.Equal(t, "Devi v. State", results[1].Case.Name)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestFindSimilar_VerbatimBoost(t *testing.T) {
	caseRepo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		caseRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	// The weaker semantic match carries every query word verbatim.
	cases := []*core.Case{
		{
			Name:   "Close Semantic Match",
			Text:   "entirely unrelated narrative about property partition",
			Vector: []float32{1.0, 0.0, 0.0},
		},
		{
			Name:   "Verbatim Match",
			Text:   "the appeal against conviction for murder under section 302 was dismissed",
			Vector: []float32{0.8, 0.2, 0.0},
		},
	}
	_, err = caseRepo.AddCases(ctx, cases...)
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1.0, 0.0, 0.0}, nil
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockClassifier(), mock.NewMockExplainer())

	searcher, err := NewSearcher(caseRepo, provider)
	require.NoError(t, err)

	results, err := searcher.FindSimilar(ctx, validQuery, 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// 0.8 cosine plus the 0.3 boost outranks the bare 1.0 cosine
	assert.Equal(t, "Verbatim Match", results[0].Case.Name)
}

func TestFindSimilar_DefaultsMaxHits(t *testing.T) {
	caseRepo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		caseRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	for _, name := range []string{"A v. B", "C v. D", "E v. F", "G v. H", "I v. J", "K v. L", "M v. N"} {
		_, err = caseRepo.AddCases(ctx, &core.Case{
			Name:   name,
			Text:   "some judgment text",
			Vector: []float32{0.5, 0.5, 0.0},
		})
		require.NoError(t, err)
	}

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1.0, 0.0, 0.0}, nil
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockClassifier(), mock.NewMockExplainer())

	searcher, err := NewSearcher(caseRepo, provider)
	require.NoError(t, err)

	results, err := searcher.FindSimilar(ctx, validQuery, 0)
	require.NoError(t, err)
	assert.Len(t, results, DefaultMaxHits)
}

func TestFindSimilar_RejectsShortQuery(t *testing.T) {
	caseRepo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		caseRepo.Close()
		backend.Close()
	}()

	searcher, err := NewSearcher(caseRepo, mock.NewMockProvider())
	require.NoError(t, err)

	_, err = searcher.FindSimilar(context.Background(), "short query", 5)
	assert.ErrorIs(t, err, core.ErrQueryTooShort)
}

func TestClassifyQuery(t *testing.T) {
	caseRepo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		caseRepo.Close()
		backend.Close()
	}()

	t.Run("returns classifier verdict", func(t *testing.T) {
		searcher, err := NewSearcher(caseRepo, mock.NewMockProvider())
		require.NoError(t, err)

		category := searcher.ClassifyQuery(context.Background(), "the appellant was convicted under the penal code")
		assert.Equal(t, "criminal", category)
	})

	t.Run("degrades to unknown on classifier error", func(t *testing.T) {
		classifier := mock.NewMockClassifier()
		classifier.ClassifyFunc = func(ctx context.Context, text string) (string, error) {
			return "", assert.AnError
		}
		provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), classifier, mock.NewMockExplainer())

		searcher, err := NewSearcher(caseRepo, provider)
		require.NoError(t, err)

		category := searcher.ClassifyQuery(context.Background(), "anything")
		assert.Equal(t, ai.CategoryUnknown, category)
	})
}

func TestContainsAllQueryWords(t *testing.T) {
	tests := []struct {
		name     string
		document string
		query    string
		want     bool
	}{
		{"all words present", "the appeal against the conviction was dismissed", "appeal conviction dismissed", true},
		{"missing word", "the appeal was allowed", "appeal conviction", false},
		{"stop words ignored", "conviction recorded", "the conviction", true},
		{"case insensitive", "APPEAL DISMISSED", "appeal dismissed", true},
		{"only stop words", "anything", "the a an", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsAllQueryWords(tt.document, tt.query))
		})
	}
}
