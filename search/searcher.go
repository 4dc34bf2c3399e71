package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/caselens/caselens/ai"
	"github.com/caselens/caselens/core"
	"github.com/caselens/caselens/storage"
)

// DefaultMaxHits is the number of results returned when the caller does
// not ask for a specific count.
const DefaultMaxHits = 5

// verbatimBoost is added to the score of a case containing every
// non-stop-word of the query.
const verbatimBoost = 0.3

// Searcher provides semantic similarity search over the judgment corpus.
type Searcher struct {
	caseRepository storage.CaseRepository
	embedder       ai.Embedder
	classifier     ai.CategoryClassifier
	logger         *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	caseRepository storage.CaseRepository,
	provider ai.Provider,
	opts ...Option,
) (*Searcher, error) {
	if caseRepository == nil {
		return nil, ErrCaseRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		caseRepository: caseRepository,
		embedder:       provider.Embedder(),
		classifier:     provider.Classifier(),
		logger:         slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// PrepareQuery normalizes raw query text for search. Text before the
// judgment marker is dropped, then the remainder must carry enough words
// to rank on. Returns core.ErrQueryTooShort for underspecified queries.
func (s *Searcher) PrepareQuery(raw string) (string, error) {
	prepared := strings.TrimSpace(core.TrimToJudgment(raw))
	if err := core.ValidateQuery(prepared); err != nil {
		return "", err
	}
	return prepared, nil
}

// FindSimilar searches for cases similar to the query.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilar(ctx context.Context, query string, maxHits int) ([]*core.SearchResult, error) {
	return s.FindSimilarWithMonitor(ctx, query, maxHits, nil)
}

// FindSimilarWithMonitor searches for cases similar to the query with monitoring.
// The monitor receives callbacks at each stage of the search process.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilarWithMonitor(ctx context.Context, query string, maxHits int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if maxHits <= 0 {
		maxHits = DefaultMaxHits
	}

	monitor.Start(query)

	prepared, err := s.PrepareQuery(query)
	if err != nil {
		s.logger.Debug("rejecting query", "err", err)
		return nil, err
	}
	monitor.AfterQueryPreparation(prepared)

	embedding, err := s.embedder.EmbedText(ctx, prepared)
	if err != nil {
		s.logger.Error("error generating embedding for query", "err", err)
		return nil, err
	}

	// Rank the whole corpus and keep the top hits. No similarity floor:
	// with a small per-query result count, weak matches fall off the end
	// on their own.
	matches, err := s.caseRepository.FindSimilar(ctx, embedding, 0, maxHits)
	if err != nil {
		s.logger.Error("error querying for similar cases", "err", err)
		return nil, err
	}
	monitor.AfterSemanticSearch(matches)

	// Apply verbatim match boost
	boosted := false
	for _, match := range matches {
		if containsAllQueryWords(match.Case.Text, prepared) {
			match.Score += verbatimBoost
			boosted = true
			monitor.VerbatimHit(match.Case)
		}
	}

	if boosted {
		sort.Slice(matches, func(i, j int) bool {
			return matches[i].Score > matches[j].Score
		})
	}

	s.logger.Debug("search complete",
		"hits", len(matches),
		"maxHits", maxHits)
	monitor.Finish(matches)

	return matches, nil
}

// ClassifyQuery predicts the legal category of the query text.
// Classification failures degrade to CategoryUnknown so a flaky model
// tier cannot take down search.
func (s *Searcher) ClassifyQuery(ctx context.Context, query string) string {
	category, err := s.classifier.Classify(ctx, query)
	if err != nil {
		s.logger.Warn("query classification failed", "err", err)
		return ai.CategoryUnknown
	}
	return category
}
