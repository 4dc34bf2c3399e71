package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/caselens/caselens/ai"
	"github.com/caselens/caselens/core"
	"github.com/caselens/caselens/storage"
)

// embeddingProcessor generates embeddings for stored cases.
type embeddingProcessor struct {
	caseRepository storage.CaseRepository
	embedder       ai.Embedder
	logger         *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(caseRepository storage.CaseRepository, embedder ai.Embedder, logger *slog.Logger) (processor, error) {
	if caseRepository == nil {
		return nil, ErrCaseRepositoryRequired
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		caseRepository: caseRepository,
		embedder:       embedder,
		logger:         logger.With("processor", "embeddings"),
	}, nil
}

// process generates embeddings for the specified cases.
// The text is trimmed to the operative judgment so cover pages do not
// dominate the vector.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing cases for embeddings", "cases", len(ids))

	slices.Sort(ids)

	cases, err := ep.caseRepository.GetCases(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving cases", "err", err)
		return err
	}

	texts := make([]string, len(cases))
	for i, c := range cases {
		texts[i] = core.TrimToJudgment(c.Text)
	}

	ep.logger.Debug("generating embeddings for cases", "cases", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(cases) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(cases), len(embeddings))
	}

	for i := range embeddings {
		cases[i].Vector = embeddings[i]
	}

	_, err = ep.caseRepository.UpdateCases(ctx, cases...)
	return err
}
