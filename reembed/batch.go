package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/caselens/caselens/ai"
	"github.com/caselens/caselens/core"
	"github.com/caselens/caselens/storage"
)

// BatchProcessor handles embedding generation for batches of cases.
type BatchProcessor struct {
	repo           storage.CaseRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.CaseRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of cases and updates them in the database.
// Vectors are normalized after embedding to ensure compatibility with cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, cases []*core.Case) error {
	if len(cases) == 0 {
		return nil
	}

	texts := make([]string, len(cases))
	for i, c := range cases {
		texts[i] = core.TrimToJudgment(c.Text)
	}

	// Generate embeddings with retry
	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(cases) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(cases), len(embeddings))
	}

	for i := range cases {
		cases[i].Vector = NormalizeVector(embeddings[i])
	}

	_, err = bp.repo.UpdateCases(ctx, cases...)
	if err != nil {
		return fmt.Errorf("failed to update cases: %w", err)
	}

	return nil
}
