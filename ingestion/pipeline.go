package ingestion

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"

	"github.com/caselens/caselens/ai"
	"github.com/caselens/caselens/core"
	"github.com/caselens/caselens/storage"
)

// Pipeline orchestrates the ingestion and processing of judgments.
// It manages concurrent generation of embeddings and category predictions.
type Pipeline struct {
	caseRepository storage.CaseRepository
	embeddingPool  *ants.Pool
	categoryPool   *ants.Pool
	embeddingProc  processor
	categoryProc   processor
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pools
		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}
		if p.categoryPool != nil {
			p.categoryPool.Release()
		}

		embeddingPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		categoryPool, err := ants.NewPool(size)
		if err != nil {
			embeddingPool.Release()
			return err
		}

		p.embeddingPool = embeddingPool
		p.categoryPool = categoryPool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	caseRepository storage.CaseRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if caseRepository == nil {
		return nil, ErrCaseRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	categoryPool, err := ants.NewPool(poolSize)
	if err != nil {
		embeddingPool.Release()
		return nil, err
	}

	p := &Pipeline{
		caseRepository: caseRepository,
		embeddingPool:  embeddingPool,
		categoryPool:   categoryPool,
		logger:         slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create processors after options are applied (so they get final config)
	embeddingProc, err := newEmbeddingProcessor(caseRepository, provider.Embedder(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}

	categoryProc, err := newCategoryProcessor(caseRepository, provider.Classifier(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}

	p.embeddingProc = embeddingProc
	p.categoryProc = categoryProc

	return p, nil
}

// Document is one judgment handed to the pipeline for ingestion.
type Document struct {
	// Name is the case name, e.g. "State of Kerala v. Mathew".
	Name string

	// Text is the full judgment text.
	Text string

	// Metadata carries optional attributes (court, year, citation).
	Metadata map[string]string
}

// Ingest adds documents as cases and processes them asynchronously.
// Processing includes generating embeddings and predicting categories.
// Errors during async processing are logged but do not fail the ingestion.
func (p *Pipeline) Ingest(ctx context.Context, docs ...Document) ([]*core.Case, error) {
	cases := make([]*core.Case, len(docs))
	for i, doc := range docs {
		cases[i] = &core.Case{
			Name:     doc.Name,
			Text:     doc.Text,
			Metadata: doc.Metadata,
		}
		if err := core.ValidateCase(cases[i]); err != nil {
			return nil, err
		}
	}

	added, err := p.caseRepository.AddCases(ctx, cases...)
	if err != nil {
		return nil, err
	}

	if len(added) == 0 {
		return added, nil
	}

	ids := make([]core.ID, len(added))
	for i, c := range added {
		ids[i] = c.Id
	}

	// Submit for async processing. Category prediction is chained after
	// embedding so the two read-modify-write updates never race on the
	// same case.
	p.embeddingPool.Submit(func() {
		if err := p.embeddingProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing embeddings", "err", err)
		}

		p.categoryPool.Submit(func() {
			if err := p.categoryProc.process(context.Background(), ids...); err != nil {
				p.logger.Error("error processing categories", "err", err)
			}
		})
	})

	return added, nil
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
	if p.categoryPool != nil {
		p.categoryPool.Release()
	}
}
