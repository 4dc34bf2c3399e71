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

// categoryProcessor predicts legal categories for stored cases.
type categoryProcessor struct {
	caseRepository storage.CaseRepository
	classifier     ai.CategoryClassifier
	logger         *slog.Logger
}

var _ processor = (*categoryProcessor)(nil)

// newCategoryProcessor creates a new category processor.
func newCategoryProcessor(caseRepository storage.CaseRepository, classifier ai.CategoryClassifier, logger *slog.Logger) (processor, error) {
	if caseRepository == nil {
		return nil, ErrCaseRepositoryRequired
	}
	if classifier == nil {
		return nil, fmt.Errorf("classifier required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &categoryProcessor{
		caseRepository: caseRepository,
		classifier:     classifier,
		logger:         logger.With("processor", "categories"),
	}, nil
}

// process predicts categories for the specified cases. A failed
// prediction for one case is logged and skipped; the rest of the batch
// still gets classified.
func (cp *categoryProcessor) process(ctx context.Context, ids ...core.ID) error {
	cp.logger.Info("processing cases for categories", "cases", len(ids))

	slices.Sort(ids)

	cases, err := cp.caseRepository.GetCases(ctx, ids...)
	if err != nil {
		cp.logger.Error("error retrieving cases", "err", err)
		return err
	}

	classified := make([]*core.Case, 0, len(cases))
	for _, c := range cases {
		category, err := cp.classifier.Classify(ctx, core.TrimToJudgment(c.Text))
		if err != nil {
			cp.logger.Warn("category prediction failed", "case", c.Name, "err", err)
			continue
		}
		c.Category = category
		classified = append(classified, c)
	}

	if len(classified) == 0 {
		return nil
	}

	_, err = cp.caseRepository.UpdateCases(ctx, classified...)
	return err
}
