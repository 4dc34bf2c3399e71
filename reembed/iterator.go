// Copyright 2025 Caselens Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reembed

import (
	"context"

	"github.com/caselens/caselens/core"
	"github.com/caselens/caselens/storage"
)

const (
	// DefaultBatchSize is the default number of cases to fetch in each batch
	DefaultBatchSize = 100
)

// CaseIterator iterates over all cases in batches.
type CaseIterator struct {
	repo      storage.CaseRepository
	batchSize int
}

// NewCaseIterator creates a new case iterator.
// batchSize: number of cases to fetch in each batch (must be > 0)
func NewCaseIterator(repo storage.CaseRepository, batchSize int) *CaseIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &CaseIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all cases, calling fn for each batch.
// Iteration stops on first error from fn or when all cases are processed.
// Context cancellation is checked between batches.
func (it *CaseIterator) ForEach(ctx context.Context, fn func([]*core.Case) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cases, err := it.repo.AllCases(ctx)
	if err != nil {
		return err
	}

	if len(cases) == 0 {
		return nil
	}

	for i := 0; i < len(cases); i += it.batchSize {
		end := i + it.batchSize
		if end > len(cases) {
			end = len(cases)
		}

		if err := fn(cases[i:end]); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
