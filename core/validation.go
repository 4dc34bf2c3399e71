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


package core

import (
	"fmt"
	"strings"
)

// MinQueryWords is the minimum number of words required for a search query
// to produce a meaningful similarity ranking.
const MinQueryWords = 5

// judgmentMarker delimits the operative part of a judgment document.
// Text before the marker (cover pages, cause lists) is dropped for search.
const judgmentMarker = "JUDGMENT"

// ValidateCase validates a Case according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Text must not be empty
//
// NOT validated (populated by the ingest pipeline):
//   - Vector (can be empty until the embedding processor runs)
//   - Category (can be empty until classified)
//   - ID (derived from Name on insert)
func ValidateCase(c *Case) error {
	if c == nil {
		return fmt.Errorf("%w: case is nil", ErrInvalidCase)
	}

	if c.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCase, ErrEmptyCaseName)
	}

	if c.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCase, ErrEmptyCaseText)
	}

	return nil
}

// ValidateQuery checks that query text carries enough words to search on.
// Returns ErrQueryTooShort wrapped with the observed word count.
func ValidateQuery(text string) error {
	words := len(strings.Fields(text))
	if words < MinQueryWords {
		return fmt.Errorf("%w: need at least %d words, got %d", ErrQueryTooShort, MinQueryWords, words)
	}
	return nil
}

// TrimToJudgment returns the text starting at the "JUDGMENT" marker.
// If the marker is absent the input is returned unchanged.
func TrimToJudgment(text string) string {
	if idx := strings.Index(text, judgmentMarker); idx != -1 {
		return text[idx:]
	}
	return text
}
