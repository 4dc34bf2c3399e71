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


// Package search ranks judgments against free-text queries.
//
// The Searcher type implements a multi-stage search algorithm:
//   - Query preparation (judgment-marker trimming, minimum word count)
//   - Semantic ranking using vector embeddings
//   - Verbatim keyword boosting with stop-word filtering
//
// Results are scored and ranked so the handful the caller asked for are
// the most relevant ones for the query.
package search
