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


// Package resultsview manages the presentation state of a result set:
// score filtering, ordering, display ranking, and the single open
// detail view.
//
// The View owns two pieces of state. The result set is the full,
// immutable collection for the current query. The display list is
// derived from it, filter first and then a stable sort, and is
// recomputed in full whenever either knob changes. Display rank is the
// 1-based position in the display list and never derives from the
// order the server returned.
//
// Rendering is pushed through the Renderer interface, so the filter,
// sort, and rank logic stays testable without any presentation layer
// attached.
package resultsview
