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

import "errors"

// Domain validation errors
var (
	// ErrInvalidCase indicates a Case failed validation.
	ErrInvalidCase = errors.New("invalid case")

	// ErrEmptyCaseName indicates the case Name field is empty.
	ErrEmptyCaseName = errors.New("case name cannot be empty")

	// ErrEmptyCaseText indicates the case Text field is empty.
	ErrEmptyCaseText = errors.New("case text cannot be empty")

	// ErrQueryTooShort indicates a query has fewer words than the minimum.
	ErrQueryTooShort = errors.New("query text is too short")
)
