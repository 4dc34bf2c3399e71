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


package ai

import "errors"

var (
	// ErrQuotaExceeded indicates the model tier rejected the request for
	// rate or quota reasons.
	ErrQuotaExceeded = errors.New("ai quota exceeded")

	// ErrInvalidCredentials indicates the API key was rejected or lacks
	// the required permissions.
	ErrInvalidCredentials = errors.New("ai credentials invalid")

	// ErrNoResponse indicates the model returned an empty response.
	ErrNoResponse = errors.New("no response from ai model")

	// ErrNoContext indicates an explanation was requested without any
	// context chunks to ground it.
	ErrNoContext = errors.New("no context provided for explanation")
)
