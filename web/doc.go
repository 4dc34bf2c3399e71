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


// Package web exposes the search and explanation services over HTTP.
//
// Endpoints:
//
//	POST /api/search  - rank cases against query text or an uploaded PDF
//	POST /api/chat    - answer a question grounded in supplied case excerpts
//	GET  /api/health  - liveness probe
//	GET  /api/test-ai - verify the model tier is reachable
//	GET  /api/theme   - read the theme preference cookie
//	PUT  /api/theme   - set the theme preference cookie
package web
