// Package ai defines the AI service interfaces used by the search and
// explanation layers: text embedding, legal category classification, and
// question answering over retrieved case context.
//
// Production implementations backed by OpenAI-compatible APIs live in
// ai/openai; test doubles live in ai/mock.
package ai
