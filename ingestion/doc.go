// Package ingestion provides pipeline orchestration for adding judgments
// to the corpus.
//
// The Pipeline type manages the ingestion workflow for cases, including:
//   - Adding cases to storage
//   - Generating embeddings asynchronously
//   - Predicting legal categories asynchronously
//
// Processing is performed concurrently using worker pools to maximize throughput.
// Errors during async processing are logged but do not fail the ingestion operation.
package ingestion
