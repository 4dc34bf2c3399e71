package ingestion

import "errors"

var (
	// ErrCaseRepositoryRequired is returned when a case repository is not provided.
	ErrCaseRepositoryRequired = errors.New("case repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)
