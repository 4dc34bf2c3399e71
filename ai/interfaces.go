package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// CategoryClassifier predicts the legal category of a judgment or query text.
// Implementations must be thread-safe for concurrent use.
type CategoryClassifier interface {
	// Classify returns one of the categories in Categories for the given
	// text. Returns CategoryUnknown when the text does not fit any category.
	// Returns an error if classification fails.
	Classify(ctx context.Context, text string) (string, error)
}

// Explainer answers questions about legal cases using retrieved context.
// Implementations must be thread-safe for concurrent use.
type Explainer interface {
	// Explain answers the question using only the provided context chunks.
	// The response cites the case names of the chunks it drew from.
	// Returns an error classified by the sentinel errors in this package
	// (ErrQuotaExceeded, ErrInvalidCredentials, ErrNoResponse) when the
	// model tier fails.
	Explain(ctx context.Context, question string, chunks []ContextChunk) (*Explanation, error)

	// Ping issues a trivial request to verify the model tier is reachable
	// and the credentials are usable.
	Ping(ctx context.Context) error
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder,
// CategoryClassifier, and Explainer instances, ensuring they share
// configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Classifier returns the legal category classification service.
	// The returned CategoryClassifier is safe for concurrent use.
	Classifier() CategoryClassifier

	// Explainer returns the explanation service.
	// The returned Explainer is safe for concurrent use.
	Explainer() Explainer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
