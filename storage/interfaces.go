package storage

import (
	"context"

	"github.com/caselens/caselens/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FindSimilar finds cases similar to the given vector.
	// Returns cases with similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// CaseRepository provides operations for managing the judgment corpus.
type CaseRepository interface {
	Repository

	// AddCases adds one or more cases to storage.
	// IDs are content-addressed from the case name; re-adding a case with
	// an existing name overwrites the stored record.
	// Sets InsertedAt/UpdatedAt timestamps.
	// Returns the cases with IDs and timestamps populated.
	AddCases(ctx context.Context, cases ...*core.Case) ([]*core.Case, error)

	// UpdateCases updates existing cases.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any case doesn't exist.
	UpdateCases(ctx context.Context, cases ...*core.Case) ([]*core.Case, error)

	// DeleteCases removes cases by their IDs.
	// Also removes associated name index entries.
	// Returns ErrNotFound if any case doesn't exist.
	DeleteCases(ctx context.Context, ids ...core.ID) error

	// GetCase retrieves a single case by ID.
	// Returns ErrNotFound if the case doesn't exist.
	GetCase(ctx context.Context, id core.ID) (*core.Case, error)

	// GetCases retrieves multiple cases by their IDs.
	// Returns only the cases that exist (no error for missing cases).
	GetCases(ctx context.Context, ids ...core.ID) ([]*core.Case, error)

	// GetCaseByName finds a case by its exact name.
	// Returns ErrNotFound if no matching case exists.
	GetCaseByName(ctx context.Context, name string) (*core.Case, error)

	// AllCases retrieves every case in the corpus, ordered by ID.
	// Used by batch jobs (re-embedding, reclassification).
	AllCases(ctx context.Context) ([]*core.Case, error)

	// CountCases returns the number of cases in the corpus.
	CountCases(ctx context.Context) (int, error)
}
