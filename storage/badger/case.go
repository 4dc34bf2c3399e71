package badger

import (
	"bytes"
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/caselens/caselens/core"
	"github.com/caselens/caselens/storage"
)

// CaseRepository implements storage.CaseRepository for BadgerDB.
type CaseRepository struct {
	backend *Backend
}

var _ storage.CaseRepository = (*CaseRepository)(nil)

// NewCaseRepository creates a new CaseRepository.
func NewCaseRepository(backend *Backend) (*CaseRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &CaseRepository{backend: backend}, nil
}

// Close releases repository resources. The backend itself is closed by
// its owner.
func (r *CaseRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *CaseRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *CaseRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddCases adds one or more cases to storage.
// IDs are content-addressed from the case name.
func (r *CaseRepository) AddCases(ctx context.Context, cases ...*core.Case) ([]*core.Case, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, c := range cases {
			if err := core.ValidateCase(c); err != nil {
				return err
			}

			c.Id = core.IDFromContent(c.Name)
			c.InsertedAt = time.Now().UTC()
			c.UpdatedAt = c.InsertedAt

			key := makeCaseKey(c.Id)
			value := storage.MarshalCase(c)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Name index
			nameKey := makeCaseNameKey(c.Name)
			if err := tx.Set(nameKey, storage.MarshalID(c.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return cases, err
}

// UpdateCases updates existing cases.
func (r *CaseRepository) UpdateCases(ctx context.Context, cases ...*core.Case) ([]*core.Case, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, c := range cases {
			key := makeCaseKey(c.Id)

			old, err := r.readCase(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			c.UpdatedAt = time.Now().UTC()

			value := storage.MarshalCase(c)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update name index if the name changed
			if old.Name != c.Name {
				if err := tx.Delete(makeCaseNameKey(old.Name)); err != nil {
					return err
				}
				if err := tx.Set(makeCaseNameKey(c.Name), storage.MarshalID(c.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return cases, err
}

// DeleteCases removes cases by their IDs.
func (r *CaseRepository) DeleteCases(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeCaseKey(id)

			c, err := r.readCase(tx, key)
			if err != nil {
				return err
			}
			if c == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeCaseNameKey(c.Name)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetCase retrieves a single case by ID.
func (r *CaseRepository) GetCase(ctx context.Context, id core.ID) (*core.Case, error) {
	var result *core.Case
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCaseKey(id)
		var err error
		result, err = r.readCase(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetCases retrieves multiple cases by their IDs.
func (r *CaseRepository) GetCases(ctx context.Context, ids ...core.ID) ([]*core.Case, error) {
	var result []*core.Case
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeCaseKey(id)
			c, err := r.readCase(tx, key)
			if err != nil {
				return err
			}
			if c != nil {
				result = append(result, c)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetCaseByName finds a case by its exact name via the name index.
func (r *CaseRepository) GetCaseByName(ctx context.Context, name string) (*core.Case, error) {
	var result *core.Case
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCaseNameKey(name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var id core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = r.readCase(tx, makeCaseKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// AllCases retrieves every case in the corpus, ordered by ID.
func (r *CaseRepository) AllCases(ctx context.Context) ([]*core.Case, error) {
	var results []*core.Case
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(casePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if bytes.HasPrefix(key, []byte(caseNamePrefix)) {
				continue
			}

			var c *core.Case
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				c, err = storage.UnmarshalCase(val)
				return err
			}); err != nil {
				return err
			}
			if c != nil {
				results = append(results, c)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.Case) int {
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})

	return results, nil
}

// CountCases returns the number of cases in the corpus.
func (r *CaseRepository) CountCases(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(casePrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if bytes.HasPrefix(iter.Item().Key(), []byte(caseNamePrefix)) {
				continue
			}
			count++
		}
		return nil
	}, false)
	return count, err
}

// readCase reads a case from the transaction.
// Returns nil without error when the key does not exist.
func (r *CaseRepository) readCase(tx *badger.Txn, key []byte) (*core.Case, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var c *core.Case
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		c, unmarshalErr = storage.UnmarshalCase(val)
		return unmarshalErr
	})
	return c, err
}
