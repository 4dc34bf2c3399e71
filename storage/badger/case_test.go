package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caselens/caselens/core"
	"github.com/caselens/caselens/storage"
)

func newTestRepo(t *testing.T) storage.CaseRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func TestAddAndGetCase(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c := &core.Case{
		Name: "Vishaka v. State of Rajasthan",
		Text: "JUDGMENT\nGuidelines on sexual harassment at the workplace.",
	}

	added, err := repo.AddCases(ctx, c)
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, core.IDFromContent(c.Name), added[0].Id)
	assert.False(t, added[0].InsertedAt.IsZero())

	got, err := repo.GetCase(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, c.Text, got.Text)
}

func TestAddCase_ContentAddressedOverwrite(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := &core.Case{Name: "A v. B", Text: "first version"}
	_, err := repo.AddCases(ctx, first)
	require.NoError(t, err)

	second := &core.Case{Name: "A v. B", Text: "second version"}
	_, err = repo.AddCases(ctx, second)
	require.NoError(t, err)

	// Same name, same ID, latest text wins.
	got, err := repo.GetCase(ctx, core.IDFromContent("A v. B"))
	require.NoError(t, err)
	assert.Equal(t, "second version", got.Text)

	count, err := repo.CountCases(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAddCase_Invalid(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddCases(ctx, &core.Case{Name: "", Text: "text"})
	assert.ErrorIs(t, err, core.ErrInvalidCase)
}

func TestGetCase_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetCase(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetCaseByName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddCases(ctx,
		&core.Case{Name: "Maneka Gandhi v. Union of India", Text: "passport impoundment"},
		&core.Case{Name: "Minerva Mills v. Union of India", Text: "basic structure"},
	)
	require.NoError(t, err)

	got, err := repo.GetCaseByName(ctx, "Minerva Mills v. Union of India")
	require.NoError(t, err)
	assert.Equal(t, "basic structure", got.Text)

	_, err = repo.GetCaseByName(ctx, "no such case")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateCases(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddCases(ctx, &core.Case{Name: "A v. B", Text: "original"})
	require.NoError(t, err)

	updated := added[0]
	updated.Category = "civil"
	updated.Vector = []float32{0.1, 0.2}

	_, err = repo.UpdateCases(ctx, updated)
	require.NoError(t, err)

	got, err := repo.GetCase(ctx, updated.Id)
	require.NoError(t, err)
	assert.Equal(t, "civil", got.Category)
	assert.Equal(t, []float32{0.1, 0.2}, got.Vector)
	assert.True(t, got.UpdatedAt.After(got.InsertedAt) || got.UpdatedAt.Equal(got.InsertedAt))
}

func TestUpdateCases_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.UpdateCases(context.Background(), &core.Case{Id: 999, Name: "X v. Y", Text: "t"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteCases(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddCases(ctx, &core.Case{Name: "A v. B", Text: "text"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteCases(ctx, added[0].Id))

	_, err = repo.GetCase(ctx, added[0].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Name index entry must be gone too
	_, err = repo.GetCaseByName(ctx, "A v. B")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteCases(ctx, added[0].Id), storage.ErrNotFound)
}

func TestAllCases(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	names := []string{"A v. B", "C v. D", "E v. F"}
	for _, name := range names {
		_, err := repo.AddCases(ctx, &core.Case{Name: name, Text: "text of " + name})
		require.NoError(t, err)
	}

	all, err := repo.AllCases(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Ordered by ID
	for i := 0; i < len(all)-1; i++ {
		assert.Less(t, all[i].Id, all[i+1].Id)
	}
}

func TestCountCases_Empty(t *testing.T) {
	repo := newTestRepo(t)

	count, err := repo.CountCases(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
