package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/corkboard/pkg/adapters/sqlite"
	"github.com/aretw0/corkboard/pkg/core"
)

func setupStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.NewStore(sqlite.Config{
		Path: filepath.Join(t.TempDir(), "board.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Initialize(context.Background()))
	return store
}

func sampleNotes() []core.Note {
	return []core.Note{
		{ID: "a", X: 10.5, Y: 20.25, Content: "first", Color: core.ColorYellow, Stack: 1, W: 220, H: 220},
		{ID: "b", X: -4, Y: 99, Content: "second", Color: core.ColorPurple, Stack: 5, W: 220, H: 220},
		{ID: "c", X: 0, Y: 0, Content: "", Color: core.ColorBlue, Stack: 3, W: 220, H: 220},
	}
}

func TestFreshDatabaseIsAbsent(t *testing.T) {
	store := setupStore(t)

	notes, found, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, notes)
}

func TestRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	want := sampleNotes()
	require.NoError(t, store.Save(ctx, want))

	got, found, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	// Insertion order survives the round trip.
	assert.Equal(t, want, got)
}

func TestSaveReplacesSnapshot(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleNotes()))
	require.NoError(t, store.Save(ctx, sampleNotes()[:1]))

	got, found, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestEmptySaveVersusClear(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	// Saving an empty snapshot keeps the record present.
	require.NoError(t, store.Save(ctx, nil))
	notes, found, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, notes)

	// Clear erases the record entirely.
	require.NoError(t, store.Clear(ctx))
	_, found, err = store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	// And is idempotent.
	require.NoError(t, store.Clear(ctx))
}

func TestSaveAfterClearRecreates(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleNotes()))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Save(ctx, sampleNotes()[:2]))

	got, found, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, got, 2)
}
