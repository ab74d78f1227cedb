package words

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAndLoadDB(t *testing.T) {
	ctx := context.Background()
	db, err := OpenDB(filepath.Join(t.TempDir(), "data", "words.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db), "migrations must be idempotent")

	lx, err := New([]string{"tool", "flex", "cat", "ibex", "dog"})
	require.NoError(t, err)
	require.NoError(t, lx.Store(ctx, db))

	got, err := LoadDB(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, lx.Lengths(), got.Lengths())
	assert.Equal(t, []string{"tool", "flex", "ibex"}, got.Words(4))
	assert.Equal(t, []string{"cat", "dog"}, got.Words(3))
}

func TestStoreReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	db, err := OpenDB(filepath.Join(t.TempDir(), "words.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Migrate(ctx, db))

	first, err := New([]string{"alpha", "bravo"})
	require.NoError(t, err)
	require.NoError(t, first.Store(ctx, db))

	second, err := New([]string{"cat"})
	require.NoError(t, err)
	require.NoError(t, second.Store(ctx, db))

	got, err := LoadDB(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, got.Lengths())
}

func TestOpenStoredEmpty(t *testing.T) {
	_, err := OpenStored(context.Background(), filepath.Join(t.TempDir(), "empty.db"))
	assert.ErrorIs(t, err, ErrEmptyLexicon)
}
