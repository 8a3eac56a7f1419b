package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileTestStore(t *testing.T) Store {
	t.Helper()

	store, err := NewFileStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestFileStore_GetMissingKey(t *testing.T) {
	store := newFileTestStore(t)

	value, err := store.Get(context.Background(), "cart")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestFileStore_SetAndGet(t *testing.T) {
	store := newFileTestStore(t)
	ctx := context.Background()

	doc := []byte(`[{"id":"1","name":"Classic Burger","quantity":2}]`)
	require.NoError(t, store.Set(ctx, "cart", doc))

	got, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestFileStore_Overwrite(t *testing.T) {
	store := newFileTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "favorites", []byte(`["a"]`)))
	require.NoError(t, store.Set(ctx, "favorites", []byte(`["a","b"]`)))

	got, err := store.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["a","b"]`), got)
}

func TestFileStore_KeysAreIndependent(t *testing.T) {
	store := newFileTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart", []byte(`["cart"]`)))
	require.NoError(t, store.Set(ctx, "orderHistory", []byte(`["history"]`)))

	cart, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	history, err := store.Get(ctx, "orderHistory")
	require.NoError(t, err)

	assert.Equal(t, []byte(`["cart"]`), cart)
	assert.Equal(t, []byte(`["history"]`), history)
}

func TestFileStore_Delete(t *testing.T) {
	store := newFileTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart", []byte(`[]`)))
	require.NoError(t, store.Delete(ctx, "cart"))

	got, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting an absent key is a no-op.
	assert.NoError(t, store.Delete(ctx, "cart"))
}

func TestFileStore_DurableAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewFileStore(dir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "orderHistory", []byte(`[{"id":"abc"}]`)))
	require.NoError(t, first.Close())

	second, err := NewFileStore(dir, zerolog.Nop())
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "orderHistory")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"abc"}]`), got)
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(ctx, "cart", []byte(`[]`)))

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)

	_, err = os.Stat(filepath.Join(dir, "cart.json"))
	assert.NoError(t, err)
}

func TestFileStore_CancelledContext(t *testing.T) {
	store := newFileTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, "cart")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Set(ctx, "cart", []byte(`[]`)), context.Canceled)
}
