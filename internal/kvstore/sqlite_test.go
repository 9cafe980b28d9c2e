package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestSQLite(t *testing.T) (*SQLiteStore, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	err = store.RunMigrations("migrations/sqlite")
	require.NoError(t, err)

	cleanup := func() {
		store.Close()
	}

	return store, cleanup
}

func TestSQLiteStore_SetGet(t *testing.T) {
	store, cleanup := setupTestSQLite(t)
	defer cleanup()

	ctx := context.Background()
	err := store.Set(ctx, "users", []byte(`[{"uid":"user_1"}]`))
	require.NoError(t, err)

	value, err := store.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"uid":"user_1"}]`), value)
}

func TestSQLiteStore_Upsert(t *testing.T) {
	store, cleanup := setupTestSQLite(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "key", []byte("old")))
	require.NoError(t, store.Set(ctx, "key", []byte("new")))

	value, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
}

func TestSQLiteStore_GetMissingKey(t *testing.T) {
	store, cleanup := setupTestSQLite(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store, cleanup := setupTestSQLite(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "key", []byte("value")))
	require.NoError(t, store.Delete(ctx, "key"))

	_, err := store.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSQLiteStore_MigrationsAreIdempotent(t *testing.T) {
	store, cleanup := setupTestSQLite(t)
	defer cleanup()

	err := store.RunMigrations("migrations/sqlite")
	assert.NoError(t, err)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.RunMigrations("migrations/sqlite"))
	require.NoError(t, store.Set(ctx, "cart", []byte("persisted")))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), value)
}
