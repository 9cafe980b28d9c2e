package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestPostgres(t *testing.T) (*PostgresStore, func()) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	creds := &Credentials{
		Host:              host,
		Port:              port.Int(),
		User:              "testuser",
		Password:          "testpass",
		DBName:            "testdb",
		MigrationsDirPath: "./migrations/postgres",
	}

	store, err := NewPostgresStore(creds)
	require.NoError(t, err)

	err = store.RunMigrations(creds)
	require.NoError(t, err)

	cleanup := func() {
		store.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return store, cleanup
}

func TestPostgresStore_SetGet(t *testing.T) {
	store, cleanup := setupTestPostgres(t)
	defer cleanup()

	ctx := context.Background()
	err := store.Set(ctx, "orders_user_1", []byte(`[{"id":"ORD-1"}]`))
	require.NoError(t, err)

	value, err := store.Get(ctx, "orders_user_1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"ORD-1"}]`), value)
}

func TestPostgresStore_Upsert(t *testing.T) {
	store, cleanup := setupTestPostgres(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "key", []byte("old")))
	require.NoError(t, store.Set(ctx, "key", []byte("new")))

	value, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
}

func TestPostgresStore_GetMissingKey(t *testing.T) {
	store, cleanup := setupTestPostgres(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestPostgresStore_Delete(t *testing.T) {
	store, cleanup := setupTestPostgres(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "key", []byte("value")))
	require.NoError(t, store.Delete(ctx, "key"))

	_, err := store.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
