package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Set(ctx, "cart", []byte(`[{"productId":1}]`))
	require.NoError(t, err)

	value, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"productId":1}]`), value)
}

func TestMemoryStore_GetMissingKey(t *testing.T) {
	store := NewMemoryStore()

	value, err := store.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.Nil(t, value)
}

func TestMemoryStore_Overwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", []byte("old")))
	require.NoError(t, store.Set(ctx, "key", []byte("new")))

	value, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", []byte("value")))
	require.NoError(t, store.Delete(ctx, "key"))

	_, err := store.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStore_DeleteMissingKeyIsNoop(t *testing.T) {
	store := NewMemoryStore()

	err := store.Delete(context.Background(), "nonexistent")
	assert.NoError(t, err)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", []byte("abc")))

	value, err := store.Get(ctx, "key")
	require.NoError(t, err)
	value[0] = 'x'

	again, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestJSONHelpers_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	err := SetJSON(ctx, store, "record", record{Name: "laptop", Count: 3})
	require.NoError(t, err)

	var got record
	err = GetJSON(ctx, store, "record", &got)
	require.NoError(t, err)
	assert.Equal(t, record{Name: "laptop", Count: 3}, got)
}

func TestGetJSON_MissingKeyPassesThrough(t *testing.T) {
	store := NewMemoryStore()

	var out map[string]string
	err := GetJSON(context.Background(), store, "nonexistent", &out)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
