package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	_, ok := store.Get(ctx, "/api/v1/courses")
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "/api/v1/courses", []byte(`{"success":true}`), time.Minute))

	v, ok := store.Get(ctx, "/api/v1/courses")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"success":true}`), v)

	require.NoError(t, store.Delete(ctx, "/api/v1/courses"))
	_, ok = store.Get(ctx, "/api/v1/courses")
	assert.False(t, ok)
}

func TestMemoryStoreDeletePrefix(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "/api/v1/courses", []byte("a"), time.Minute))
	require.NoError(t, store.Set(ctx, "/api/v1/courses?page=2", []byte("b"), time.Minute))
	require.NoError(t, store.Set(ctx, "/api/v1/courses/7", []byte("c"), time.Minute))
	require.NoError(t, store.Set(ctx, "/api/v1/jobs", []byte("d"), time.Minute))

	require.NoError(t, store.DeletePrefix(ctx, "/api/v1/courses"))

	for _, key := range []string{"/api/v1/courses", "/api/v1/courses?page=2", "/api/v1/courses/7"} {
		_, ok := store.Get(ctx, key)
		assert.False(t, ok, key)
	}

	// Other collections are untouched.
	_, ok := store.Get(ctx, "/api/v1/jobs")
	assert.True(t, ok)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 10*time.Millisecond))

	time.Sleep(25 * time.Millisecond)
	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStoreFlush(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, store.Flush(ctx))

	_, ok := store.Get(ctx, "a")
	assert.False(t, ok)
	_, ok = store.Get(ctx, "b")
	assert.False(t, ok)
}
