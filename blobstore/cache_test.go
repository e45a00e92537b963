package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/graphattr/resource"
)

// countingStore counts Open calls that reach the wrapped store.
type countingStore struct {
	Store
	opens int
}

func (s *countingStore) Open(ctx context.Context, name string) (Blob, error) {
	s.opens++
	return s.Store.Open(ctx, name)
}

func TestCachingStore(t *testing.T) {
	testStoreLifecycle(t, NewCachingStore(NewMemoryStore(), 1<<20, nil))
}

func TestCachingStoreHitsAndInvalidation(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: NewMemoryStore()}
	c := NewCachingStore(inner, 1<<10, nil)

	require.NoError(t, c.Put(ctx, "a", []byte("first")))
	for range 3 {
		got, err := Get(ctx, c, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("first"), got)
	}
	assert.Equal(t, 1, inner.opens)
	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)

	require.NoError(t, c.Put(ctx, "a", []byte("second")))
	got, err := Get(ctx, c, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
	assert.Equal(t, 2, inner.opens)

	require.NoError(t, c.Delete(ctx, "a"))
	_, err = c.Open(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, c.CachedBytes())
}

func TestCachingStoreEviction(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: NewMemoryStore()}
	c := NewCachingStore(inner, 10, nil)

	require.NoError(t, inner.Put(ctx, "a", []byte("aaaa")))
	require.NoError(t, inner.Put(ctx, "b", []byte("bbbb")))
	require.NoError(t, inner.Put(ctx, "c", []byte("cccc")))
	require.NoError(t, inner.Put(ctx, "big", make([]byte, 11)))

	for _, name := range []string{"a", "b", "a", "c"} {
		_, err := Get(ctx, c, name)
		require.NoError(t, err)
	}
	// b was least recently used when c arrived.
	assert.Equal(t, int64(8), c.CachedBytes())
	assert.Equal(t, 3, inner.opens)

	_, err := Get(ctx, c, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, inner.opens)
	_, err = Get(ctx, c, "b")
	require.NoError(t, err)
	assert.Equal(t, 4, inner.opens)

	_, err = Get(ctx, c, "big")
	require.NoError(t, err)
	assert.LessOrEqual(t, c.CachedBytes(), int64(10), "oversized blobs are not cached")
}

func TestCachingStoreChargesController(t *testing.T) {
	ctx := context.Background()
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 6})
	inner := NewMemoryStore()
	c := NewCachingStore(inner, 100, rc)

	require.NoError(t, inner.Put(ctx, "a", []byte("aaaa")))
	require.NoError(t, inner.Put(ctx, "b", []byte("bbbb")))

	_, err := Get(ctx, c, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(4), rc.MemoryUsage())

	// The controller has 2 bytes left, so b is served but not cached.
	_, err = Get(ctx, c, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(4), c.CachedBytes())

	require.NoError(t, c.Delete(ctx, "a"))
	assert.Zero(t, rc.MemoryUsage())
}
