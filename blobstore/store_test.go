package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreLifecycle(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	data := []byte("hello world, this is a column blob")
	require.NoError(t, store.Put(ctx, "snap/attr-001.col", data))
	require.NoError(t, store.Put(ctx, "snap/attr-002.col", nil))
	require.NoError(t, store.Put(ctx, "other/manifest.json", []byte("{}")))

	blob, err := store.Open(ctx, "snap/attr-001.col")
	require.NoError(t, err)
	defer func() { _ = blob.Close() }()
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	assert.Equal(t, "world", string(buf))

	// Short read at the tail.
	buf = make([]byte, 10)
	n, err = blob.ReadAt(ctx, buf, int64(len(data))-3)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 3, n)

	_, err = blob.ReadAt(ctx, buf, int64(len(data))+1)
	assert.ErrorIs(t, err, io.EOF)

	all, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, data, all)

	empty, err := Get(ctx, store, "snap/attr-002.col")
	require.NoError(t, err)
	assert.Empty(t, empty)

	names, err := store.List(ctx, "snap/")
	require.NoError(t, err)
	assert.Equal(t, []string{"snap/attr-001.col", "snap/attr-002.col"}, names)

	// Put replaces.
	require.NoError(t, store.Put(ctx, "snap/attr-002.col", []byte("v2")))
	got, err := Get(ctx, store, "snap/attr-002.col")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))

	require.NoError(t, store.Delete(ctx, "snap/attr-001.col"))
	require.NoError(t, store.Delete(ctx, "snap/attr-001.col"), "deleting twice is fine")

	_, err = store.Open(ctx, "snap/attr-001.col")
	assert.ErrorIs(t, err, ErrNotFound)

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"other/manifest.json", "snap/attr-002.col"}, names)
}

func TestMemoryStore(t *testing.T) {
	testStoreLifecycle(t, NewMemoryStore())
}

func TestMemoryStoreCopiesInput(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	data := []byte("abc")
	require.NoError(t, s.Put(ctx, "x", data))
	data[0] = 'z'

	got, err := Get(ctx, s, "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'q'
	again, err := Get(ctx, s, "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again), "ReadAll hands out a copy")
}

func TestLocalStore(t *testing.T) {
	testStoreLifecycle(t, NewLocalStore(t.TempDir()))
}

func TestLocalStoreLayout(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := NewLocalStore(root)

	require.NoError(t, s.Put(ctx, "a/b.col", []byte("x")))
	_, err := os.Stat(filepath.Join(root, "a", "b.col"))
	require.NoError(t, err)

	// Leftovers of an interrupted write are not listed.
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "c.col.tmp-123"), []byte("partial"), 0o644))
	names, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b.col"}, names)

	for _, bad := range []string{"", "..", "../escape", "/abs"} {
		assert.Error(t, s.Put(ctx, bad, nil), bad)
	}

	empty := NewLocalStore(filepath.Join(root, "missing"))
	names, err = empty.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalBlobClose(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(t.TempDir())
	require.NoError(t, s.Put(ctx, "x", []byte("payload")))

	b, err := s.Open(ctx, "x")
	require.NoError(t, err)
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, err = b.ReadAt(ctx, make([]byte, 1), 0)
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, s := range []Store{NewMemoryStore(), NewLocalStore(t.TempDir())} {
		assert.ErrorIs(t, s.Put(ctx, "x", nil), context.Canceled)
		_, err := s.Open(ctx, "x")
		assert.ErrorIs(t, err, context.Canceled)
	}
}
