package minio

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/graphattr/blobstore"
)

func TestKeyMapping(t *testing.T) {
	s := NewStore(nil, "bucket", "graphs/")
	assert.Equal(t, "graphs/daily/manifest.json", s.key("daily/manifest.json"))
	assert.Equal(t, "daily/manifest.json", s.name("graphs/daily/manifest.json"))

	bare := NewStore(nil, "bucket", "")
	assert.Equal(t, "a.col", bare.key("a.col"))
	assert.Equal(t, "a.col", bare.name("a.col"))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	client, err := minio.New("localhost:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	const bucket = "test-graphattr"
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "test.col", data))

	got, err := blobstore.Get(ctx, store, "test.col")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.col")

	require.NoError(t, store.Delete(ctx, "test.col"))
	_, err = store.Open(ctx, "test.col")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
