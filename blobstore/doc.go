// Package blobstore provides storage backends for attribute snapshots.
//
// A Store holds immutable, named blobs. Snapshots write one blob per
// attribute column plus a manifest, so backends only need whole-object
// writes and ranged reads.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and scratch snapshots
//   - LocalStore: files below a root directory, read through mmap
//   - s3.Store: Amazon S3 with ranged GETs and multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Blobs that can hand out their bytes without copying implement Mappable;
// ReadAll uses it when present.
package blobstore
