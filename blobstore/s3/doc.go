// Package s3 stores attribute snapshots in Amazon S3.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("graphs/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	m, err := snapshot.Save(ctx, store, "daily", attrs)
//
// Reads are ranged GETs. Blobs of at least one part are written with the
// multipart uploader, smaller ones with a single checksummed PutObject.
package s3
