// Package snapshot saves an attribute store to a blobstore.Store and
// restores it.
//
// A snapshot lives below a prefix: one blob per column, encoded by the
// persistence package, and a manifest.json that lists them. The manifest
// is written last, so a snapshot is visible only once all of its columns
// are stored.
//
//	m, err := snapshot.Save(ctx, store, "graphs/daily", attrs,
//	    snapshot.WithCompression(persistence.CompressionLZ4),
//	    snapshot.WithController(resource.NewController(resource.Config{MaxWorkers: 4})),
//	)
//
//	attrs, m, err := snapshot.Load(ctx, store, "graphs/daily")
package snapshot
