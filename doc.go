// Package graphattr provides typed graph attributes, arithmetic over them
// and aggregation into bins and histograms.
//
// An Engine owns a graph of vertices and transactions. Each attribute is a
// column of one value type (integer, long, float, double, string, date,
// datetime and so on) attached to either vertices or transactions.
//
// # Quick Start
//
//	eng := graphattr.New()
//	g := eng.Graph()
//	a, b := g.AddVertex(), g.AddVertex()
//	tx, _ := g.AddTransaction(a, b)
//
//	weight, _ := eng.AddAttribute(attribute.ElementTransaction, "weight", "double")
//	_ = eng.Set(ctx, weight, tx, 2.5)
//
// # Operations
//
// Operations such as SUM or QUOTIENT are resolved by name and operand
// kinds. Operands are Readables; the result is itself a Readable that is
// recomputed each time it is read:
//
//	w, _ := eng.Value(weight, tx)
//	half, _ := eng.Evaluate("quotient", w, readable.Constant(2.0))
//
// # Bins and Histograms
//
// A bin pass reduces the values of an attribute over the neighbourhood of
// every element:
//
//	buckets, _ := eng.Histogram(ctx, graphattr.BinSpec{
//		Adjacency:  graphattr.VertexTransactions,
//		Attribute:  weight,
//		Reduction:  bin.Max,
//		Projection: bin.Double,
//	}, 0)
//
// # Snapshots
//
// Save writes every attribute column to a blobstore.Store (local disk,
// memory, S3 or MinIO) and commits it with a manifest. Open restores them:
//
//	store := blobstore.NewLocalStore("./data")
//	_, _ = eng.Save(ctx, store, "daily")
//	eng, _ = graphattr.Open(ctx, store, "daily")
//
// Graph topology is not part of a snapshot.
package graphattr
