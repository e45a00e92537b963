// Package testutil provides testing utilities for graphattr.
//
// This package is intended for use in tests and benchmarks only. It
// provides a seeded RNG and a small in-memory graph that implements the
// adjacency interfaces consumed by the bin package.
//
// # Building a graph
//
//	g := testutil.NewGraph()
//	a, b := g.AddVertex(), g.AddVertex()
//	tx := g.AddTransaction(a, b)
//	weight := g.MustAddAttribute(attribute.ElementTransaction, "weight", "double")
//	g.MustSet(weight, tx, 2.5)
//
// # Random graphs
//
//	g := testutil.RandomGraph(testutil.NewRNG(4711), 100, 500)
package testutil
