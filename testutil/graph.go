package testutil

import (
	"github.com/hupe1980/graphattr/attribute"
	"github.com/hupe1980/graphattr/graph"
)

// Graph is a graph.Graph with panicking helpers for test setup.
type Graph struct {
	*graph.Graph
}

// NewGraph creates an empty graph whose attributes use opts.
func NewGraph(opts ...attribute.Option) *Graph {
	return &Graph{Graph: graph.New(opts...)}
}

// AddTransaction adds a transaction and panics if an endpoint is missing.
func (g *Graph) AddTransaction(src, dst int) int {
	tx, err := g.Graph.AddTransaction(src, dst)
	if err != nil {
		panic(err)
	}
	return tx
}

// MustAddAttribute adds an attribute and panics on error.
func (g *Graph) MustAddAttribute(et attribute.ElementType, name, typeName string) int {
	id, err := g.AddAttribute(et, name, typeName)
	if err != nil {
		panic(err)
	}
	return id
}

// MustSet is Set that panics on error.
func (g *Graph) MustSet(attr, element int, v any) {
	if err := g.Set(attr, element, v); err != nil {
		panic(err)
	}
}

// RandomGraph builds a graph with uniformly random transactions and two
// attributes: a Zipf-distributed vertex "group" (long) and a transaction
// "weight" (double) in [0, 100).
func RandomGraph(rng *RNG, vertices, transactions int) *Graph {
	g := NewGraph()
	for range vertices {
		g.AddVertex()
	}
	group := g.MustAddAttribute(attribute.ElementVertex, "group", "long")
	weight := g.MustAddAttribute(attribute.ElementTransaction, "weight", "double")

	for v, b := range rng.Zipf(vertices, 8, 1.2) {
		g.MustSet(group, v, b)
	}
	if vertices == 0 {
		return g
	}
	for range transactions {
		tx := g.AddTransaction(rng.Intn(vertices), rng.Intn(vertices))
		g.MustSet(weight, tx, rng.Float64()*100)
	}
	return g
}
