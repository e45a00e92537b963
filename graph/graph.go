// Package graph is a small mutable in-memory graph whose vertices and
// transactions carry attributes from an attribute.Store. It implements
// bin.Topology, so bins can be computed over it directly.
package graph

import (
	"errors"
	"fmt"

	"github.com/hupe1980/graphattr/attribute"
)

// ErrUnknownElement is returned for vertex, transaction or attribute ids
// that do not exist.
var ErrUnknownElement = errors.New("unknown graph element")

// Graph holds dense vertex and transaction ids starting at zero.
// Like the attribute store it has a single writer.
type Graph struct {
	store        *attribute.Store
	incident     [][]int
	sources      []int
	destinations []int
}

// New creates an empty graph whose attributes use opts.
func New(opts ...attribute.Option) *Graph {
	return &Graph{store: attribute.NewStore(opts...)}
}

// WithStore creates an empty graph over an existing attribute store, such
// as one restored from a snapshot.
func WithStore(s *attribute.Store) *Graph {
	return &Graph{store: s}
}

// Store returns the attribute store of the graph.
func (g *Graph) Store() *attribute.Store { return g.store }

// AddVertex adds a vertex and returns its id.
func (g *Graph) AddVertex() int {
	g.incident = append(g.incident, nil)
	return len(g.incident) - 1
}

// AddTransaction adds a transaction from src to dst and returns its id.
// A loop (src == dst) is incident to its vertex once.
func (g *Graph) AddTransaction(src, dst int) (int, error) {
	if !g.hasVertex(src) || !g.hasVertex(dst) {
		return 0, fmt.Errorf("%w: transaction %d -> %d references a missing vertex", ErrUnknownElement, src, dst)
	}
	tx := len(g.sources)
	g.sources = append(g.sources, src)
	g.destinations = append(g.destinations, dst)
	g.incident[src] = append(g.incident[src], tx)
	if dst != src {
		g.incident[dst] = append(g.incident[dst], tx)
	}
	return tx, nil
}

func (g *Graph) hasVertex(v int) bool { return v >= 0 && v < len(g.incident) }

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.incident) }

// TransactionCount returns the number of transactions.
func (g *Graph) TransactionCount() int { return len(g.sources) }

// Vertices returns all vertex ids.
func (g *Graph) Vertices() []int { return ids(len(g.incident)) }

// Transactions returns all transaction ids.
func (g *Graph) Transactions() []int { return ids(len(g.sources)) }

// Elements returns all ids of the given element type.
func (g *Graph) Elements(et attribute.ElementType) []int {
	if et == attribute.ElementTransaction {
		return g.Transactions()
	}
	return g.Vertices()
}

func ids(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// AddAttribute adds an attribute of the named type.
func (g *Graph) AddAttribute(et attribute.ElementType, name, typeName string) (int, error) {
	return g.store.Add(et, name, typeName)
}

// Set converts v and stores it for element.
func (g *Graph) Set(attr, element int, v any) error {
	d, ok := g.store.Description(attr)
	if !ok {
		return fmt.Errorf("%w: attribute %d", ErrUnknownElement, attr)
	}
	return d.SetObject(element, v)
}

// SetString parses s and stores it for element.
func (g *Graph) SetString(attr, element int, s string) error {
	d, ok := g.store.Description(attr)
	if !ok {
		return fmt.Errorf("%w: attribute %d", ErrUnknownElement, attr)
	}
	return d.SetString(element, s)
}

// The value accessors panic for unknown attributes, as bins only run over
// attributes resolved beforehand.
func (g *Graph) description(attr int) attribute.Description {
	d, ok := g.store.Description(attr)
	if !ok {
		panic(fmt.Sprintf("graph: unknown attribute %d", attr))
	}
	return d
}

// LongValue implements bin.Values.
func (g *Graph) LongValue(attr, element int) int64 {
	return g.description(attr).GetLong(element)
}

// DoubleValue implements bin.Values.
func (g *Graph) DoubleValue(attr, element int) float64 {
	return g.description(attr).GetDouble(element)
}

// StringValue implements bin.Values.
func (g *Graph) StringValue(attr, element int) string {
	return g.description(attr).GetString(element)
}

// VertexTransactionCount implements bin.Topology.
func (g *Graph) VertexTransactionCount(v int) int { return len(g.incident[v]) }

// VertexTransaction implements bin.Topology.
func (g *Graph) VertexTransaction(v, i int) int { return g.incident[v][i] }

// TransactionEndpoints implements bin.Topology.
func (g *Graph) TransactionEndpoints(tx int) (int, int) {
	return g.sources[tx], g.destinations[tx]
}
