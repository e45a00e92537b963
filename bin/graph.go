package bin

// Values reads projected attribute values of elements.
type Values interface {
	LongValue(attr, element int) int64
	DoubleValue(attr, element int) float64
	StringValue(attr, element int) string
}

// Graph is the read-only adjacency a Bin scans.
type Graph interface {
	Values
	AdjacencyCount(element int) int
	AdjacentElement(element, index int) int
}

// Topology is the vertex/transaction structure of a graph together with its
// attribute values. The adjacency views below turn it into a Graph.
type Topology interface {
	Values
	VertexTransactionCount(vertex int) int
	VertexTransaction(vertex, index int) int
	TransactionEndpoints(transaction int) (source, destination int)
}

type vertexTransactions struct{ Topology }

// VertexTransactions views each vertex as adjacent to its incident
// transactions.
func VertexTransactions(t Topology) Graph { return vertexTransactions{t} }

func (g vertexTransactions) AdjacencyCount(v int) int { return g.VertexTransactionCount(v) }

func (g vertexTransactions) AdjacentElement(v, i int) int { return g.VertexTransaction(v, i) }

type vertexNeighbours struct{ Topology }

// VertexNeighbours views each vertex as adjacent to the far endpoint of each
// incident transaction. A neighbour reached through several transactions
// is visited once per transaction; a loop visits the vertex itself.
func VertexNeighbours(t Topology) Graph { return vertexNeighbours{t} }

func (g vertexNeighbours) AdjacencyCount(v int) int { return g.VertexTransactionCount(v) }

func (g vertexNeighbours) AdjacentElement(v, i int) int {
	src, dst := g.TransactionEndpoints(g.VertexTransaction(v, i))
	if src == v {
		return dst
	}
	return src
}

type transactionEndpoints struct{ Topology }

// TransactionEndpoints views each transaction as adjacent to its source and
// destination vertices, in that order.
func TransactionEndpoints(t Topology) Graph { return transactionEndpoints{t} }

func (g transactionEndpoints) AdjacencyCount(int) int { return 2 }

func (g transactionEndpoints) AdjacentElement(tx, i int) int {
	src, dst := g.TransactionEndpoints(tx)
	if i == 0 {
		return src
	}
	return dst
}
