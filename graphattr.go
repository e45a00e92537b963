package graphattr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/graphattr/attribute"
	"github.com/hupe1980/graphattr/bin"
	"github.com/hupe1980/graphattr/blobstore"
	"github.com/hupe1980/graphattr/graph"
	"github.com/hupe1980/graphattr/histogram"
	"github.com/hupe1980/graphattr/operator"
	"github.com/hupe1980/graphattr/readable"
	"github.com/hupe1980/graphattr/resource"
	"github.com/hupe1980/graphattr/snapshot"
)

// Adjacency selects which neighbours a bin pass reduces over.
type Adjacency uint8

const (
	// VertexTransactions bins vertices by their incident transactions.
	VertexTransactions Adjacency = iota
	// VertexNeighbours bins vertices by their neighbouring vertices.
	VertexNeighbours
	// TransactionEndpoints bins transactions by their two endpoints.
	TransactionEndpoints
)

var adjacencyNames = [...]string{"transactions", "neighbours", "endpoints"}

func (a Adjacency) String() string {
	if int(a) < len(adjacencyNames) {
		return adjacencyNames[a]
	}
	return fmt.Sprintf("Adjacency(%d)", uint8(a))
}

// ParseAdjacency resolves "transactions", "neighbours" or "endpoints".
func ParseAdjacency(s string) (Adjacency, error) {
	for i, name := range adjacencyNames {
		if strings.EqualFold(s, name) {
			return Adjacency(i), nil
		}
	}
	return 0, fmt.Errorf("%w: adjacency %q", ErrInvalidArgument, s)
}

// BinSpec describes one bin pass.
type BinSpec struct {
	Adjacency  Adjacency
	Attribute  int
	Reduction  bin.Reduction
	Projection bin.Projection
}

func (s BinSpec) String() string {
	return fmt.Sprintf("%s(%s)/%s", s.Reduction, s.Projection, s.Adjacency)
}

// Engine ties a graph and its attributes to the operator set, bins and
// snapshots. Like the graph it has a single writer; reads may run
// concurrently with each other.
type Engine struct {
	id         uuid.UUID
	graph      *graph.Graph
	operators  *operator.Operators
	controller *resource.Controller
	opts       options
	logger     *Logger
	metrics    MetricsCollector
}

// New creates an engine over an empty graph.
func New(optFns ...Option) *Engine {
	o := applyOptions(optFns)
	return newEngine(uuid.New(), graph.New(attribute.WithMode(o.mode)), o)
}

func newEngine(id uuid.UUID, g *graph.Graph, o options) *Engine {
	var ctrl *resource.Controller
	if o.resources != nil {
		ctrl = resource.NewController(*o.resources)
	}
	return &Engine{
		id:         id,
		graph:      g,
		operators:  o.operators,
		controller: ctrl,
		opts:       o,
		logger:     o.logger,
		metrics:    o.metricsCollector,
	}
}

// ID identifies the attribute set. It is kept across Save and Open.
func (e *Engine) ID() uuid.UUID { return e.id }

// Graph returns the underlying graph.
func (e *Engine) Graph() *graph.Graph { return e.graph }

// Attributes returns the attribute store of the graph.
func (e *Engine) Attributes() *attribute.Store { return e.graph.Store() }

// Operators returns the operator set used by Evaluate.
func (e *Engine) Operators() *operator.Operators { return e.operators }

// AddAttribute adds an attribute of the named type.
func (e *Engine) AddAttribute(et attribute.ElementType, name, typeName string) (int, error) {
	id, err := e.graph.AddAttribute(et, name, typeName)
	if err != nil {
		return 0, translateError(err)
	}
	e.logger.Debug("attribute added", "attribute_id", id, "attribute", name, "type", typeName, "element_type", et)
	return id, nil
}

// Attribute looks up an attribute by element type and name.
func (e *Engine) Attribute(et attribute.ElementType, name string) (*attribute.Attribute, error) {
	a, ok := e.graph.Store().ByName(et, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s attribute %q", ErrNotFound, et, name)
	}
	return a, nil
}

// Set converts v and stores it for element.
func (e *Engine) Set(ctx context.Context, attr, element int, v any) error {
	return e.recordConversion(ctx, attr, element, e.graph.Set(attr, element, v))
}

// SetString parses s and stores it for element.
func (e *Engine) SetString(ctx context.Context, attr, element int, s string) error {
	return e.recordConversion(ctx, attr, element, e.graph.SetString(attr, element, s))
}

func (e *Engine) recordConversion(ctx context.Context, attr, element int, err error) error {
	typeName := "unknown"
	if d, ok := e.graph.Store().Description(attr); ok {
		typeName = d.Name()
	}
	e.metrics.RecordConversion(typeName, err)
	e.logger.LogConversion(ctx, attr, element, err)
	return translateError(err)
}

// Value returns the attribute value of element as a Readable of the
// attribute's numeric kind, or of long for temporal and textual types.
func (e *Engine) Value(attr, element int) (readable.Any, error) {
	d, ok := e.graph.Store().Description(attr)
	if !ok {
		return nil, fmt.Errorf("%w: attribute %d", ErrNotFound, attr)
	}
	return readable.Attribute(d, element), nil
}

// Evaluate composes op over left and right. The implementation is
// resolved now; the operands are read each time the result is read.
func (e *Engine) Evaluate(op string, left, right readable.Any) (readable.Any, error) {
	start := time.Now()
	reg, ok := e.operators.Lookup(op)
	if !ok {
		err := &ErrUnknownOperation{Name: op}
		e.metrics.RecordEvaluation(op, time.Since(start), err)
		return nil, err
	}
	r, err := readable.Apply(reg, left, right)
	e.metrics.RecordEvaluation(reg.Name(), time.Since(start), err)
	return r, translateError(err)
}

// Calculate evaluates op once and reads the result as float64.
func (e *Engine) Calculate(op string, left, right readable.Any) (float64, error) {
	r, err := e.Evaluate(op, left, right)
	if err != nil {
		return 0, err
	}
	v, err := readable.ReadFloat64(r)
	return v, translateError(err)
}

func (e *Engine) view(a Adjacency) (bin.Graph, []int, error) {
	switch a {
	case VertexTransactions:
		return bin.VertexTransactions(e.graph), e.graph.Vertices(), nil
	case VertexNeighbours:
		return bin.VertexNeighbours(e.graph), e.graph.Vertices(), nil
	case TransactionEndpoints:
		return bin.TransactionEndpoints(e.graph), e.graph.Transactions(), nil
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrInvalidArgument, a)
}

// Bins computes one bin per element of the adjacency's element type, in
// id order. The attribute must belong to the adjacent element type.
func (e *Engine) Bins(ctx context.Context, spec BinSpec) ([]*bin.Bin, []int, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	g, elements, err := e.view(spec.Adjacency)
	if err != nil {
		return nil, nil, err
	}
	a, ok := e.graph.Store().Get(spec.Attribute)
	if !ok {
		return nil, nil, fmt.Errorf("%w: attribute %d", ErrNotFound, spec.Attribute)
	}
	want := attribute.ElementTransaction
	if spec.Adjacency != VertexTransactions {
		want = attribute.ElementVertex
	}
	if a.ElementType != want {
		return nil, nil, fmt.Errorf("%w: %s needs a %s attribute, %q is a %s attribute",
			ErrInvalidArgument, spec.Adjacency, want, a.Name, a.ElementType)
	}
	proto, err := bin.New(spec.Reduction, spec.Projection)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	start := time.Now()
	bins := bin.ComputeKeys(proto, g, spec.Attribute, elements, e.opts.workers)
	d := time.Since(start)
	e.metrics.RecordBinPass(spec.String(), len(elements), d)
	e.logger.WithAttribute(a.ID, a.Name).LogBinPass(ctx, spec.String(), len(elements), d)
	return bins, elements, nil
}

// Histogram computes bins and groups the elements by key. A positive
// width merges keys into ranges of that width.
func (e *Engine) Histogram(ctx context.Context, spec BinSpec, width float64) ([]histogram.Bucket, error) {
	bins, elements, err := e.Bins(ctx, spec)
	if err != nil {
		return nil, err
	}
	return histogram.Ranges(histogram.Build(bins, elements), width), nil
}

// Save writes all attributes below prefix. Graph topology is not part
// of a snapshot.
func (e *Engine) Save(ctx context.Context, store blobstore.Store, prefix string) (*snapshot.Manifest, error) {
	start := time.Now()
	m, err := snapshot.Save(ctx, store, prefix, e.graph.Store(),
		snapshot.WithCodec(e.opts.codec),
		snapshot.WithCompression(e.opts.compression),
		snapshot.WithController(e.controller),
		snapshot.WithID(e.id),
	)
	e.recordSnapshot(ctx, "save", prefix, m, start, err)
	return m, translateError(err)
}

// Open restores the attributes saved below prefix. The caller rebuilds the
// topology with the same vertex and transaction ids.
func Open(ctx context.Context, store blobstore.Store, prefix string, optFns ...Option) (*Engine, error) {
	o := applyOptions(optFns)
	eng := newEngine(uuid.Nil, nil, o)

	start := time.Now()
	attrs, m, err := snapshot.Load(ctx, store, prefix,
		snapshot.WithController(eng.controller),
		snapshot.WithAttributeOptions(attribute.WithMode(o.mode), attribute.WithMaxLength(o.maxColumnLength)),
	)
	eng.recordSnapshot(ctx, "load", prefix, m, start, err)
	if err != nil {
		return nil, translateError(err)
	}
	eng.id = m.ID
	eng.graph = graph.WithStore(attrs)
	return eng, nil
}

func (e *Engine) recordSnapshot(ctx context.Context, op, prefix string, m *snapshot.Manifest, start time.Time, err error) {
	var (
		bytes int64
		n     int
	)
	if m != nil {
		bytes, n = m.TotalSize(), len(m.Attributes)
	}
	e.metrics.RecordSnapshot(op, bytes, time.Since(start), err)
	e.logger.LogSnapshot(ctx, op, prefix, n, bytes, err)
}
