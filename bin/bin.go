package bin

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/graphattr/operator"
)

// Reduction is the aggregate a Bin applies over adjacent values.
type Reduction uint8

const (
	// Min keeps the smallest value.
	Min Reduction = iota + 1
	// Max keeps the largest value.
	Max
	// Sum adds all values.
	Sum
	// Mean averages all values.
	Mean
	// DistinctCount counts distinct values.
	DistinctCount
)

var reductionNames = map[Reduction]string{
	Min:           "min",
	Max:           "max",
	Sum:           "sum",
	Mean:          "mean",
	DistinctCount: "distinct",
}

func (r Reduction) String() string {
	if s, ok := reductionNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Reduction(%d)", uint8(r))
}

// ParseReduction resolves a reduction name such as "min".
func ParseReduction(s string) (Reduction, error) {
	for r, name := range reductionNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: reduction %q", ErrInvalidBin, s)
}

// Projection selects how attribute values are read.
type Projection uint8

const (
	// Long reads the long projection.
	Long Projection = iota + 1
	// Double reads the double projection.
	Double
	// String reads the canonical text. Only DistinctCount accepts it.
	String
)

func (p Projection) String() string {
	switch p {
	case Long:
		return "long"
	case Double:
		return "double"
	case String:
		return "string"
	}
	return fmt.Sprintf("Projection(%d)", uint8(p))
}

// ParseProjection resolves "long", "double" or "string".
func ParseProjection(s string) (Projection, error) {
	for _, p := range []Projection{Long, Double, String} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: projection %q", ErrInvalidBin, s)
}

// ErrInvalidBin is returned for unsupported reduction/projection pairs.
var ErrInvalidBin = errors.New("invalid bin")

// Key is a derived bin key. Kind is operator.KindLong or operator.KindDouble
// and selects the populated field.
type Key struct {
	Kind   operator.Kind
	Long   int64
	Double float64
}

// Float64 returns the key as a float64 whatever its kind.
func (k Key) Float64() float64 {
	if k.Kind == operator.KindLong {
		return float64(k.Long)
	}
	return k.Double
}

func (k Key) String() string {
	if k.Kind == operator.KindLong {
		return strconv.FormatInt(k.Long, 10)
	}
	return strconv.FormatFloat(k.Double, 'g', -1, 64)
}

// Compare orders keys numerically. NaN sorts before every number.
func (k Key) Compare(o Key) int {
	if k.Kind == operator.KindLong && o.Kind == operator.KindLong {
		return cmp.Compare(k.Long, o.Long)
	}
	return cmp.Compare(k.Float64(), o.Float64())
}

type reducer func(g Graph, attr, element int) Key

// Bin holds the key derived for one element.
type Bin struct {
	reduction  Reduction
	projection Projection
	reduce     reducer
	key        Key
	set        bool
}

// New creates an unset Bin.
func New(r Reduction, p Projection) (*Bin, error) {
	fn, err := reducerFor(r, p)
	if err != nil {
		return nil, err
	}
	return &Bin{reduction: r, projection: p, reduce: fn}, nil
}

// MustNew is New for statically known shapes.
func MustNew(r Reduction, p Projection) *Bin {
	b, err := New(r, p)
	if err != nil {
		panic(err)
	}
	return b
}

// Create returns a fresh, unset Bin of the same reduction and projection.
func (b *Bin) Create() *Bin {
	return &Bin{reduction: b.reduction, projection: b.projection, reduce: b.reduce}
}

// SetKey derives the key of element from the values of attr on its
// adjacent elements.
func (b *Bin) SetKey(g Graph, attr, element int) {
	b.key = b.reduce(g, attr, element)
	b.set = true
}

// Reduction returns the reduction kind.
func (b *Bin) Reduction() Reduction { return b.reduction }

// Projection returns the projection.
func (b *Bin) Projection() Projection { return b.projection }

// Key returns the derived key. It is the zero Key until SetKey is called.
func (b *Bin) Key() Key { return b.key }

// IsSet reports whether SetKey has been called.
func (b *Bin) IsSet() bool { return b.set }

// Compare orders bins by key; unset bins sort first.
func (b *Bin) Compare(o *Bin) int {
	switch {
	case !b.set && !o.set:
		return 0
	case !b.set:
		return -1
	case !o.set:
		return 1
	}
	return b.key.Compare(o.key)
}

// Label is the display text of the key.
func (b *Bin) Label() string {
	if !b.set {
		return "<unset>"
	}
	return b.key.String()
}

func (b *Bin) String() string {
	return fmt.Sprintf("%s(%s)=%s", b.reduction, b.projection, b.Label())
}

func reducerFor(r Reduction, p Projection) (reducer, error) {
	switch {
	case p == String && r == DistinctCount:
		return distinctStrings, nil
	case p == String:
		return nil, fmt.Errorf("%w: %s over %s values", ErrInvalidBin, r, p)
	case p != Long && p != Double:
		return nil, fmt.Errorf("%w: %s", ErrInvalidBin, p)
	}

	switch r {
	case Min:
		if p == Long {
			return foldLong(math.MaxInt64, func(acc, v int64) int64 { return min(acc, v) }), nil
		}
		return foldDouble(math.MaxFloat64, lessNaNSafe), nil
	case Max:
		if p == Long {
			return foldLong(math.MinInt64, func(acc, v int64) int64 { return max(acc, v) }), nil
		}
		return foldDouble(-math.MaxFloat64, greaterNaNSafe), nil
	case Sum:
		if p == Long {
			return foldLong(0, func(acc, v int64) int64 { return acc + v }), nil
		}
		return foldDouble(0, func(acc, v float64) float64 { return acc + v }), nil
	case Mean:
		return mean(p), nil
	case DistinctCount:
		return distinctNumbers(p), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidBin, r)
}

func foldLong(identity int64, fn func(acc, v int64) int64) reducer {
	return func(g Graph, attr, el int) Key {
		acc := identity
		for i, n := 0, g.AdjacencyCount(el); i < n; i++ {
			acc = fn(acc, g.LongValue(attr, g.AdjacentElement(el, i)))
		}
		return Key{Kind: operator.KindLong, Long: acc}
	}
}

func foldDouble(identity float64, fn func(acc, v float64) float64) reducer {
	return func(g Graph, attr, el int) Key {
		acc := identity
		for i, n := 0, g.AdjacencyCount(el); i < n; i++ {
			acc = fn(acc, g.DoubleValue(attr, g.AdjacentElement(el, i)))
		}
		return Key{Kind: operator.KindDouble, Double: acc}
	}
}

// NaN values are skipped by min and max.
func lessNaNSafe(acc, v float64) float64 {
	if v < acc {
		return v
	}
	return acc
}

func greaterNaNSafe(acc, v float64) float64 {
	if v > acc {
		return v
	}
	return acc
}

func mean(p Projection) reducer {
	return func(g Graph, attr, el int) Key {
		n := g.AdjacencyCount(el)
		if n == 0 {
			return Key{Kind: operator.KindDouble}
		}
		var sum float64
		for i := range n {
			adj := g.AdjacentElement(el, i)
			if p == Long {
				sum += float64(g.LongValue(attr, adj))
			} else {
				sum += g.DoubleValue(attr, adj)
			}
		}
		return Key{Kind: operator.KindDouble, Double: sum / float64(n)}
	}
}

func doubleBits(v float64) uint64 {
	switch {
	case v == 0:
		return 0
	case v != v:
		return math.Float64bits(math.NaN())
	}
	return math.Float64bits(v)
}

func distinctNumbers(p Projection) reducer {
	return func(g Graph, attr, el int) Key {
		n := g.AdjacencyCount(el)
		if n == 0 {
			return Key{Kind: operator.KindLong}
		}
		seen := roaring64.New()
		for i := range n {
			adj := g.AdjacentElement(el, i)
			if p == Long {
				seen.Add(uint64(g.LongValue(attr, adj)))
			} else {
				seen.Add(doubleBits(g.DoubleValue(attr, adj)))
			}
		}
		return Key{Kind: operator.KindLong, Long: int64(seen.GetCardinality())}
	}
}

func distinctStrings(g Graph, attr, el int) Key {
	n := g.AdjacencyCount(el)
	seen := make(map[string]struct{}, n)
	for i := range n {
		seen[g.StringValue(attr, g.AdjacentElement(el, i))] = struct{}{}
	}
	return Key{Kind: operator.KindLong, Long: int64(len(seen))}
}
