// Package histogram groups elements by their bin keys.
//
// It is the consumer side of package bin: renderers receive a sorted list
// of buckets, each holding the element ids that share one key (or one key
// range) as a roaring bitmap.
package histogram

import (
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/graphattr/bin"
	"github.com/hupe1980/graphattr/operator"
)

// Bucket is one histogram bar.
type Bucket struct {
	// Key is the shared key, or the lower bound of a range bucket.
	Key bin.Key
	// Upper is the exclusive upper bound of a range bucket; zero for exact
	// buckets.
	Upper    float64
	Label    string
	Unset    bool
	Elements *roaring.Bitmap
}

// Count returns the number of elements in the bucket.
func (b Bucket) Count() uint64 { return b.Elements.GetCardinality() }

type bucketKey struct {
	kind  operator.Kind
	bits  uint64
	unset bool
}

func keyOf(k bin.Key) bucketKey {
	if k.Kind == operator.KindLong {
		return bucketKey{kind: k.Kind, bits: uint64(k.Long)}
	}
	// Every NaN shares one bucket and -0 joins +0.
	switch {
	case k.Double != k.Double:
		return bucketKey{kind: k.Kind, bits: math.Float64bits(math.NaN())}
	case k.Double == 0:
		return bucketKey{kind: k.Kind}
	}
	return bucketKey{kind: k.Kind, bits: math.Float64bits(k.Double)}
}

// Histogram accumulates (bin, element) pairs. It is not safe for concurrent
// use.
type Histogram struct {
	index   map[bucketKey]int
	buckets []Bucket
	total   uint64
}

// New creates an empty histogram.
func New() *Histogram {
	return &Histogram{index: make(map[bucketKey]int)}
}

// Add records element under the key of b.
func (h *Histogram) Add(b *bin.Bin, element int) {
	k := bucketKey{unset: true}
	if b.IsSet() {
		k = keyOf(b.Key())
	}
	i, ok := h.index[k]
	if !ok {
		i = len(h.buckets)
		h.index[k] = i
		h.buckets = append(h.buckets, Bucket{
			Key:      b.Key(),
			Label:    b.Label(),
			Unset:    !b.IsSet(),
			Elements: roaring.New(),
		})
	}
	h.buckets[i].Elements.Add(uint32(element))
	h.total++
}

// Total returns the number of recorded elements.
func (h *Histogram) Total() uint64 { return h.total }

// Buckets returns the buckets ordered by key, unset first.
func (h *Histogram) Buckets() []Bucket {
	out := slices.Clone(h.buckets)
	slices.SortStableFunc(out, compareBuckets)
	return out
}

func compareBuckets(a, b Bucket) int {
	switch {
	case a.Unset && b.Unset:
		return 0
	case a.Unset:
		return -1
	case b.Unset:
		return 1
	}
	return a.Key.Compare(b.Key)
}

// Build is a shortcut for adding bins[i] under elements[i].
func Build(bins []*bin.Bin, elements []int) []Bucket {
	h := New()
	for i, b := range bins {
		h.Add(b, elements[i])
	}
	return h.Buckets()
}

// Ranges merges exact buckets into ranges [k*width, (k+1)*width). Unset and
// NaN buckets are kept as they are. A non-positive width returns the input.
func Ranges(buckets []Bucket, width float64) []Bucket {
	if width <= 0 {
		return buckets
	}
	var out []Bucket
	index := make(map[float64]int)
	for _, b := range buckets {
		v := b.Key.Float64()
		if b.Unset || v != v {
			out = append(out, Bucket{Key: b.Key, Label: b.Label, Unset: b.Unset, Elements: b.Elements.Clone()})
			continue
		}
		lo := math.Floor(v/width) * width
		i, ok := index[lo]
		if !ok {
			i = len(out)
			index[lo] = i
			key := bin.Key{Kind: operator.KindDouble, Double: lo}
			out = append(out, Bucket{
				Key:      key,
				Upper:    lo + width,
				Label:    "[" + key.String() + ", " + bin.Key{Kind: operator.KindDouble, Double: lo + width}.String() + ")",
				Elements: roaring.New(),
			})
		}
		out[i].Elements.Or(b.Elements)
	}
	slices.SortStableFunc(out, compareBuckets)
	return out
}
