// Package bin derives per-element aggregate keys for histogram analytics.
//
// A Bin reduces the projected attribute values of an element's adjacent
// elements to one key. Its reduction (min, max, sum, mean, distinct count)
// and projection (long, double, string) are fixed at construction, and
// Create returns a fresh Bin of the same shape so callers can populate many
// bins in a loop without knowing the concrete reduction.
//
// Empty adjacency never fails. Each reduction yields a fixed identity:
//
//	Min            math.MaxInt64 / math.MaxFloat64
//	Max            math.MinInt64 / -math.MaxFloat64
//	Sum, Mean      0
//	DistinctCount  0
//
// SetKey only reads graph state, so keys for distinct elements can be
// computed in parallel (see ComputeKeys).
package bin
