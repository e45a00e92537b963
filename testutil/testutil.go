package testutil

import (
	"math"
	"math/rand/v2"
	"sort"
	"sync"
)

// RNG is a seeded random source that is safe for concurrent use, so
// parallel subtests draw reproducible sequences.
type RNG struct {
	mu   sync.Mutex
	seed uint64
	r    *rand.Rand
}

// NewRNG creates an RNG with the given seed.
func NewRNG(seed int64) *RNG {
	rng := &RNG{seed: uint64(seed)}
	rng.Reset()
	return rng
}

// Reset rewinds the RNG to its seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.r = rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
}

func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.IntN(n)
}

func (r *RNG) Int64() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Int64()
}

func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Float64()
}

// Zipf draws n values in [0, buckets) where value k has weight 1/(k+1)^s.
func (r *RNG) Zipf(n, buckets int, s float64) []int64 {
	out := make([]int64, n)
	if buckets <= 1 {
		return out
	}

	cdf := make([]float64, buckets)
	var total float64
	for k := range cdf {
		total += 1 / math.Pow(float64(k+1), s)
		cdf[k] = total
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range out {
		k := sort.SearchFloat64s(cdf, r.r.Float64()*total)
		out[i] = int64(min(k, buckets-1))
	}
	return out
}
