package bin

import (
	"runtime"
	"sync"
)

// minChunk is the smallest number of elements handed to one goroutine.
const minChunk = 256

// ComputeKeys derives one bin per element, in element order. Each bin is
// created from proto. Elements are split into at most workers chunks, one
// goroutine each; workers <= 0 uses GOMAXPROCS.
//
// The elements must be distinct and the graph must not be mutated while
// ComputeKeys runs.
func ComputeKeys(proto *Bin, g Graph, attr int, elements []int, workers int) []*Bin {
	bins := make([]*Bin, len(elements))
	if len(elements) == 0 {
		return bins
	}
	chunk := chunkSize(len(elements), workers)

	var wg sync.WaitGroup
	for start := 0; start < len(elements); start += chunk {
		end := min(start+chunk, len(elements))
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				b := proto.Create()
				b.SetKey(g, attr, elements[i])
				bins[i] = b
			}
		}()
	}
	wg.Wait()
	return bins
}

// chunkSize is at least ceil(n/workers), so n elements never need more than
// workers chunks.
func chunkSize(n, workers int) int {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return max(minChunk, (n+workers-1)/workers)
}
