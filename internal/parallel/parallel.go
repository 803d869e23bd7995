// Package parallel provides the fan-out helpers used for per-group
// summaries, permutation batches and correlation matrices.
package parallel

import (
	"runtime"
	"sync"
)

// NumWorkers returns the default number of workers for parallel operations.
func NumWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Workers resolves a configured worker count; n <= 0 means NumWorkers.
func Workers(n int) int {
	if n <= 0 {
		return NumWorkers()
	}
	return n
}

// chunks splits [start, end) into at most n contiguous ranges and calls fn
// for each on its own goroutine.
func chunks(start, end, n int, fn func(s, e int)) {
	total := end - start
	if total <= 0 {
		return
	}
	size := (total + n - 1) / n

	var wg sync.WaitGroup
	for s := start; s < end; s += size {
		e := min(s+size, end)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(s, e)
		}()
	}
	wg.Wait()
}

// ParallelFor executes fn for indices [start, end) using n workers.
func ParallelFor(start, end, n int, fn func(i int)) {
	if n <= 1 {
		for i := start; i < end; i++ {
			fn(i)
		}
		return
	}
	chunks(start, end, n, func(s, e int) {
		for i := s; i < e; i++ {
			fn(i)
		}
	})
}

// ParallelMap applies fn to each index in [start, end) and collects the
// results in index order.
func ParallelMap[T any](start, end, n int, fn func(i int) T) []T {
	results := make([]T, max(end-start, 0))
	ParallelFor(start, end, n, func(i int) {
		results[i-start] = fn(i)
	})
	return results
}
