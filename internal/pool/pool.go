// SPDX-License-Identifier: EPL-2.0

// Package pool runs indexed work on a bounded set of goroutines.
package pool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Size resolves a configured worker count. Zero or negative means one
// worker per available CPU.
func Size(workers int) int {
	if workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return workers
}

// Run calls fn once for every index in [0, n) using at most workers
// goroutines and returns when all calls have finished. Indexes are handed
// out in ascending order. With a single worker everything runs on the
// calling goroutine.
func Run(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}

	workers = min(Size(workers), n)
	if workers == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var (
		next atomic.Int64
		wg   sync.WaitGroup
	)

	for range workers {
		wg.Go(func() {
			for {
				i := int(next.Add(1) - 1)
				if i >= n {
					return
				}
				fn(i)
			}
		})
	}

	wg.Wait()
}

// FirstError returns the lowest-indexed non-nil error in errs together with
// its index, or (-1, nil) when every entry is nil.
func FirstError(errs []error) (int, error) {
	for i, err := range errs {
		if err != nil {
			return i, err
		}
	}
	return -1, nil
}
