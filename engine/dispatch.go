package engine

import (
	"runtime"
	"sync"
)

// minChunk is the smallest index range worth a goroutine
const minChunk = 64

// Dispatcher runs data-parallel passes over an index range
// Each worker owns a contiguous chunk, so kernels writing only slot i never race
type Dispatcher struct {
	workers int
}

// NewDispatcher creates a dispatcher, workers <= 0 uses GOMAXPROCS
func NewDispatcher(workers int) *Dispatcher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Dispatcher{workers: workers}
}

func (d *Dispatcher) Workers() int {
	return d.workers
}

// For calls fn(i) for every i in [0, n) and returns when all calls are done
// A panic in any worker is re-raised on the caller after the barrier
func (d *Dispatcher) For(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	chunks := d.workers
	if max := (n + minChunk - 1) / minChunk; chunks > max {
		chunks = max
	}
	if chunks <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var (
		wg        sync.WaitGroup
		panicOnce sync.Once
		panicVal  any
	)

	size := (n + chunks - 1) / chunks
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() { panicVal = r })
				}
			}()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(lo, hi)
	}
	wg.Wait()

	if panicVal != nil {
		panic(panicVal)
	}
}
