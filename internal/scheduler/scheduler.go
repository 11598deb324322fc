// Package scheduler distributes embarrassingly-parallel per-file work
// (fingerprinting, verification) across a bounded worker pool. It provides
// no ordering guarantees between tasks; the pool's Wait is the barrier that
// separates the fingerprint phase from verification.
package scheduler

import (
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// DefaultWorkers is the worker count when multi-threading was not requested.
const DefaultWorkers = 1

// Resolve maps a configured worker count to an effective one: 0 requests the
// platform-reported parallelism, anything below that floor becomes a single
// worker.
func Resolve(n int) int {
	if n == 0 {
		return runtime.NumCPU()
	}
	if n < 1 {
		return DefaultWorkers
	}
	return n
}

// Pool is a bounded worker pool. A pool is good for one phase: after Wait
// it must not be reused.
type Pool struct {
	pool    *pool.Pool
	workers int
}

// NewPool creates a pool with the resolved worker count.
func NewPool(workers int) *Pool {
	workers = Resolve(workers)
	return &Pool{
		pool:    pool.New().WithMaxGoroutines(workers),
		workers: workers,
	}
}

// Workers returns the effective worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// Go submits a task; it blocks while all workers are busy, bounding the
// number of in-flight tasks and open file handles.
func (p *Pool) Go(task func()) {
	p.pool.Go(task)
}

// Wait blocks until every submitted task finished. This is the phase
// barrier.
func (p *Pool) Wait() {
	p.pool.Wait()
}
