// Package workerpool defines the external worker-pool capability the
// pipeline package borrows rather than owns, and a production adapter for
// github.com/panjf2000/ants/v2.
package workerpool

import "github.com/panjf2000/ants/v2"

// Pool spawns functions for concurrent execution. The pipeline package
// assumes Submit is safe to call from a single driver goroutine while other
// previously submitted functions are still running, and that pool lifetime
// strictly contains the lifetime of any codec.Instance and any single
// stream operation run against it.
type Pool interface {
	// Submit schedules fn to run, returning an error only if fn could not
	// be scheduled (e.g. the pool is closed or out of resources). Submit
	// does not wait for fn to finish.
	Submit(fn func()) error
}

// AntsPool adapts an *ants.Pool to Pool.
type AntsPool struct {
	pool *ants.Pool
}

// NewAntsPool creates a Pool backed by ants.Pool with room for size
// concurrent workers. size <= 0 uses ants' own default capacity.
func NewAntsPool(size int) (*AntsPool, error) {
	var opts []ants.Option
	p, err := ants.NewPool(size, opts...)
	if err != nil {
		return nil, err
	}

	return &AntsPool{pool: p}, nil
}

// Submit implements Pool.
func (a *AntsPool) Submit(fn func()) error {
	return a.pool.Submit(fn)
}

// Release waits for running workers to finish and tears down the pool.
// Must not be called while a stream operation that uses it is in flight.
func (a *AntsPool) Release() {
	a.pool.Release()
}

// Running reports the number of workers currently running a task.
func (a *AntsPool) Running() int {
	return a.pool.Running()
}
