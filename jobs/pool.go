// Package jobs runs the fixed set of worker goroutines a simulation step
// fans its internal phases out across. The pool is created once, sized to
// the hardware, and reused for every step; work is scheduled under a
// Barrier and the scheduling goroutine fans back in with Wait before the
// next dependent phase starts. There is no cancellation: once submitted, a
// job runs to completion.
package jobs

import (
	"sync"
	"sync/atomic"

	"github.com/milk9111/rigid/diag"
)

// Pool owns the worker goroutines. Bounded by a fixed maximum of
// concurrently scheduled jobs and of simultaneously held barriers;
// exceeding either is a programming fault.
type Pool struct {
	tasks    chan func()
	workers  int
	maxJobs  int
	inFlight atomic.Int64
	barriers chan struct{}
	done     sync.WaitGroup
	closed   atomic.Bool
}

// NewPool starts a pool with the given worker count. workers below 1 is
// clamped to 1 so the pool stays usable on single-core hosts.
func NewPool(workers, maxJobs, maxBarriers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	diag.Assertf(maxJobs > 0, "maxJobs > 0", "maxJobs %d", maxJobs)
	diag.Assertf(maxBarriers > 0, "maxBarriers > 0", "maxBarriers %d", maxBarriers)

	p := &Pool{
		tasks:    make(chan func(), maxJobs),
		workers:  workers,
		maxJobs:  maxJobs,
		barriers: make(chan struct{}, maxBarriers),
	}
	p.done.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	defer p.done.Done()
	for fn := range p.tasks {
		fn()
	}
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// Barrier acquires one of the pool's barrier slots. Release it when the
// phase it guards is complete.
func (p *Pool) Barrier() *Barrier {
	diag.Assert(!p.closed.Load(), "!pool.closed", "barrier acquired after Close")
	select {
	case p.barriers <- struct{}{}:
	default:
		diag.Assertf(false, "heldBarriers < maxBarriers",
			"all %d barriers in use", cap(p.barriers))
	}
	return &Barrier{pool: p}
}

// Close stops the workers after draining queued jobs. The pool must not be
// used afterwards.
func (p *Pool) Close() {
	diag.Assert(p.closed.CompareAndSwap(false, true), "!pool.closed", "pool closed twice")
	close(p.tasks)
	p.done.Wait()
}

// Barrier tracks a batch of jobs so the scheduler can fan back in before a
// dependent phase. Run may only be called from the goroutine that acquired
// the barrier.
type Barrier struct {
	pool     *Pool
	wg       sync.WaitGroup
	released bool
}

// Run schedules fn on the pool under this barrier.
func (b *Barrier) Run(fn func()) {
	diag.Assert(fn != nil, "fn != nil", "nil job")
	diag.Assert(!b.released, "!barrier.released", "job scheduled on released barrier")
	n := b.pool.inFlight.Add(1)
	diag.Assertf(n <= int64(b.pool.maxJobs), "inFlight <= maxJobs",
		"%d jobs in flight, pool capacity %d", n, b.pool.maxJobs)
	b.wg.Add(1)
	b.pool.tasks <- func() {
		defer b.pool.inFlight.Add(-1)
		defer b.wg.Done()
		fn()
	}
}

// Wait blocks until every job scheduled under this barrier has completed.
func (b *Barrier) Wait() { b.wg.Wait() }

// Release waits for outstanding jobs and returns the barrier slot to the
// pool.
func (b *Barrier) Release() {
	diag.Assert(!b.released, "!barrier.released", "barrier released twice")
	b.wg.Wait()
	b.released = true
	<-b.pool.barriers
}
