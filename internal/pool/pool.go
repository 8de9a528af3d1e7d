package pool

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	// MaxWorkers caps the default pool size.
	MaxWorkers = 8

	// SequentialThreshold is the input size below which fan-out is not worth it.
	SequentialThreshold = 100
)

// DefaultWorkers returns min(GOMAXPROCS, MaxWorkers).
func DefaultWorkers() int {
	return min(runtime.GOMAXPROCS(0), MaxWorkers)
}

// Workers normalizes a requested worker count. Non-positive values select DefaultWorkers.
func Workers(requested int) int {
	if requested <= 0 {
		return DefaultWorkers()
	}
	return requested
}

// Range is a half-open index range [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Len returns the number of indexes in the range.
func (r Range) Len() int { return r.Hi - r.Lo }

// Ranges splits [0, n) into at most workers contiguous, balanced ranges.
// The first n%workers ranges are one element longer.
func Ranges(n, workers int) []Range {
	if n <= 0 {
		return nil
	}
	workers = min(max(workers, 1), n)

	ranges := make([]Range, 0, workers)
	chunk, rem := n/workers, n%workers
	lo := 0
	for i := range workers {
		size := chunk
		if i < rem {
			size++
		}
		ranges = append(ranges, Range{Lo: lo, Hi: lo + size})
		lo += size
	}
	return ranges
}

// ForEachRange runs fn over contiguous ranges of [0, n) on up to workers goroutines.
// Inputs smaller than SequentialThreshold, or workers <= 1, run inline.
// It returns the first error reported by fn.
func ForEachRange(n, workers int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	workers = Workers(workers)
	if workers == 1 || n < SequentialThreshold {
		return fn(0, n)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for _, r := range Ranges(n, workers) {
		g.Go(func() error {
			return fn(r.Lo, r.Hi)
		})
	}
	return g.Wait()
}

// ForEach runs fn(i) for i in [0, n) with at most workers in flight.
// It returns the first error; remaining tasks still run to completion.
func ForEach(n, workers int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}

	var g errgroup.Group
	g.SetLimit(Workers(workers))
	for i := range n {
		g.Go(func() error {
			return fn(i)
		})
	}
	return g.Wait()
}

// Limiter bounds the number of tasks running at once across all callers that share it.
// A nil Limiter runs tasks without a bound.
type Limiter struct {
	sem    *semaphore.Weighted
	size   int64
	active atomic.Int64
	peak   atomic.Int64
}

// NewLimiter creates a limiter with the given number of slots.
// Non-positive sizes select DefaultWorkers.
func NewLimiter(size int) *Limiter {
	n := int64(Workers(size))
	return &Limiter{
		sem:  semaphore.NewWeighted(n),
		size: n,
	}
}

// Size returns the number of slots.
func (l *Limiter) Size() int {
	if l == nil {
		return 0
	}
	return int(l.size)
}

// Active returns the number of tasks currently holding a slot.
func (l *Limiter) Active() int {
	if l == nil {
		return 0
	}
	return int(l.active.Load())
}

// Peak returns the highest number of tasks that held a slot at the same time.
func (l *Limiter) Peak() int {
	if l == nil {
		return 0
	}
	return int(l.peak.Load())
}

// Run executes every task, each holding one slot, and waits for all of them.
// It returns the first task error, or the context error if a slot could not be acquired.
func (l *Limiter) Run(ctx context.Context, tasks []func() error) error {
	var g errgroup.Group
	for _, task := range tasks {
		if l == nil {
			g.Go(task)
			continue
		}

		if err := l.sem.Acquire(ctx, 1); err != nil {
			_ = g.Wait()
			return err
		}

		l.enter()
		g.Go(func() error {
			defer l.leave()
			return task()
		})
	}
	return g.Wait()
}

func (l *Limiter) enter() {
	n := l.active.Add(1)
	for {
		p := l.peak.Load()
		if n <= p || l.peak.CompareAndSwap(p, n) {
			return
		}
	}
}

func (l *Limiter) leave() {
	l.active.Add(-1)
	l.sem.Release(1)
}
