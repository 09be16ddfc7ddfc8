package dining

import (
	"sync/atomic"
	"time"
)

// Stats is the final result row for one philosopher.
type Stats struct {
	Philosopher int
	Meals       int64
	TotalWait   time.Duration
}

// statSlot accumulates one philosopher's counters. Only the owning
// goroutine writes to it; all reads go through the atomics, so mid-run
// observers are race-free and the post-join read needs no further
// synchronization.
type statSlot struct {
	meals    atomic.Int64
	waitNano atomic.Int64
}

// record adds one finished meal together with the time spent hungry before
// it. Meals and wait only ever move forward, and only through this method.
func (s *statSlot) record(wait time.Duration) {
	s.meals.Add(1)
	s.waitNano.Add(int64(wait))
}

// load returns the pair as it stands. A concurrent record can land between
// the two loads, so a mid-run reader may see the newer meal count with the
// older wait total; each value on its own is still monotonic.
func (s *statSlot) load() (meals int64, wait time.Duration) {
	return s.meals.Load(), time.Duration(s.waitNano.Load())
}
