package dining

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Forks grants and revokes exclusive use of the numbered forks on the
// table. Implementations must guarantee mutual exclusion per fork and must
// honor context cancellation while a caller is blocked.
type Forks interface {
	// Acquire blocks until the fork is free or ctx is done. It returns
	// ctx.Err() when cancelled, in which case the fork was not taken.
	Acquire(ctx context.Context, fork int) error

	// Release frees a fork taken by a successful Acquire.
	Release(fork int)

	// Held reports whether a fork is currently taken. It is a glance for
	// observers and may be stale by the time the caller looks at it.
	Held(fork int) bool

	// Len returns the number of forks on the table.
	Len() int
}

// ForkSet is the table's ring of forks. Each fork is a binary semaphore;
// a philosopher reaching for a held fork queues behind the current holder
// and is served in arrival order.
type ForkSet struct {
	sems []*semaphore.Weighted
	held []atomic.Bool
}

// NewForkSet creates n free forks.
func NewForkSet(n int) *ForkSet {
	fs := &ForkSet{
		sems: make([]*semaphore.Weighted, n),
		held: make([]atomic.Bool, n),
	}
	for i := range fs.sems {
		fs.sems[i] = semaphore.NewWeighted(1)
	}
	return fs
}

// Acquire implements Forks.
func (fs *ForkSet) Acquire(ctx context.Context, fork int) error {
	if err := fs.sems[fork].Acquire(ctx, 1); err != nil {
		return err
	}
	fs.held[fork].Store(true)
	return nil
}

// Release implements Forks.
func (fs *ForkSet) Release(fork int) {
	fs.held[fork].Store(false)
	fs.sems[fork].Release(1)
}

// Held implements Forks.
func (fs *ForkSet) Held(fork int) bool {
	return fs.held[fork].Load()
}

// Len implements Forks.
func (fs *ForkSet) Len() int {
	return len(fs.sems)
}
