package dining

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vk/dinersim/internal/ctxlog"
)

// State is the observable phase of a philosopher's cycle.
type State int32

const (
	StateThinking State = iota
	StateHungry
	StateEating
	StateStopped
)

// String returns the lowercase name used in logs and snapshots.
func (s State) String() string {
	switch s {
	case StateThinking:
		return "thinking"
	case StateHungry:
		return "hungry"
	case StateEating:
		return "eating"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// philosopher is one seat at the table. The goroutine running it owns rng
// and slot exclusively; state is atomic so observers can watch the cycle
// from outside.
type philosopher struct {
	id     int
	first  int // fork picked up first under the policy
	second int // fork picked up second
	think  Interval
	eat    Interval
	slot   *statSlot
	rng    *rand.Rand
	state  atomic.Int32
}

// run is the philosopher's goroutine body. It cycles thinking, hungry,
// eating until ctx is done. On every exit path it releases exactly the
// forks it holds, and it never touches another seat's counters.
func (p *philosopher) run(ctx context.Context, forks Forks, wg *sync.WaitGroup) {
	defer wg.Done()
	defer p.state.Store(int32(StateStopped))

	logger := ctxlog.FromContext(ctx).With("philosopher", p.id)
	logger.Debug("Philosopher seated.", "firstFork", p.first, "secondFork", p.second)

	for ctx.Err() == nil {
		p.state.Store(int32(StateThinking))
		if !sleep(ctx, randomMs(p.rng, p.think.Min, p.think.Max)) {
			break
		}

		p.state.Store(int32(StateHungry))
		waitStart := time.Now()

		if err := forks.Acquire(ctx, p.first); err != nil {
			break
		}
		if err := forks.Acquire(ctx, p.second); err != nil {
			forks.Release(p.first)
			break
		}

		// Both forks in hand: the meal counts even if the stop signal
		// arrives while chewing.
		p.slot.record(time.Since(waitStart))
		p.state.Store(int32(StateEating))

		sleep(ctx, randomMs(p.rng, p.eat.Min, p.eat.Max))
		forks.Release(p.second)
		forks.Release(p.first)
	}

	logger.Debug("Philosopher left the table.")
}

// sleep pauses for d but wakes early when ctx is cancelled. It reports
// whether the full duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
