package dining

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig is the small, fast configuration the run tests start from.
func validConfig(n int) Config {
	return Config{
		Philosophers: n,
		Duration:     300 * time.Millisecond,
		Think:        Interval{Min: 1, Max: 3},
		Eat:          Interval{Min: 1, Max: 3},
		Variant:      VariantSymmetry,
		Seed:         1,
	}
}

func TestNewTableRejectsInvalidConfig(t *testing.T) {
	t.Run("too few philosophers", func(t *testing.T) {
		cfg := validConfig(5)
		cfg.Philosophers = 1
		table, err := NewTable(cfg)
		assert.Nil(t, table)
		assert.ErrorContains(t, err, "at least 2")
	})

	t.Run("negative duration", func(t *testing.T) {
		cfg := validConfig(5)
		cfg.Duration = -time.Second
		_, err := NewTable(cfg)
		assert.ErrorContains(t, err, "must not be negative")
	})

	t.Run("negative think minimum", func(t *testing.T) {
		cfg := validConfig(5)
		cfg.Think = Interval{Min: -1, Max: 3}
		_, err := NewTable(cfg)
		assert.ErrorContains(t, err, "think interval")
	})

	t.Run("think maximum below minimum", func(t *testing.T) {
		cfg := validConfig(5)
		cfg.Think = Interval{Min: 10, Max: 5}
		_, err := NewTable(cfg)
		assert.ErrorContains(t, err, "max must not be below min")
	})

	t.Run("eat maximum below minimum", func(t *testing.T) {
		cfg := validConfig(5)
		cfg.Eat = Interval{Min: 10, Max: 5}
		_, err := NewTable(cfg)
		assert.ErrorContains(t, err, "eat interval")
	})

	t.Run("unknown variant", func(t *testing.T) {
		cfg := validConfig(5)
		cfg.Variant = Variant("ordered")
		table, err := NewTable(cfg)
		assert.Nil(t, table)
		assert.ErrorIs(t, err, ErrUnsupportedVariant)
		assert.ErrorContains(t, err, "ordered")
	})

	t.Run("missing variant", func(t *testing.T) {
		cfg := validConfig(5)
		cfg.Variant = ""
		_, err := NewTable(cfg)
		assert.ErrorIs(t, err, ErrUnsupportedVariant)
	})
}

func TestTableServesMealsWithoutDeadlock(t *testing.T) {
	for _, n := range []int{2, 3, 5, 10} {
		t.Run(fmt.Sprintf("%d philosophers", n), func(t *testing.T) {
			t.Parallel()
			table, err := NewTable(validConfig(n))
			require.NoError(t, err)

			done := make(chan []Stats, 1)
			go func() { done <- table.Run(context.Background()) }()

			select {
			case results := <-done:
				require.Len(t, results, n)
				var total int64
				for i, r := range results {
					assert.Equal(t, i, r.Philosopher)
					total += r.Meals
				}
				assert.Positive(t, total, "nobody managed to eat")
				for fork := 0; fork < table.forks.Len(); fork++ {
					assert.False(t, table.forks.Held(fork), "fork %d still held after the run", fork)
				}
			case <-time.After(10 * time.Second):
				t.Fatal("table did not close in time, philosophers are likely deadlocked")
			}
		})
	}
}

// countingForks wraps a real fork set and counts concurrent holders per
// fork, so a mutual exclusion breach during a live run becomes countable.
type countingForks struct {
	inner      Forks
	holders    []atomic.Int32
	violations atomic.Int32
}

func newCountingForks(inner Forks) *countingForks {
	return &countingForks{inner: inner, holders: make([]atomic.Int32, inner.Len())}
}

func (c *countingForks) Acquire(ctx context.Context, fork int) error {
	if err := c.inner.Acquire(ctx, fork); err != nil {
		return err
	}
	if c.holders[fork].Add(1) > 1 {
		c.violations.Add(1)
	}
	return nil
}

func (c *countingForks) Release(fork int) {
	c.holders[fork].Add(-1)
	c.inner.Release(fork)
}

func (c *countingForks) Held(fork int) bool { return c.inner.Held(fork) }

func (c *countingForks) Len() int { return c.inner.Len() }

func TestTableForkMutualExclusion(t *testing.T) {
	cfg := validConfig(5)
	cfg.Duration = 500 * time.Millisecond
	cfg.Think = Interval{Min: 0, Max: 1}
	cfg.Eat = Interval{Min: 0, Max: 1}
	table, err := NewTable(cfg)
	require.NoError(t, err)

	counting := newCountingForks(table.forks)
	table.forks = counting

	table.Run(context.Background())

	assert.Zero(t, counting.violations.Load(), "a fork had two holders at once")
}

func TestTableStatsOnlyGrowDuringRun(t *testing.T) {
	cfg := validConfig(5)
	cfg.Duration = 500 * time.Millisecond
	table, err := NewTable(cfg)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		table.Run(context.Background())
		close(done)
	}()

	last := table.Results()
	for sampling := true; sampling; {
		select {
		case <-done:
			sampling = false
		case <-time.After(10 * time.Millisecond):
		}
		current := table.Results()
		for i := range current {
			require.GreaterOrEqual(t, current[i].Meals, last[i].Meals,
				"meal count of philosopher %d went backwards", i)
			require.GreaterOrEqual(t, current[i].TotalWait, last[i].TotalWait,
				"wait total of philosopher %d went backwards", i)
		}
		last = current
	}
}

func TestTableRunStopsOnCallerCancellation(t *testing.T) {
	cfg := validConfig(3)
	cfg.Duration = time.Minute
	table, err := NewTable(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	results := table.Run(ctx)
	assert.Less(t, time.Since(start), 5*time.Second, "cancellation did not cut the run short")
	assert.Len(t, results, 3)
	for fork := 0; fork < table.forks.Len(); fork++ {
		assert.False(t, table.forks.Held(fork))
	}
}

func TestTableRunZeroDurationClosesImmediately(t *testing.T) {
	cfg := validConfig(4)
	cfg.Duration = 0
	table, err := NewTable(cfg)
	require.NoError(t, err)

	results := table.Run(context.Background())

	var total int64
	for _, r := range results {
		total += r.Meals
	}
	assert.Zero(t, total)
	for fork := 0; fork < table.forks.Len(); fork++ {
		assert.False(t, table.forks.Held(fork))
	}
}

func TestRunEndToEnd(t *testing.T) {
	results, err := Run(context.Background(), Config{
		Philosophers: 3,
		Duration:     2 * time.Second,
		Think:        Interval{Min: 1, Max: 2},
		Eat:          Interval{Min: 1, Max: 2},
		Variant:      VariantSymmetry,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	var total int64
	for _, r := range results {
		total += r.Meals
		assert.GreaterOrEqual(t, r.TotalWait, time.Duration(0))
	}
	assert.Positive(t, total)
}

func TestRunRejectsUnsupportedVariant(t *testing.T) {
	_, err := Run(context.Background(), Config{
		Philosophers: 3,
		Duration:     time.Second,
		Think:        Interval{Min: 1, Max: 2},
		Eat:          Interval{Min: 1, Max: 2},
		Variant:      Variant("hierarchy"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedVariant)
	assert.ErrorContains(t, err, "hierarchy")
}

func TestTableSnapshotObservesLiveRun(t *testing.T) {
	cfg := validConfig(4)
	cfg.Duration = 500 * time.Millisecond
	table, err := NewTable(cfg)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		table.Run(context.Background())
		close(done)
	}()

	validStates := map[string]bool{"thinking": true, "hungry": true, "eating": true, "stopped": true}
	sawMeal := false
	for sampling := true; sampling; {
		select {
		case <-done:
			sampling = false
		case <-time.After(10 * time.Millisecond):
		}
		snap := table.Snapshot()
		require.Len(t, snap.Philosophers, 4)
		require.Len(t, snap.Forks, 4)
		for _, ps := range snap.Philosophers {
			require.True(t, validStates[ps.State], "unexpected state %q", ps.State)
			if ps.Meals > 0 {
				sawMeal = true
			}
		}
	}
	assert.True(t, sawMeal, "no snapshot ever showed a finished meal")

	final := table.Snapshot()
	for _, ps := range final.Philosophers {
		assert.Equal(t, "stopped", ps.State)
	}
	for _, fs := range final.Forks {
		assert.False(t, fs.Held)
	}
}
