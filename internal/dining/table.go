package dining

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vk/dinersim/internal/ctxlog"
)

// Interval is an inclusive range of milliseconds a philosopher sleeps for,
// picked uniformly on every cycle.
type Interval struct {
	Min int
	Max int
}

func (i Interval) validate() error {
	if i.Min < 0 {
		return fmt.Errorf("min must not be negative, got %d", i.Min)
	}
	if i.Max < i.Min {
		return fmt.Errorf("max must not be below min, got %d-%d", i.Min, i.Max)
	}
	return nil
}

// Config describes one simulation run. It is not mutated after NewTable.
type Config struct {
	// Philosophers is the number of seats, and therefore forks. At least 2.
	Philosophers int

	// Duration is how long the table stays open before the stop signal is
	// raised. Zero opens and immediately closes the table.
	Duration time.Duration

	// Think and Eat bound the random sleeps of the two phases.
	Think Interval
	Eat   Interval

	// Variant names the fork acquisition policy. Only VariantSymmetry is
	// implemented; anything else is rejected before a goroutine is spawned.
	Variant Variant

	// Seed, when non-zero, makes every philosopher's sleep sequence
	// reproducible. Zero seeds from the clock.
	Seed int64
}

// Validate checks the semantic rules of the configuration.
func (c Config) Validate() error {
	if c.Philosophers < 2 {
		return fmt.Errorf("philosophers must be at least 2, got %d", c.Philosophers)
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %s", c.Duration)
	}
	if err := c.Think.validate(); err != nil {
		return fmt.Errorf("think interval: %w", err)
	}
	if err := c.Eat.validate(); err != nil {
		return fmt.Errorf("eat interval: %w", err)
	}
	if c.Variant != VariantSymmetry {
		return fmt.Errorf("%w: %q (only %q is implemented)", ErrUnsupportedVariant, c.Variant, VariantSymmetry)
	}
	return nil
}

// Table wires one simulation run together: the fork ring, the seats and the
// statistics slots. Build it with NewTable, run it once with Run.
type Table struct {
	cfg          Config
	forks        Forks
	slots        []*statSlot
	philosophers []*philosopher
}

// NewTable validates cfg and builds a table. Nothing runs yet; an invalid
// configuration is rejected here, before any goroutine exists.
func NewTable(cfg Config) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table configuration: %w", err)
	}

	n := cfg.Philosophers
	t := &Table{
		cfg:          cfg,
		forks:        NewForkSet(n),
		slots:        make([]*statSlot, n),
		philosophers: make([]*philosopher, n),
	}
	for i := 0; i < n; i++ {
		t.slots[i] = &statSlot{}
		first, second := acquisitionOrder(i, n)
		t.philosophers[i] = &philosopher{
			id:     i,
			first:  first,
			second: second,
			think:  cfg.Think,
			eat:    cfg.Eat,
			slot:   t.slots[i],
			rng:    newRand(cfg.Seed, i),
		}
	}
	return t, nil
}

// Run opens the table. It seats every philosopher, lets them dine for the
// configured duration (or until the caller cancels ctx, whichever comes
// first), then waits for every one of them to leave before returning the
// final statistics ordered by seat. The drain has no timeout: once the stop
// signal is raised, every philosopher unblocks and exits on its own.
func (t *Table) Run(ctx context.Context) []Stats {
	logger := ctxlog.FromContext(ctx)

	runCtx, cancel := context.WithTimeout(ctx, t.cfg.Duration)
	defer cancel()

	logger.Info("Table open.",
		"philosophers", t.cfg.Philosophers,
		"duration", t.cfg.Duration,
		"variant", t.cfg.Variant,
	)

	var wg sync.WaitGroup
	for _, p := range t.philosophers {
		wg.Add(1)
		go p.run(runCtx, t.forks, &wg)
	}

	<-runCtx.Done()
	wg.Wait()

	results := t.Results()
	var total int64
	for _, r := range results {
		total += r.Meals
	}
	logger.Info("Table closed.", "totalMeals", total)
	return results
}

// Results reads every statistics slot, ordered by seat. The answer is exact
// once Run has returned and approximate while philosophers are still busy.
func (t *Table) Results() []Stats {
	out := make([]Stats, len(t.slots))
	for i, s := range t.slots {
		meals, wait := s.load()
		out[i] = Stats{Philosopher: i, Meals: meals, TotalWait: wait}
	}
	return out
}

// Run is the one-call form: validate, build, dine, and collect the table's
// statistics.
func Run(ctx context.Context, cfg Config) ([]Stats, error) {
	t, err := NewTable(cfg)
	if err != nil {
		return nil, err
	}
	return t.Run(ctx), nil
}
