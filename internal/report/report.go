// Package report renders the human-facing text of a simulation run: a
// banner before the table opens and a results table after it closes.
// Derived figures such as the average wait per meal are computed here,
// never by the core.
package report

import (
	"fmt"
	"io"

	"github.com/vk/dinersim/internal/dining"
)

// Banner writes the run header describing the table about to open.
func Banner(w io.Writer, cfg dining.Config) error {
	_, err := fmt.Fprintf(w, `=== Dining Philosophers ===
Philosophers: %d
Duration: %s
Think: %d-%d ms
Eat: %d-%d ms
Variant: %s

`,
		cfg.Philosophers, cfg.Duration,
		cfg.Think.Min, cfg.Think.Max,
		cfg.Eat.Min, cfg.Eat.Max,
		cfg.Variant,
	)
	return err
}

// Render writes one line per philosopher with the meal count, the total
// time spent waiting for forks and the average wait per meal, followed by
// a note naming the acquisition policy the run used.
func Render(w io.Writer, results []dining.Stats) error {
	if _, err := fmt.Fprintln(w, "=== Results ==="); err != nil {
		return err
	}
	for _, r := range results {
		avg := 0.0
		if r.Meals > 0 {
			avg = float64(r.TotalWait.Milliseconds()) / float64(r.Meals)
		}
		_, err := fmt.Fprintf(w, "Philosopher %d: meals=%d, total_wait_ms=%d, avg_wait_ms=%.2f\n",
			r.Philosopher, r.Meals, r.TotalWait.Milliseconds(), avg)
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nVariant used: %s (symmetry breaking).\n", dining.VariantSymmetry)
	return err
}
