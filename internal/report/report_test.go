package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dinersim/internal/dining"
)

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	err := Banner(&buf, dining.Config{
		Philosophers: 5,
		Duration:     10 * time.Second,
		Think:        dining.Interval{Min: 50, Max: 200},
		Eat:          dining.Interval{Min: 30, Max: 100},
		Variant:      dining.VariantSymmetry,
	})
	require.NoError(t, err)

	want := `=== Dining Philosophers ===
Philosophers: 5
Duration: 10s
Think: 50-200 ms
Eat: 30-100 ms
Variant: symmetry

`
	assert.Equal(t, want, buf.String())
}

func TestRender(t *testing.T) {
	t.Run("table with meals", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render(&buf, []dining.Stats{
			{Philosopher: 0, Meals: 4, TotalWait: 120 * time.Millisecond},
			{Philosopher: 1, Meals: 3, TotalWait: 100 * time.Millisecond},
		})
		require.NoError(t, err)

		want := `=== Results ===
Philosopher 0: meals=4, total_wait_ms=120, avg_wait_ms=30.00
Philosopher 1: meals=3, total_wait_ms=100, avg_wait_ms=33.33

Variant used: symmetry (symmetry breaking).
`
		assert.Equal(t, want, buf.String())
	})

	t.Run("zero meals yields zero average", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render(&buf, []dining.Stats{
			{Philosopher: 0, Meals: 0, TotalWait: 0},
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Philosopher 0: meals=0, total_wait_ms=0, avg_wait_ms=0.00")
	})

	t.Run("empty table still gets the frame", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render(&buf, nil)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "=== Results ===")
		assert.Contains(t, buf.String(), "Variant used: symmetry")
	})
}

// brokenWriter fails every write, standing in for a closed pipe.
type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) {
	return 0, errors.New("pipe closed")
}

func TestWriterErrorsPropagate(t *testing.T) {
	assert.Error(t, Banner(brokenWriter{}, dining.Config{}))
	assert.Error(t, Render(brokenWriter{}, []dining.Stats{{Philosopher: 0}}))
}
