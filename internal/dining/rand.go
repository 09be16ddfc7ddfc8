package dining

import (
	"math/rand"
	"time"
)

// randomMs returns a uniformly distributed duration in the inclusive range
// [min, max] milliseconds. When max <= min it returns min, so a degenerate
// interval behaves as a fixed delay rather than an error.
func randomMs(rng *rand.Rand, min, max int) time.Duration {
	ms := min
	if max > min {
		ms = min + rng.Intn(max-min+1)
	}
	return time.Duration(ms) * time.Millisecond
}

// newRand builds the private generator for one seat. Each philosopher owns
// its generator outright, so draws never contend on a shared source. A zero
// base seed falls back to the clock; a non-zero one is offset by the seat
// index, giving every philosopher its own reproducible sequence.
func newRand(seed int64, id int) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed + int64(id)))
}
