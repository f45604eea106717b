package generator

import (
	"math/rand"
	"time"
)

// All randomness flows through an explicitly passed *rand.Rand so callers own
// the seed and the draw order. Reordering any call site changes the dataset
// produced for a given seed.

// timeBetween draws a uniform timestamp in [start, end) at second granularity.
// Degenerate ranges collapse to start.
func timeBetween(rng *rand.Rand, start, end time.Time) time.Time {
	seconds := int64(end.Sub(start) / time.Second)
	if seconds <= 0 {
		return start
	}
	return start.Add(time.Duration(rng.Int63n(seconds)) * time.Second)
}

// weightedIndex draws an index from a categorical distribution. Weights need
// not sum to 1; they are normalized internally. The final index absorbs any
// floating point remainder.
func weightedIndex(rng *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if r <= cum {
			return i
		}
	}
	return len(weights) - 1
}

// sampleIndexes draws k distinct indexes from [0, n) without replacement.
// k is capped at n.
func sampleIndexes(rng *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	return rng.Perm(n)[:k]
}
