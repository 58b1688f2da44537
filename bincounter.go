// Package bincount implements a fixed-range histogram accumulator: a numeric
// range divided into a fixed number of equal-width bins, into which scalar
// observations (optionally weighted by a count) are tallied, along with
// summary statistics (min, max, mean, total, out-of-range counts).
package bincount

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonPositiveCount is returned by Log when count is zero or negative.
// The counter state is left unchanged when this fires.
var ErrNonPositiveCount = errors.New("bincount: count must be positive")

// BinCounter tallies observations into numBins equal-width bins spanning
// [rangeMin, rangeMax]. Bin i covers [rangeMin+i*binWidth, rangeMin+(i+1)*binWidth),
// except that bin 0 also absorbs everything below rangeMin and the last bin
// absorbs everything above rangeMax.
// Log and Reset mutate shared state and are not safe for concurrent use
// without external locking. Readers are safe once all writes have completed.
type BinCounter struct {
	numBins  int
	rangeMin float32
	rangeMax float32
	binWidth float32

	bins       []int64
	belowRange int64
	aboveRange int64
	total      int64
	sum        float64 // observation*count accumulated in float64 to limit drift
	minSeen    float32
	maxSeen    float32
	seen       bool
}

// New returns a BinCounter with numBins zeroed bins spanning [rangeMin, rangeMax].
// numBins must be positive and rangeMin must be less than rangeMax; these are
// programmer contracts, violations panic.
func New(numBins int, rangeMin, rangeMax float32) *BinCounter {
	if numBins <= 0 {
		panic(fmt.Sprintf("bincount: numBins must be positive, got %d", numBins))
	}
	if rangeMin >= rangeMax {
		panic(fmt.Sprintf("bincount: rangeMin %v must be below rangeMax %v", rangeMin, rangeMax))
	}
	return &BinCounter{
		numBins:  numBins,
		rangeMin: rangeMin,
		rangeMax: rangeMax,
		binWidth: (rangeMax - rangeMin) / float32(numBins),
		bins:     make([]int64, numBins),
	}
}

// Log tallies count occurrences of obs into the appropriate bin and updates
// the summary aggregates. NaN observations are silently discarded, as are any
// observations once the counter is full. When the total would exceed
// MaxInt64 the effective count is truncated so the total saturates there
// instead of wrapping.
func (b *BinCounter) Log(obs float32, count int64) error {
	if count <= 0 {
		return ErrNonPositiveCount
	}
	if math.IsNaN(float64(obs)) {
		return nil
	}
	if b.IsFull() {
		return nil
	}
	if count > math.MaxInt64-b.total {
		count = math.MaxInt64 - b.total
	}

	if !b.seen {
		b.minSeen = obs
		b.maxSeen = obs
		b.seen = true
	} else {
		if obs < b.minSeen {
			b.minSeen = obs
		}
		if obs > b.maxSeen {
			b.maxSeen = obs
		}
	}
	b.sum += float64(count) * float64(obs)

	var idx int
	switch {
	case obs < b.rangeMin:
		idx = 0
		b.belowRange += count
	case obs > b.rangeMax:
		idx = b.numBins - 1
		b.aboveRange += count
	default:
		idx = int((obs - b.rangeMin) / b.binWidth)
		// rounding can push an observation at rangeMax one past the end
		if idx >= b.numBins {
			idx = b.numBins - 1
		}
	}
	b.bins[idx] += count
	b.total += count
	return nil
}

// LogFloat64 narrows obs to float32 and delegates to Log. The counter is
// single-precision native; this exists purely for caller convenience.
func (b *BinCounter) LogFloat64(obs float64, count int64) error {
	return b.Log(float32(obs), count)
}

// Reset zeroes all bins and aggregates. The configuration (bin count, range,
// bin width) survives.
func (b *BinCounter) Reset() {
	for i := range b.bins {
		b.bins[i] = 0
	}
	b.belowRange = 0
	b.aboveRange = 0
	b.total = 0
	b.sum = 0
	b.minSeen = 0
	b.maxSeen = 0
	b.seen = false
}

func (b *BinCounter) RangeMin() float32 { return b.rangeMin }
func (b *BinCounter) RangeMax() float32 { return b.rangeMax }
func (b *BinCounter) NumBins() int      { return b.numBins }
func (b *BinCounter) BinSize() float32  { return b.binWidth }

func (b *BinCounter) TotalObservations() int64  { return b.total }
func (b *BinCounter) CountBelowRangeMin() int64 { return b.belowRange }
func (b *BinCounter) CountAboveRangeMax() int64 { return b.aboveRange }

// IsFull reports whether the counter has saturated at MaxInt64 observations.
// Further logs are silently discarded.
func (b *BinCounter) IsFull() bool {
	return b.total == math.MaxInt64
}

// MinObservation returns the smallest observation logged so far, or NaN if
// nothing has been logged.
func (b *BinCounter) MinObservation() float32 {
	if !b.seen {
		return float32(math.NaN())
	}
	return b.minSeen
}

// MaxObservation returns the largest observation logged so far, or NaN if
// nothing has been logged.
func (b *BinCounter) MaxObservation() float32 {
	if !b.seen {
		return float32(math.NaN())
	}
	return b.maxSeen
}

// Mean returns the running mean of all logged observations. With no
// observations this is NaN; callers needing a guard must check
// TotalObservations themselves.
func (b *BinCounter) Mean() float64 {
	return b.sum / float64(b.total)
}

// Bins returns a copy of the bin counts. Mutating the returned slice has no
// effect on the counter.
func (b *BinCounter) Bins() []int64 {
	out := make([]int64, len(b.bins))
	copy(out, b.bins)
	return out
}

func (b *BinCounter) binLow(i int) float32 {
	return b.rangeMin + float32(i)*b.binWidth
}

func (b *BinCounter) binHigh(i int) float32 {
	return b.rangeMin + float32(i+1)*b.binWidth
}
