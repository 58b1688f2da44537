package bincount

import (
	"fmt"
	"math/bits"
	"strings"
)

// MedianBinIdx returns the index of the bin holding the cumulative midpoint
// observation: walking bins in order, the first bin whose count carries the
// running total to at least half of all observations. Returns -1 when nothing
// has been logged.
func (b *BinCounter) MedianBinIdx() int {
	if b.total == 0 {
		return -1
	}
	half := b.total / 2
	median := 0
	var running int64
	for i, c := range b.bins {
		if running < half && running+c >= half {
			median = i
			break
		}
		running += c
	}
	return median
}

// GetHistogram renders a text report of the counter: optionally a summary
// header, then one line per bin with its range, raw count and a bar scaled so
// the fullest bin shows 100 stars. An empty counter renders as an empty
// string, there is nothing worth printing.
func (b *BinCounter) GetHistogram(includeStats bool) string {
	if b.total == 0 {
		return ""
	}

	var maxVal int64
	for _, c := range b.bins {
		if c > maxVal {
			maxVal = c
		}
	}
	median := b.MedianBinIdx()

	var sb strings.Builder
	if includeStats {
		fmt.Fprintf(&sb, "observations: %d\n", b.total)
		fmt.Fprintf(&sb, "below range:  %d\n", b.belowRange)
		fmt.Fprintf(&sb, "above range:  %d\n", b.aboveRange)
		fmt.Fprintf(&sb, "median bin:   %d\n", median)
		fmt.Fprintf(&sb, "median range: [%.3f, %.3f)\n", b.binLow(median), b.binHigh(median))
		fmt.Fprintf(&sb, "min:          %.3f\n", b.minSeen)
		fmt.Fprintf(&sb, "max:          %.3f\n", b.maxSeen)
		fmt.Fprintf(&sb, "mean:         %.3f\n", b.Mean())
	}

	// the first and last bin are catch-alls for out-of-range observations,
	// mark them so the stated edges aren't mistaken for hard boundaries
	for i, c := range b.bins {
		pre, post := " ", " "
		if i == 0 {
			pre = "<"
		}
		if i == b.numBins-1 {
			post = ">"
		}
		bar := strings.Repeat("*", barLen(c, maxVal))
		fmt.Fprintf(&sb, "%s[%10.2f, %10.2f)%s %-12d %s\n", pre, b.binLow(i), b.binHigh(i), post, c, bar)
	}
	return sb.String()
}

// barLen scales count to a 0..100 star bar, truncating. 128-bit intermediate
// since counts can approach MaxInt64.
func barLen(count, maxVal int64) int {
	hi, lo := bits.Mul64(uint64(count), 100)
	q, _ := bits.Div64(hi, lo, uint64(maxVal))
	return int(q)
}
