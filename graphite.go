package bincount

import (
	"strconv"
	"time"
)

// ReportGraphite appends the counter's summary fields and per-bin counts to
// buf in graphite line format ("<prefix><key> <value> <unix-ts>\n") and
// returns the extended buffer. An empty counter reports nothing.
func (b *BinCounter) ReportGraphite(prefix, buf []byte, now time.Time) []byte {
	if b.total == 0 {
		return buf
	}
	buf = writeInt64(buf, prefix, []byte("values.count64"), b.total, now)
	buf = writeInt64(buf, prefix, []byte("below_range.count64"), b.belowRange, now)
	buf = writeInt64(buf, prefix, []byte("above_range.count64"), b.aboveRange, now)
	buf = writeFloat64(buf, prefix, []byte("min.gauge64"), float64(b.minSeen), now)
	buf = writeFloat64(buf, prefix, []byte("max.gauge64"), float64(b.maxSeen), now)
	buf = writeFloat64(buf, prefix, []byte("mean.gauge64"), b.Mean(), now)
	buf = writeInt64(buf, prefix, []byte("median_bin.gauge64"), int64(b.MedianBinIdx()), now)
	for i, c := range b.bins {
		key := append(strconv.AppendInt([]byte("bins."), int64(i), 10), ".count64"...)
		buf = writeInt64(buf, prefix, key, c, now)
	}
	return buf
}

func writeInt64(buf, prefix, key []byte, val int64, now time.Time) []byte {
	buf = append(buf, prefix...)
	buf = append(buf, key...)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, val, 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, now.Unix(), 10)
	return append(buf, '\n')
}

func writeFloat64(buf, prefix, key []byte, val float64, now time.Time) []byte {
	buf = append(buf, prefix...)
	buf = append(buf, key...)
	buf = append(buf, ' ')
	buf = strconv.AppendFloat(buf, val, 'f', -1, 64)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, now.Unix(), 10)
	return append(buf, '\n')
}
