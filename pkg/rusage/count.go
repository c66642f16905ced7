package rusage

import (
	"math"
	"strconv"
)

// Count is an unsigned event or byte counter.
type Count uint64

// CountUnsupported marks a count field the platform cannot measure.
const CountUnsupported Count = math.MaxUint64

// CountWidth is the decimal width of the largest Count, used to right-justify
// rendered values.
const CountWidth = 20

// IsUnsupported reports whether c is the unsupported sentinel.
func (c Count) IsUnsupported() bool {
	return c == CountUnsupported
}

// AbsDiff returns max(c, o) - min(c, o).
func (c Count) AbsDiff(o Count) Count {
	if c < o {
		return o - c
	}
	return c - o
}

// String returns the decimal value, or "?" for the sentinel.
func (c Count) String() string {
	if c.IsUnsupported() {
		return "?"
	}
	return strconv.FormatUint(uint64(c), 10)
}
