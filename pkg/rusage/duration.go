package rusage

import (
	"fmt"
	"math"
	"time"
)

const nanosPerSecond = int64(time.Second)

// Duration is an elapsed interval stored as whole seconds plus a nanosecond
// remainder. A normalized Duration always has 0 <= Nsec < 1e9.
type Duration struct {
	Sec  int64
	Nsec int64
}

// DurationUnsupported marks a duration field the platform cannot measure.
var DurationUnsupported = Duration{Sec: math.MaxInt64, Nsec: math.MaxInt64}

// Placeholder texts used by the formatter for empty duration fields.
const (
	DurationNullText = "?????? ??:??:??.?????????"
	DurationZeroText = "000000 00:00:00.000000000"
)

// NewDuration returns the normalized duration for sec seconds and nsec
// nanoseconds. nsec may be negative or exceed one second.
func NewDuration(sec, nsec int64) Duration {
	sec += nsec / nanosPerSecond
	nsec %= nanosPerSecond
	if nsec < 0 {
		nsec += nanosPerSecond
		sec--
	}
	return Duration{Sec: sec, Nsec: nsec}
}

// DurationOf converts a time.Duration.
func DurationOf(d time.Duration) Duration {
	return NewDuration(0, int64(d))
}

// IsUnsupported reports whether d is the unsupported sentinel.
func (d Duration) IsUnsupported() bool {
	return d == DurationUnsupported
}

// IsZero reports whether d is the zero interval.
func (d Duration) IsZero() bool {
	return d.Sec == 0 && d.Nsec == 0
}

// Std converts d to a time.Duration, saturating at the representable range.
func (d Duration) Std() time.Duration {
	if d.IsUnsupported() {
		return time.Duration(math.MaxInt64)
	}
	maxSec := int64(math.MaxInt64) / nanosPerSecond
	if d.Sec >= maxSec {
		return time.Duration(math.MaxInt64)
	}
	if d.Sec <= -maxSec {
		return time.Duration(math.MinInt64)
	}
	return time.Duration(d.Sec*nanosPerSecond + d.Nsec)
}

// Compare returns -1, 0 or +1 ordering d against o by seconds, then
// nanoseconds.
func (d Duration) Compare(o Duration) int {
	switch {
	case d.Sec < o.Sec:
		return -1
	case d.Sec > o.Sec:
		return 1
	case d.Nsec < o.Nsec:
		return -1
	case d.Nsec > o.Nsec:
		return 1
	}
	return 0
}

// Sub returns d - o with the nanosecond borrow applied.
func (d Duration) Sub(o Duration) Duration {
	sec := d.Sec - o.Sec
	nsec := d.Nsec - o.Nsec
	if nsec < 0 {
		nsec += nanosPerSecond
		sec--
	}
	return Duration{Sec: sec, Nsec: nsec}
}

// AbsDiff returns |d - o|.
func (d Duration) AbsDiff(o Duration) Duration {
	if d.Compare(o) < 0 {
		return o.Sub(d)
	}
	return d.Sub(o)
}

// Interval renders d as "DDDDDD HH:MM:SS.nnnnnnnnn".
func (d Duration) Interval() string {
	if d.IsUnsupported() {
		return DurationNullText
	}
	sec := d.Sec
	sign := ""
	if sec < 0 {
		sign = "-"
		d = Duration{}.Sub(d)
		sec = d.Sec
	}
	days := sec / 86400
	sec %= 86400
	return fmt.Sprintf("%s%06d %02d:%02d:%02d.%09d",
		sign, days, sec/3600, (sec%3600)/60, sec%60, d.Nsec)
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	return d.Interval()
}
