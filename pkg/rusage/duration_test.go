package rusage

import (
	"math"
	"testing"
	"time"
)

func TestNewDuration_Normalizes(t *testing.T) {
	tests := []struct {
		name      string
		sec, nsec int64
		want      Duration
	}{
		{"already normal", 3, 5, Duration{3, 5}},
		{"carry", 0, 2_500_000_000, Duration{2, 500_000_000}},
		{"borrow", 1, -1, Duration{0, 999_999_999}},
		{"exact second", 0, 1_000_000_000, Duration{1, 0}},
		{"negative", -1, 500, Duration{-1, 500}},
		{"large borrow", 5, -2_000_000_001, Duration{2, 999_999_999}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewDuration(tt.sec, tt.nsec); got != tt.want {
				t.Errorf("NewDuration(%d, %d) = %+v, want %+v", tt.sec, tt.nsec, got, tt.want)
			}
		})
	}
}

func TestDuration_Compare(t *testing.T) {
	a := Duration{1, 500}
	b := Duration{1, 600}
	c := Duration{2, 0}

	if a.Compare(b) != -1 || b.Compare(a) != 1 {
		t.Error("nanoseconds should break ties between equal seconds")
	}
	if b.Compare(c) != -1 || c.Compare(a) != 1 {
		t.Error("seconds should order before nanoseconds")
	}
	if a.Compare(a) != 0 {
		t.Error("Compare with itself should be 0")
	}
}

func TestDuration_AbsDiff(t *testing.T) {
	tests := []struct {
		a, b, want Duration
	}{
		{Duration{5, 100}, Duration{3, 200}, Duration{1, 999_999_900}},
		{Duration{3, 200}, Duration{5, 100}, Duration{1, 999_999_900}},
		{Duration{7, 0}, Duration{7, 0}, Duration{}},
		{Duration{0, 999_999_999}, Duration{1, 0}, Duration{0, 1}},
	}
	for _, tt := range tests {
		if got := tt.a.AbsDiff(tt.b); got != tt.want {
			t.Errorf("%+v.AbsDiff(%+v) = %+v, want %+v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDuration_Sub(t *testing.T) {
	got := Duration{2, 0}.Sub(Duration{0, 1})
	if got != (Duration{1, 999_999_999}) {
		t.Errorf("Sub = %+v, want {1 999999999}", got)
	}
}

func TestDuration_Interval(t *testing.T) {
	tests := []struct {
		d    Duration
		want string
	}{
		{Duration{}, "000000 00:00:00.000000000"},
		{Duration{90061, 5}, "000001 01:01:01.000000005"},
		{Duration{59, 999_999_999}, "000000 00:00:59.999999999"},
		{Duration{86400 * 123456, 0}, "123456 00:00:00.000000000"},
		{DurationUnsupported, DurationNullText},
	}
	for _, tt := range tests {
		if got := tt.d.Interval(); got != tt.want {
			t.Errorf("%+v.Interval() = %q, want %q", tt.d, got, tt.want)
		}
	}
	if (Duration{}).Interval() != DurationZeroText {
		t.Error("zero duration should render as DurationZeroText")
	}
}

func TestDuration_StdRoundTrip(t *testing.T) {
	d := 3*time.Second + 250*time.Millisecond
	got := DurationOf(d)
	if got != (Duration{3, 250_000_000}) {
		t.Fatalf("DurationOf(%v) = %+v", d, got)
	}
	if got.Std() != d {
		t.Errorf("Std() = %v, want %v", got.Std(), d)
	}
	if DurationUnsupported.Std() != time.Duration(math.MaxInt64) {
		t.Error("sentinel should saturate")
	}
}

func TestDuration_Sentinel(t *testing.T) {
	if !DurationUnsupported.IsUnsupported() {
		t.Error("DurationUnsupported.IsUnsupported() = false")
	}
	if (Duration{}).IsUnsupported() {
		t.Error("zero duration reported unsupported")
	}
	if DurationUnsupported.Sec != math.MaxInt64 || DurationUnsupported.Nsec != math.MaxInt64 {
		t.Errorf("sentinel = %+v", DurationUnsupported)
	}
}

func TestCount(t *testing.T) {
	if Count(3).AbsDiff(10) != 7 || Count(10).AbsDiff(3) != 7 {
		t.Error("AbsDiff should be max - min")
	}
	if !CountUnsupported.IsUnsupported() || Count(0).IsUnsupported() {
		t.Error("sentinel detection is wrong")
	}
	if CountUnsupported.String() != "?" {
		t.Errorf("sentinel String() = %q, want ?", CountUnsupported.String())
	}
	if got := len(Count(math.MaxUint64 - 1).String()); got != CountWidth {
		t.Errorf("largest value has %d digits, want %d", got, CountWidth)
	}
}
