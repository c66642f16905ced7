package rusage

import (
	"fmt"
	"strings"
)

// Snapshot holds one reading of a process's resource usage. Every field holds
// either a measured value or its unsupported sentinel; the zero Snapshot is
// an all-zero baseline.
type Snapshot struct {
	UserCPUTime         Duration
	SystemCPUTime       Duration
	TrapCPUTime         Duration
	TextPageFaultTime   Duration
	DataPageFaultTime   Duration
	KernelPageFaultTime Duration
	UserLockTime        Duration
	OtherSleepTime      Duration
	WaitCPUTime         Duration
	StoppedTime         Duration

	MinorPageFaults            Count
	MajorPageFaults            Count
	ProcessSwaps               Count
	InputBlocks                Count
	OutputBlocks               Count
	MessagesSent               Count
	MessagesReceived           Count
	MessagesOther              Count
	SignalsReceived            Count
	VoluntaryContextSwitches   Count
	InvoluntaryContextSwitches Count
	SystemCalls                Count
	CharsReadWritten           Count
	CharsRead                  Count
	CharsWritten               Count
	CharsOther                 Count
	WorkingSetSize             Count
	WorkingSetSizePeak         Count
	PagefileUsage              Count
	PagefileUsagePeak          Count
}

// Unsupported returns a snapshot with every field set to its sentinel.
// Collectors start from it and fill in what the platform reports.
func Unsupported() Snapshot {
	var s Snapshot
	for i := range slotTable {
		if info := slotTable[i]; info.duration != nil {
			*info.duration(&s) = DurationUnsupported
		} else {
			*info.count(&s) = CountUnsupported
		}
	}
	return s
}

// Duration returns the duration stored in slot. It panics if slot is not a
// duration slot.
func (s *Snapshot) Duration(slot Slot) Duration {
	return *s.durationRef(slot)
}

// SetDuration stores d in slot.
func (s *Snapshot) SetDuration(slot Slot, d Duration) {
	*s.durationRef(slot) = d
}

// Count returns the count stored in slot. It panics if slot is not a count
// slot.
func (s *Snapshot) Count(slot Slot) Count {
	return *s.countRef(slot)
}

// SetCount stores c in slot.
func (s *Snapshot) SetCount(slot Slot, c Count) {
	*s.countRef(slot) = c
}

func (s *Snapshot) durationRef(slot Slot) *Duration {
	if !slot.IsDuration() {
		panic(fmt.Sprintf("rusage: %s is not a duration slot", slot))
	}
	return slotTable[slot].duration(s)
}

func (s *Snapshot) countRef(slot Slot) *Count {
	if !slot.Valid() || slot.IsDuration() {
		panic(fmt.Sprintf("rusage: %s is not a count slot", slot))
	}
	return slotTable[slot].count(s)
}

// IsUnsupported reports whether the value in slot is its sentinel.
func (s *Snapshot) IsUnsupported(slot Slot) bool {
	if slot.IsDuration() {
		return s.Duration(slot).IsUnsupported()
	}
	return s.Count(slot).IsUnsupported()
}

// Value renders the raw value of slot: the interval text for durations and
// the decimal value for counts. Sentinels render as their null forms.
func (s *Snapshot) Value(slot Slot) string {
	if slot.IsDuration() {
		return s.Duration(slot).Interval()
	}
	return s.Count(slot).String()
}

// Compare orders snapshots field by field in slot order. The first differing
// field decides.
func (s Snapshot) Compare(o Snapshot) int {
	for i := 0; i < NumFields; i++ {
		slot := Slot(i)
		if slot.IsDuration() {
			if c := s.Duration(slot).Compare(o.Duration(slot)); c != 0 {
				return c
			}
			continue
		}
		a, b := s.Count(slot), o.Count(slot)
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
	}
	return 0
}

// Equal reports whether all fields are identical.
func (s Snapshot) Equal(o Snapshot) bool {
	return s == o
}

// Swap exchanges the contents of s and o.
func (s *Snapshot) Swap(o *Snapshot) {
	*s, *o = *o, *s
}

// DeltaTo returns Delta(s, end).
func (s Snapshot) DeltaTo(end Snapshot) Snapshot {
	return Delta(s, end)
}

// Times returns the rendered duration values in slot order.
func (s Snapshot) Times() []string {
	out := make([]string, 0, NumDurations)
	for i := 0; i < NumDurations; i++ {
		out = append(out, s.Value(Slot(i)))
	}
	return out
}

// Values returns the rendered count values in slot order.
func (s Snapshot) Values() []string {
	out := make([]string, 0, NumCounts)
	for i := NumDurations; i < NumFields; i++ {
		out = append(out, s.Value(Slot(i)))
	}
	return out
}

// String returns the compact form: every value in slot order, each wrapped
// in square brackets.
func (s Snapshot) String() string {
	var b strings.Builder
	for i := 0; i < NumFields; i++ {
		b.WriteByte('[')
		b.WriteString(s.Value(Slot(i)))
		b.WriteByte(']')
	}
	return b.String()
}
