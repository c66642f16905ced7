package rusage

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUnsupported_AllSentinels(t *testing.T) {
	s := Unsupported()
	for _, slot := range Slots() {
		if !s.IsUnsupported(slot) {
			t.Errorf("%s is not the sentinel", slot)
		}
	}
	if s.UserCPUTime != DurationUnsupported || s.PagefileUsagePeak != CountUnsupported {
		t.Error("named fields not set to sentinels")
	}
}

func TestZeroSnapshotIsBaseline(t *testing.T) {
	var s Snapshot
	for _, slot := range Slots() {
		if s.IsUnsupported(slot) {
			t.Errorf("zero snapshot has sentinel in %s", slot)
		}
	}
}

func TestSnapshot_SlotAccessors(t *testing.T) {
	var s Snapshot
	s.SetDuration(SlotWaitCPUTime, Duration{4, 2})
	s.SetCount(SlotCharsOther, 99)

	if s.WaitCPUTime != (Duration{4, 2}) {
		t.Errorf("WaitCPUTime = %+v", s.WaitCPUTime)
	}
	if s.CharsOther != 99 {
		t.Errorf("CharsOther = %d", s.CharsOther)
	}
	if s.Duration(SlotWaitCPUTime) != (Duration{4, 2}) || s.Count(SlotCharsOther) != 99 {
		t.Error("getters disagree with setters")
	}
}

func TestSnapshot_AccessorsEveryField(t *testing.T) {
	var s Snapshot
	for _, slot := range Slots() {
		if slot.IsDuration() {
			s.SetDuration(slot, Duration{Sec: int64(slot) + 1})
		} else {
			s.SetCount(slot, Count(slot)+1)
		}
	}
	seen := map[string]bool{}
	for _, slot := range Slots() {
		v := s.Value(slot)
		if seen[v] {
			t.Errorf("%s shares storage with another slot (value %q)", slot, v)
		}
		seen[v] = true
	}
}

func TestSnapshot_WrongKindPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*Snapshot)
	}{
		{"duration on count slot", func(s *Snapshot) { s.Duration(SlotMinorPageFaults) }},
		{"count on duration slot", func(s *Snapshot) { s.Count(SlotUserCPUTime) }},
		{"count out of range", func(s *Snapshot) { s.SetCount(Slot(NumFields), 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			var s Snapshot
			tt.fn(&s)
		})
	}
}

func TestSnapshot_Compare(t *testing.T) {
	var a, b Snapshot
	if a.Compare(b) != 0 || !a.Equal(b) {
		t.Fatal("zero snapshots should compare equal")
	}

	b.MinorPageFaults = 1
	if a.Compare(b) != -1 || b.Compare(a) != 1 {
		t.Error("count difference not ordered")
	}

	// An earlier slot decides before a later one.
	a.SystemCPUTime = Duration{Nsec: 1}
	if a.Compare(b) != 1 {
		t.Error("duration slot should take precedence over later count slot")
	}
}

func TestSnapshot_Swap(t *testing.T) {
	a := Snapshot{MinorPageFaults: 1}
	b := Unsupported()
	wantA, wantB := b, a

	a.Swap(&b)
	if diff := cmp.Diff(wantA, a); diff != "" {
		t.Errorf("a after swap (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantB, b); diff != "" {
		t.Errorf("b after swap (-want +got):\n%s", diff)
	}
}

func TestSnapshot_String(t *testing.T) {
	var zero Snapshot
	want := strings.Repeat("["+DurationZeroText+"]", 10) + strings.Repeat("[0]", 20)
	if got := zero.String(); got != want {
		t.Errorf("zero.String() = %q, want %q", got, want)
	}

	want = strings.Repeat("["+DurationNullText+"]", 10) + strings.Repeat("[?]", 20)
	if got := Unsupported().String(); got != want {
		t.Errorf("Unsupported().String() = %q, want %q", got, want)
	}

	s := Snapshot{UserCPUTime: Duration{61, 0}, MinorPageFaults: 12}
	if !strings.HasPrefix(s.String(), "[000000 00:01:01.000000000]") {
		t.Errorf("String() = %q", s.String())
	}
	if !strings.Contains(s.String(), "][12][0]") {
		t.Errorf("String() = %q, want minor faults in first count position", s.String())
	}
}

func TestSnapshot_TimesAndValues(t *testing.T) {
	s := Snapshot{StoppedTime: Duration{1, 0}, PagefileUsagePeak: 5}
	times, values := s.Times(), s.Values()
	if len(times) != NumDurations || len(values) != NumCounts {
		t.Fatalf("len = %d/%d, want %d/%d", len(times), len(values), NumDurations, NumCounts)
	}
	if times[9] != "000000 00:00:01.000000000" {
		t.Errorf("times[9] = %q", times[9])
	}
	if values[19] != "5" {
		t.Errorf("values[19] = %q", values[19])
	}
}
