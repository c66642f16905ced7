package rusage

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/opd-ai/go-rusage/internal/platform"
)

// assertOnlySupported checks that exactly the fields r supports were filled.
func assertOnlySupported(t *testing.T, s Snapshot, r *Registry) {
	t.Helper()
	for _, f := range r.Fields() {
		if f.Supported == s.IsUnsupported(f.Slot) {
			t.Errorf("%s: supported=%v but sentinel=%v", f.Name(), f.Supported, s.IsUnsupported(f.Slot))
		}
	}
}

func TestFromRUsage(t *testing.T) {
	ru := platform.RUsage{
		UserTime:            platform.Timespec{Sec: 2, Nsec: 1_500_000_000},
		SystemTime:          platform.Timespec{Sec: 0, Nsec: 10},
		MinorFaults:         1,
		MajorFaults:         2,
		Swaps:               3,
		InBlocks:            4,
		OutBlocks:           5,
		MessagesSent:        6,
		MessagesReceived:    7,
		Signals:             8,
		VoluntarySwitches:   9,
		InvoluntarySwitches: 10,
	}
	s := fromRUsage(ru)

	assertOnlySupported(t, s, NewRegistry(StrategyRUsage))
	if s.UserCPUTime != (Duration{3, 500_000_000}) {
		t.Errorf("UserCPUTime = %+v, want normalized {3 500000000}", s.UserCPUTime)
	}
	if s.SignalsReceived != 8 || s.InvoluntaryContextSwitches != 10 {
		t.Errorf("counts = %v", s)
	}
}

func TestFromProcessSample(t *testing.T) {
	full := platform.ProcessSample{
		UserTime:            time.Second,
		SystemTime:          time.Millisecond,
		HasFaults:           true,
		MinorFaults:         5,
		MajorFaults:         1,
		HasSwitches:         true,
		VoluntarySwitches:   3,
		InvoluntarySwitches: 4,
		HasIO:               true,
		ReadBytes:           4096,
		WriteBytes:          1000,
	}
	s := fromProcessSample(full)
	if s.InputBlocks != 8 || s.OutputBlocks != 1 {
		t.Errorf("blocks = %d/%d, want 8/1", s.InputBlocks, s.OutputBlocks)
	}
	if s.SystemCPUTime != (Duration{0, 1_000_000}) {
		t.Errorf("SystemCPUTime = %+v", s.SystemCPUTime)
	}
	r := NewRegistry(StrategyRUsage)
	for _, f := range r.Fields() {
		if !f.Supported && !s.IsUnsupported(f.Slot) {
			t.Errorf("%s filled but unsupported under getrusage", f.Name())
		}
	}

	partial := fromProcessSample(platform.ProcessSample{UserTime: time.Second})
	for _, slot := range []Slot{SlotMinorPageFaults, SlotVoluntaryContextSwitches, SlotInputBlocks} {
		if !partial.IsUnsupported(slot) {
			t.Errorf("%s should stay unsupported when its group is missing", slot)
		}
	}
}

func TestFromPRUsage(t *testing.T) {
	pr := platform.PRUsage{
		UserTime:            platform.Timespec{Sec: 1},
		SystemTime:          platform.Timespec{Sec: 2},
		TrapTime:            platform.Timespec{Sec: 3},
		TextFaultTime:       platform.Timespec{Sec: 4},
		DataFaultTime:       platform.Timespec{Sec: 5},
		KernelFaultTime:     platform.Timespec{Sec: 6},
		UserLockTime:        platform.Timespec{Sec: 7},
		SleepTime:           platform.Timespec{Sec: 8},
		WaitCPUTime:         platform.Timespec{Sec: 9},
		StoppedTime:         platform.Timespec{Sec: 10, Nsec: 1_000_000_001},
		MinorFaults:         11,
		SystemCalls:         12,
		Chars:               13,
		VoluntarySwitches:   14,
		InvoluntarySwitches: 15,
	}
	s := fromPRUsage(pr)

	assertOnlySupported(t, s, NewRegistry(StrategyProcFS))
	for i := 0; i < NumDurations-1; i++ {
		if got := s.Duration(Slot(i)); got != (Duration{int64(i) + 1, 0}) {
			t.Errorf("%s = %+v, want %d s", Slot(i), got, i+1)
		}
	}
	if s.StoppedTime != (Duration{11, 1}) {
		t.Errorf("StoppedTime = %+v, want normalized {11 1}", s.StoppedTime)
	}
	if s.CharsReadWritten != 13 || s.SystemCalls != 12 {
		t.Errorf("CharsReadWritten/SystemCalls = %d/%d", s.CharsReadWritten, s.SystemCalls)
	}
}

func TestFromWindows(t *testing.T) {
	w := platform.WindowsUsage{
		KernelTime: platform.TicksToTimespec(25_000_000),
		UserTime:   platform.TicksToTimespec(10_000_001),
		HasMemory:  true,
		Memory: platform.MemoryCounters{
			PageFaultCount:     100,
			WorkingSetSize:     1 << 20,
			PeakWorkingSetSize: 2 << 20,
			PagefileUsage:      3 << 20,
			PeakPagefileUsage:  4 << 20,
		},
		HasIO: true,
		IO: platform.IOCounters{
			ReadOperationCount:  1,
			WriteOperationCount: 2,
			OtherOperationCount: 3,
			ReadTransferCount:   400,
			WriteTransferCount:  500,
			OtherTransferCount:  600,
		},
	}
	s := fromWindows(w)

	assertOnlySupported(t, s, NewRegistry(StrategyWindows))
	want := Unsupported()
	want.UserCPUTime = Duration{1, 100}
	want.SystemCPUTime = Duration{2, 500_000_000}
	want.MajorPageFaults = 100
	want.WorkingSetSize = 1 << 20
	want.WorkingSetSizePeak = 2 << 20
	want.PagefileUsage = 3 << 20
	want.PagefileUsagePeak = 4 << 20
	want.MessagesSent = 2
	want.MessagesReceived = 1
	want.MessagesOther = 3
	want.CharsReadWritten = 900
	want.CharsRead = 400
	want.CharsWritten = 500
	want.CharsOther = 600
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("fromWindows (-want +got):\n%s", diff)
	}

	bare := fromWindows(platform.WindowsUsage{})
	if !bare.IsUnsupported(SlotWorkingSetSize) || !bare.IsUnsupported(SlotCharsRead) {
		t.Error("memory and I/O fields should stay unsupported when unavailable")
	}
}
