package rusage

import "github.com/opd-ai/go-rusage/internal/platform"

// blockSize is the unit of the input and output block counters when they are
// derived from byte counts.
const blockSize = 512

func durationOfTimespec(t platform.Timespec) Duration {
	return NewDuration(t.Sec, t.Nsec)
}

// fromRUsage maps getrusage accounting. Fields getrusage has no source for
// keep their sentinels.
func fromRUsage(ru platform.RUsage) Snapshot {
	s := Unsupported()
	s.UserCPUTime = durationOfTimespec(ru.UserTime)
	s.SystemCPUTime = durationOfTimespec(ru.SystemTime)
	s.MinorPageFaults = Count(ru.MinorFaults)
	s.MajorPageFaults = Count(ru.MajorFaults)
	s.ProcessSwaps = Count(ru.Swaps)
	s.InputBlocks = Count(ru.InBlocks)
	s.OutputBlocks = Count(ru.OutBlocks)
	s.MessagesSent = Count(ru.MessagesSent)
	s.MessagesReceived = Count(ru.MessagesReceived)
	s.SignalsReceived = Count(ru.Signals)
	s.VoluntaryContextSwitches = Count(ru.VoluntarySwitches)
	s.InvoluntaryContextSwitches = Count(ru.InvoluntarySwitches)
	return s
}

// fromProcessSample maps per-process accounting read for a pid other than
// the caller. Only groups the source actually read are filled.
func fromProcessSample(p platform.ProcessSample) Snapshot {
	s := Unsupported()
	s.UserCPUTime = DurationOf(p.UserTime)
	s.SystemCPUTime = DurationOf(p.SystemTime)
	if p.HasFaults {
		s.MinorPageFaults = Count(p.MinorFaults)
		s.MajorPageFaults = Count(p.MajorFaults)
	}
	if p.HasSwitches {
		s.VoluntaryContextSwitches = Count(p.VoluntarySwitches)
		s.InvoluntaryContextSwitches = Count(p.InvoluntarySwitches)
	}
	if p.HasIO {
		s.InputBlocks = Count(p.ReadBytes / blockSize)
		s.OutputBlocks = Count(p.WriteBytes / blockSize)
	}
	return s
}

// fromPRUsage maps a System V prusage_t.
func fromPRUsage(pr platform.PRUsage) Snapshot {
	s := Unsupported()
	s.UserCPUTime = durationOfTimespec(pr.UserTime)
	s.SystemCPUTime = durationOfTimespec(pr.SystemTime)
	s.TrapCPUTime = durationOfTimespec(pr.TrapTime)
	s.TextPageFaultTime = durationOfTimespec(pr.TextFaultTime)
	s.DataPageFaultTime = durationOfTimespec(pr.DataFaultTime)
	s.KernelPageFaultTime = durationOfTimespec(pr.KernelFaultTime)
	s.UserLockTime = durationOfTimespec(pr.UserLockTime)
	s.OtherSleepTime = durationOfTimespec(pr.SleepTime)
	s.WaitCPUTime = durationOfTimespec(pr.WaitCPUTime)
	s.StoppedTime = durationOfTimespec(pr.StoppedTime)
	s.MinorPageFaults = Count(pr.MinorFaults)
	s.MajorPageFaults = Count(pr.MajorFaults)
	s.ProcessSwaps = Count(pr.Swaps)
	s.InputBlocks = Count(pr.InBlocks)
	s.OutputBlocks = Count(pr.OutBlocks)
	s.MessagesSent = Count(pr.MessagesSent)
	s.MessagesReceived = Count(pr.MessagesReceived)
	s.SignalsReceived = Count(pr.Signals)
	s.VoluntaryContextSwitches = Count(pr.VoluntarySwitches)
	s.InvoluntaryContextSwitches = Count(pr.InvoluntarySwitches)
	s.SystemCalls = Count(pr.SystemCalls)
	s.CharsReadWritten = Count(pr.Chars)
	return s
}

// fromWindows maps a Windows process query. Memory and I/O counters are
// filled only when their calls were available.
func fromWindows(w platform.WindowsUsage) Snapshot {
	s := Unsupported()
	s.UserCPUTime = durationOfTimespec(w.UserTime)
	s.SystemCPUTime = durationOfTimespec(w.KernelTime)
	if w.HasMemory {
		s.MajorPageFaults = Count(w.Memory.PageFaultCount)
		s.WorkingSetSize = Count(w.Memory.WorkingSetSize)
		s.WorkingSetSizePeak = Count(w.Memory.PeakWorkingSetSize)
		s.PagefileUsage = Count(w.Memory.PagefileUsage)
		s.PagefileUsagePeak = Count(w.Memory.PeakPagefileUsage)
	}
	if w.HasIO {
		s.MessagesSent = Count(w.IO.WriteOperationCount)
		s.MessagesReceived = Count(w.IO.ReadOperationCount)
		s.MessagesOther = Count(w.IO.OtherOperationCount)
		s.CharsReadWritten = Count(w.IO.ReadTransferCount + w.IO.WriteTransferCount)
		s.CharsRead = Count(w.IO.ReadTransferCount)
		s.CharsWritten = Count(w.IO.WriteTransferCount)
		s.CharsOther = Count(w.IO.OtherTransferCount)
	}
	return s
}
