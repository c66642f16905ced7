//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd

package platform

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// processSource is the part of *process.Process a sample is built from.
type processSource interface {
	Times() (*cpu.TimesStat, error)
	PageFaults() (*process.PageFaultsStat, error)
	NumCtxSwitches() (*process.NumCtxSwitchesStat, error)
	IOCounters() (*process.IOCountersStat, error)
}

// sampleProcess builds a ProcessSample from src. CPU times are required;
// the remaining groups are best effort since not every platform implements
// them.
func sampleProcess(src processSource) (ProcessSample, error) {
	times, err := src.Times()
	if err != nil {
		return ProcessSample{}, os.NewSyscallError("process times", err)
	}
	sample := ProcessSample{
		UserTime:   secondsToDuration(times.User),
		SystemTime: secondsToDuration(times.System),
	}
	if pf, err := src.PageFaults(); err == nil && pf != nil {
		sample.HasFaults = true
		sample.MinorFaults = pf.MinorFaults
		sample.MajorFaults = pf.MajorFaults
	}
	if cs, err := src.NumCtxSwitches(); err == nil && cs != nil {
		sample.HasSwitches = true
		sample.VoluntarySwitches = uint64(cs.Voluntary)
		sample.InvoluntarySwitches = uint64(cs.Involuntary)
	}
	if io, err := src.IOCounters(); err == nil && io != nil {
		sample.HasIO = true
		sample.ReadBytes = io.ReadBytes
		sample.WriteBytes = io.WriteBytes
	}
	return sample, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
