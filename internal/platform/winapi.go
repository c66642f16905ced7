package platform

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
)

// ticksPerSecond is the FILETIME resolution: 100 ns ticks.
const ticksPerSecond = 10_000_000

// MemoryCounters is the portable subset of PROCESS_MEMORY_COUNTERS.
type MemoryCounters struct {
	PageFaultCount     uint64
	WorkingSetSize     uint64
	PeakWorkingSetSize uint64
	PagefileUsage      uint64
	PeakPagefileUsage  uint64
}

// IOCounters mirrors IO_COUNTERS.
type IOCounters struct {
	ReadOperationCount  uint64
	WriteOperationCount uint64
	OtherOperationCount uint64
	ReadTransferCount   uint64
	WriteTransferCount  uint64
	OtherTransferCount  uint64
}

// WindowsUsage is what a Windows process query yields. Memory and IO are
// only meaningful when the matching Has flag is set.
type WindowsUsage struct {
	KernelTime Timespec
	UserTime   Timespec

	HasMemory bool
	Memory    MemoryCounters

	HasIO bool
	IO    IOCounters
}

// ProcessAPI is the set of Win32 calls a process query needs. Handles are
// passed as uintptr.
type ProcessAPI interface {
	CurrentProcess() uintptr
	CurrentProcessID() uint32
	OpenProcess(pid uint32) (uintptr, error)
	CloseHandle(h uintptr) error
	// ProcessTimes returns kernel and user time in 100 ns ticks.
	ProcessTimes(h uintptr) (kernel, user uint64, err error)
	// MemoryCounters reports false when psapi is unavailable.
	MemoryCounters(h uintptr) (MemoryCounters, bool, error)
	// IOCounters reports false when the call is unavailable.
	IOCounters(h uintptr) (IOCounters, bool, error)
}

// TicksToTimespec converts a count of 100 ns ticks.
func TicksToTimespec(ticks uint64) Timespec {
	return Timespec{
		Sec:  int64(ticks / ticksPerSecond),
		Nsec: int64(ticks%ticksPerSecond) * 100,
	}
}

// QueryProcess reads the usage of pid, or of the calling process when pid is
// not positive or equals the current process id. Handles opened here are
// closed before returning; a failed close is reported alongside any query
// error.
func QueryProcess(api ProcessAPI, pid int) (usage WindowsUsage, err error) {
	h := api.CurrentProcess()
	if pid > 0 && uint32(pid) != api.CurrentProcessID() {
		h, err = api.OpenProcess(uint32(pid))
		if err != nil {
			return WindowsUsage{}, &AcquireError{Resource: fmt.Sprintf("process %d", pid), Err: err}
		}
		defer func() {
			if cerr := api.CloseHandle(h); cerr != nil {
				err = multierr.Append(err, os.NewSyscallError("CloseHandle", cerr))
			}
			if err != nil {
				usage = WindowsUsage{}
			}
		}()
	}

	kernel, user, err := api.ProcessTimes(h)
	if err != nil {
		return WindowsUsage{}, os.NewSyscallError("GetProcessTimes", err)
	}
	usage.KernelTime = TicksToTimespec(kernel)
	usage.UserTime = TicksToTimespec(user)

	mem, ok, err := api.MemoryCounters(h)
	if err != nil {
		return WindowsUsage{}, os.NewSyscallError("GetProcessMemoryInfo", err)
	}
	usage.HasMemory, usage.Memory = ok, mem

	io, ok, err := api.IOCounters(h)
	if err != nil {
		return WindowsUsage{}, os.NewSyscallError("GetProcessIoCounters", err)
	}
	usage.HasIO, usage.IO = ok, io
	return usage, nil
}
