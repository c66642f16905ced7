package platform

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modPsapi    = windows.NewLazySystemDLL("psapi.dll")
	modKernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetProcessMemoryInfo = modPsapi.NewProc("GetProcessMemoryInfo")
	procGetProcessIoCounters = modKernel32.NewProc("GetProcessIoCounters")
)

// processMemoryCounters mirrors PROCESS_MEMORY_COUNTERS.
type processMemoryCounters struct {
	CB                         uint32
	PageFaultCount             uint32
	PeakWorkingSetSize         uintptr
	WorkingSetSize             uintptr
	QuotaPeakPagedPoolUsage    uintptr
	QuotaPagedPoolUsage        uintptr
	QuotaPeakNonPagedPoolUsage uintptr
	QuotaNonPagedPoolUsage     uintptr
	PagefileUsage              uintptr
	PeakPagefileUsage          uintptr
}

// SystemAPI is the ProcessAPI backed by the running Windows system.
type SystemAPI struct{}

func (SystemAPI) CurrentProcess() uintptr { return uintptr(windows.CurrentProcess()) }

func (SystemAPI) CurrentProcessID() uint32 { return windows.GetCurrentProcessId() }

func (SystemAPI) OpenProcess(pid uint32) (uintptr, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ, false, pid)
	if err != nil {
		return 0, err
	}
	return uintptr(h), nil
}

func (SystemAPI) CloseHandle(h uintptr) error {
	return windows.CloseHandle(windows.Handle(h))
}

func (SystemAPI) ProcessTimes(h uintptr) (kernel, user uint64, err error) {
	var creation, exit, k, u windows.Filetime
	if err := windows.GetProcessTimes(windows.Handle(h), &creation, &exit, &k, &u); err != nil {
		return 0, 0, err
	}
	return filetimeTicks(k), filetimeTicks(u), nil
}

func (SystemAPI) MemoryCounters(h uintptr) (MemoryCounters, bool, error) {
	if procGetProcessMemoryInfo.Find() != nil {
		return MemoryCounters{}, false, nil
	}
	var pmc processMemoryCounters
	pmc.CB = uint32(unsafe.Sizeof(pmc))
	r1, _, e1 := procGetProcessMemoryInfo.Call(h, uintptr(unsafe.Pointer(&pmc)), uintptr(pmc.CB))
	if r1 == 0 {
		return MemoryCounters{}, false, e1
	}
	return MemoryCounters{
		PageFaultCount:     uint64(pmc.PageFaultCount),
		WorkingSetSize:     uint64(pmc.WorkingSetSize),
		PeakWorkingSetSize: uint64(pmc.PeakWorkingSetSize),
		PagefileUsage:      uint64(pmc.PagefileUsage),
		PeakPagefileUsage:  uint64(pmc.PeakPagefileUsage),
	}, true, nil
}

func (SystemAPI) IOCounters(h uintptr) (IOCounters, bool, error) {
	if procGetProcessIoCounters.Find() != nil {
		return IOCounters{}, false, nil
	}
	var ioc windows.IO_COUNTERS
	r1, _, e1 := procGetProcessIoCounters.Call(h, uintptr(unsafe.Pointer(&ioc)))
	if r1 == 0 {
		return IOCounters{}, false, e1
	}
	return IOCounters{
		ReadOperationCount:  ioc.ReadOperationCount,
		WriteOperationCount: ioc.WriteOperationCount,
		OtherOperationCount: ioc.OtherOperationCount,
		ReadTransferCount:   ioc.ReadTransferCount,
		WriteTransferCount:  ioc.WriteTransferCount,
		OtherTransferCount:  ioc.OtherTransferCount,
	}, true, nil
}

func filetimeTicks(ft windows.Filetime) uint64 {
	return uint64(ft.HighDateTime)<<32 | uint64(ft.LowDateTime)
}

// ReadWindowsProcess queries the running system for the usage of pid.
func ReadWindowsProcess(pid int) (WindowsUsage, error) {
	return QueryProcess(SystemAPI{}, pid)
}
