package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/prometheus/procfs"
)

// userHZ is the clock tick rate of utime and stime in /proc/<pid>/stat.
const userHZ = 100

// DefaultProcMount is the procfs mount point.
const DefaultProcMount = procfs.DefaultMountPoint

// ReadProcess reads the accounting of process pid from /proc.
func ReadProcess(pid int) (ProcessSample, error) {
	return readProcess(DefaultProcMount, pid)
}

func readProcess(mount string, pid int) (ProcessSample, error) {
	procFS, err := procfs.NewFS(mount)
	if err != nil {
		return ProcessSample{}, &AcquireError{Resource: mount, Err: err}
	}
	proc, err := procFS.Proc(pid)
	if err != nil {
		return ProcessSample{}, &AcquireError{Resource: fmt.Sprintf("%s/%d", mount, pid), Err: err}
	}

	stat, err := proc.Stat()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ProcessSample{}, &AcquireError{Resource: fmt.Sprintf("%s/%d/stat", mount, pid), Err: err}
		}
		return ProcessSample{}, os.NewSyscallError("read stat", err)
	}
	sample := ProcessSample{
		UserTime:    ticksToDuration(stat.UTime),
		SystemTime:  ticksToDuration(stat.STime),
		HasFaults:   true,
		MinorFaults: uint64(stat.MinFlt),
		MajorFaults: uint64(stat.MajFlt),
	}

	// status and io are optional: io is unreadable for other users'
	// processes and both may vanish with the process.
	if status, err := proc.NewStatus(); err == nil {
		sample.HasSwitches = true
		sample.VoluntarySwitches = status.VoluntaryCtxtSwitches
		sample.InvoluntarySwitches = status.NonVoluntaryCtxtSwitches
	}
	if io, err := proc.IO(); err == nil {
		sample.HasIO = true
		sample.ReadBytes = io.ReadBytes
		sample.WriteBytes = io.WriteBytes
	}
	return sample, nil
}

func ticksToDuration(ticks uint) time.Duration {
	return time.Duration(ticks) * time.Second / userHZ
}
