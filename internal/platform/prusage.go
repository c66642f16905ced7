package platform

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/multierr"
)

// DefaultProcRoot is where System V procfs is mounted.
const DefaultProcRoot = "/proc"

// PRUsage is the content of a System V prusage_t.
type PRUsage struct {
	RealTime Timespec

	UserTime        Timespec
	SystemTime      Timespec
	TrapTime        Timespec
	TextFaultTime   Timespec
	DataFaultTime   Timespec
	KernelFaultTime Timespec
	UserLockTime    Timespec
	SleepTime       Timespec
	WaitCPUTime     Timespec
	StoppedTime     Timespec

	MinorFaults         uint64
	MajorFaults         uint64
	Swaps               uint64
	InBlocks            uint64
	OutBlocks           uint64
	MessagesSent        uint64
	MessagesReceived    uint64
	Signals             uint64
	VoluntarySwitches   uint64
	InvoluntarySwitches uint64
	SystemCalls         uint64
	Chars               uint64
}

type prTimestruc struct {
	Sec  int64
	Nsec int64
}

func (t prTimestruc) timespec() Timespec {
	return Timespec{Sec: t.Sec, Nsec: t.Nsec}
}

// prusageRaw mirrors the LP64 prusage_t from <sys/procfs.h>.
type prusageRaw struct {
	Lwpid    int32
	Count    int32
	Tstamp   prTimestruc
	Create   prTimestruc
	Term     prTimestruc
	Rtime    prTimestruc
	Utime    prTimestruc
	Stime    prTimestruc
	Ttime    prTimestruc
	Tftime   prTimestruc
	Dftime   prTimestruc
	Kftime   prTimestruc
	Ltime    prTimestruc
	Slptime  prTimestruc
	Wtime    prTimestruc
	Stoptime prTimestruc
	Filltime [6]prTimestruc
	Minf     uint64
	Majf     uint64
	Nswap    uint64
	Inblk    uint64
	Oublk    uint64
	Msnd     uint64
	Mrcv     uint64
	Sigs     uint64
	Vctx     uint64
	Ictx     uint64
	Sysc     uint64
	Ioch     uint64
	Filler   [10]uint64
}

// Opener opens a file for reading.
type Opener func(name string) (io.ReadCloser, error)

// OpenFile is the Opener backed by os.Open.
func OpenFile(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// UsagePath returns the usage file of pid under root.
func UsagePath(root string, pid int) string {
	return filepath.Join(root, strconv.Itoa(pid), "usage")
}

// ReadPRUsage reads <root>/<pid>/usage. The file is closed before
// returning, whether or not the read succeeded.
func ReadPRUsage(open Opener, root string, pid int) (usage PRUsage, err error) {
	path := UsagePath(root, pid)
	f, err := open(path)
	if err != nil {
		return PRUsage{}, &AcquireError{Resource: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierr.Append(err, os.NewSyscallError("close", cerr))
		}
		if err != nil {
			usage = PRUsage{}
		}
	}()

	usage, err = DecodePRUsage(f)
	if err != nil {
		return PRUsage{}, fmt.Errorf("%s: %w", path, err)
	}
	return usage, nil
}

// DecodePRUsage decodes one native-endian prusage_t from r.
func DecodePRUsage(r io.Reader) (PRUsage, error) {
	var raw prusageRaw
	if err := binary.Read(r, binary.NativeEndian, &raw); err != nil {
		return PRUsage{}, os.NewSyscallError("read", err)
	}
	return PRUsage{
		RealTime:            raw.Rtime.timespec(),
		UserTime:            raw.Utime.timespec(),
		SystemTime:          raw.Stime.timespec(),
		TrapTime:            raw.Ttime.timespec(),
		TextFaultTime:       raw.Tftime.timespec(),
		DataFaultTime:       raw.Dftime.timespec(),
		KernelFaultTime:     raw.Kftime.timespec(),
		UserLockTime:        raw.Ltime.timespec(),
		SleepTime:           raw.Slptime.timespec(),
		WaitCPUTime:         raw.Wtime.timespec(),
		StoppedTime:         raw.Stoptime.timespec(),
		MinorFaults:         raw.Minf,
		MajorFaults:         raw.Majf,
		Swaps:               raw.Nswap,
		InBlocks:            raw.Inblk,
		OutBlocks:           raw.Oublk,
		MessagesSent:        raw.Msnd,
		MessagesReceived:    raw.Mrcv,
		Signals:             raw.Sigs,
		VoluntarySwitches:   raw.Vctx,
		InvoluntarySwitches: raw.Ictx,
		SystemCalls:         raw.Sysc,
		Chars:               raw.Ioch,
	}, nil
}
