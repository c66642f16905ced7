package platform

import (
	"fmt"
	"time"
)

// Timespec is a seconds and nanoseconds pair as reported by the kernel.
// Nsec is not necessarily normalized.
type Timespec struct {
	Sec  int64
	Nsec int64
}

// TimespecOf converts a time.Duration.
func TimespecOf(d time.Duration) Timespec {
	return Timespec{Sec: int64(d / time.Second), Nsec: int64(d % time.Second)}
}

// Who selects the getrusage target.
type Who int

const (
	WhoSelf Who = iota
	WhoChildren
)

func (w Who) String() string {
	if w == WhoChildren {
		return "children"
	}
	return "self"
}

// RUsage is the portable subset of struct rusage.
type RUsage struct {
	UserTime   Timespec
	SystemTime Timespec

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
}

// ProcessSample is the per-process accounting available for processes other
// than the caller. The Has flags report which optional groups were read.
type ProcessSample struct {
	UserTime   time.Duration
	SystemTime time.Duration

	HasFaults   bool
	MinorFaults uint64
	MajorFaults uint64

	HasSwitches         bool
	VoluntarySwitches   uint64
	InvoluntarySwitches uint64

	// Storage I/O in bytes.
	HasIO      bool
	ReadBytes  uint64
	WriteBytes uint64
}

// AcquireError reports a file or handle that could not be obtained.
type AcquireError struct {
	Resource string
	Err      error
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("acquire %s: %v", e.Resource, e.Err)
}

func (e *AcquireError) Unwrap() error {
	return e.Err
}
