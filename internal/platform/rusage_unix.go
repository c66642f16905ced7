//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// Getrusage queries getrusage(2) for the calling process or its waited-for
// children.
func Getrusage(who Who) (RUsage, error) {
	target := unix.RUSAGE_SELF
	if who == WhoChildren {
		target = unix.RUSAGE_CHILDREN
	}
	var ru unix.Rusage
	if err := unix.Getrusage(target, &ru); err != nil {
		return RUsage{}, os.NewSyscallError("getrusage", err)
	}
	return rusageOf(&ru), nil
}

func rusageOf(ru *unix.Rusage) RUsage {
	usec, unsec := ru.Utime.Unix()
	ssec, snsec := ru.Stime.Unix()
	return RUsage{
		UserTime:            Timespec{Sec: usec, Nsec: unsec},
		SystemTime:          Timespec{Sec: ssec, Nsec: snsec},
		MinorFaults:         uint64(ru.Minflt),
		MajorFaults:         uint64(ru.Majflt),
		Swaps:               uint64(ru.Nswap),
		InBlocks:            uint64(ru.Inblock),
		OutBlocks:           uint64(ru.Oublock),
		MessagesSent:        uint64(ru.Msgsnd),
		MessagesReceived:    uint64(ru.Msgrcv),
		Signals:             uint64(ru.Nsignals),
		VoluntarySwitches:   uint64(ru.Nvcsw),
		InvoluntarySwitches: uint64(ru.Nivcsw),
	}
}
