//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd

package rusage

import (
	"os"

	"github.com/opd-ai/go-rusage/internal/platform"
)

const nativeStrategy = StrategyRUsage

// nativeBackend reads getrusage(2) for the caller and its children, and the
// per-process accounting of /proc or gopsutil for other pids.
type nativeBackend struct{}

func (nativeBackend) Strategy() Strategy { return StrategyRUsage }

func (nativeBackend) Accepts(sel Selector) bool { return sel.Valid() }

func (nativeBackend) Collect(sel Selector) (Snapshot, error) {
	who := platform.WhoSelf
	switch pid, isPID := sel.PID(); {
	case sel.IsChildren():
		who = platform.WhoChildren
	case isPID && pid != os.Getpid():
		p, err := platform.ReadProcess(pid)
		if err != nil {
			return Snapshot{}, err
		}
		return fromProcessSample(p), nil
	}
	ru, err := platform.Getrusage(who)
	if err != nil {
		return Snapshot{}, err
	}
	return fromRUsage(ru), nil
}
