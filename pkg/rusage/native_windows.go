package rusage

import "github.com/opd-ai/go-rusage/internal/platform"

const nativeStrategy = StrategyWindows

// nativeBackend queries process times, memory and I/O counters. Windows keeps
// no accounting for waited-for children.
type nativeBackend struct{}

func (nativeBackend) Strategy() Strategy { return StrategyWindows }

func (nativeBackend) Accepts(sel Selector) bool {
	return sel.Valid() && !sel.IsChildren()
}

func (nativeBackend) Collect(sel Selector) (Snapshot, error) {
	pid, _ := sel.PID()
	w, err := platform.ReadWindowsProcess(pid)
	if err != nil {
		return Snapshot{}, err
	}
	return fromWindows(w), nil
}
