package rusage

import (
	"os"

	"github.com/opd-ai/go-rusage/internal/platform"
)

const nativeStrategy = StrategyProcFS

// nativeBackend reads /proc/<pid>/usage. Children have no usage file and are
// not accepted.
type nativeBackend struct{}

func (nativeBackend) Strategy() Strategy { return StrategyProcFS }

func (nativeBackend) Accepts(sel Selector) bool {
	return sel.Valid() && !sel.IsChildren()
}

func (nativeBackend) Collect(sel Selector) (Snapshot, error) {
	pid, ok := sel.PID()
	if !ok {
		pid = os.Getpid()
	}
	pr, err := platform.ReadPRUsage(platform.OpenFile, platform.DefaultProcRoot, pid)
	if err != nil {
		return Snapshot{}, err
	}
	return fromPRUsage(pr), nil
}
