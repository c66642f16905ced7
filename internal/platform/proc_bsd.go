//go:build aix || darwin || dragonfly || freebsd || netbsd || openbsd

package platform

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/process"
)

// ReadProcess reads the accounting of process pid through gopsutil.
func ReadProcess(pid int) (ProcessSample, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return ProcessSample{}, &AcquireError{Resource: fmt.Sprintf("process %d", pid), Err: err}
	}
	return sampleProcess(p)
}
