//go:build !plan9

package rusage

import (
	"errors"
	"syscall"
)

func errnoOf(err error) (uintptr, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uintptr(errno), true
	}
	return 0, false
}
