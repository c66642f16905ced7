package rusage

import "strconv"

type selectorKind int

const (
	selectorInvalid selectorKind = iota
	selectorSelf
	selectorChildren
	selectorPID
)

// Selector chooses whose usage a collector reads. The zero Selector is not
// recognized by any collector.
type Selector struct {
	kind selectorKind
	pid  int
}

// Self selects the calling process.
func Self() Selector { return Selector{kind: selectorSelf} }

// Children selects the terminated and waited-for children of the calling
// process.
func Children() Selector { return Selector{kind: selectorChildren} }

// PID selects the process with the given id. Non-positive ids yield an
// unrecognized selector.
func PID(pid int) Selector {
	if pid <= 0 {
		return Selector{}
	}
	return Selector{kind: selectorPID, pid: pid}
}

// Valid reports whether s is one of the recognized selectors.
func (s Selector) Valid() bool { return s.kind != selectorInvalid }

// IsSelf reports whether s selects the calling process.
func (s Selector) IsSelf() bool { return s.kind == selectorSelf }

// IsChildren reports whether s selects waited-for children.
func (s Selector) IsChildren() bool { return s.kind == selectorChildren }

// PID returns the selected process id and true for PID selectors.
func (s Selector) PID() (int, bool) {
	return s.pid, s.kind == selectorPID
}

func (s Selector) String() string {
	switch s.kind {
	case selectorSelf:
		return "self"
	case selectorChildren:
		return "children"
	case selectorPID:
		return "pid " + strconv.Itoa(s.pid)
	}
	return "invalid"
}
