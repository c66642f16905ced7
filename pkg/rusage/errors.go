package rusage

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is against a *CollectError.
var (
	// ErrInvalidSelector is returned for selectors the collector does not
	// recognize. No operating-system call is made.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrSystem reports a failed operating-system query.
	ErrSystem = errors.New("system query failed")

	// ErrResource reports a file or handle that could not be obtained.
	ErrResource = errors.New("resource unavailable")
)

// CollectError describes a failed collection.
type CollectError struct {
	// Kind is ErrInvalidSelector, ErrSystem or ErrResource.
	Kind error
	// Op names the failing operation, e.g. "getrusage".
	Op string
	// Selector is the selector that was being collected.
	Selector Selector
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *CollectError) Error() string {
	msg := fmt.Sprintf("rusage: %s", e.Kind)
	if e.Op != "" {
		msg += " in " + e.Op
	}
	msg += fmt.Sprintf(" (%s)", e.Selector)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *CollectError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Code returns the native error number carried by the cause, if any.
func (e *CollectError) Code() (uintptr, bool) {
	return errnoOf(e.Err)
}

func newCollectError(kind error, op string, sel Selector, err error) *CollectError {
	return &CollectError{Kind: kind, Op: op, Selector: sel, Err: err}
}
