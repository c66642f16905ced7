package rusage

import (
	"errors"
	"os"

	"github.com/opd-ai/go-rusage/internal/platform"
)

// Backend reads usage from one accounting source.
type Backend interface {
	// Strategy names the accounting source.
	Strategy() Strategy
	// Accepts reports whether the backend can serve sel.
	Accepts(sel Selector) bool
	// Collect reads a snapshot for an accepted selector. Fields the source
	// does not report must hold their sentinels.
	Collect(sel Selector) (Snapshot, error)
}

// Options configures a Collector.
type Options struct {
	// Backend overrides the accounting source.
	// Nil means the strategy compiled into this binary.
	Backend Backend

	// Logger receives debug and warning messages.
	// Nil means no logging.
	Logger Logger
}

// Collector validates selectors and reads snapshots from its backend.
// A Collector holds no mutable state and may be shared between goroutines.
type Collector struct {
	backend  Backend
	logger   Logger
	registry *Registry
}

// NewCollector returns a collector configured by opts.
func NewCollector(opts Options) *Collector {
	c := &Collector{backend: opts.Backend, logger: opts.Logger}
	if c.backend == nil {
		c.backend = nativeBackend{}
	}
	if c.logger == nil {
		c.logger = NopLogger()
	}
	if c.backend.Strategy() == nativeStrategy {
		c.registry = DefaultRegistry()
	} else {
		c.registry = NewRegistry(c.backend.Strategy())
	}
	return c
}

// Strategy returns the strategy of the collector's backend.
func (c *Collector) Strategy() Strategy {
	return c.backend.Strategy()
}

// Registry returns the field registry matching the collector's backend.
func (c *Collector) Registry() *Registry {
	return c.registry
}

// Collect reads a snapshot for sel. Unrecognized selectors fail with
// ErrInvalidSelector before the operating system is queried.
func (c *Collector) Collect(sel Selector) (Snapshot, error) {
	if !sel.Valid() || !c.backend.Accepts(sel) {
		return Snapshot{}, newCollectError(ErrInvalidSelector, "", sel, nil)
	}
	c.logger.Debug("collecting usage", "strategy", c.backend.Strategy(), "selector", sel)
	s, err := c.backend.Collect(sel)
	if err != nil {
		cerr := classify(sel, err)
		c.logger.Warn("usage collection failed", "selector", sel, "error", cerr)
		return Snapshot{}, cerr
	}
	return s, nil
}

// classify converts backend errors into a *CollectError.
func classify(sel Selector, err error) *CollectError {
	var cerr *CollectError
	if errors.As(err, &cerr) {
		return cerr
	}
	var acq *platform.AcquireError
	if errors.As(err, &acq) {
		return newCollectError(ErrResource, "open "+acq.Resource, sel, err)
	}
	var serr *os.SyscallError
	if errors.As(err, &serr) {
		return newCollectError(ErrSystem, serr.Syscall, sel, err)
	}
	return newCollectError(ErrSystem, "", sel, err)
}

var defaultCollector = NewCollector(Options{})

// Collect reads a snapshot for sel with the native strategy.
func Collect(sel Selector) (Snapshot, error) {
	return defaultCollector.Collect(sel)
}

// CollectSelf reads the calling process's usage.
func CollectSelf() (Snapshot, error) {
	return Collect(Self())
}

// CollectChildren reads the usage of the calling process's waited-for
// children.
func CollectChildren() (Snapshot, error) {
	return Collect(Children())
}

// CollectPID reads the usage of process pid.
func CollectPID(pid int) (Snapshot, error) {
	return Collect(PID(pid))
}

// Now is shorthand for CollectSelf.
func Now() (Snapshot, error) {
	return CollectSelf()
}
