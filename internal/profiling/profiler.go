// Package profiling records pprof profiles of the rusage command and
// samples resource usage at a fixed interval.
package profiling

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"

	"go.uber.org/multierr"
)

// Profiler writes a CPU profile covering Start to Stop and a heap profile
// at Stop.
type Profiler struct {
	cpuPath string
	memPath string
	cpuFile *os.File
	running bool
	mu      sync.Mutex
}

// Config names the profile outputs. An empty path disables that profile.
type Config struct {
	CPUProfilePath string
	MemProfilePath string
}

// Enabled reports whether any profile is requested.
func (c Config) Enabled() bool {
	return c.CPUProfilePath != "" || c.MemProfilePath != ""
}

// New creates a stopped Profiler.
func New(cfg Config) *Profiler {
	return &Profiler{cpuPath: cfg.CPUProfilePath, memPath: cfg.MemProfilePath}
}

// Start begins CPU profiling if requested.
func (p *Profiler) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return errors.New("profiler is already running")
	}
	if p.cpuPath != "" {
		f, err := os.Create(p.cpuPath)
		if err != nil {
			return fmt.Errorf("failed to create CPU profile file: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			return multierr.Append(fmt.Errorf("failed to start CPU profile: %w", err), f.Close())
		}
		p.cpuFile = f
	}
	p.running = true
	return nil
}

// Stop ends CPU profiling and writes the heap profile. Every failure is
// reported.
func (p *Profiler) Stop() (err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return errors.New("profiler is not running")
	}
	p.running = false

	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		if cerr := p.cpuFile.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close CPU profile file: %w", cerr))
		}
		p.cpuFile = nil
	}
	if p.memPath != "" {
		err = multierr.Append(err, WriteHeapProfile(p.memPath))
	}
	return err
}

// IsRunning reports whether Start has been called without Stop.
func (p *Profiler) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// WriteHeapProfile collects garbage and writes a heap profile to path.
func WriteHeapProfile(path string) (err error) {
	runtime.GC()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create memory profile file: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write memory profile: %w", err)
	}
	return nil
}
