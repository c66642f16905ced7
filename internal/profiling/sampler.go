package profiling

import (
	"fmt"
	"sync"
	"time"

	"github.com/opd-ai/go-rusage/pkg/rusage"
)

// Sample is a snapshot taken at a point in time.
type Sample struct {
	Time  time.Time
	Usage rusage.Snapshot
}

// Growth describes the usage accumulated between two samples.
type Growth struct {
	Elapsed time.Duration
	// Delta is the usage difference between the samples.
	Delta rusage.Snapshot
	// CPU is user plus system CPU time per wall-clock second; 1.0 is one
	// fully busy core. It is negative when CPU time is not reported.
	CPU float64
	// Busy is set when CPU exceeds the configured threshold.
	Busy   bool
	Reason string
}

// SamplerConfig configures a Sampler.
type SamplerConfig struct {
	// MaxSamples bounds the retained history. Older samples are dropped.
	MaxSamples int
	// CPUThreshold marks growth as busy. Zero disables the check.
	CPUThreshold float64
}

// DefaultSamplerConfig keeps 100 samples and never reports busy growth.
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{MaxSamples: 100}
}

// Sampler keeps a bounded history of snapshots read by a collect function.
type Sampler struct {
	config  SamplerConfig
	collect func() (rusage.Snapshot, error)
	now     func() time.Time
	samples []Sample
	mu      sync.RWMutex
}

// NewSampler creates a Sampler reading snapshots with collect.
func NewSampler(config SamplerConfig, collect func() (rusage.Snapshot, error)) *Sampler {
	if config.MaxSamples < 2 {
		config.MaxSamples = DefaultSamplerConfig().MaxSamples
	}
	return &Sampler{
		config:  config,
		collect: collect,
		now:     time.Now,
		samples: make([]Sample, 0, config.MaxSamples),
	}
}

// TakeSample collects and stores a sample.
func (s *Sampler) TakeSample() (Sample, error) {
	usage, err := s.collect()
	if err != nil {
		return Sample{}, err
	}
	sample := Sample{Time: s.now(), Usage: usage}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples = append(s.samples, sample)
	if len(s.samples) > s.config.MaxSamples {
		s.samples = s.samples[1:]
	}
	return sample, nil
}

// Samples returns a copy of the history, oldest first.
func (s *Sampler) Samples() []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Len returns the number of stored samples.
func (s *Sampler) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.samples)
}

// Clear drops the history.
func (s *Sampler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = s.samples[:0]
}

// Latest returns the growth between the two newest samples, or nil with
// fewer than two.
func (s *Sampler) Latest() *Growth {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.samples)
	if n < 2 {
		return nil
	}
	return s.growth(s.samples[n-2], s.samples[n-1])
}

// Overall returns the growth between the oldest and newest samples, or nil
// with fewer than two.
func (s *Sampler) Overall() *Growth {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.samples)
	if n < 2 {
		return nil
	}
	return s.growth(s.samples[0], s.samples[n-1])
}

func (s *Sampler) growth(first, last Sample) *Growth {
	g := &Growth{
		Elapsed: last.Time.Sub(first.Time),
		Delta:   rusage.Delta(first.Usage, last.Usage),
		CPU:     -1,
	}
	if g.Elapsed <= 0 || !reportsCPU(first.Usage) || !reportsCPU(last.Usage) {
		return g
	}

	cpu := g.Delta.UserCPUTime.Std() + g.Delta.SystemCPUTime.Std()
	g.CPU = cpu.Seconds() / g.Elapsed.Seconds()
	if s.config.CPUThreshold > 0 && g.CPU > s.config.CPUThreshold {
		g.Busy = true
		g.Reason = fmt.Sprintf("CPU usage of %.2f cores exceeds threshold of %.2f", g.CPU, s.config.CPUThreshold)
	}
	return g
}

func reportsCPU(s rusage.Snapshot) bool {
	return !s.UserCPUTime.IsUnsupported() && !s.SystemCPUTime.IsUnsupported()
}
