package rusage

import (
	"sync"

	"github.com/samber/lo"
)

// Strategy names the operating-system accounting source a collector reads.
type Strategy int

const (
	// StrategyStub reports every field as unsupported.
	StrategyStub Strategy = iota
	// StrategyRUsage reads BSD-style getrusage accounting.
	StrategyRUsage
	// StrategyProcFS reads System V /proc/<pid>/usage accounting.
	StrategyProcFS
	// StrategyWindows reads Windows process time, memory and I/O counters.
	StrategyWindows
)

// String returns a short name for the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyRUsage:
		return "rusage"
	case StrategyProcFS:
		return "procfs"
	case StrategyWindows:
		return "windows"
	default:
		return "stub"
	}
}

var durationsBeyondCPU = []Slot{
	SlotTrapCPUTime,
	SlotTextPageFaultTime,
	SlotDataPageFaultTime,
	SlotKernelPageFaultTime,
	SlotUserLockTime,
	SlotOtherSleepTime,
	SlotWaitCPUTime,
	SlotStoppedTime,
}

var memoryCounters = []Slot{
	SlotWorkingSetSize,
	SlotWorkingSetSizePeak,
	SlotPagefileUsage,
	SlotPagefileUsagePeak,
}

// unsupportedSlots lists, per strategy, the fields its source never reports.
var unsupportedSlots = map[Strategy][]Slot{
	StrategyRUsage: lo.Flatten([][]Slot{
		durationsBeyondCPU,
		{SlotMessagesOther, SlotSystemCalls, SlotCharsReadWritten, SlotCharsRead, SlotCharsWritten, SlotCharsOther},
		memoryCounters,
	}),
	StrategyProcFS: lo.Flatten([][]Slot{
		{SlotMessagesOther, SlotCharsRead, SlotCharsWritten, SlotCharsOther},
		memoryCounters,
	}),
	StrategyWindows: lo.Flatten([][]Slot{
		durationsBeyondCPU,
		{
			SlotMinorPageFaults, SlotProcessSwaps, SlotInputBlocks, SlotOutputBlocks,
			SlotSignalsReceived, SlotVoluntaryContextSwitches, SlotInvoluntaryContextSwitches,
			SlotSystemCalls,
		},
	}),
	StrategyStub: Slots(),
}

// Field describes one Snapshot field.
type Field struct {
	Title      string
	Slot       Slot
	IsDuration bool
	Supported  bool
}

// Name returns the snake_case name of the field's slot.
func (f Field) Name() string {
	return f.Slot.Name()
}

// Registry is the immutable table of field descriptors for one strategy.
type Registry struct {
	strategy Strategy
	fields   [slotCount]Field
}

// NewRegistry builds the field table for strategy: every field is marked
// supported, then the strategy's exclusions are cleared.
func NewRegistry(strategy Strategy) *Registry {
	r := &Registry{strategy: strategy}
	for i := range r.fields {
		slot := Slot(i)
		r.fields[i] = Field{
			Title:      slot.Title(),
			Slot:       slot,
			IsDuration: slot.IsDuration(),
			Supported:  true,
		}
	}
	for _, slot := range unsupportedSlots[strategy] {
		r.fields[slot].Supported = false
	}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the registry for the strategy compiled into this
// binary. It is built on first use and shared afterwards.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(nativeStrategy)
	})
	return defaultRegistry
}

// Strategy returns the strategy the registry describes.
func (r *Registry) Strategy() Strategy {
	return r.strategy
}

// Fields returns all descriptors in slot order.
func (r *Registry) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields[:])
	return out
}

// Field returns the descriptor for slot. It panics if slot is not valid;
// use Supported to test an untrusted slot.
func (r *Registry) Field(slot Slot) Field {
	return r.fields[slot]
}

// Supported reports whether slot is measurable under the registry's strategy.
func (r *Registry) Supported(slot Slot) bool {
	return slot.Valid() && r.fields[slot].Supported
}

// DurationFields returns the duration descriptors in slot order.
func (r *Registry) DurationFields() []Field {
	return lo.Filter(r.Fields(), func(f Field, _ int) bool { return f.IsDuration })
}

// CountFields returns the count descriptors in slot order.
func (r *Registry) CountFields() []Field {
	return lo.Reject(r.Fields(), func(f Field, _ int) bool { return f.IsDuration })
}

// DurationTitles returns the titles of the duration fields in slot order.
func (r *Registry) DurationTitles() []string {
	return lo.Map(r.DurationFields(), func(f Field, _ int) string { return f.Title })
}

// CountTitles returns the titles of the count fields in slot order.
func (r *Registry) CountTitles() []string {
	return lo.Map(r.CountFields(), func(f Field, _ int) string { return f.Title })
}
