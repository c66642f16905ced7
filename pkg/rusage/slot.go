package rusage

import "fmt"

// Slot identifies one field of a Snapshot. Duration slots come first, in
// declaration order, followed by the count slots.
type Slot int

const (
	SlotUserCPUTime Slot = iota
	SlotSystemCPUTime
	SlotTrapCPUTime
	SlotTextPageFaultTime
	SlotDataPageFaultTime
	SlotKernelPageFaultTime
	SlotUserLockTime
	SlotOtherSleepTime
	SlotWaitCPUTime
	SlotStoppedTime

	SlotMinorPageFaults
	SlotMajorPageFaults
	SlotProcessSwaps
	SlotInputBlocks
	SlotOutputBlocks
	SlotMessagesSent
	SlotMessagesReceived
	SlotMessagesOther
	SlotSignalsReceived
	SlotVoluntaryContextSwitches
	SlotInvoluntaryContextSwitches
	SlotSystemCalls
	SlotCharsReadWritten
	SlotCharsRead
	SlotCharsWritten
	SlotCharsOther
	SlotWorkingSetSize
	SlotWorkingSetSizePeak
	SlotPagefileUsage
	SlotPagefileUsagePeak

	slotCount
)

// Field counts.
const (
	NumDurations = int(SlotStoppedTime) + 1
	NumCounts    = int(slotCount) - NumDurations
	NumFields    = int(slotCount)
)

type slotInfo struct {
	name     string
	title    string
	duration func(*Snapshot) *Duration
	count    func(*Snapshot) *Count
}

var slotTable = [slotCount]slotInfo{
	SlotUserCPUTime:         {name: "user_cpu_time", title: "User Level CPU Time", duration: func(s *Snapshot) *Duration { return &s.UserCPUTime }},
	SlotSystemCPUTime:       {name: "system_cpu_time", title: "System Call CPU Time", duration: func(s *Snapshot) *Duration { return &s.SystemCPUTime }},
	SlotTrapCPUTime:         {name: "trap_cpu_time", title: "Other System Trap CPU Time", duration: func(s *Snapshot) *Duration { return &s.TrapCPUTime }},
	SlotTextPageFaultTime:   {name: "text_pagef_time", title: "Text Page Fault Sleep Time", duration: func(s *Snapshot) *Duration { return &s.TextPageFaultTime }},
	SlotDataPageFaultTime:   {name: "data_pagef_time", title: "Data Page Fault Sleep Time", duration: func(s *Snapshot) *Duration { return &s.DataPageFaultTime }},
	SlotKernelPageFaultTime: {name: "kernel_pagef_time", title: "Kernel Page Fault Sleep Time", duration: func(s *Snapshot) *Duration { return &s.KernelPageFaultTime }},
	SlotUserLockTime:        {name: "user_lock_time", title: "User Lock Wait Sleep Time", duration: func(s *Snapshot) *Duration { return &s.UserLockTime }},
	SlotOtherSleepTime:      {name: "other_sleep_time", title: "Other Sleep Time", duration: func(s *Snapshot) *Duration { return &s.OtherSleepTime }},
	SlotWaitCPUTime:         {name: "wait_cpu_time", title: "Wait-CPU Latency Time", duration: func(s *Snapshot) *Duration { return &s.WaitCPUTime }},
	SlotStoppedTime:         {name: "stopped_time", title: "Stopped Time", duration: func(s *Snapshot) *Duration { return &s.StoppedTime }},

	SlotMinorPageFaults:            {name: "minor_pagef", title: "Minor Page Faults", count: func(s *Snapshot) *Count { return &s.MinorPageFaults }},
	SlotMajorPageFaults:            {name: "major_pagef", title: "Major Page Faults", count: func(s *Snapshot) *Count { return &s.MajorPageFaults }},
	SlotProcessSwaps:               {name: "process_swaps", title: "Process Swaps", count: func(s *Snapshot) *Count { return &s.ProcessSwaps }},
	SlotInputBlocks:                {name: "input_blocks", title: "Input Blocks", count: func(s *Snapshot) *Count { return &s.InputBlocks }},
	SlotOutputBlocks:               {name: "output_blocks", title: "Output Blocks", count: func(s *Snapshot) *Count { return &s.OutputBlocks }},
	SlotMessagesSent:               {name: "messages_sent", title: "Messages Sent", count: func(s *Snapshot) *Count { return &s.MessagesSent }},
	SlotMessagesReceived:           {name: "messages_received", title: "Messages Received", count: func(s *Snapshot) *Count { return &s.MessagesReceived }},
	SlotMessagesOther:              {name: "messages_other", title: "Messages Other", count: func(s *Snapshot) *Count { return &s.MessagesOther }},
	SlotSignalsReceived:            {name: "signals_received", title: "Signals Received", count: func(s *Snapshot) *Count { return &s.SignalsReceived }},
	SlotVoluntaryContextSwitches:   {name: "vol_context_switch", title: "Voluntary Context Switches", count: func(s *Snapshot) *Count { return &s.VoluntaryContextSwitches }},
	SlotInvoluntaryContextSwitches: {name: "invol_context_switch", title: "Involuntary Context Switches", count: func(s *Snapshot) *Count { return &s.InvoluntaryContextSwitches }},
	SlotSystemCalls:                {name: "system_calls", title: "System Calls", count: func(s *Snapshot) *Count { return &s.SystemCalls }},
	SlotCharsReadWritten:           {name: "chars_read_written", title: "Characters Read and Written", count: func(s *Snapshot) *Count { return &s.CharsReadWritten }},
	SlotCharsRead:                  {name: "chars_read", title: "Characters Read", count: func(s *Snapshot) *Count { return &s.CharsRead }},
	SlotCharsWritten:               {name: "chars_written", title: "Characters Written", count: func(s *Snapshot) *Count { return &s.CharsWritten }},
	SlotCharsOther:                 {name: "chars_other", title: "Characters Other", count: func(s *Snapshot) *Count { return &s.CharsOther }},
	SlotWorkingSetSize:             {name: "working_set_size", title: "Working Set Size", count: func(s *Snapshot) *Count { return &s.WorkingSetSize }},
	SlotWorkingSetSizePeak:         {name: "working_set_size_peak", title: "Working Set Size Peak", count: func(s *Snapshot) *Count { return &s.WorkingSetSizePeak }},
	SlotPagefileUsage:              {name: "pagefile_usage", title: "Pagefile Usage", count: func(s *Snapshot) *Count { return &s.PagefileUsage }},
	SlotPagefileUsagePeak:          {name: "pagefile_usage_peak", title: "Pagefile Usage Peak", count: func(s *Snapshot) *Count { return &s.PagefileUsagePeak }},
}

var slotsByName = func() map[string]Slot {
	m := make(map[string]Slot, slotCount)
	for i := range slotTable {
		m[slotTable[i].name] = Slot(i)
	}
	return m
}()

// Slots returns every slot in declaration order.
func Slots() []Slot {
	out := make([]Slot, slotCount)
	for i := range out {
		out[i] = Slot(i)
	}
	return out
}

// SlotByName looks up a slot by its snake_case name, e.g. "minor_pagef".
func SlotByName(name string) (Slot, bool) {
	s, ok := slotsByName[name]
	return s, ok
}

// Valid reports whether s names a Snapshot field.
func (s Slot) Valid() bool {
	return s >= 0 && s < slotCount
}

// IsDuration reports whether s holds a Duration rather than a Count.
func (s Slot) IsDuration() bool {
	return s >= 0 && int(s) < NumDurations
}

// Name returns the snake_case identifier of s.
func (s Slot) Name() string {
	if !s.Valid() {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotTable[s].name
}

// Title returns the human-readable label of s.
func (s Slot) Title() string {
	if !s.Valid() {
		return ""
	}
	return slotTable[s].title
}

func (s Slot) String() string {
	return s.Name()
}
