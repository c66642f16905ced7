// Package rusage takes portable snapshots of a process's resource usage.
//
// A Snapshot holds ten CPU and sleep-time Durations and twenty event and
// memory Counts. Each field is either a measured value or its unsupported
// sentinel, so "not measurable here" is never confused with zero. Which
// fields a platform can measure is described by the Registry of the
// strategy compiled into the binary:
//
//   - StrategyRUsage: getrusage(2) on Linux, Android, Darwin, the BSDs and AIX
//   - StrategyProcFS: /proc/<pid>/usage on Solaris and illumos
//   - StrategyWindows: GetProcessTimes, GetProcessMemoryInfo and GetProcessIoCounters
//   - StrategyStub: everything unsupported
//
// # Basic Usage
//
//	start, err := rusage.CollectSelf()
//	if err != nil {
//		log.Fatal(err)
//	}
//	work()
//	delta, err := rusage.DeltaNow(start)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(rusage.Text(delta, rusage.FormatOptions{Policy: rusage.EmptySkip}))
//
// # Selectors
//
// Collect accepts Self(), Children() and PID(n). Children is only
// available with getrusage; PID(n) for a process other than the caller is
// read from /proc on Linux and through gopsutil on the other getrusage
// platforms. Unrecognized selectors fail with ErrInvalidSelector before the
// operating system is queried.
//
// # Rendering
//
// Lines, TimeLines and ValueLines render one "title: value" line per field.
// An EmptyPolicy decides what unsupported or sentinel fields look like, and
// Expand fills ${slot_name} variables in a template.
//
// Snapshots are plain values; the package keeps no state besides the
// lazily built default Registry.
package rusage
