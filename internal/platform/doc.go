// Package platform reads raw resource-usage accounting from the operating
// system.
//
// Each reader returns platform-shaped values (RUsage, PRUsage, WindowsUsage,
// ProcessSample) without interpreting them; mapping into the portable
// snapshot happens in pkg/rusage. Readers are selected by build tags:
//
//   - getrusage(2) on Linux, Android, Darwin, the BSDs and AIX
//   - /proc/<pid>/stat, status and io on Linux for other processes
//   - gopsutil on the other getrusage platforms for other processes
//   - /proc/<pid>/usage (prusage_t) on Solaris and illumos
//   - GetProcessTimes, GetProcessMemoryInfo and GetProcessIoCounters on Windows
//
// Failed system calls are returned as *os.SyscallError. Files and handles
// that cannot be obtained are returned as *AcquireError. Every descriptor or
// handle a reader opens is released before it returns.
package platform
