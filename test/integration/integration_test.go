//go:build integration

// Package integration exercises collection against the running operating
// system and renders the sample reports in test/configs.
package integration

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/opd-ai/go-rusage/internal/config"
	"github.com/opd-ai/go-rusage/pkg/rusage"
)

// getTestConfigsDir returns the path to the test configs directory.
// It calls t.Fatal if runtime.Caller fails.
func getTestConfigsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed to get current file path")
	}
	return filepath.Join(filepath.Dir(file), "..", "configs")
}

// burnCPU spins for d of wall-clock time.
func burnCPU(d time.Duration) uint64 {
	var n uint64
	for deadline := time.Now().Add(d); time.Now().Before(deadline); {
		for i := 0; i < 1000; i++ {
			n += uint64(i) * n
		}
	}
	return n
}

func cpuTime(s rusage.Snapshot) time.Duration {
	return s.UserCPUTime.Std() + s.SystemCPUTime.Std()
}

func TestSelfUsageGrows(t *testing.T) {
	reg := rusage.DefaultRegistry()
	if reg.Strategy() == rusage.StrategyStub {
		t.Skip("no process accounting on this platform")
	}

	start, err := rusage.CollectSelf()
	if err != nil {
		t.Fatalf("CollectSelf failed: %v", err)
	}
	burnCPU(100 * time.Millisecond)
	delta, err := rusage.DeltaNow(start)
	if err != nil {
		t.Fatalf("DeltaNow failed: %v", err)
	}

	if cpuTime(delta) <= 0 {
		t.Errorf("no CPU time accrued: %s", delta)
	}
	for _, f := range reg.Fields() {
		if f.Supported && start.IsUnsupported(f.Slot) {
			t.Errorf("supported field %s holds its sentinel", f.Name())
		}
		if !f.Supported && !start.IsUnsupported(f.Slot) {
			t.Errorf("unsupported field %s holds a value", f.Name())
		}
	}
}

func TestChildrenUsage(t *testing.T) {
	reg := rusage.DefaultRegistry()
	if reg.Strategy() != rusage.StrategyRUsage {
		t.Skip("children accounting needs getrusage")
	}

	before, err := rusage.CollectChildren()
	if err != nil {
		t.Fatalf("CollectChildren failed: %v", err)
	}
	if err := exec.Command(os.Args[0], "-test.run=^$").Run(); err != nil {
		t.Fatalf("child failed: %v", err)
	}
	after, err := rusage.CollectChildren()
	if err != nil {
		t.Fatalf("CollectChildren failed: %v", err)
	}
	if cpuTime(after) < cpuTime(before) {
		t.Errorf("children CPU time went backwards: %v -> %v", cpuTime(before), cpuTime(after))
	}
	if after.MinorPageFaults <= before.MinorPageFaults {
		t.Errorf("child page faults not accounted: %d -> %d", before.MinorPageFaults, after.MinorPageFaults)
	}
}

func TestPIDUsage(t *testing.T) {
	if rusage.DefaultRegistry().Strategy() == rusage.StrategyStub {
		t.Skip("no process accounting on this platform")
	}

	self, err := rusage.CollectPID(os.Getpid())
	if err != nil {
		t.Fatalf("CollectPID(self) failed: %v", err)
	}
	if cpuTime(self) <= 0 {
		t.Errorf("own process reports no CPU time: %s", self)
	}

	if runtime.GOOS == "linux" {
		parent, err := rusage.CollectPID(os.Getppid())
		if err != nil {
			t.Fatalf("CollectPID(parent) failed: %v", err)
		}
		if parent.MinorPageFaults.IsUnsupported() {
			t.Error("parent page faults not read from /proc")
		}
	}

	_, err = rusage.CollectPID(1 << 30)
	if err == nil {
		t.Fatal("expected error for a pid that does not exist")
	}
	if !errors.Is(err, rusage.ErrSystem) && !errors.Is(err, rusage.ErrResource) {
		t.Errorf("unexpected error kind: %v", err)
	}
}

func TestReportFiles(t *testing.T) {
	t.Setenv("RUSAGE_SEP", " -> ")

	usage, err := rusage.CollectSelf()
	if err != nil {
		t.Fatalf("CollectSelf failed: %v", err)
	}

	tests := []struct {
		file     string
		section  config.Section
		contains string
	}{
		{"basic.report", config.SectionAll, "User Level CPU Time"},
		{"faults.report", config.SectionTemplate, "Minor Page Faults: "},
		{"basic.lua", config.SectionTimes, "User Level CPU Time"},
		{"template.lua", config.SectionTemplate, "Major Page Faults: "},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			cfg, warnings, err := config.Load(filepath.Join(getTestConfigsDir(t), tt.file))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if len(warnings) > 0 {
				t.Errorf("unexpected warnings: %v", warnings)
			}
			if err := config.ValidateConfigStrict(cfg); err != nil {
				t.Errorf("strict validation failed: %v", err)
			}
			if cfg.Section != tt.section {
				t.Errorf("section = %v, want %v", cfg.Section, tt.section)
			}

			opts := cfg.FormatOptions()
			var out string
			switch cfg.Section {
			case config.SectionTemplate:
				out = rusage.Expand(cfg.Template(), usage, opts)
			case config.SectionTimes:
				out = strings.Join(rusage.TimeLines(usage, opts), "\n")
			default:
				out = rusage.Text(usage, opts)
			}
			if !strings.Contains(out, tt.contains) {
				t.Errorf("rendered report missing %q:\n%s", tt.contains, out)
			}
			if strings.Contains(out, "${") {
				t.Errorf("unexpanded variables:\n%s", out)
			}
		})
	}
}

func TestMigratedReportsMatch(t *testing.T) {
	for _, file := range []string{"basic.report", "faults.report"} {
		t.Run(file, func(t *testing.T) {
			path := filepath.Join(getTestConfigsDir(t), file)
			parser := config.NewParser()
			defer parser.Close()

			plain, err := parser.ParseFile(path)
			if err != nil {
				t.Fatalf("ParseFile failed: %v", err)
			}
			luaContent, err := config.MigratePlainFile(path)
			if err != nil {
				t.Fatalf("MigratePlainFile failed: %v", err)
			}
			migrated, err := parser.Parse(luaContent)
			if err != nil {
				t.Fatalf("migrated report does not parse: %v\n%s", err, luaContent)
			}
			if plain.Empty != migrated.Empty || plain.Width != migrated.Width || plain.Section != migrated.Section {
				t.Errorf("settings differ: %+v vs %+v", plain, migrated)
			}
			if plain.Template() != migrated.Template() {
				t.Errorf("text differs: %q vs %q", plain.Template(), migrated.Template())
			}
		})
	}
}
