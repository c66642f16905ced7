//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd

package rusage

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
)

func burnCPU() int {
	x := 0
	for i := 0; i < 30_000_000; i++ {
		x += i % 3
	}
	return x
}

func TestCollectSelf_RUsage(t *testing.T) {
	_ = burnCPU()
	s, err := CollectSelf()
	if err != nil {
		t.Fatalf("CollectSelf() error = %v", err)
	}
	assertOnlySupported(t, s, DefaultRegistry())
	if s.UserCPUTime.IsZero() && s.SystemCPUTime.IsZero() {
		t.Error("no CPU time recorded for the test process")
	}
}

func TestCollectSelf_Monotonic(t *testing.T) {
	a, err := Now()
	if err != nil {
		t.Fatal(err)
	}
	_ = burnCPU()
	b, err := Now()
	if err != nil {
		t.Fatal(err)
	}
	if b.UserCPUTime.Compare(a.UserCPUTime) < 0 {
		t.Errorf("user time went backwards: %v -> %v", a.UserCPUTime, b.UserCPUTime)
	}
	if b.MinorPageFaults < a.MinorPageFaults {
		t.Errorf("minor faults went backwards: %d -> %d", a.MinorPageFaults, b.MinorPageFaults)
	}
}

func TestCollectChildren_RUsage(t *testing.T) {
	path, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true(1) not available")
	}
	if err := exec.Command(path).Run(); err != nil {
		t.Fatalf("run child: %v", err)
	}
	s, err := CollectChildren()
	if err != nil {
		t.Fatalf("CollectChildren() error = %v", err)
	}
	assertOnlySupported(t, s, DefaultRegistry())
}

func TestCollectPID_SelfUsesGetrusage(t *testing.T) {
	s, err := CollectPID(os.Getpid())
	if err != nil {
		t.Fatalf("CollectPID(self) error = %v", err)
	}
	assertOnlySupported(t, s, DefaultRegistry())
}

func TestCollectPID_Missing(t *testing.T) {
	// Pids are bounded well below this on every supported kernel.
	_, err := CollectPID(1 << 30)
	if err == nil {
		t.Fatal("expected error for a missing process")
	}
}

func TestCollectPID_OtherSkipShowsRegistryFields(t *testing.T) {
	path, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep(1) not available")
	}
	cmd := exec.Command(path, "5")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start child: %v", err)
	}
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	s, err := CollectPID(cmd.Process.Pid)
	if err != nil {
		t.Skipf("CollectPID(child) error = %v", err)
	}
	got := lo.Map(Lines(s, FormatOptions{Policy: EmptySkip}), func(line string, _ int) string {
		return strings.TrimSpace(line[:DefaultWidth])
	})
	want := lo.FilterMap(DefaultRegistry().Fields(), func(f Field, _ int) (string, bool) {
		return f.Title, f.Supported
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("skip titles mismatch (-want +got):\n%s", diff)
	}
}
