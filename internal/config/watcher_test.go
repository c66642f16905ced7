package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report")
	if err := os.WriteFile(path, []byte("width 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 10)
	w, err := NewWatcher(path, 20*time.Millisecond, func(cfg *Config, _ []ValidationError) {
		reloaded <- cfg
	}, func(err error) {
		t.Logf("watch error: %v", err)
	})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("width 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Width != 20 {
			t.Errorf("width = %d, want 20", cfg.Width)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}

func TestWatcherReportsInvalidReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report")
	if err := os.WriteFile(path, []byte("width 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	errs := make(chan error, 10)
	w, err := NewWatcher(path, 20*time.Millisecond, nil, func(err error) { errs <- err })
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Stop()
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("width 999\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-errs:
	case <-time.After(5 * time.Second):
		t.Fatal("no error within 5s")
	}
}

func TestWatcherStopWithoutStart(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "report"), 0, nil, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if w.debounce != DefaultWatchDebounce {
		t.Errorf("debounce = %v, want default", w.debounce)
	}
	w.Stop()
	w.Stop()
	if err := w.Start(); err != ErrWatcherStopped {
		t.Errorf("Start after Stop = %v, want ErrWatcherStopped", err)
	}
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "report"), 0, nil, nil); err == nil {
		t.Error("expected error for missing directory")
	}
}
