// Package main provides the rusage command, which reports the resource
// usage of this process, its children, other processes or a command it
// runs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"time"

	"github.com/opd-ai/go-rusage/internal/config"
	"github.com/opd-ai/go-rusage/internal/profiling"
	"github.com/opd-ai/go-rusage/pkg/rusage"
)

// Version is the current version of rusage.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

// backend overrides the native accounting source. Nil means native.
var backend rusage.Backend

// stopSignals end -watch and -interval runs.
var stopSignals = []os.Signal{os.Interrupt}

// options holds the parsed command line.
type options struct {
	configPath   string
	empty        string
	width        int
	separator    string
	section      string
	children     bool
	table        bool
	watch        bool
	debug        bool
	version      bool
	execute      bool
	migrate      string
	strict       bool
	policies     bool
	interval     time.Duration
	samples      int
	cpuThreshold float64
	cpuProfile   string
	memProfile   string

	// set records the flags given explicitly.
	set map[string]bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	o := &options{set: map[string]bool{}}
	fs := flag.NewFlagSet("rusage", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: rusage [flags] [pid ...]")
		fmt.Fprintln(stderr, "       rusage [flags] -exec -- command [args...]")
		fs.PrintDefaults()
	}

	fs.StringVar(&o.configPath, "c", "", "Path to a report file (Lua or plain)")
	fs.StringVar(&o.empty, "empty", "", "How unsupported fields render: none, zero, null or skip")
	fs.IntVar(&o.width, "width", 0, "Title column width")
	fs.StringVar(&o.separator, "sep", "", "Separator between title and value")
	fs.StringVar(&o.section, "section", "", "What to render: all, times, values, compact or template")
	fs.BoolVar(&o.children, "children", false, "Report the usage of waited-for children")
	fs.BoolVar(&o.table, "table", false, "Render one column per target")
	fs.BoolVar(&o.watch, "watch", false, "Render again whenever the report file changes")
	fs.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&o.version, "v", false, "Print version and exit")
	fs.BoolVar(&o.execute, "exec", false, "Run the remaining arguments as a command and report its usage")
	fs.StringVar(&o.migrate, "migrate", "", "Convert a plain report file to Lua and print it")
	fs.BoolVar(&o.strict, "strict", false, "Treat unknown template variables as errors")
	fs.BoolVar(&o.policies, "policies", false, "Render the usage once per empty-field policy")
	fs.DurationVar(&o.interval, "interval", 0, "Sample at this interval and render the usage accrued in each")
	fs.IntVar(&o.samples, "samples", 0, "Number of intervals to render; 0 runs until interrupted")
	fs.Float64Var(&o.cpuThreshold, "cpu-threshold", 0, "Warn when an interval uses more CPU cores than this")
	fs.StringVar(&o.cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	fs.StringVar(&o.memProfile, "memprofile", "", "Write memory profile to file")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, fs.Args(), nil
}

func run(args []string, stdout, stderr io.Writer) int {
	o, rest, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if o.version {
		fmt.Fprintf(stdout, "rusage version %s\n", Version)
		return 0
	}
	if o.migrate != "" {
		return runMigrate(o.migrate, stdout, stderr)
	}

	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	logger := rusage.TextLogger(stderr, level)

	profConfig := profiling.Config{CPUProfilePath: o.cpuProfile, MemProfilePath: o.memProfile}
	if profConfig.Enabled() {
		profiler := profiling.New(profConfig)
		if err := profiler.Start(); err != nil {
			fmt.Fprintf(stderr, "Failed to start profiling: %v\n", err)
			return 1
		}
		defer func() {
			if err := profiler.Stop(); err != nil {
				fmt.Fprintf(stderr, "Warning: failed to stop profiling: %v\n", err)
			}
		}()
	}

	cfg, err := loadConfig(o, rest, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), stopSignals...)
	defer stop()

	collector := rusage.NewCollector(rusage.Options{Backend: backend, Logger: logger})

	status := 0
	if o.execute {
		if status, err = runCommand(ctx, rest, stdout, stderr); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	switch {
	case o.interval > 0:
		err = runInterval(ctx, o, cfg, collector, logger, stdout)
	case o.watch:
		err = runWatch(ctx, o, rest, cfg, collector, logger, stdout)
	default:
		err = report(ctx, o, cfg, collector, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return status
}

// loadConfig reads the report file, applies command-line overrides and
// positional pids, and validates the result.
func loadConfig(o *options, rest []string, logger rusage.Logger) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if o.configPath != "" {
		loaded, warnings, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		for _, w := range warnings {
			logger.Warn("report warning", "field", w.Field, "message", w.Message)
		}
		cfg = *loaded
	} else if o.watch {
		return nil, errors.New("-watch needs a report file (-c)")
	}

	if err := applyFlags(&cfg, o); err != nil {
		return nil, err
	}
	if err := resolveTargets(&cfg, o, rest); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveTargets adds the positional pids, or the waited-for children under
// -exec, to cfg and validates the result.
func resolveTargets(cfg *config.Config, o *options, rest []string) error {
	if o.execute {
		if len(rest) == 0 {
			return errors.New("-exec needs a command")
		}
		if len(cfg.PIDs) > 0 {
			return errors.New("-exec cannot be combined with pids")
		}
		cfg.Children = true
	} else {
		for _, arg := range rest {
			pid, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid pid %q", arg)
			}
			cfg.PIDs = append(cfg.PIDs, pid)
		}
	}

	result := config.NewValidator().WithStrictMode(o.strict).Validate(cfg)
	return result.Error()
}

// applyFlags overrides cfg with the flags given explicitly.
func applyFlags(cfg *config.Config, o *options) error {
	if o.set["empty"] {
		policy, err := rusage.ParseEmptyPolicy(o.empty)
		if err != nil {
			return err
		}
		cfg.Empty = policy
	}
	if o.set["width"] {
		cfg.Width = o.width
	}
	if o.set["sep"] {
		cfg.Separator = o.separator
	}
	if o.set["section"] {
		section, err := config.ParseSection(o.section)
		if err != nil {
			return err
		}
		cfg.Section = section
	}
	if o.set["children"] {
		cfg.Children = o.children
	}
	if o.set["table"] {
		cfg.Table = o.table
	}
	return nil
}

// runCommand runs args and waits for it, so its usage is accounted to the
// waited-for children. A command that exits unsuccessfully still gets a
// report; its exit status is returned.
func runCommand(ctx context.Context, args []string, stdout, stderr io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to run %s: %w", args[0], err)
	}
	return 0, nil
}

func report(ctx context.Context, o *options, cfg *config.Config, c *rusage.Collector, w io.Writer) error {
	results, err := collectAll(ctx, c, selectorsFor(cfg))
	r := newReporter(cfg, c.Registry())
	if o.policies {
		for i, res := range results {
			if len(results) > 1 {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "%s:\n", res.sel)
			}
			if rerr := r.renderPolicies(w, res.usage); rerr != nil {
				return rerr
			}
		}
		return err
	}
	if rerr := r.render(w, results); rerr != nil {
		return rerr
	}
	return err
}

// runWatch renders the report, then renders it again after every change to
// the report file until ctx is done. Each reload gets the same flags and
// targets as the first load.
func runWatch(ctx context.Context, o *options, rest []string, cfg *config.Config, c *rusage.Collector, logger rusage.Logger, w io.Writer) error {
	if err := report(ctx, o, cfg, c, w); err != nil {
		logger.Warn("report failed", "error", err)
	}

	watcher, err := config.NewWatcher(o.configPath, 0, func(loaded *config.Config, warnings []config.ValidationError) {
		for _, warn := range warnings {
			logger.Warn("report warning", "field", warn.Field, "message", warn.Message)
		}
		if err := applyFlags(loaded, o); err != nil {
			logger.Error("invalid flags", "error", err)
			return
		}
		if err := resolveTargets(loaded, o, rest); err != nil {
			logger.Error("invalid report", "path", o.configPath, "error", err)
			return
		}
		logger.Info("report reloaded", "path", o.configPath)
		if err := report(ctx, o, loaded, c, w); err != nil {
			logger.Warn("report failed", "error", err)
		}
	}, func(err error) {
		logger.Error("reload failed", "path", o.configPath, "error", err)
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", o.configPath, err)
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	<-ctx.Done()
	return nil
}

// runInterval renders the usage accrued by each target in every interval.
func runInterval(ctx context.Context, o *options, cfg *config.Config, c *rusage.Collector, logger rusage.Logger, w io.Writer) error {
	sels := selectorsFor(cfg)
	samplerConfig := profiling.SamplerConfig{MaxSamples: 2, CPUThreshold: o.cpuThreshold}
	samplers := make([]*profiling.Sampler, len(sels))
	for i, sel := range sels {
		sel := sel
		samplers[i] = profiling.NewSampler(samplerConfig, func() (rusage.Snapshot, error) {
			return c.Collect(sel)
		})
		if _, err := samplers[i].TakeSample(); err != nil {
			return err
		}
	}

	r := newReporter(cfg, c.Registry())
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for n := 1; o.samples <= 0 || n <= o.samples; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		results := make([]result, 0, len(sels))
		for i, s := range samplers {
			if _, err := s.TakeSample(); err != nil {
				return err
			}
			g := s.Latest()
			if g.Busy {
				logger.Warn("high CPU usage", "selector", sels[i], "reason", g.Reason)
			}
			results = append(results, result{sel: sels[i], usage: g.Delta})
		}

		if n > 1 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "interval %d (%s):\n", n, o.interval)
		if err := r.render(w, results); err != nil {
			return err
		}
	}
	return nil
}

// runMigrate converts a plain report file to Lua and writes it to stdout.
func runMigrate(path string, stdout, stderr io.Writer) int {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Report file not found: %s\n", path)
		} else {
			fmt.Fprintf(stderr, "Error accessing report file %s: %v\n", path, err)
		}
		return 1
	}

	luaContent, err := config.MigratePlainFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error converting report: %v\n", err)
		return 1
	}
	fmt.Fprint(stdout, string(luaContent))
	return 0
}
