package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-rusage/internal/config"
	"github.com/opd-ai/go-rusage/pkg/rusage"
)

// result is the usage collected for one selector.
type result struct {
	sel   rusage.Selector
	usage rusage.Snapshot
}

// selectorsFor lists the selectors a report covers.
func selectorsFor(cfg *config.Config) []rusage.Selector {
	switch {
	case cfg.Children:
		return []rusage.Selector{rusage.Children()}
	case len(cfg.PIDs) > 0:
		return lo.Map(cfg.PIDs, func(pid int, _ int) rusage.Selector { return rusage.PID(pid) })
	}
	return []rusage.Selector{rusage.Self()}
}

// collectAll reads every selector in parallel. Selectors that fail are left
// out of the results and their errors combined.
func collectAll(ctx context.Context, c *rusage.Collector, sels []rusage.Selector) ([]result, error) {
	snaps := make([]rusage.Snapshot, len(sels))
	errs := make([]error, len(sels))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, sel := range sels {
		i, sel := i, sel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			snaps[i], errs[i] = c.Collect(sel)
			return nil
		})
	}
	_ = g.Wait()

	results := lo.FilterMap(sels, func(sel rusage.Selector, i int) (result, bool) {
		return result{sel: sel, usage: snaps[i]}, errs[i] == nil
	})
	return results, multierr.Combine(errs...)
}

// reporter renders results as the report describes.
type reporter struct {
	cfg  *config.Config
	opts rusage.FormatOptions
}

func newReporter(cfg *config.Config, registry *rusage.Registry) *reporter {
	opts := cfg.FormatOptions()
	opts.Registry = registry
	return &reporter{cfg: cfg, opts: opts}
}

func (r *reporter) render(w io.Writer, results []result) error {
	if r.cfg.Table && r.cfg.Section != config.SectionTemplate {
		return r.renderTable(w, results)
	}
	for i, res := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s:\n", res.sel)
		}
		if body := r.body(res.usage); body != "" {
			if _, err := fmt.Fprintln(w, body); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *reporter) body(s rusage.Snapshot) string {
	switch r.cfg.Section {
	case config.SectionTimes:
		return strings.Join(rusage.TimeLines(s, r.opts), "\n")
	case config.SectionValues:
		return strings.Join(rusage.ValueLines(s, r.opts), "\n")
	case config.SectionCompact:
		return s.String()
	case config.SectionTemplate:
		return rusage.Expand(r.cfg.Template(), s, r.opts)
	}
	return rusage.Text(s, r.opts)
}

func (r *reporter) fields() []rusage.Field {
	switch r.cfg.Section {
	case config.SectionTimes:
		return r.opts.Registry.DurationFields()
	case config.SectionValues:
		return r.opts.Registry.CountFields()
	}
	return r.opts.Registry.Fields()
}

// renderTable writes one column per result. With the skip policy a row is
// dropped only when every result skips it.
func (r *reporter) renderTable(w io.Writer, results []result) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	if r.cfg.Section == config.SectionCompact {
		t.AppendHeader(table.Row{"Target", "Usage"})
		for _, res := range results {
			t.AppendRow(table.Row{res.sel.String(), res.usage.String()})
		}
		_, err := fmt.Fprintln(w, t.Render())
		return err
	}

	header := table.Row{"Field"}
	configs := make([]table.ColumnConfig, 0, len(results))
	for i, res := range results {
		header = append(header, res.sel.String())
		configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for _, f := range r.fields() {
		row := table.Row{f.Title}
		shown := false
		for _, res := range results {
			v, ok := rusage.FormatField(res.usage, f, r.opts.Policy)
			shown = shown || ok
			row = append(row, strings.TrimSpace(v))
		}
		if shown {
			t.AppendRow(row)
		}
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// renderPolicies writes s once under every empty-field policy.
func (r *reporter) renderPolicies(w io.Writer, s rusage.Snapshot) error {
	policies := []rusage.EmptyPolicy{rusage.EmptyNone, rusage.EmptyZero, rusage.EmptyNull, rusage.EmptySkip}
	for i, policy := range policies {
		if i > 0 {
			fmt.Fprintln(w)
		}
		opts := r.opts
		opts.Policy = policy
		if _, err := fmt.Fprintf(w, "empty %s:\n%s\n", policy, rusage.Text(s, opts)); err != nil {
			return err
		}
	}
	return nil
}
