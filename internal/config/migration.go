package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Migrator converts a Config into an equivalent Lua report.
type Migrator struct {
	// includeComments adds explanatory comments to the output.
	includeComments bool
	// preserveDefaults writes settings that match the defaults.
	preserveDefaults bool
}

// MigratorOption configures a Migrator.
type MigratorOption func(*Migrator)

// WithComments controls explanatory comments in the output.
func WithComments(include bool) MigratorOption {
	return func(m *Migrator) {
		m.includeComments = include
	}
}

// WithDefaults writes settings even when they match the defaults.
func WithDefaults(preserve bool) MigratorOption {
	return func(m *Migrator) {
		m.preserveDefaults = preserve
	}
}

// NewMigrator creates a Migrator; comments are on and defaults omitted
// unless opts say otherwise.
func NewMigrator(opts ...MigratorOption) *Migrator {
	m := &Migrator{includeComments: true}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MigrateToLua renders cfg as a Lua report.
func (m *Migrator) MigrateToLua(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	if m.includeComments {
		buf.WriteString("-- rusage report\n")
		buf.WriteString("-- Converted from a plain report file\n\n")
	}

	buf.WriteString("rusage.config = {\n")
	m.writeConfigTable(&buf, cfg)
	buf.WriteString("}\n")

	if len(cfg.Text) > 0 {
		buf.WriteString("\n")
		m.writeText(&buf, cfg.Text)
	}
	return buf.Bytes(), nil
}

func (m *Migrator) writeConfigTable(buf *bytes.Buffer, cfg *Config) {
	defaults := DefaultConfig()

	if m.preserveDefaults || cfg.Empty != defaults.Empty {
		m.writeString(buf, "empty", cfg.Empty.String())
	}
	if m.preserveDefaults || cfg.Width != defaults.Width {
		fmt.Fprintf(buf, "    width = %d,\n", cfg.Width)
	}
	if m.preserveDefaults || cfg.Separator != defaults.Separator {
		m.writeString(buf, "separator", cfg.Separator)
	}
	if m.preserveDefaults || cfg.Section != defaults.Section {
		m.writeString(buf, "section", cfg.Section.String())
	}
	if m.preserveDefaults || cfg.Children {
		fmt.Fprintf(buf, "    children = %t,\n", cfg.Children)
	}
	if m.preserveDefaults || cfg.Table {
		fmt.Fprintf(buf, "    table = %t,\n", cfg.Table)
	}
	if len(cfg.PIDs) > 0 {
		pids := make([]string, len(cfg.PIDs))
		for i, pid := range cfg.PIDs {
			pids[i] = fmt.Sprint(pid)
		}
		fmt.Fprintf(buf, "    pids = { %s },\n", strings.Join(pids, ", "))
	}
}

// writeText writes the template as a long bracket string, raising the
// bracket level until the closing delimiter does not occur in the text.
func (m *Migrator) writeText(buf *bytes.Buffer, lines []string) {
	if m.includeComments {
		buf.WriteString("-- Text template; ${field_name} expands to a field value\n")
	}
	text := strings.Join(lines, "\n")
	level := ""
	for strings.Contains(text, "]"+level+"]") {
		level += "="
	}
	fmt.Fprintf(buf, "rusage.text = [%s[\n%s]%s]\n", level, text, level)
}

var luaStringEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

func (m *Migrator) writeString(buf *bytes.Buffer, name, value string) {
	fmt.Fprintf(buf, "    %s = '%s',\n", name, luaStringEscaper.Replace(value))
}

// MigratePlainFile reads a plain report and converts it to Lua.
func MigratePlainFile(path string, opts ...MigratorOption) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return MigratePlainContent(content, opts...)
}

// MigratePlainContent converts plain report content to Lua.
func MigratePlainContent(content []byte, opts ...MigratorOption) ([]byte, error) {
	cfg, err := NewPlainParser().Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse plain report: %w", err)
	}
	return NewMigrator(opts...).MigrateToLua(cfg)
}
