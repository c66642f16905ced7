// Package config loads report files for the rusage command.
//
// A report file is either a Lua script that fills the rusage.config table
// and the rusage.text template, or a plain file of "key value" directives
// followed by a TEXT section. Both produce a Config.
package config

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-rusage/pkg/rusage"
)

// Section selects which part of a snapshot a report renders.
type Section int

const (
	// SectionAll renders every field.
	SectionAll Section = iota
	// SectionTimes renders the duration fields.
	SectionTimes
	// SectionValues renders the count fields.
	SectionValues
	// SectionCompact renders the bracketed one-line form.
	SectionCompact
	// SectionTemplate expands the report's text template.
	SectionTemplate
)

var sectionNames = map[Section]string{
	SectionAll:      "all",
	SectionTimes:    "times",
	SectionValues:   "values",
	SectionCompact:  "compact",
	SectionTemplate: "template",
}

// String returns the section's name.
func (s Section) String() string {
	if name, ok := sectionNames[s]; ok {
		return name
	}
	return fmt.Sprintf("section(%d)", int(s))
}

// ParseSection parses a section name.
func ParseSection(s string) (Section, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for sec, name := range sectionNames {
		if name == s {
			return sec, nil
		}
	}
	return SectionAll, fmt.Errorf("unknown section %q", s)
}

// Config is a parsed report file.
type Config struct {
	// Empty decides how unsupported fields render.
	Empty rusage.EmptyPolicy
	// Width is the title column width.
	Width int
	// Separator sits between title and value.
	Separator string
	// Section selects what is rendered.
	Section Section
	// Children reports waited-for children instead of the process itself.
	Children bool
	// PIDs lists processes to report. Empty means the process itself.
	PIDs []int
	// Table renders one column per target.
	Table bool
	// Text is the template used by SectionTemplate, one entry per line.
	Text []string
}

// FormatOptions returns the rendering options the config describes.
func (c *Config) FormatOptions() rusage.FormatOptions {
	return rusage.FormatOptions{
		Policy:    c.Empty,
		Width:     c.Width,
		Separator: c.Separator,
	}
}

// Template joins the text lines.
func (c *Config) Template() string {
	return strings.Join(c.Text, "\n")
}
