package rusage

import (
	"fmt"
	"strings"
)

// EmptyPolicy selects how fields without a value are rendered. A field is
// empty when the registry marks it unsupported or when it holds its
// sentinel.
type EmptyPolicy int

const (
	// EmptyNone renders empty fields like EmptyZero.
	EmptyNone EmptyPolicy = iota
	// EmptyZero renders empty fields as zero.
	EmptyZero
	// EmptyNull renders empty fields with question-mark placeholders.
	EmptyNull
	// EmptySkip omits fields the registry marks unsupported. Supported
	// fields holding their sentinel render like EmptyNull.
	EmptySkip
)

// String returns the lower-case policy name.
func (p EmptyPolicy) String() string {
	switch p {
	case EmptyZero:
		return "zero"
	case EmptyNull:
		return "null"
	case EmptySkip:
		return "skip"
	default:
		return "none"
	}
}

// ParseEmptyPolicy parses "none", "zero", "null" or "skip".
func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return EmptyNone, nil
	case "zero", "":
		return EmptyZero, nil
	case "null":
		return EmptyNull, nil
	case "skip":
		return EmptySkip, nil
	}
	return EmptyZero, fmt.Errorf("unknown empty policy %q", s)
}

const (
	// DefaultWidth is the default title column width.
	DefaultWidth = 30
	// DefaultSeparator sits between the title column and the value.
	DefaultSeparator = ": "
)

// FormatOptions configures rendering.
type FormatOptions struct {
	// Policy decides how empty fields render. The zero value is EmptyNone,
	// which renders like EmptyZero.
	Policy EmptyPolicy

	// Width is the title column width. Zero means DefaultWidth.
	Width int

	// Separator follows the title column. Empty means DefaultSeparator.
	Separator string

	// Registry decides field support. Nil means DefaultRegistry().
	Registry *Registry
}

// DefaultFormatOptions returns the options used when none are given.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		Policy:    EmptyZero,
		Width:     DefaultWidth,
		Separator: DefaultSeparator,
	}
}

func (o FormatOptions) withDefaults() FormatOptions {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Separator == "" {
		o.Separator = DefaultSeparator
	}
	if o.Registry == nil {
		o.Registry = DefaultRegistry()
	}
	return o
}

// IsEmpty reports whether f has no value in s.
func IsEmpty(s Snapshot, f Field) bool {
	return !f.Supported || s.IsUnsupported(f.Slot)
}

// FormatField renders the value of f without title. The boolean is false
// when the policy skips the field.
//
// EmptySkip drops only fields the registry marks unsupported, so the lines
// shown always match the registry. A supported field that holds its
// sentinel, as a per-pid source or a one-sided delta can leave it, renders
// with the null placeholder.
func FormatField(s Snapshot, f Field, policy EmptyPolicy) (string, bool) {
	if IsEmpty(s, f) {
		if policy == EmptySkip {
			if !f.Supported {
				return "", false
			}
			policy = EmptyNull
		}
		switch policy {
		case EmptyNull:
			if f.IsDuration {
				return DurationNullText, true
			}
			return fmt.Sprintf("%*s", CountWidth, "?"), true
		default:
			if f.IsDuration {
				return DurationZeroText, true
			}
			return fmt.Sprintf("%*s", CountWidth, "0"), true
		}
	}
	if f.IsDuration {
		return s.Duration(f.Slot).Interval(), true
	}
	return fmt.Sprintf("%*d", CountWidth, uint64(s.Count(f.Slot))), true
}

func formatLines(s Snapshot, fields []Field, opts FormatOptions) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		v, ok := FormatField(s, f, opts.Policy)
		if !ok {
			continue
		}
		out = append(out, fmt.Sprintf("%-*s%s%s", opts.Width, f.Title, opts.Separator, v))
	}
	return out
}

// Lines renders every field of s, durations first, one line per field.
func Lines(s Snapshot, opts FormatOptions) []string {
	opts = opts.withDefaults()
	return formatLines(s, opts.Registry.Fields(), opts)
}

// TimeLines renders the duration fields of s.
func TimeLines(s Snapshot, opts FormatOptions) []string {
	opts = opts.withDefaults()
	return formatLines(s, opts.Registry.DurationFields(), opts)
}

// ValueLines renders the count fields of s.
func ValueLines(s Snapshot, opts FormatOptions) []string {
	opts = opts.withDefaults()
	return formatLines(s, opts.Registry.CountFields(), opts)
}

// Text joins Lines with newlines.
func Text(s Snapshot, opts FormatOptions) string {
	return strings.Join(Lines(s, opts), "\n")
}
