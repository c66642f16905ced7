package config

import "github.com/opd-ai/go-rusage/pkg/rusage"

// MaxWidth bounds the title column.
const MaxWidth = 200

// DefaultConfig returns the report used when no file is given.
func DefaultConfig() Config {
	return Config{
		Empty:     rusage.EmptyZero,
		Width:     rusage.DefaultWidth,
		Separator: rusage.DefaultSeparator,
		Section:   SectionAll,
	}
}
