package config

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/opd-ai/go-rusage/pkg/rusage"
)

// PlainParser parses plain report files: "key value" directives, one per
// line, then an optional TEXT line after which every line is template text.
// Lines starting with # are comments outside the TEXT section.
type PlainParser struct{}

// NewPlainParser creates a PlainParser.
func NewPlainParser() *PlainParser {
	return &PlainParser{}
}

// Parse parses a plain report from content.
func (p *PlainParser) Parse(content []byte) (*Config, error) {
	cfg := DefaultConfig()
	scanner := bufio.NewScanner(bytes.NewReader(content))

	var inText bool
	var text []string
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if inText {
			text = append(text, line)
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if trimmed == "TEXT" {
			inText = true
			continue
		}
		if err := p.parseDirective(&cfg, trimmed); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading report: %w", err)
	}

	cfg.Text = text
	return &cfg, nil
}

func (p *PlainParser) parseDirective(cfg *Config, line string) error {
	key, value, _ := strings.Cut(line, " ")
	key = strings.ToLower(key)
	value = strings.TrimSpace(value)

	switch key {
	case "empty":
		policy, err := rusage.ParseEmptyPolicy(value)
		if err != nil {
			return err
		}
		cfg.Empty = policy
	case "width":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid width: %w", err)
		}
		cfg.Width = n
	case "separator":
		sep, err := unquote(value)
		if err != nil {
			return fmt.Errorf("invalid separator: %w", err)
		}
		cfg.Separator = sep
	case "section":
		sec, err := ParseSection(value)
		if err != nil {
			return err
		}
		cfg.Section = sec
	case "children":
		cfg.Children = value == "" || parseBool(value)
	case "table":
		cfg.Table = value == "" || parseBool(value)
	case "pids":
		pids, err := parsePIDList(value)
		if err != nil {
			return err
		}
		cfg.PIDs = pids
	default:
		return fmt.Errorf("unknown directive %q", key)
	}
	return nil
}

// unquote strips double quotes so values may keep surrounding spaces.
func unquote(s string) (string, error) {
	if strings.HasPrefix(s, `"`) {
		return strconv.Unquote(s)
	}
	return s, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "true", "1", "on":
		return true
	}
	return false
}

// parsePIDList parses pids separated by commas or spaces.
func parsePIDList(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	pids := make([]int, 0, len(fields))
	for _, f := range fields {
		pid, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid pid %q: %w", f, err)
		}
		pids = append(pids, pid)
	}
	return pids, nil
}
