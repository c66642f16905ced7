package config

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
)

// Parser reads report files, detecting whether they are Lua or plain.
type Parser struct {
	plain *PlainParser
	lua   *LuaParser
}

// NewParser creates a Parser. Close it to release the Lua runtime.
func NewParser() *Parser {
	return &Parser{
		plain: NewPlainParser(),
		lua:   NewLuaParser(nil),
	}
}

// ParseFile reads and parses the report at path.
func (p *Parser) ParseFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}
	return p.Parse(content)
}

// ParseFromFS reads and parses a report from fsys.
func (p *Parser) ParseFromFS(fsys fs.FS, path string) (*Config, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report from FS %s: %w", path, err)
	}
	return p.Parse(content)
}

// Parse parses content, detecting the format.
func (p *Parser) Parse(content []byte) (*Config, error) {
	if isLuaReport(content) {
		return p.lua.Parse(content)
	}
	return p.plain.Parse(content)
}

// ParseReader parses a report in the given format, "lua" or "plain".
func (p *Parser) ParseReader(r io.Reader, format string) (*Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	switch format {
	case "lua":
		return p.lua.Parse(content)
	case "plain":
		return p.plain.Parse(content)
	}
	return nil, fmt.Errorf("unknown format: %s (expected 'lua' or 'plain')", format)
}

// Close releases the Lua runtime.
func (p *Parser) Close() error {
	return p.lua.Close()
}

// luaReportPattern matches an assignment to rusage.config or rusage.text at
// the start of a line.
var luaReportPattern = regexp.MustCompile(`(?m)^\s*rusage\.(config|text)\s*=`)

func isLuaReport(content []byte) bool {
	return luaReportPattern.Match(content)
}

// Load parses the report at path, expands environment references and
// validates the result. Warnings are returned alongside a valid config.
func Load(path string) (*Config, []ValidationError, error) {
	p := NewParser()
	defer p.Close()

	cfg, err := p.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}
	ExpandEnvConfig(cfg)
	result := NewValidator().Validate(cfg)
	if err := result.Error(); err != nil {
		return nil, result.Warnings, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, result.Warnings, nil
}
