package config

import (
	"strings"
	"testing"

	"github.com/opd-ai/go-rusage/pkg/rusage"
)

func TestValidateDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	result := NewValidator().Validate(&cfg)
	if !result.IsValid() {
		t.Errorf("default config invalid: %v", result.Error())
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestValidateNil(t *testing.T) {
	if err := ValidateConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"negative width", func(c *Config) { c.Width = -1 }, "width"},
		{"wide width", func(c *Config) { c.Width = MaxWidth + 1 }, "width"},
		{"bad policy", func(c *Config) { c.Empty = rusage.EmptyPolicy(9) }, "empty"},
		{"bad section", func(c *Config) { c.Section = Section(9) }, "section"},
		{"bad pid", func(c *Config) { c.PIDs = []int{5, 0} }, "pids[1]"},
		{"children with pids", func(c *Config) { c.Children = true; c.PIDs = []int{5} }, "children"},
		{"template without text", func(c *Config) { c.Section = SectionTemplate }, "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			result := NewValidator().Validate(&cfg)
			if result.IsValid() {
				t.Fatal("expected validation error")
			}
			if result.Errors[0].Field != tt.field {
				t.Errorf("error field = %q, want %q", result.Errors[0].Field, tt.field)
			}
			if !strings.HasPrefix(result.Error().Error(), "validation failed: "+tt.field) {
				t.Errorf("unexpected message %q", result.Error())
			}
		})
	}
}

func TestValidateTemplateVariables(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Section = SectionTemplate
	cfg.Text = []string{
		"${user_cpu_time} ${title minor_pagef} ${line stopped_time}",
		"${cpu} ${bogus minor_pagef}",
	}

	result := NewValidator().Validate(&cfg)
	if !result.IsValid() {
		t.Fatalf("lenient validation failed: %v", result.Error())
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("got %d warnings, want 2: %v", len(result.Warnings), result.Warnings)
	}
	if result.Warnings[0].Field != "text line 2" {
		t.Errorf("warning field = %q", result.Warnings[0].Field)
	}

	if err := ValidateConfigStrict(&cfg); err == nil {
		t.Error("strict validation accepted unknown variables")
	}
	if err := ValidateConfig(&cfg); err != nil {
		t.Errorf("lenient validation failed: %v", err)
	}
}
