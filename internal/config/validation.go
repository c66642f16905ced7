package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/opd-ai/go-rusage/pkg/rusage"
)

// ValidationError is one problem found in a report.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult collects errors and warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// IsValid reports whether no errors were found.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error combines all errors, or returns nil.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}
	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError records an error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning records a warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// templateVarPattern matches ${name} and ${verb name} template variables.
var templateVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Validator checks report values and template variables.
type Validator struct {
	// strict turns unknown template variables into errors.
	strict bool
}

// NewValidator creates a lenient Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// WithStrictMode makes unknown template variables errors instead of
// warnings.
func (v *Validator) WithStrictMode(strict bool) *Validator {
	v.strict = strict
	return v
}

// Validate checks cfg.
func (v *Validator) Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		result.AddError("config", "config is nil")
		return result
	}

	if cfg.Width < 0 || cfg.Width > MaxWidth {
		result.AddError("width", fmt.Sprintf("must be between 0 and %d, got %d", MaxWidth, cfg.Width))
	}
	if cfg.Empty < rusage.EmptyNone || cfg.Empty > rusage.EmptySkip {
		result.AddError("empty", fmt.Sprintf("unknown policy %d", int(cfg.Empty)))
	}
	if _, ok := sectionNames[cfg.Section]; !ok {
		result.AddError("section", fmt.Sprintf("unknown section %d", int(cfg.Section)))
	}
	for i, pid := range cfg.PIDs {
		if pid <= 0 {
			result.AddError(fmt.Sprintf("pids[%d]", i), fmt.Sprintf("must be positive, got %d", pid))
		}
	}
	if cfg.Children && len(cfg.PIDs) > 0 {
		result.AddError("children", "cannot be combined with pids")
	}
	if cfg.Section == SectionTemplate && len(cfg.Text) == 0 {
		result.AddError("text", "template section needs a text template")
	}
	for i, line := range cfg.Text {
		v.validateTemplateLine(line, i+1, result)
	}
	return result
}

func (v *Validator) validateTemplateLine(line string, lineNum int, result *ValidationResult) {
	for _, m := range templateVarPattern.FindAllStringSubmatch(line, -1) {
		parts := strings.Fields(m[1])
		ok := false
		switch len(parts) {
		case 1:
			_, ok = rusage.SlotByName(parts[0])
		case 2:
			_, ok = rusage.SlotByName(parts[1])
			ok = ok && (parts[0] == "title" || parts[0] == "line")
		}
		if ok {
			continue
		}
		field := fmt.Sprintf("text line %d", lineNum)
		msg := fmt.Sprintf("unknown variable %s", m[0])
		if v.strict {
			result.AddError(field, msg)
		} else {
			result.AddWarning(field, msg)
		}
	}
}

// ValidateConfig validates cfg leniently.
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg).Error()
}

// ValidateConfigStrict validates cfg, treating unknown variables as errors.
func ValidateConfigStrict(cfg *Config) error {
	return NewValidator().WithStrictMode(true).Validate(cfg).Error()
}
