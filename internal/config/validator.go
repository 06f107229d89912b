package config

import (
	"strconv"
	"strings"

	"prefixtrim/internal/language"
	"prefixtrim/internal/scanner"
)

// MaxRecommendedPrefixLength is the length above which a prefix is
// probably a whole class name rather than a namespace prefix.
const MaxRecommendedPrefixLength = 16

// ValidationSeverity represents the severity of a validation issue.
type ValidationSeverity string

const (
	SeverityError   ValidationSeverity = "error"
	SeverityWarning ValidationSeverity = "warning"
)

// ConfigValidationError represents a single validation issue.
type ConfigValidationError struct {
	Field    string             // Config field with issue (e.g., "exclude[0]")
	Message  string             // Human-readable description
	Severity ValidationSeverity // "error" or "warning"
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors   []ConfigValidationError
	Warnings []ConfigValidationError
	Valid    bool // True if no errors (warnings OK)
}

// ValidateConfig checks the configuration for errors and returns all findings.
func ValidateConfig(cfg *Configuration) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ConfigValidationError{},
		Warnings: []ConfigValidationError{},
	}

	var findings []ConfigValidationError
	findings = append(findings, ValidateLanguage(cfg)...)
	findings = append(findings, ValidatePrefix(cfg)...)
	findings = append(findings, ValidateExclude(cfg)...)

	for _, f := range findings {
		if f.Severity == SeverityError {
			result.Errors = append(result.Errors, f)
		} else {
			result.Warnings = append(result.Warnings, f)
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateLanguage checks that a configured language is supported.
// An empty language is allowed; it must then come from the command line.
func ValidateLanguage(cfg *Configuration) []ConfigValidationError {
	if cfg.Language == "" {
		return nil
	}
	if _, err := language.Parse(cfg.Language); err != nil {
		return []ConfigValidationError{{
			Field:    "language",
			Message:  err.Error(),
			Severity: SeverityError,
		}}
	}
	return nil
}

// ValidatePrefix checks that a configured prefix can appear in a file name.
func ValidatePrefix(cfg *Configuration) []ConfigValidationError {
	var errors []ConfigValidationError
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		return nil
	}

	if strings.ContainsAny(prefix, `/\`) {
		errors = append(errors, ConfigValidationError{
			Field:    "prefix",
			Message:  "prefix must not contain path separators: \"" + cfg.Prefix + "\"",
			Severity: SeverityError,
		})
	}
	if strings.ContainsAny(prefix, " \t") {
		errors = append(errors, ConfigValidationError{
			Field:    "prefix",
			Message:  "prefix must not contain whitespace: \"" + cfg.Prefix + "\"",
			Severity: SeverityError,
		})
	}
	if len([]rune(prefix)) > MaxRecommendedPrefixLength {
		errors = append(errors, ConfigValidationError{
			Field:    "prefix",
			Message:  "prefix is unusually long (" + strconv.Itoa(len([]rune(prefix))) + " characters)",
			Severity: SeverityWarning,
		})
	}
	return errors
}

// ValidateExclude checks that every exclude pattern is a valid glob.
func ValidateExclude(cfg *Configuration) []ConfigValidationError {
	var errors []ConfigValidationError
	for i, pattern := range cfg.Exclude {
		if pattern == "" {
			errors = append(errors, ConfigValidationError{
				Field:    formatField("exclude", i),
				Message:  "exclude pattern cannot be empty",
				Severity: SeverityWarning,
			})
			continue
		}
		if !scanner.ValidatePattern(pattern) {
			errors = append(errors, ConfigValidationError{
				Field:    formatField("exclude", i),
				Message:  "invalid glob pattern: \"" + pattern + "\"",
				Severity: SeverityError,
			})
		}
	}
	return errors
}

// formatField creates a field reference string for validation errors.
func formatField(name string, index int) string {
	return name + "[" + strconv.Itoa(index) + "]"
}
