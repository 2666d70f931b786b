package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by the error ValidationError returns.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

var qrLevels = map[string]bool{
	"low": true, "l": true,
	"medium": true, "m": true,
	"high": true, "q": true,
	"highest": true, "h": true,
}

// Validate checks the config values and returns structured results.
// knownFilenameTokens is the set of $TOKEN names accepted in
// generate.filename_template. The template file itself is checked by its
// loader.
func (c Config) Validate(knownFilenameTokens []string) []ValidationResult {
	var results []ValidationResult
	results = append(results, c.validateQR()...)
	results = append(results, c.validateFilenameTemplate(knownFilenameTokens)...)
	return results
}

// ValidationError joins the error-level results into one error wrapping
// ErrInvalidConfig. It returns nil when there are none.
func ValidationError(results []ValidationResult) error {
	var msgs []string
	for _, r := range results {
		if r.Level == "error" {
			msgs = append(msgs, r.Message)
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// HasErrors reports whether any result is error level.
func HasErrors(results []ValidationResult) bool {
	for _, r := range results {
		if r.Level == "error" {
			return true
		}
	}
	return false
}

func (c Config) validateQR() []ValidationResult {
	var results []ValidationResult
	if !qrLevels[strings.ToLower(strings.TrimSpace(c.QR.Level))] {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("qr.level %q must be one of low, medium, high, highest", c.QR.Level),
		})
	}
	if c.QR.BoxSize < 1 {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("qr.box_size must be at least 1, got %d", c.QR.BoxSize),
		})
	}
	if c.QR.BorderValue() < 0 {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("qr.border must not be negative, got %d", c.QR.BorderValue()),
		})
	}
	if c.QR.BorderValue() < 1 {
		results = append(results, ValidationResult{
			Level:   "warning",
			Message: "qr.border below 1 module may make the code hard to scan",
		})
	}
	return results
}

func (c Config) validateFilenameTemplate(known []string) []ValidationResult {
	tmpl := strings.TrimSpace(c.Generate.FilenameTemplate)
	if tmpl == "" || len(known) == 0 {
		return nil
	}
	valid := make(map[string]bool, len(known))
	for _, k := range known {
		valid[k] = true
	}

	var results []ValidationResult
	for _, token := range templateTokens(tmpl) {
		if !valid[token] {
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: fmt.Sprintf("generate.filename_template uses unknown token $%s", token),
			})
		}
	}
	return results
}

// templateTokens extracts $TOKEN names, skipping "$$" escapes.
func templateTokens(tmpl string) []string {
	var tokens []string
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '$' {
			continue
		}
		if i+1 < len(tmpl) && tmpl[i+1] == '$' {
			i++
			continue
		}
		j := i + 1
		for j < len(tmpl) && isTokenChar(tmpl[j]) {
			j++
		}
		if j > i+1 {
			tokens = append(tokens, strings.TrimRight(tmpl[i+1:j], "_"))
		}
		i = j - 1
	}
	return tokens
}

func isTokenChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_'
}
