package display

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Severity is a presentation-only tier for a status string. It never
// affects logging or notification decisions.
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

var (
	criticalWords = []string{"out", "empty", "critical"}
	warningWords  = []string{"low", "running"}
)

// Title converts a machine-friendly token into human-readable title case:
// "whole_milk" becomes "Whole Milk". Underscores and hyphens act as word
// separators. Empty input yields an empty string.
func Title(token string) string {
	replaced := strings.NewReplacer("_", " ", "-", " ").Replace(token)

	words := strings.Fields(replaced)
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
	}

	return strings.Join(words, " ")
}

// Classify maps a status string to a severity tier by keyword match:
// out/empty/critical are critical, low/running are warnings, anything
// else is normal.
func Classify(status string) Severity {
	lowered := strings.ToLower(status)

	for _, word := range criticalWords {
		if strings.Contains(lowered, word) {
			return SeverityCritical
		}
	}
	for _, word := range warningWords {
		if strings.Contains(lowered, word) {
			return SeverityWarning
		}
	}
	return SeverityNormal
}
