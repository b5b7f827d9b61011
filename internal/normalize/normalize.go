// Package normalize cleans raw utterance text before classification.
package normalize

import "strings"

// substitutions maps known speech-to-text mis-transcriptions to their
// intended form. Applied after lowercasing.
var substitutions = map[string]string{
	"crome":       "chrome",
	"googel":      "google",
	"fire fox":    "firefox",
	"you tube":    "youtube",
	"vs code":     "vscode",
	"note pad":    "notepad",
	"screen shot": "screenshot",
}

// Clean returns the normalized form of a raw utterance: trimmed,
// whitespace-collapsed, lowercased, with known mis-transcriptions fixed.
// Clean is idempotent and never fails; empty input yields empty output.
func Clean(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	for from, to := range substitutions {
		s = strings.ReplaceAll(s, from, to)
	}
	return s
}

// Tokens splits a normalized utterance into words.
func Tokens(s string) []string {
	return strings.Fields(s)
}
