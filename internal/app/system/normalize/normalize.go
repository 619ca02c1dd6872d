// internal/app/system/normalize/normalize.go

// Package normalize canonicalizes user-supplied values before they are
// validated or stored.
package normalize

import "strings"

// Email lowercases and trims an email address. All email comparisons in
// the stores go through this, so lookups are case-insensitive.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name collapses internal runs of whitespace and trims the ends.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NationalID strips the separators commonly typed into id numbers so the
// unique index compares digits only.
func NationalID(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// AssessmentKind classifies free-text assessment labels into the fixed
// kind set. Clients send titles like "Anxiety Assessment" or "Burnout
// Questionnaire"; the stored kind is the bare keyword. Input that matches
// no keyword becomes a lower-cased passthrough so nothing is lost, which
// also means arbitrary kinds are silently accepted.
func AssessmentKind(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(lower, "anxiety"):
		return "anxiety"
	case strings.Contains(lower, "depression"):
		return "depression"
	case strings.Contains(lower, "stress"):
		return "stress"
	case strings.Contains(lower, "burnout"):
		return "burnout"
	}
	return lower
}
