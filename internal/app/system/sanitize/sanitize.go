// internal/app/system/sanitize/sanitize.go

// Package sanitize strips markup from free-text fields before they are
// stored. Mood notes, allergy descriptions, and notification bodies are
// echoed back to web and mobile clients, so they must never carry HTML.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
