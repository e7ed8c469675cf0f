// Package sanitize holds the input cleanup and validation rules applied
// before anything reaches the database.
package sanitize

import (
	"regexp"
	"strings"
)

const (
	MaxNameLen    = 100
	MaxTitleLen   = 255
	MaxMessageLen = 5000
)

var (
	// Defense in depth only. Stored values are data, not rendered HTML;
	// this strips the obvious script payloads like the original intake did.
	scriptRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)

	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Clean trims whitespace and removes embedded script tags.
func Clean(s string) string {
	return strings.TrimSpace(scriptRe.ReplaceAllString(s, ""))
}

// ValidEmail reports whether s has a local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}
