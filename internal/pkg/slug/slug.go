// Package slug validates and derives URL-safe identifiers. Post slugs only
// need to be unique per publish day; category and tag slugs are global.
package slug

import "strings"

// Valid reports whether s is a usable slug: non-empty, and made of ASCII
// letters, digits, hyphens or underscores only.
func Valid(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

// Generate derives a slug from free text: lower-cased, spaces collapsed to
// single hyphens, everything outside the slug charset dropped.
func Generate(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, s)

	s = strings.Trim(s, "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}
