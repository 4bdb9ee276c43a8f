package catalog

import (
	"strings"
	"unicode"
)

// NormalizeName canonicalizes a tag or material name the same way the
// catalog service does: lowercase, whitespace and underscores become
// hyphens, anything outside [a-z0-9-] is dropped, hyphen runs collapse
// and leading/trailing hyphens are trimmed.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	prevHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsSpace(r) || r == '_' || r == '-':
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevHyphen = false
		}
	}

	return strings.Trim(b.String(), "-")
}

// ContainsName reports whether names holds name after normalization.
func ContainsName(names []string, name string) bool {
	target := NormalizeName(name)
	for _, n := range names {
		if NormalizeName(n) == target {
			return true
		}
	}
	return false
}
