// Package category provides deterministic normalization for product
// category names. Catalog data and cart payloads spell categories
// inconsistently (case, accents, plural forms), so every comparison in the
// pricing flow goes through Canonical or Match instead of raw strings.
package category

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Known aliases that normalization alone cannot resolve.
var overrides = map[string]string{
	"electro":        "electronica",
	"electronics":    "electronica",
	"tecnologia":     "electronica",
	"ropa-y-moda":    "ropa",
	"moda":           "ropa",
	"alimentos":      "comida",
	"libros-y-mas":   "libros",
	"hogar-y-jardin": "hogar",
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, strips diacritics and slugifies a category name.
// "Electrónica de Consumo" -> "electronica-de-consumo".
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(stripAccents, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	prevDash := true // suppress a leading dash
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Canonical maps a raw category name to its canonical slug, applying the
// override table after normalization.
func Canonical(s string) string {
	slug := Normalize(s)
	if canonical, ok := overrides[slug]; ok {
		return canonical
	}
	return slug
}

// Match reports whether two category names refer to the same category.
// Exact canonical equality wins; otherwise a substring match on the slugs
// covers compound names like "ropa-deportiva" vs "ropa".
func Match(a, b string) bool {
	ca, cb := Canonical(a), Canonical(b)
	if ca == "" || cb == "" {
		return false
	}
	if ca == cb {
		return true
	}
	return strings.Contains(ca, cb) || strings.Contains(cb, ca)
}

// MatchAny reports whether the candidate matches any of the given names.
func MatchAny(candidate string, names []string) bool {
	for _, n := range names {
		if Match(candidate, n) {
			return true
		}
	}
	return false
}
