package model

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify converts a name into a URL-safe slug: accents are folded to ASCII,
// everything is lower-cased, punctuation is dropped and runs of whitespace or
// hyphens become a single hyphen. An empty result falls back to "tab".
func Slugify(name string) string {
	stripMarks := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			hyphen = false
		case r == '-' || unicode.IsSpace(r):
			if b.Len() > 0 && !hyphen {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-_")
	if len(slug) > 100 {
		slug = strings.Trim(slug[:100], "-_")
	}
	if slug == "" {
		return "tab"
	}
	return slug
}

// SlugCandidate returns the n-th candidate for base: base, base-2, base-3...
func SlugCandidate(base string, n int) string {
	if n <= 1 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
