// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
// Unlike ASCII-only slug generators, letters outside the Latin alphabet are
// preserved so labels like "카지노" keep their characters in the URL.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxLen is the maximum slug length in runes.
const MaxLen = 80

// Generate creates a URL-friendly slug from the given string.
// The input is trimmed, lowercased, and NFKD-decomposed (combining marks
// are stripped, so "Café" becomes "cafe"). Every run of characters that
// are neither letters nor digits collapses to a single hyphen. The result
// is truncated to MaxLen runes and never starts or ends with a hyphen.
//
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	s = norm.NFKD.String(strings.ToLower(strings.TrimSpace(s)))

	var b strings.Builder
	b.Grow(len(s))
	hyphenPending := false
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Mn, r):
			// Combining mark left over from decomposition — drop it.
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if hyphenPending && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphenPending = false
			b.WriteRune(r)
		default:
			hyphenPending = true
		}
	}

	// Recompose so scripts with decomposable syllables (Hangul) round-trip
	// to their precomposed form after the combining marks are gone.
	return truncate(norm.NFC.String(b.String()), MaxLen)
}

// truncate cuts a slug to at most max runes and strips any hyphen the cut
// leaves dangling at the end.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		s = string(runes[:max])
	}
	return strings.TrimRight(s, "-")
}
