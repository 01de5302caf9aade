// internal/textnorm/normalize.go

// Package textnorm prepares text for offset matching. Remote analysis results
// and the live document must agree character-for-character, so both sides pass
// through the same canonicalization before any substring search.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Invisible characters that paste operations commonly smuggle into documents.
// They are zero-width on screen but break exact substring matching.
var zeroWidthReplacer = strings.NewReplacer(
	"\u200b", "", // zero-width space
	"\u200c", "", // zero-width non-joiner
	"\u200d", "", // zero-width joiner
	"\ufeff", "", // BOM / zero-width no-break space
)

// Normalize applies Unicode canonical composition (NFC), strips zero-width
// characters and trims surrounding whitespace. Idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return strings.TrimSpace(Clean(s))
}

// Clean is Normalize without the trim. The document applies it to all loaded
// and inserted text so live content and matcher input share the same offsets;
// trimming there would eat meaningful whitespace.
func Clean(s string) string {
	s = zeroWidthReplacer.Replace(s)
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	return s
}
