// internal/locate/locate.go

// Package locate maps an issue reported by the analysis service onto absolute
// rune offsets in the flattened document text. Localization is best-effort:
// the service saw a snapshot of the text, the user may have edited since, and
// a miss simply means the issue gets no highlight this pass.
package locate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"proofpad/internal/issue"
	"proofpad/internal/types"
)

// Locate finds the best-matching range for iss.ErrorText inside docText.
// Both docText and the issue fields must already be normalized (the document
// keeps itself clean, issue.Sanitize handles the rest).
//
// Resolution order:
//  1. Coarse check: the issue's sentence must still relate to the document
//     (either contains the other, tolerating partial sentences at document
//     boundaries). A failed check means the issue is stale.
//  2. If ContextText is present and contains ErrorText, search only inside the
//     first occurrence of the context window.
//  3. Otherwise search inside the first occurrence of SentenceText, falling
//     back to the whole document when the sentence window has no
//     boundary-valid match.
//  4. The first occurrence whose adjacent characters are punctuation,
//     separators, control characters or absent wins. Anything else is a
//     partial-word match ("com" inside "come") and is rejected.
func Locate(docText string, iss issue.Issue) (types.Range, bool) {
	if iss.ErrorText == "" {
		return types.Range{}, false
	}

	if iss.SentenceText != "" &&
		!strings.Contains(docText, iss.SentenceText) &&
		!strings.Contains(iss.SentenceText, docText) {
		return types.Range{}, false
	}

	// Fine localization: a unique context window disambiguates repeated
	// occurrences of the same error text.
	if iss.ContextText != "" && strings.Contains(iss.ContextText, iss.ErrorText) {
		if base := strings.Index(docText, iss.ContextText); base >= 0 {
			if r, ok := scanWindow(docText, base, base+len(iss.ContextText), iss.ErrorText); ok {
				return r, true
			}
		}
		// Context no longer present or contains no valid match; fall through
		// to the wider search rather than forcing a wrong span.
	}

	// Coarse localization: prefer the occurrence inside the issue's own
	// sentence over an identical error in an unrelated sentence.
	if iss.SentenceText != "" {
		if base := strings.Index(docText, iss.SentenceText); base >= 0 {
			if r, ok := scanWindow(docText, base, base+len(iss.SentenceText), iss.ErrorText); ok {
				return r, true
			}
		}
	}

	return scanWindow(docText, 0, len(docText), iss.ErrorText)
}

// scanWindow walks occurrences of needle inside docText[lo:hi] (byte offsets)
// and returns the first boundary-valid one as absolute rune offsets.
func scanWindow(docText string, lo, hi int, needle string) (types.Range, bool) {
	if lo < 0 || hi > len(docText) || lo >= hi {
		return types.Range{}, false
	}

	for from := lo; from < hi; {
		idx := strings.Index(docText[from:hi], needle)
		if idx < 0 {
			break
		}
		start := from + idx
		end := start + len(needle)
		if boundaryValid(docText, start, end) {
			runeStart := utf8.RuneCountInString(docText[:start])
			return types.Range{
				Start: runeStart,
				End:   runeStart + utf8.RuneCountInString(needle),
			}, true
		}
		// Reject this occurrence, keep scanning after it.
		from = start + 1
	}
	return types.Range{}, false
}

// boundaryValid checks the word-boundary edges of the byte span [start, end).
// The characters immediately adjacent in the *document* (not the search
// window) must each be a boundary rune or absent.
func boundaryValid(docText string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(docText[:start])
		if !isBoundaryRune(r) {
			return false
		}
	}
	if end < len(docText) {
		r, _ := utf8.DecodeRuneInString(docText[end:])
		if !isBoundaryRune(r) {
			return false
		}
	}
	return true
}

// isBoundaryRune reports whether r may legally border a match: Unicode
// punctuation, separator or control. Letters, digits and symbols mean the
// match sits inside a larger word.
func isBoundaryRune(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsControl(r)
}
