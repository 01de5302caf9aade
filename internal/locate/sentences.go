// internal/locate/sentences.go
package locate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"proofpad/internal/types"
)

// SentenceMatch locates a whole sentence in docText by Unicode sentence
// segmentation rather than exact substring search. The AI detector flags
// entire sentences, and its view of a sentence can differ from the live
// document in whitespace only (a reflowed line break, a double space), which
// defeats strings.Index. Sentences are compared with whitespace folded; the
// returned range covers the document's sentence with surrounding whitespace
// trimmed off.
func SentenceMatch(docText, sentence string) (types.Range, bool) {
	want := foldWhitespace(sentence)
	if want == "" {
		return types.Range{}, false
	}

	runeOff := 0
	state := -1
	rest := docText
	for len(rest) > 0 {
		var seg string
		seg, rest, state = uniseg.FirstSentenceInString(rest, state)
		if foldWhitespace(seg) == want {
			start, end := trimRange(seg)
			return types.Range{Start: runeOff + start, End: runeOff + end}, true
		}
		runeOff += utf8.RuneCountInString(seg)
	}
	return types.Range{}, false
}

// foldWhitespace collapses all whitespace runs to single spaces and trims.
func foldWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// trimRange returns the rune offsets of seg's content without leading and
// trailing whitespace, relative to seg's start.
func trimRange(seg string) (start, end int) {
	end = utf8.RuneCountInString(seg)
	for _, r := range seg {
		if !unicode.IsSpace(r) {
			break
		}
		start++
	}
	trimmed := strings.TrimRightFunc(seg, unicode.IsSpace)
	end -= utf8.RuneCountInString(seg) - utf8.RuneCountInString(trimmed)
	if start >= end {
		return 0, 0
	}
	return start, end
}
