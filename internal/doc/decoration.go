// internal/doc/decoration.go
package doc

import (
	"sort"
	"unicode/utf8"

	"proofpad/internal/types"
)

// Decoration is an inline annotation bound to a rune range of the document,
// carrying enough of the originating issue to render and to apply a
// correction. Decorations are tree-local: the document owns their lifecycle.
type Decoration struct {
	ID             string // originating issue ID
	Kind           string
	Range          types.Range
	ErrorText      string
	CorrectionText string
	Message        string // optional display text (e.g. why the span was flagged)
}

// SetDecorations atomically replaces the entire decoration set. This is a
// full replace, not an incremental diff: the engine re-derives all decorations
// from the current issue list on every change, which guarantees no orphans
// survive an external edit. Invalid ranges are discarded; the stored set is
// kept sorted by start offset.
func (d *Document) SetDecorations(decorations []Decoration) {
	next := make([]Decoration, 0, len(decorations))
	for _, dec := range decorations {
		if !dec.Range.Valid() || dec.Range.End > d.RuneLen() {
			continue
		}
		next = append(next, dec)
	}
	sort.SliceStable(next, func(i, j int) bool {
		return next[i].Range.Start < next[j].Range.Start
	})
	d.decorations = next
}

// Decorations returns a copy of the current decoration set in offset order.
func (d *Document) Decorations() []Decoration {
	out := make([]Decoration, len(d.decorations))
	copy(out, d.decorations)
	return out
}

// DecorationCount returns the number of live decorations.
func (d *Document) DecorationCount() int {
	return len(d.decorations)
}

// DecorationByID looks up a decoration by its issue ID.
func (d *Document) DecorationByID(id string) (Decoration, bool) {
	for _, dec := range d.decorations {
		if dec.ID == id {
			return dec, true
		}
	}
	return Decoration{}, false
}

// RemoveDecoration deletes the decoration for one issue ID, leaving every
// other decoration untouched. Returns false when no such decoration exists
// (already resolved, or never successfully located).
func (d *Document) RemoveDecoration(id string) bool {
	for i, dec := range d.decorations {
		if dec.ID == id {
			d.decorations = append(d.decorations[:i], d.decorations[i+1:]...)
			return true
		}
	}
	return false
}

// ClearDecorations drops the whole decoration set.
func (d *Document) ClearDecorations() {
	d.decorations = nil
}

// DecorationsForLine returns, for one line, the decorated column spans as
// (startCol, endCol) rune indices plus their decorations. Used by drawing.
func (d *Document) DecorationsForLine(lineIdx int) []LineSpan {
	if lineIdx < 0 || lineIdx >= len(d.lines) {
		return nil
	}
	lineStart := d.PositionToOffset(types.Position{Line: lineIdx, Col: 0})
	lineEnd := lineStart + utf8.RuneCount(d.lines[lineIdx])
	lineRange := types.Range{Start: lineStart, End: lineEnd}

	var spans []LineSpan
	for _, dec := range d.decorations {
		if !dec.Range.Overlaps(lineRange) {
			continue
		}
		start := dec.Range.Start
		if start < lineStart {
			start = lineStart
		}
		end := dec.Range.End
		if end > lineEnd {
			end = lineEnd
		}
		spans = append(spans, LineSpan{
			StartCol:   start - lineStart,
			EndCol:     end - lineStart,
			Decoration: dec,
		})
	}
	return spans
}

// LineSpan is one decoration clipped to a single line, in rune columns.
type LineSpan struct {
	StartCol   int
	EndCol     int
	Decoration Decoration
}

// remapDecorations adjusts decoration ranges after the rune span
// [start, oldEnd) was replaced by text of length oldEnd-start+delta.
// Ranges entirely before the edit are untouched; ranges entirely after it
// shift by delta; ranges overlapping the edited span are stale and dropped
// (the next analysis pass rebuilds them from scratch). An insertion strictly
// inside a decorated range grows the range instead of dropping it.
func (d *Document) remapDecorations(start, oldEnd, delta int) {
	if len(d.decorations) == 0 {
		return
	}
	kept := d.decorations[:0]
	for _, dec := range d.decorations {
		switch {
		case dec.Range.End <= start:
			kept = append(kept, dec)
		case dec.Range.Start >= oldEnd:
			dec.Range = dec.Range.Shift(delta)
			kept = append(kept, dec)
		case start == oldEnd && dec.Range.Contains(start) && dec.Range.Start < start:
			// Pure insertion inside the decorated span.
			dec.Range.End += delta
			kept = append(kept, dec)
		default:
			// Overlaps the edit: stale.
		}
	}
	d.decorations = kept
}
