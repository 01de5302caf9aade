// internal/types/range.go
package types

// Range is a half-open span [Start, End) of absolute rune offsets into the
// document's flattened text (lines joined with '\n').
type Range struct {
	Start int
	End   int
}

// Len returns the number of runes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Valid reports whether the range is well-formed (Start < End, non-negative).
func (r Range) Valid() bool {
	return r.Start >= 0 && r.Start < r.End
}

// Contains reports whether the rune offset off falls inside the range.
func (r Range) Contains(off int) bool {
	return off >= r.Start && off < r.End
}

// Overlaps reports whether two ranges share at least one rune.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Shift returns the range moved by delta runes.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}
