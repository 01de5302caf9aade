// internal/types/position.go
package types

// Position represents a cursor or text position within the document.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
// Using rune indices keeps positions stable under multi-byte UTF-8 text.
type Position struct {
	Line int
	Col  int // Rune index
}

// Before reports whether p comes strictly before other in document order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}
