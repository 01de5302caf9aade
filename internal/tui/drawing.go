// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"proofpad/internal/doc"
	"proofpad/internal/types"
)

// ViewState carries everything drawing needs besides the document itself.
type ViewState struct {
	Cursor    types.Position
	ViewportY int    // top visible line index
	ViewportX int    // leftmost visible rune index
	ActiveID  string // decoration under review, drawn emphasized
}

// DrawDocument draws the visible portion of the document with its inline
// decorations and positions the terminal cursor.
func DrawDocument(t *TUI, d *doc.Document, view ViewState) {
	width, height := t.Size()
	viewHeight := height - 1 // last line belongs to the status bar
	if viewHeight <= 0 || width <= 0 {
		return
	}

	lines := d.Lines()
	lineCount := len(lines)
	if lineCount == 0 {
		lineCount = 1
	}

	// Line-number gutter, right-aligned, disabled on very narrow screens.
	maxDigits := int(math.Log10(float64(lineCount))) + 1
	gutterWidth := maxDigits + 1
	if gutterWidth >= width {
		gutterWidth = 0
	}

	for screenY := 0; screenY < viewHeight; screenY++ {
		lineIdx := screenY + view.ViewportY

		for fillX := 0; fillX < width; fillX++ {
			t.screen.SetContent(fillX, screenY, ' ', nil, StyleDefault)
		}

		if lineIdx < 0 || lineIdx >= len(lines) {
			continue
		}

		if gutterWidth > 0 {
			numStr := fmt.Sprintf("%*d", maxDigits, lineIdx+1)
			for i, r := range numStr {
				t.screen.SetContent(i, screenY, r, nil, StyleLineNumber)
			}
		}

		drawLine(t.screen, lines[lineIdx], d.DecorationsForLine(lineIdx), view, screenY, gutterWidth, width)
	}

	// Terminal cursor
	cursorVisX := gutterWidth + VisualColumn(lines, view.Cursor) - view.ViewportX
	cursorY := view.Cursor.Line - view.ViewportY
	if cursorY >= 0 && cursorY < viewHeight && cursorVisX >= gutterWidth && cursorVisX < width {
		t.screen.ShowCursor(cursorVisX, cursorY)
	} else {
		t.screen.HideCursor()
	}
}

// drawLine renders one document line, applying decoration styles per rune
// column and clipping to the horizontal viewport.
func drawLine(screen tcell.Screen, line []byte, spans []doc.LineSpan, view ViewState, screenY, gutterWidth, width int) {
	gr := uniseg.NewGraphemes(string(line))
	runeCol := 0
	visX := 0

	for gr.Next() {
		runes := gr.Runes()
		clusterWidth := gr.Width()

		style := StyleDefault
		for _, span := range spans {
			if runeCol >= span.StartCol && runeCol < span.EndCol {
				style = DecorationStyle(span.Decoration.Kind, span.Decoration.ID == view.ActiveID)
				break
			}
		}

		screenX := gutterWidth + visX - view.ViewportX
		if screenX >= width {
			break
		}
		if screenX >= gutterWidth {
			var combining []rune
			if len(runes) > 1 {
				combining = runes[1:]
			}
			screen.SetContent(screenX, screenY, runes[0], combining, style)
		}

		visX += clusterWidth
		runeCol += len(runes)
	}
}

// VisualColumn computes the on-screen column for a cursor position, taking
// grapheme widths into account.
func VisualColumn(lines [][]byte, cursor types.Position) int {
	if cursor.Line < 0 || cursor.Line >= len(lines) {
		return 0
	}
	gr := uniseg.NewGraphemes(string(lines[cursor.Line]))
	runeCol := 0
	visX := 0
	for gr.Next() {
		if runeCol >= cursor.Col {
			break
		}
		visX += gr.Width()
		runeCol += len(gr.Runes())
	}
	return visX
}
