// internal/app/keys.go
package app

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"proofpad/internal/event"
	"proofpad/internal/types"
)

// handleKey processes one key event on the event loop.
func (a *App) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		a.quitOnce.Do(func() { close(a.quit) })

	case tcell.KeyCtrlS:
		a.saveDocument()

	case tcell.KeyCtrlN:
		a.selectIssue(+1)
	case tcell.KeyCtrlP:
		a.selectIssue(-1)

	case tcell.KeyCtrlA:
		a.acceptActive()
	case tcell.KeyCtrlE:
		a.acceptAll()
	case tcell.KeyCtrlD:
		a.dismissActive()

	case tcell.KeyCtrlY:
		a.copyToClipboard()
	case tcell.KeyCtrlR:
		a.recheckNow()
	case tcell.KeyCtrlG:
		a.summarizeDocument()

	case tcell.KeyUp:
		a.moveCursor(-1, 0)
	case tcell.KeyDown:
		a.moveCursor(1, 0)
	case tcell.KeyLeft:
		a.moveCursor(0, -1)
	case tcell.KeyRight:
		a.moveCursor(0, 1)
	case tcell.KeyHome:
		a.cursor.Col = 0
	case tcell.KeyEnd:
		a.cursor.Col = a.lineRuneLen(a.cursor.Line)
	case tcell.KeyPgUp:
		_, h := a.tuiManager.Size()
		a.moveCursor(-(h - 1), 0)
	case tcell.KeyPgDn:
		_, h := a.tuiManager.Size()
		a.moveCursor(h-1, 0)

	case tcell.KeyEnter:
		a.insertText("\n")
	case tcell.KeyTab:
		a.insertText(strings.Repeat(" ", a.cfg.Editor.TabWidth))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.deleteBackward()
	case tcell.KeyDelete:
		a.deleteForward()

	case tcell.KeyRune:
		a.insertText(string(ev.Rune()))
	}
}

// moveCursor moves by line/column deltas, clamping into the document.
func (a *App) moveCursor(dLine, dCol int) {
	a.cursor.Line += dLine
	if a.cursor.Line < 0 {
		a.cursor.Line = 0
	}
	if max := a.document.LineCount() - 1; a.cursor.Line > max {
		a.cursor.Line = max
	}

	a.cursor.Col += dCol
	lineLen := a.lineRuneLen(a.cursor.Line)
	if dCol < 0 && a.cursor.Col < 0 {
		if a.cursor.Line > 0 { // wrap to previous line end
			a.cursor.Line--
			a.cursor.Col = a.lineRuneLen(a.cursor.Line)
		} else {
			a.cursor.Col = 0
		}
	} else if dCol > 0 && a.cursor.Col > lineLen {
		if a.cursor.Line < a.document.LineCount()-1 { // wrap to next line start
			a.cursor.Line++
			a.cursor.Col = 0
		} else {
			a.cursor.Col = lineLen
		}
	} else if a.cursor.Col > lineLen {
		a.cursor.Col = lineLen
	}
	if a.cursor.Col < 0 {
		a.cursor.Col = 0
	}

	a.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: a.cursor})
}

// lineRuneLen returns the rune length of one line, 0 for invalid indices.
func (a *App) lineRuneLen(lineIdx int) int {
	line, err := a.document.Line(lineIdx)
	if err != nil {
		return 0
	}
	return utf8.RuneCount(line)
}

// insertText inserts at the cursor and advances it.
func (a *App) insertText(text string) {
	off := a.document.PositionToOffset(a.cursor)
	delta := a.document.InsertAt(off, text)
	a.cursor = a.document.OffsetToPosition(off + delta)
}

// deleteBackward removes the rune before the cursor (joining lines at col 0).
func (a *App) deleteBackward() {
	off := a.document.PositionToOffset(a.cursor)
	if off == 0 {
		return
	}
	a.document.DeleteRange(types.Range{Start: off - 1, End: off})
	a.cursor = a.document.OffsetToPosition(off - 1)
}

// deleteForward removes the rune under the cursor.
func (a *App) deleteForward() {
	off := a.document.PositionToOffset(a.cursor)
	if off >= a.document.RuneLen() {
		return
	}
	a.document.DeleteRange(types.Range{Start: off, End: off + 1})
	a.cursor = a.document.OffsetToPosition(off)
}
