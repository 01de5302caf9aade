// internal/tui/styles.go
package tui

import (
	"github.com/gdamore/tcell/v2"

	"proofpad/internal/issue"
)

// Styles used by the drawing code. No theming layer: the decoration palette
// is fixed per issue kind, with a fallback for kinds the service adds later.
var (
	StyleDefault    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	StyleLineNumber = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)

	styleGrammar  = StyleDefault.Foreground(tcell.ColorRed).Underline(true)
	styleSpelling = StyleDefault.Foreground(tcell.ColorOrange).Underline(true)
	styleStyle    = StyleDefault.Foreground(tcell.ColorYellow).Underline(true)
	styleAI       = StyleDefault.Background(tcell.ColorDarkMagenta)
	styleFallback = StyleDefault.Underline(true)
)

// DecorationStyle maps an issue kind to its inline style.
func DecorationStyle(kind string, active bool) tcell.Style {
	var style tcell.Style
	switch kind {
	case issue.KindGrammar:
		style = styleGrammar
	case issue.KindSpelling:
		style = styleSpelling
	case issue.KindStyle:
		style = styleStyle
	case issue.KindAI:
		style = styleAI
	default:
		style = styleFallback
	}
	if active {
		style = style.Reverse(true)
	}
	return style
}
