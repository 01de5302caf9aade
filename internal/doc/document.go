// internal/doc/document.go

// Package doc implements the editable document: an ordered slice of text
// lines plus the inline decorations bound to it. The document is owned by the
// single UI event loop; it is mutated only through the structural edit methods
// here, each of which keeps the decoration set consistent (no dangling
// decorations, no stale offsets).
package doc

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"proofpad/internal/event"
	"proofpad/internal/textnorm"
	"proofpad/internal/types"
)

// Document holds the live text as lines of bytes (rune-indexed columns, as in
// any terminal editor) together with its decorations.
type Document struct {
	lines    [][]byte
	filePath string
	modified bool
	revision int64

	decorations []Decoration

	eventManager *event.Manager // optional; nil in pure-library use
}

// New creates an empty document with a single empty line.
func New() *Document {
	return &Document{
		lines: [][]byte{[]byte("")},
	}
}

// NewFromString creates a document from flattened text (lines split on '\n').
// The text passes the same cleaning as loaded files.
func NewFromString(text string) *Document {
	d := New()
	if text != "" {
		d.lines = splitClean(text)
	}
	return d
}

// SetEventManager wires the document-changed signal. May stay nil.
func (d *Document) SetEventManager(mgr *event.Manager) {
	d.eventManager = mgr
}

// Load reads a file into the document, replacing existing content. A missing
// file yields an empty document bound to that path.
func (d *Document) Load(filePath string) error {
	d.modified = false
	d.decorations = nil
	d.revision++

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			d.lines = [][]byte{[]byte("")}
			d.filePath = filePath
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	newLines := [][]byte{}
	for scanner.Scan() {
		// Clean on the way in so the live text and the matcher agree.
		line := textnorm.Clean(scanner.Text())
		newLines = append(newLines, []byte(line))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file '%s': %w", filePath, err)
	}
	if len(newLines) == 0 {
		newLines = append(newLines, []byte(""))
	}
	d.lines = newLines
	d.filePath = filePath

	if d.eventManager != nil {
		d.eventManager.Dispatch(event.TypeDocumentLoaded, event.DocumentLoadedData{FilePath: filePath})
	}
	return nil
}

// Save writes the document content to the stored filePath (or an override).
func (d *Document) Save(filePath string) error {
	path := d.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	if err := os.WriteFile(path, []byte(d.Text()), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	d.filePath = path
	d.modified = false

	if d.eventManager != nil {
		d.eventManager.Dispatch(event.TypeDocumentSaved, event.DocumentSavedData{FilePath: path})
	}
	return nil
}

// FilePath returns the bound file path, empty for unsaved documents.
func (d *Document) FilePath() string { return d.filePath }

// Modified reports whether the document has unsaved changes.
func (d *Document) Modified() bool { return d.modified }

// Revision is a monotonically increasing edit counter. The analysis scheduler
// stamps each request with it to detect stale results.
func (d *Document) Revision() int64 { return d.revision }

// LineCount returns the number of lines; always at least one.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns the raw bytes of one line.
func (d *Document) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(d.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(d.lines)-1)
	}
	return d.lines[index], nil
}

// Lines exposes the line slice for rendering. Callers must not mutate it.
func (d *Document) Lines() [][]byte { return d.lines }

// Text returns the flattened document text, lines joined with '\n'. This is
// the string all rune offsets refer to.
func (d *Document) Text() string {
	var sb strings.Builder
	for i, line := range d.lines {
		sb.Write(line)
		if i < len(d.lines)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// RuneLen returns the rune length of the flattened text.
func (d *Document) RuneLen() int {
	n := 0
	for i, line := range d.lines {
		n += utf8.RuneCount(line)
		if i < len(d.lines)-1 {
			n++ // newline
		}
	}
	return n
}

// --- Offset / position conversion ---

// PositionToOffset converts a (line, rune-col) position into an absolute rune
// offset into the flattened text. Positions are clamped to valid bounds.
func (d *Document) PositionToOffset(pos types.Position) int {
	if pos.Line < 0 {
		return 0
	}
	off := 0
	for i := 0; i < pos.Line && i < len(d.lines); i++ {
		off += utf8.RuneCount(d.lines[i]) + 1
	}
	if pos.Line >= len(d.lines) {
		return d.RuneLen()
	}
	col := pos.Col
	if max := utf8.RuneCount(d.lines[pos.Line]); col > max {
		col = max
	} else if col < 0 {
		col = 0
	}
	return off + col
}

// OffsetToPosition converts an absolute rune offset into a (line, rune-col)
// position. Offsets are clamped into the document.
func (d *Document) OffsetToPosition(off int) types.Position {
	if off < 0 {
		off = 0
	}
	for i, line := range d.lines {
		lineLen := utf8.RuneCount(line)
		if off <= lineLen {
			return types.Position{Line: i, Col: off}
		}
		off -= lineLen + 1 // skip trailing newline
	}
	last := len(d.lines) - 1
	return types.Position{Line: last, Col: utf8.RuneCount(d.lines[last])}
}

// --- Structural edits ---

// InsertAt inserts text at an absolute rune offset. Decorations at or after
// the insertion point shift right; a decoration spanning the point grows.
func (d *Document) InsertAt(off int, text string) int {
	text = textnorm.Clean(text)
	if text == "" {
		return 0
	}
	delta := utf8.RuneCountInString(text)
	edited := types.Range{Start: off, End: off}

	d.spliceLines(off, off, text)
	d.remapDecorations(off, off, delta)
	d.touch(edited, delta)
	return delta
}

// DeleteRange removes the span r from the document. Decorations after the
// span shift left; decorations overlapping it are dropped as stale.
func (d *Document) DeleteRange(r types.Range) int {
	r = d.clampRange(r)
	if r.Start >= r.End {
		return 0
	}
	delta := -(r.End - r.Start)

	d.spliceLines(r.Start, r.End, "")
	d.remapDecorations(r.Start, r.End, delta)
	d.touch(r, delta)
	return delta
}

// Replace substitutes the span r with text and returns the rune-length delta.
// This is the primitive the correction mutator uses: downstream decorations
// are remapped in the same step, so applying several corrections in one pass
// always works against live offsets.
func (d *Document) Replace(r types.Range, text string) int {
	r = d.clampRange(r)
	text = textnorm.Clean(text)
	delta := utf8.RuneCountInString(text) - (r.End - r.Start)

	d.spliceLines(r.Start, r.End, text)
	d.remapDecorations(r.Start, r.End, delta)
	d.touch(r, delta)
	return delta
}

// clampRange bounds a range into the document and normalizes ordering.
func (d *Document) clampRange(r types.Range) types.Range {
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
	total := d.RuneLen()
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End > total {
		r.End = total
	}
	if r.Start > total {
		r.Start = total
	}
	return r
}

// spliceLines rewrites the line slice so that the rune span [start, end) of
// the flattened text is replaced by text. Operates on the live line structure
// rather than rebuilding the whole document string.
func (d *Document) spliceLines(start, end int, text string) {
	startPos := d.OffsetToPosition(start)
	endPos := d.OffsetToPosition(end)

	startLine := d.lines[startPos.Line]
	endLine := d.lines[endPos.Line]
	startByte := RuneIndexToByteOffset(startLine, startPos.Col)
	endByte := RuneIndexToByteOffset(endLine, endPos.Col)

	// Keep the head of the start line and the tail of the end line; the new
	// text (possibly multi-line) goes between them.
	head := make([]byte, startByte)
	copy(head, startLine[:startByte])
	tail := make([]byte, len(endLine)-endByte)
	copy(tail, endLine[endByte:])

	insertLines := strings.Split(text, "\n")
	newLines := make([][]byte, 0, len(d.lines)+len(insertLines))
	newLines = append(newLines, d.lines[:startPos.Line]...)

	first := append(head, insertLines[0]...)
	if len(insertLines) == 1 {
		newLines = append(newLines, append(first, tail...))
	} else {
		newLines = append(newLines, first)
		for i := 1; i < len(insertLines)-1; i++ {
			newLines = append(newLines, []byte(insertLines[i]))
		}
		newLines = append(newLines, append([]byte(insertLines[len(insertLines)-1]), tail...))
	}

	if endPos.Line+1 < len(d.lines) {
		newLines = append(newLines, d.lines[endPos.Line+1:]...)
	}
	if len(newLines) == 0 {
		newLines = [][]byte{[]byte("")}
	}
	d.lines = newLines
}

// touch records an edit: bump revision, mark modified, signal listeners.
func (d *Document) touch(edited types.Range, delta int) {
	d.modified = true
	d.revision++
	if d.eventManager != nil {
		d.eventManager.Dispatch(event.TypeDocumentChanged, event.DocumentChangedData{
			Edited: edited,
			Delta:  delta,
		})
	}
}

// splitClean splits flattened text into cleaned lines.
func splitClean(text string) [][]byte {
	parts := strings.Split(text, "\n")
	lines := make([][]byte, len(parts))
	for i, p := range parts {
		lines[i] = []byte(textnorm.Clean(p))
	}
	return lines
}

// RuneIndexToByteOffset converts a rune index to a byte offset within a line,
// clamping past-the-end indices to the line length. The TUI uses it when
// slicing lines for drawing.
func RuneIndexToByteOffset(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	byteOffset := 0
	currentRune := 0
	for byteOffset < len(line) {
		if currentRune == runeIndex {
			return byteOffset
		}
		_, size := utf8.DecodeRune(line[byteOffset:])
		byteOffset += size
		currentRune++
	}
	return len(line)
}

// ByteOffsetToRuneIndex converts a byte offset to a rune index within a line.
func ByteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	return utf8.RuneCount(line[:byteOffset])
}
