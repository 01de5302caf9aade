// internal/event/event.go
package event

import (
	"proofpad/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Document lifecycle
	TypeDocumentChanged // content edited (typing, correction)
	TypeDocumentLoaded
	TypeDocumentSaved

	// Analysis lifecycle
	TypeIssuesUpdated  // fresh decoration batch applied
	TypeIssueResolved  // a single issue accepted or dismissed
	TypeAnalysisFailed // fetch from the analysis service failed

	// UI
	TypeCursorMoved
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// DocumentChangedData describes one structural edit.
type DocumentChangedData struct {
	Edited types.Range // span of the edit in the pre-edit text
	Delta  int         // rune-length change (new minus old)
}

// DocumentLoadedData contains info about the loaded document.
type DocumentLoadedData struct {
	FilePath string
}

// DocumentSavedData contains info about the saved document.
type DocumentSavedData struct {
	FilePath string
}

// IssuesUpdatedData reports the outcome of a decoration refresh.
type IssuesUpdatedData struct {
	Received  int // issues returned by the service (after sanitization)
	Decorated int // issues successfully localized
}

// IssueResolvedData identifies a resolved issue.
type IssueResolvedData struct {
	IssueID  string
	Accepted bool // false when dismissed
}

// AnalysisFailedData carries the fetch error.
type AnalysisFailedData struct {
	Err error
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}
