// internal/issue/issue.go

// Package issue models the findings returned by the remote analysis service.
// The service is advisory: issues describe text the server saw, which may have
// drifted from the live document by the time they arrive. The engine therefore
// treats issues as read-only hints, never as authoritative positions.
package issue

import (
	"proofpad/internal/textnorm"
)

// Kind values reported by the analysis service. The set is open-ended; the
// renderer falls back to a default style for kinds it doesn't know.
const (
	KindGrammar  = "grammar"
	KindSpelling = "spelling"
	KindStyle    = "style"
	KindAI       = "ai-likelihood"
)

// Issue is a single flagged problem or sentence-level signal.
type Issue struct {
	ID             string `json:"errorId"`
	Kind           string `json:"type"`
	ErrorText      string `json:"error"`             // exact substring flagged, never empty after Sanitize
	CorrectionText string `json:"correct"`           // suggested replacement, empty for detector-only issues
	SentenceText   string `json:"sentence"`          // full sentence, used for coarse localization
	ContextText    string `json:"context,omitempty"` // short window around the error, for fine localization
}

// HasCorrection reports whether the issue carries an applicable replacement.
// Detector-only issues highlight but cannot be "accepted".
func (i Issue) HasCorrection() bool {
	return i.CorrectionText != ""
}

// Sanitize filters out malformed issues (empty ErrorText or missing ID) and
// normalizes the text fields of the survivors so matching is insensitive to
// invisible formatting artifacts. The input slice is never mutated.
func Sanitize(issues []Issue) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, iss := range issues {
		iss.ErrorText = textnorm.Normalize(iss.ErrorText)
		iss.SentenceText = textnorm.Normalize(iss.SentenceText)
		iss.ContextText = textnorm.Normalize(iss.ContextText)
		iss.CorrectionText = textnorm.Clean(iss.CorrectionText)
		if iss.ErrorText == "" || iss.ID == "" {
			continue // never reaches the locator
		}
		out = append(out, iss)
	}
	return out
}
