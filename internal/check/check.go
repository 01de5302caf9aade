// internal/check/check.go

// Package check is the proofreading engine: it projects remote analysis
// results onto the live document as decorations, and applies accepted
// corrections back into the text. All functions take the document and the
// issue list as explicit parameters; the package holds no global state.
package check

import (
	"proofpad/internal/doc"
	"proofpad/internal/issue"
	"proofpad/internal/locate"
	"proofpad/internal/logger"
)

// Refresh rebuilds the document's decoration set from an issue list.
// Malformed issues are filtered, each survivor is localized against the
// current flattened text, and the located ones replace the previous
// decoration set atomically. Unlocatable issues are silently skipped: the
// service's view and the live document may have diverged, and forcing a
// highlight onto a wrong span is worse than showing none.
//
// Returns the number of issues that were successfully decorated.
func Refresh(d *doc.Document, issues []issue.Issue) int {
	clean := issue.Sanitize(issues)
	docText := d.Text()

	decorations := make([]doc.Decoration, 0, len(clean))
	for _, iss := range clean {
		r, ok := locate.Locate(docText, iss)
		if !ok && iss.Kind == issue.KindAI {
			// Detector issues flag whole sentences; tolerate whitespace
			// drift between the service's view and the live document.
			r, ok = locate.SentenceMatch(docText, iss.ErrorText)
		}
		if !ok {
			logger.Debugf("check: issue %s (%q) not localizable, skipping", iss.ID, iss.ErrorText)
			continue
		}
		decorations = append(decorations, doc.Decoration{
			ID:             iss.ID,
			Kind:           iss.Kind,
			Range:          r,
			ErrorText:      iss.ErrorText,
			CorrectionText: iss.CorrectionText,
			Message:        iss.SentenceText,
		})
	}

	d.SetDecorations(decorations)
	logger.Debugf("check: decorated %d of %d issues", len(decorations), len(clean))
	return len(decorations)
}

// Outcome reports what Apply did.
type Outcome int

const (
	// NotFound means the issue has no live decoration: already resolved, or
	// it was never successfully located. Callers treat this as a no-op.
	NotFound Outcome = iota
	// Applied means the document text was mutated and the issue's decoration
	// removed.
	Applied
)

// Apply replaces the text span covered by the issue's decoration with its
// correction and removes that decoration. Every other decoration stays
// consistent: the document remaps downstream ranges as part of the edit.
//
// Callers must suppress their next automatic re-analysis cycle after a
// successful Apply; the correction is already known-good and re-analyzing
// immediately would race the mutation.
func Apply(d *doc.Document, iss issue.Issue) Outcome {
	dec, ok := d.DecorationByID(iss.ID)
	if !ok || !iss.HasCorrection() {
		return NotFound
	}

	d.Replace(dec.Range, iss.CorrectionText)
	// The replace already dropped the overlapping decoration during
	// remapping; RemoveDecoration covers the zero-width edge where it
	// survived.
	d.RemoveDecoration(iss.ID)

	logger.Debugf("check: applied correction for issue %s (%q -> %q)",
		iss.ID, dec.ErrorText, iss.CorrectionText)
	return Applied
}

// ApplyAll applies every current decoration's correction exactly once and
// clears the decoration set in a single trailing step. Each correction is
// applied against the decoration's live range (re-fetched by ID after the
// preceding edits shifted offsets), so the result is independent of
// processing order. Issues without a live decoration or without a correction
// are skipped. Returns the number of corrections applied.
func ApplyAll(d *doc.Document, issues []issue.Issue) int {
	byID := make(map[string]issue.Issue, len(issues))
	for _, iss := range issues {
		byID[iss.ID] = iss
	}

	applied := make(map[string]struct{})
	count := 0
	for _, dec := range d.Decorations() {
		if _, done := applied[dec.ID]; done {
			continue // two decorations referencing the same issue
		}
		applied[dec.ID] = struct{}{}

		iss, ok := byID[dec.ID]
		if !ok || !iss.HasCorrection() {
			continue
		}
		// Re-fetch the live range: earlier corrections in this pass shift
		// downstream offsets, and the document has remapped accordingly.
		live, ok := d.DecorationByID(dec.ID)
		if !ok {
			continue
		}
		d.Replace(live.Range, iss.CorrectionText)
		count++
	}

	d.ClearDecorations()
	logger.Debugf("check: batch-applied %d corrections", count)
	return count
}

// Dismiss removes a single issue's decoration without touching the text.
func Dismiss(d *doc.Document, issueID string) bool {
	return d.RemoveDecoration(issueID)
}
