// internal/app/actions.go
package app

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"

	"proofpad/internal/check"
	"proofpad/internal/event"
	"proofpad/internal/issue"
	"proofpad/internal/logger"
)

// selectIssue cycles the active issue by direction (+1 next, -1 previous)
// and moves the cursor to the selected span.
func (a *App) selectIssue(direction int) {
	decorations := a.document.Decorations()
	if len(decorations) == 0 {
		a.setStatusMessage("No issues")
		a.activeID = ""
		return
	}

	idx := -1
	for i, dec := range decorations {
		if dec.ID == a.activeID {
			idx = i
			break
		}
	}
	idx += direction
	if idx < 0 {
		idx = len(decorations) - 1
	}
	if idx >= len(decorations) {
		idx = 0
	}

	selected := decorations[idx]
	a.activeID = selected.ID
	a.cursor = a.document.OffsetToPosition(selected.Range.Start)

	if selected.CorrectionText != "" {
		a.setStatusMessage("[%s] %q -> %q (Ctrl-A accept, Ctrl-D dismiss)",
			selected.Kind, selected.ErrorText, selected.CorrectionText)
	} else {
		a.setStatusMessage("[%s] %q (Ctrl-D dismiss)", selected.Kind, selected.ErrorText)
	}
}

// issueByID finds the issue backing a decoration.
func (a *App) issueByID(id string) (issue.Issue, bool) {
	for _, iss := range a.issues {
		if iss.ID == id {
			return iss, true
		}
	}
	return issue.Issue{}, false
}

// acceptActive applies the correction for the active issue. The scheduler's
// next change notification is suppressed: the correction is known-good and an
// immediate re-analysis would race the mutation.
func (a *App) acceptActive() {
	if a.activeID == "" {
		a.setStatusMessage("No issue selected (Ctrl-N)")
		return
	}
	iss, ok := a.issueByID(a.activeID)
	if !ok || !iss.HasCorrection() {
		a.setStatusMessage("Issue has no correction to apply")
		return
	}

	if _, live := a.document.DecorationByID(iss.ID); !live {
		// Already resolved, or it was never localized; just refresh the view.
		a.setStatusMessage("Issue already resolved")
		a.activeID = ""
		return
	}

	// Arm suppression only once the correction is certain to run; a pending
	// suppression with no edit behind it would eat the next real keystroke's
	// notification.
	a.scheduler.SuppressNext()
	check.Apply(a.document, iss)

	a.eventManager.Dispatch(event.TypeIssueResolved, event.IssueResolvedData{
		IssueID:  iss.ID,
		Accepted: true,
	})
	a.activeID = ""
}

// acceptAll applies every correction in one pass. The document-changed
// handler is muted for the duration: one batch, zero analysis runs.
func (a *App) acceptAll() {
	a.muted = true
	applied := check.ApplyAll(a.document, a.issues)
	a.muted = false

	a.activeID = ""
	a.setStatusMessage("Applied %d correction(s)", applied)
	logger.Infof("app: batch-applied %d corrections", applied)
}

// dismissActive clears the active issue's decoration without editing text.
func (a *App) dismissActive() {
	if a.activeID == "" {
		a.setStatusMessage("No issue selected (Ctrl-N)")
		return
	}
	if check.Dismiss(a.document, a.activeID) {
		a.eventManager.Dispatch(event.TypeIssueResolved, event.IssueResolvedData{
			IssueID:  a.activeID,
			Accepted: false,
		})
	}
	a.activeID = ""
}

// copyToClipboard copies the whole document to the system clipboard.
func (a *App) copyToClipboard() {
	if !a.cfg.Editor.SystemClipboard {
		a.setStatusMessage("System clipboard disabled")
		return
	}
	if err := clipboard.WriteAll(a.document.Text()); err != nil {
		logger.Warnf("app: clipboard write failed: %v", err)
		a.setStatusMessage("Clipboard write failed: %v", err)
		return
	}
	a.setStatusMessage("Document copied to clipboard")
}

// saveDocument writes the document back to its file.
func (a *App) saveDocument() {
	if err := a.document.Save(""); err != nil {
		a.setStatusMessage("Save failed: %v", err)
		return
	}
	a.setStatusMessage("Saved %s", a.document.FilePath())
}

// summarizeDocument streams a summary of the document into the status bar.
// The round trip runs off the event loop; the status bar is internally
// synchronized and redraws go through the non-blocking request channel.
func (a *App) summarizeDocument() {
	text := a.document.Text()
	if strings.TrimSpace(text) == "" {
		a.setStatusMessage("Nothing to summarize")
		return
	}
	a.setStatusMessage("Summarizing...")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Analysis.RequestTimeout())
		defer cancel()

		err := a.apiClient.Summarize(ctx, text, func(summary string) {
			a.statusBar.SetTemporaryMessage("Summary: %s", summary)
			a.requestRedraw()
		})
		if err != nil {
			logger.Warnf("app: summarize failed: %v", err)
			a.statusBar.SetTemporaryMessage("Summarize failed: %v", err)
		}
		a.requestRedraw()
	}()
}

// recheckNow skips the debounce and analyzes the current text immediately.
func (a *App) recheckNow() {
	a.checking = a.scheduler.Notify(a.document.Text(), a.document.Revision())
	a.scheduler.Flush()
	a.setStatusMessage("Re-checking...")
}
