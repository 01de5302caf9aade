// internal/app/app.go

// Package app wires the document, the analysis scheduler, the engine and the
// TUI together and runs the single event loop that owns all document
// mutations.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"proofpad/internal/analysis"
	"proofpad/internal/check"
	"proofpad/internal/client"
	"proofpad/internal/config"
	"proofpad/internal/doc"
	"proofpad/internal/event"
	"proofpad/internal/issue"
	"proofpad/internal/logger"
	"proofpad/internal/statusbar"
	"proofpad/internal/tui"
	"proofpad/internal/types"
)

// App encapsulates the core components and main loop.
type App struct {
	cfg          *config.Config
	tuiManager   *tui.TUI
	document     *doc.Document
	statusBar    *statusbar.StatusBar
	eventManager *event.Manager
	apiClient    *client.Client
	scheduler    *analysis.Scheduler

	filePath string

	// View state, owned by the event loop.
	cursor    types.Position
	viewportY int
	viewportX int

	// Latest sanitized issue list; decorations are derived from it.
	issues   []issue.Issue
	activeID string // issue currently under review
	checking bool

	// muted gates the document-changed -> scheduler path during batch
	// corrections, where each individual edit would otherwise queue a
	// redundant analysis run.
	muted bool

	quit          chan struct{}
	quitOnce      sync.Once
	redrawRequest chan struct{}
}

// NewApp creates and initializes a new application instance.
func NewApp(filePath string, cfg *config.Config) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	document := doc.New()
	document.SetEventManager(eventManager)

	if filePath != "" {
		if err := document.Load(filePath); err != nil {
			tuiManager.Close()
			return nil, fmt.Errorf("loading '%s': %w", filePath, err)
		}
	}

	apiClient := client.New(cfg.Analysis.BaseURL, cfg.Analysis.RequestTimeout())

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		document:      document,
		statusBar:     statusbar.New(statusbar.DefaultConfig()),
		eventManager:  eventManager,
		apiClient:     apiClient,
		filePath:      filePath,
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}
	a.scheduler = analysis.NewScheduler(a.fetchIssues, cfg.Analysis.Debounce())

	// Document edits feed the scheduler; corrections mute this path.
	eventManager.Subscribe(event.TypeDocumentChanged, func(e event.Event) bool {
		if a.muted {
			return false
		}
		a.checking = a.scheduler.Notify(a.document.Text(), a.document.Revision())
		return false
	})
	eventManager.Subscribe(event.TypeIssueResolved, func(e event.Event) bool {
		if data, ok := e.Data.(event.IssueResolvedData); ok {
			verb := "dismissed"
			if data.Accepted {
				verb = "accepted"
			}
			a.setStatusMessage("Issue %s %s", data.IssueID, verb)
		}
		return false
	})
	eventManager.Subscribe(event.TypeAnalysisFailed, func(e event.Event) bool {
		if data, ok := e.Data.(event.AnalysisFailedData); ok {
			a.setStatusMessage("Analysis failed: %v", data.Err)
		}
		return false
	})

	return a, nil
}

// fetchIssues is the scheduler's round trip: grammar check, plus the AI
// detector when enabled. Detector issues are appended after grammar issues.
func (a *App) fetchIssues(ctx context.Context, text string) ([]issue.Issue, error) {
	issues, err := a.apiClient.Check(ctx, text)
	if err != nil {
		return nil, err
	}
	if a.cfg.Analysis.DetectAI {
		detected, err := a.apiClient.Detect(ctx, text)
		if err != nil {
			// Grammar results are still useful on their own.
			logger.Warnf("app: AI detection failed: %v", err)
		} else {
			issues = append(issues, detected...)
		}
	}
	return issues, nil
}

// Run starts the main event loop. It blocks until quit.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.scheduler.Shutdown()

	// tcell events arrive on their own goroutine; the loop below is the only
	// place document state is touched.
	tcellEvents := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.tuiManager.PollEvent()
			if ev == nil {
				return
			}
			tcellEvents <- ev
		}
	}()

	// Kick off an initial analysis pass for preloaded content.
	if a.document.RuneLen() > 0 {
		a.checking = a.scheduler.Notify(a.document.Text(), a.document.Revision())
	}

	a.draw()

	for {
		select {
		case <-a.quit:
			return nil

		case res := <-a.scheduler.Results():
			a.handleAnalysisResult(res)
			a.draw()

		case <-a.redrawRequest:
			a.draw()

		case ev := <-tcellEvents:
			switch tev := ev.(type) {
			case *tcell.EventResize:
				a.tuiManager.GetScreen().Sync()
				a.draw()
			case *tcell.EventKey:
				a.handleKey(tev)
				a.draw()
			case *tcell.EventInterrupt:
				a.draw()
			}
		}
	}
}

// handleAnalysisResult applies one completed analysis run, discarding stale
// results so decorations always derive from the latest issue list and the
// current document text.
func (a *App) handleAnalysisResult(res analysis.Result) {
	a.checking = false

	if res.Revision != a.document.Revision() {
		logger.Debugf("app: discarding stale analysis result (rev %d, now %d)",
			res.Revision, a.document.Revision())
		a.checking = true // a newer run is (or will be) in flight
		return
	}
	if res.Err != nil {
		a.eventManager.Dispatch(event.TypeAnalysisFailed, event.AnalysisFailedData{Err: res.Err})
		return
	}

	a.issues = issue.Sanitize(res.Issues)
	decorated := check.Refresh(a.document, a.issues)
	a.eventManager.Dispatch(event.TypeIssuesUpdated, event.IssuesUpdatedData{
		Received:  len(a.issues),
		Decorated: decorated,
	})

	// Keep the active selection if its issue survived the refresh.
	if _, ok := a.document.DecorationByID(a.activeID); !ok {
		a.activeID = ""
	}
}

// requestRedraw schedules a redraw without blocking.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

// setStatusMessage shows a temporary status message and schedules the redraw
// that clears it again after the timeout; without it the stale message would
// sit on screen until the next keystroke.
func (a *App) setStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	time.AfterFunc(config.MessageTimeout+100*time.Millisecond, a.requestRedraw)
}

// draw renders the full screen.
func (a *App) draw() {
	a.scrollToCursor()
	a.tuiManager.Clear()
	tui.DrawDocument(a.tuiManager, a.document, tui.ViewState{
		Cursor:    a.cursor,
		ViewportY: a.viewportY,
		ViewportX: a.viewportX,
		ActiveID:  a.activeID,
	})
	a.statusBar.SetFileInfo(a.document.FilePath(), a.document.Modified())
	a.statusBar.SetCursorInfo(a.cursor)
	a.statusBar.SetIssueInfo(a.document.DecorationCount(), a.checking)
	width, height := a.tuiManager.Size()
	a.statusBar.Draw(a.tuiManager.GetScreen(), width, height)
	a.tuiManager.Show()
}

// scrollToCursor keeps the cursor inside the viewport with scroll-off margin.
func (a *App) scrollToCursor() {
	_, height := a.tuiManager.Size()
	viewHeight := height - config.StatusBarHeight
	if viewHeight <= 0 {
		return
	}

	scrollOff := a.cfg.Editor.ScrollOff
	if scrollOff*2 >= viewHeight {
		scrollOff = (viewHeight - 1) / 2
	}

	if a.cursor.Line < a.viewportY+scrollOff {
		a.viewportY = a.cursor.Line - scrollOff
	}
	if a.cursor.Line >= a.viewportY+viewHeight-scrollOff {
		a.viewportY = a.cursor.Line - viewHeight + scrollOff + 1
	}
	if a.viewportY < 0 {
		a.viewportY = 0
	}

	width, _ := a.tuiManager.Size()
	visX := tui.VisualColumn(a.document.Lines(), a.cursor)
	if visX < a.viewportX {
		a.viewportX = visX
	}
	if visX >= a.viewportX+width-8 { // leave room for the gutter
		a.viewportX = visX - width + 9
	}
	if a.viewportX < 0 {
		a.viewportX = 0
	}
}
