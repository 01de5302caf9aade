// internal/analysis/scheduler.go

// Package analysis schedules remote analysis runs around user input. Requests
// are debounced (wait for a quiet period after the last edit), a new request
// cancels any in-flight one, and every result is stamped with the document
// revision it was computed from so stale responses can never overwrite
// decorations derived from newer content.
package analysis

import (
	"context"
	"sync"
	"time"

	"proofpad/internal/issue"
	"proofpad/internal/logger"
)

const defaultDebounce = 400 * time.Millisecond

// Fetcher performs one analysis round trip for a text snapshot.
type Fetcher func(ctx context.Context, text string) ([]issue.Issue, error)

// Result is one completed analysis run.
type Result struct {
	Issues   []issue.Issue
	Revision int64 // document revision the snapshot was taken at
	Err      error
}

// Scheduler debounces text-changed notifications into analysis runs.
type Scheduler struct {
	fetch    Fetcher
	debounce time.Duration
	results  chan Result

	mu           sync.Mutex
	timer        *time.Timer
	cancel       context.CancelFunc
	suppressNext bool
	lastText     string
	lastRevision int64
}

// NewScheduler creates a scheduler delivering results on a buffered channel.
// A non-positive debounce falls back to the default.
func NewScheduler(fetch Fetcher, debounce time.Duration) *Scheduler {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Scheduler{
		fetch:    fetch,
		debounce: debounce,
		results:  make(chan Result, 1),
	}
}

// Results delivers completed runs. The app's event loop is the only consumer.
func (s *Scheduler) Results() <-chan Result {
	return s.results
}

// Notify records a text snapshot and (re)starts the debounce window. The
// caller passes a snapshot rather than a live reference because the document
// belongs to the UI goroutine and must not be read from the timer goroutine.
// Returns false when the notification was consumed by a pending suppression
// and no run will happen.
func (s *Scheduler) Notify(text string, revision int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.suppressNext {
		// A correction just mutated the document. The correction is
		// known-good; re-analyzing immediately would be redundant and could
		// race the in-flight mutation.
		s.suppressNext = false
		logger.Debugf("analysis: change notification suppressed (rev %d)", revision)
		return false
	}

	s.lastText = text
	s.lastRevision = revision

	if s.timer != nil {
		s.timer.Reset(s.debounce)
		return true
	}
	s.timer = time.AfterFunc(s.debounce, s.run)
	return true
}

// SuppressNext makes the next Notify a no-op. Call it right before applying
// a correction so the resulting document-changed event doesn't trigger a
// refetch.
func (s *Scheduler) SuppressNext() {
	s.mu.Lock()
	s.suppressNext = true
	s.mu.Unlock()
}

// run fires after the quiet period: cancel any in-flight request and start a
// fresh one for the latest snapshot.
func (s *Scheduler) run() {
	s.mu.Lock()
	s.timer = nil
	text := s.lastText
	revision := s.lastRevision

	if s.cancel != nil {
		s.cancel() // supersede the in-flight request
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	logger.Debugf("analysis: starting run for revision %d (%d bytes)", revision, len(text))

	go func() {
		issues, err := s.fetch(ctx, text)
		if ctx.Err() == context.Canceled {
			logger.Debugf("analysis: run for revision %d superseded", revision)
			return
		}
		s.deliver(Result{Issues: issues, Revision: revision, Err: err})
	}()
}

// deliver pushes a result, displacing an unconsumed older one. Only the
// newest result matters; the consumer re-checks the revision anyway.
func (s *Scheduler) deliver(res Result) {
	for {
		select {
		case s.results <- res:
			return
		default:
			select {
			case <-s.results:
			default:
			}
		}
	}
}

// Flush runs any pending debounce immediately. Used by tests and by explicit
// "re-check now" user actions.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	hasPending := s.timer != nil
	if hasPending {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	if hasPending {
		s.run()
	}
}

// Shutdown cancels pending and in-flight work.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
