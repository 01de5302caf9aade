package analysis

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofpad/internal/issue"
)

// countingFetcher records every text it was asked to analyze.
type countingFetcher struct {
	mu    sync.Mutex
	texts []string
	calls atomic.Int32
	out   []issue.Issue
	err   error
}

func (f *countingFetcher) fetch(ctx context.Context, text string) ([]issue.Issue, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()
	return f.out, f.err
}

func (f *countingFetcher) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.texts))
	copy(out, f.texts)
	return out
}

func waitResult(t *testing.T, s *Scheduler) Result {
	t.Helper()
	select {
	case res := <-s.Results():
		return res
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for analysis result")
		return Result{}
	}
}

func TestScheduler_DebouncedRun(t *testing.T) {
	f := &countingFetcher{out: []issue.Issue{{ID: "e1", ErrorText: "go"}}}
	s := NewScheduler(f.fetch, 20*time.Millisecond)
	defer s.Shutdown()

	s.Notify("He go to school.", 7)

	res := waitResult(t, s)
	require.NoError(t, res.Err)
	assert.Equal(t, int64(7), res.Revision)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "e1", res.Issues[0].ID)
	assert.Equal(t, []string{"He go to school."}, f.seen())
}

func TestScheduler_CoalescesBurstsOfEdits(t *testing.T) {
	f := &countingFetcher{}
	s := NewScheduler(f.fetch, 50*time.Millisecond)
	defer s.Shutdown()

	// Keystrokes arriving faster than the debounce window collapse into a
	// single run for the final snapshot.
	s.Notify("H", 1)
	time.Sleep(5 * time.Millisecond)
	s.Notify("He", 2)
	time.Sleep(5 * time.Millisecond)
	s.Notify("He go", 3)

	res := waitResult(t, s)
	assert.Equal(t, int64(3), res.Revision)
	assert.Equal(t, int32(1), f.calls.Load())
	assert.Equal(t, []string{"He go"}, f.seen())
}

func TestScheduler_SuppressNext(t *testing.T) {
	f := &countingFetcher{}
	s := NewScheduler(f.fetch, 10*time.Millisecond)
	defer s.Shutdown()

	s.SuppressNext()
	assert.False(t, s.Notify("after correction", 5))

	// The suppressed notification must not schedule a run at all.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), f.calls.Load())

	// Suppression covers exactly one notification.
	assert.True(t, s.Notify("real edit", 6))
	res := waitResult(t, s)
	assert.Equal(t, int64(6), res.Revision)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestScheduler_Flush(t *testing.T) {
	f := &countingFetcher{}
	s := NewScheduler(f.fetch, 10*time.Second)
	defer s.Shutdown()

	s.Notify("check now", 2)
	s.Flush()

	res := waitResult(t, s)
	assert.Equal(t, int64(2), res.Revision)
}

func TestScheduler_FlushWithoutPending(t *testing.T) {
	f := &countingFetcher{}
	s := NewScheduler(f.fetch, 10*time.Millisecond)
	defer s.Shutdown()

	s.Flush()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), f.calls.Load())
}

func TestScheduler_SupersededRunIsDropped(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	fetch := func(ctx context.Context, text string) ([]issue.Issue, error) {
		if calls.Add(1) == 1 {
			// First run blocks until cancelled by the second.
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-release:
			}
		}
		return nil, nil
	}

	s := NewScheduler(fetch, 10*time.Millisecond)
	defer s.Shutdown()
	defer close(release)

	s.Notify("first snapshot", 1)
	s.Flush()

	// Wait until the first run is actually in flight before superseding it.
	require.Eventually(t, func() bool { return calls.Load() == 1 },
		time.Second, time.Millisecond)

	s.Notify("second snapshot", 2)
	s.Flush()

	res := waitResult(t, s)
	assert.Equal(t, int64(2), res.Revision, "superseded run must not deliver")

	select {
	case res := <-s.Results():
		t.Fatalf("unexpected extra result for revision %d", res.Revision)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestScheduler_DeliverDisplacesUnconsumedResult(t *testing.T) {
	f := &countingFetcher{}
	s := NewScheduler(f.fetch, 5*time.Millisecond)
	defer s.Shutdown()

	s.Notify("one", 1)
	// Let the first result land unconsumed, then produce a second.
	require.Eventually(t, func() bool { return f.calls.Load() == 1 },
		time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	s.Notify("two", 2)

	deadline := time.After(3 * time.Second)
	for {
		select {
		case res := <-s.Results():
			if res.Revision == 2 {
				return // newest result is always reachable
			}
		case <-deadline:
			t.Fatal("never saw the newest result")
		}
	}
}
