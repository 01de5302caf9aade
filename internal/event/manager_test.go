package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofpad/internal/types"
)

func TestDispatchReachesAllSubscribers(t *testing.T) {
	m := NewManager()

	var first, second []Event
	m.Subscribe(TypeDocumentChanged, func(e Event) bool {
		first = append(first, e)
		return false
	})
	m.Subscribe(TypeDocumentChanged, func(e Event) bool {
		second = append(second, e)
		return false
	})

	data := DocumentChangedData{Edited: types.Range{Start: 3, End: 5}, Delta: 2}
	m.Dispatch(TypeDocumentChanged, data)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, TypeDocumentChanged, first[0].Type)
	assert.Equal(t, data, first[0].Data)
}

func TestDispatchFiltersByType(t *testing.T) {
	m := NewManager()

	calls := 0
	m.Subscribe(TypeDocumentSaved, func(e Event) bool {
		calls++
		return false
	})

	m.Dispatch(TypeDocumentChanged, nil)
	m.Dispatch(TypeIssuesUpdated, nil)
	assert.Zero(t, calls)

	m.Dispatch(TypeDocumentSaved, DocumentSavedData{FilePath: "a.txt"})
	assert.Equal(t, 1, calls)
}

func TestDispatchWithoutSubscribersIsNoop(t *testing.T) {
	m := NewManager()
	assert.NotPanics(t, func() {
		m.Dispatch(TypeAnalysisFailed, AnalysisFailedData{})
	})
}

func TestSubscribeDuringDispatch(t *testing.T) {
	m := NewManager()

	lateCalls := 0
	m.Subscribe(TypeCursorMoved, func(e Event) bool {
		m.Subscribe(TypeCursorMoved, func(e Event) bool {
			lateCalls++
			return false
		})
		return false
	})

	// The handler added mid-dispatch must not run for the current event.
	m.Dispatch(TypeCursorMoved, CursorMovedData{})
	assert.Zero(t, lateCalls)

	m.Dispatch(TypeCursorMoved, CursorMovedData{})
	assert.Equal(t, 1, lateCalls)
}
