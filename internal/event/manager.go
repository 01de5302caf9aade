// internal/event/manager.go
package event

import (
	"sync"

	"proofpad/internal/logger"
)

// Handler defines the function signature for event subscribers.
// It returns true if the event was consumed (reserved for future use).
type Handler func(e Event) bool

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[eventType] = append(m.handlers[eventType], handler)
}

// Dispatch sends an event to all registered handlers for its type.
// Handlers run synchronously on the caller's goroutine; all dispatching in
// this application happens on the single UI event loop.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	m.mu.RLock()
	handlers := m.handlers[eventType]
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	logger.Debugf("Event Manager: dispatching type %v to %d handler(s)", eventType, len(handlers))

	// Copy so a handler subscribing mid-dispatch can't corrupt the walk.
	handlersCopy := make([]Handler, len(handlers))
	copy(handlersCopy, handlers)

	ev := Event{Type: eventType, Data: data}
	for _, handler := range handlersCopy {
		handler(ev)
	}
}
