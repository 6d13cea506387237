// Package event is a small synchronous publish/subscribe bus used between
// the outline editor, the status bar and the application loop.
package event

import (
	"sync"

	"github.com/bethropolis/grove/internal/logger"
)

// Handler receives one event. It returns true if the event was consumed,
// which stops delivery to later handlers of the same type.
type Handler func(e Event) bool

type subscription struct {
	id      int
	handler Handler
}

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[Type][]subscription
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]subscription),
	}
}

// Subscribe adds a handler for eventType and returns a function that
// removes it again.
func (m *Manager) Subscribe(eventType Type, handler Handler) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.handlers[eventType] = append(m.handlers[eventType], subscription{id: id, handler: handler})
	logger.Debugf("Event Manager: Handler subscribed to %v", eventType)

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		subs := m.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				m.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch sends an event to the handlers registered for its type, in
// subscription order. Handlers run synchronously on the caller's goroutine.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	if m == nil {
		return
	}
	event := Event{Type: eventType, Data: data}

	m.mu.RLock()
	// Copy so a handler may subscribe or unsubscribe during dispatch.
	subs := make([]subscription, len(m.handlers[eventType]))
	copy(subs, m.handlers[eventType])
	m.mu.RUnlock()

	if len(subs) == 0 {
		return
	}
	logger.Debugf("Event Manager: Dispatching %v to %d handler(s)", eventType, len(subs))

	for _, s := range subs {
		if s.handler(event) {
			break
		}
	}
}
