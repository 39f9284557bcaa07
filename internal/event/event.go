// Package event handles triggering of operations without direct dependency
package event

import (
	"context"
	"sync"

	"traveline/local-app/internal/log"
)

// EventType represents the type of event
type EventType int

const (
	SessionLoggedIn EventType = iota
	SessionLoggedOut
	SessionExpired
)

// String returns the name of the event type
func (t EventType) String() string {
	switch t {
	case SessionLoggedIn:
		return "session_logged_in"
	case SessionLoggedOut:
		return "session_logged_out"
	case SessionExpired:
		return "session_expired"
	default:
		return "unknown"
	}
}

// Event represents an event with its type and associated data
type Event struct {
	Type EventType
	Data interface{}
}

// EventHandler is a function type for event handlers
type EventHandler func(Event)

// EventManager manages event subscriptions and publications
type EventManager struct {
	subscribers map[EventType][]EventHandler
	mu          sync.RWMutex
	logger      *log.Logger
}

// NewEventManager creates a new EventManager instance
func NewEventManager(logger *log.Logger) *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]EventHandler),
		logger:      logger,
	}
}

// Subscribe adds a new event handler for a specific event type
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.subscribers[eventType] = append(em.subscribers[eventType], handler)
}

// Publish runs every handler subscribed to the event type, in subscription
// order, before returning. A panicking handler is logged and skipped.
func (em *EventManager) Publish(event Event) {
	em.mu.RLock()
	handlers := append([]EventHandler(nil), em.subscribers[event.Type]...)
	em.mu.RUnlock()

	for _, handler := range handlers {
		em.run(handler, event)
	}
}

func (em *EventManager) run(h EventHandler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			em.logger.Error(context.Background(), "Panic in event handler", log.Fields{
				"event": event.Type.String(),
				"panic": r,
			})
		}
	}()
	h(event)
}
