package catalog

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Handler consumes a published event.
type Handler func(Event)

// Bus is a minimal in-process event bus. Instances are built explicitly
// and injected where needed; Reset exists for test isolation. A handler
// that panics is logged and skipped, the remaining handlers still run.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for the named event.
func (b *Bus) Subscribe(eventName string, h Handler) {
	b.mu.Lock()
	b.handlers[eventName] = append(b.handlers[eventName], h)
	b.mu.Unlock()
}

// Publish delivers evt to every handler subscribed to its name, in
// subscription order.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[evt.EventName()]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		b.dispatch(h, evt)
	}
}

func (b *Bus) dispatch(h Handler, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("event", evt.EventName()).
				Str("event_id", evt.EventID()).
				Interface("panic", r).
				Msg("event handler panicked")
		}
	}()
	h(evt)
}

// Reset drops every subscription.
func (b *Bus) Reset() {
	b.mu.Lock()
	b.handlers = make(map[string][]Handler)
	b.mu.Unlock()
}
