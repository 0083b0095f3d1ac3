// Package ui carries browser events into mounted pages.
package ui

import "sync"

// Event is a DOM event forwarded by the browser. Path lists the element
// ids from the event target up to the document root.
type Event struct {
	Type string   `json:"type" validate:"required,oneof=click keydown"`
	Path []string `json:"path"`
}

// Inside reports whether the event happened within the element with id.
func (e Event) Inside(id string) bool {
	for _, p := range e.Path {
		if p == id {
			return true
		}
	}
	return false
}

type Handler func(Event)

// Bus fans events out to subscribers. Each page owns one bus, so
// subscriptions never outlive the page that made them.
type Bus struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]subscription
}

type subscription struct {
	eventType string
	handler   Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[int]subscription)}
}

// Subscribe registers handler for events of eventType and returns the
// function that removes it. Calling the returned function twice is safe.
func (b *Bus) Subscribe(eventType string, handler Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = subscription{eventType: eventType, handler: handler}
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.handlers, id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers e synchronously to every matching subscriber.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	matched := make([]Handler, 0, len(b.handlers))
	for _, s := range b.handlers {
		if s.eventType == e.Type {
			matched = append(matched, s.handler)
		}
	}
	b.mu.Unlock()

	for _, h := range matched {
		h(e)
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}
