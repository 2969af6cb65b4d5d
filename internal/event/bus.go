package event

import (
	"log"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Handler is a function that handles an event.
type Handler func(Event)

// Wildcard subscribes a handler to every event type.
const Wildcard = "*"

// subscription pairs a handler with its registration token.
type subscription struct {
	token   uint64
	handler Handler
}

// Bus is a simple synchronous pub-sub event bus.
// Handlers run on the publisher's goroutine, in registration order.
type Bus struct {
	mu        sync.RWMutex
	subs      map[string][]subscription // eventType -> subscriptions
	nextToken atomic.Uint64
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[string][]subscription),
	}
}

// Subscribe registers a handler for a specific event type.
// Returns a token that can be passed to Unsubscribe.
func (b *Bus) Subscribe(eventType string, handler Handler) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	token := b.nextToken.Add(1)
	b.subs[eventType] = append(b.subs[eventType], subscription{token: token, handler: handler})
	return token
}

// SubscribeAll registers a handler for all event types.
func (b *Bus) SubscribeAll(handler Handler) uint64 {
	return b.Subscribe(Wildcard, handler)
}

// Unsubscribe removes a subscription by token.
// Returns true if the subscription was found and removed.
func (b *Bus) Unsubscribe(token uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.subs {
		for i, sub := range subs {
			if sub.token == token {
				b.subs[eventType] = append(subs[:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Publish dispatches an event to all registered handlers. Handlers
// subscribed to the specific event type run before wildcard handlers.
// A panicking handler is recovered and logged so it cannot block
// delivery to the remaining handlers.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	specific := append([]subscription(nil), b.subs[evt.EventType()]...)
	wildcard := append([]subscription(nil), b.subs[Wildcard]...)
	b.mu.RUnlock()

	for _, sub := range specific {
		b.safeCall(sub.handler, evt)
	}
	for _, sub := range wildcard {
		b.safeCall(sub.handler, evt)
	}
}

// safeCall invokes a handler and recovers from any panic.
func (b *Bus) safeCall(handler Handler, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: event handler panicked for %s: %v\n%s",
				evt.EventType(), r, debug.Stack())
		}
	}()
	handler(evt)
}
