// Package fanout broadcasts events to multiple in-process consumers.
//
// It provides best-effort fan-out with no guarantees regarding durability or
// retries. It is intended for delivering normalized messages and state
// changes to UI consumers, not for core domain logic.
package fanout

import (
	"log/slog"
	"sync"

	"github.com/samber/lo"
)

// Bus delivers each published event to every registered handler exactly
// once, in registration order. Dispatch iterates a snapshot of the handler
// list, so registering or removing a handler during dispatch only affects
// later events. A panicking handler is recovered and logged; the remaining
// handlers still run.
//
// Bus is safe for concurrent use by multiple goroutines.
type Bus[T any] struct {
	log *slog.Logger

	mu       sync.Mutex
	nextID   uint64
	handlers []registration[T]
}

type registration[T any] struct {
	id      uint64
	handler func(T)
}

func NewBus[T any](log *slog.Logger) *Bus[T] {
	return &Bus[T]{log: log}
}

// Register adds a handler and returns its removal function. Each call is a
// distinct registration, even for the same handler value. The removal
// function is idempotent.
func (b *Bus[T]) Register(handler func(T)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, registration[T]{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.handlers = lo.Filter(b.handlers, func(r registration[T], _ int) bool {
			return r.id != id
		})
	}
}

// Publish dispatches one event to the current snapshot of handlers.
func (b *Bus[T]) Publish(evt T) {
	b.mu.Lock()
	snapshot := make([]registration[T], len(b.handlers))
	copy(snapshot, b.handlers)
	b.mu.Unlock()

	for _, r := range snapshot {
		b.dispatch(r, evt)
	}
}

// Len reports the number of live registrations.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

func (b *Bus[T]) dispatch(r registration[T], evt T) {
	defer func() {
		if rec := recover(); rec != nil {
			b.log.Error("fanout handler panicked", "panic", rec)
		}
	}()
	r.handler(evt)
}
