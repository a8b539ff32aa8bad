// Package events implements the in-process signal emitter the hosting
// application observes engine events through.
package events

import (
	"context"
	"log/slog"
	"sync"

	"pushkit/internal/domain/service"
)

type subscriber struct {
	id int
	fn func(payload any)
}

// Emitter dispatches named signals to subscribers in registration order.
type Emitter struct {
	logger *slog.Logger

	mu     sync.RWMutex
	nextID int
	subs   map[service.Signal][]subscriber
}

// New creates a new signal emitter.
func New(logger *slog.Logger) *Emitter {
	return &Emitter{
		logger: logger,
		subs:   make(map[service.Signal][]subscriber),
	}
}

var _ service.SignalEmitter = (*Emitter)(nil)

// Emit dispatches the signal to all current subscribers.
func (e *Emitter) Emit(_ context.Context, signal service.Signal, payload any) {
	e.mu.RLock()
	subs := make([]subscriber, len(e.subs[signal]))
	copy(subs, e.subs[signal])
	e.mu.RUnlock()

	e.logger.Debug("emitting signal",
		slog.String("signal", string(signal)),
		slog.Int("subscribers", len(subs)))

	for _, sub := range subs {
		sub.fn(payload)
	}
}

// On subscribes to a signal. The returned function removes the subscription;
// removal ownership is explicit so repeated negotiation attempts do not leak
// subscriber records.
func (e *Emitter) On(signal service.Signal, fn func(payload any)) func() {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.subs[signal] = append(e.subs[signal], subscriber{id: id, fn: fn})
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		subs := e.subs[signal]
		for i, sub := range subs {
			if sub.id == id {
				e.subs[signal] = append(subs[:i], subs[i+1:]...)

				break
			}
		}
	}
}
