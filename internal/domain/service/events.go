package service

import "context"

// Signal names an engine event observable by the hosting application.
type Signal string

const (
	// SignalSubscriptionRegistered fires after a subscription has been
	// registered with the backend and persisted locally.
	SignalSubscriptionRegistered Signal = "subscription.registered"
)

// SignalEmitter dispatches named signals to the hosting application. Emission
// never blocks the engine and failures of individual handlers are the
// handlers' problem.
type SignalEmitter interface {
	// Emit dispatches the signal to all current subscribers.
	Emit(ctx context.Context, signal Signal, payload any)

	// On subscribes to a signal. The returned function removes the
	// subscription.
	On(signal Signal, fn func(payload any)) (remove func())
}
