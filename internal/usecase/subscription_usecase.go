package usecase

import (
	"context"

	"pushkit/internal/domain/entity"
)

// UnsubscribeStrategy selects how Unsubscribe tears a subscription down.
type UnsubscribeStrategy int

const (
	// UnsubscribeMarkUnsubscribed marks the device muted on the backend and
	// flips the local opt-out flag. Worker context only.
	UnsubscribeMarkUnsubscribed UnsubscribeStrategy = iota + 1

	// UnsubscribeDestroySubscription tears down the platform subscription
	// entirely. Designed but not implemented; callers receive an explicit
	// not-implemented failure, never a silent no-op.
	UnsubscribeDestroySubscription
)

// SubscriptionUsecase defines the interface for the subscription negotiator:
// it produces one normalized push subscription regardless of which of the
// three push mechanisms the browser offers.
type SubscriptionUsecase interface {
	// Subscribe drives permission checks and the platform-appropriate
	// subscription protocol, registers the result with the backend, and
	// persists identity locally.
	Subscribe(ctx context.Context) (*entity.Subscription, error)

	// Unsubscribe applies the chosen teardown strategy.
	Unsubscribe(ctx context.Context, strategy UnsubscribeStrategy) error
}
