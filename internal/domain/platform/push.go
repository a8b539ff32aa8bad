package platform

import "context"

// Key names accepted by PushSubscription.Key.
const (
	KeyP256dh = "p256dh"
	KeyAuth   = "auth"
)

// SubscribeOptions carries the options a push subscription was or will be
// created with. A nil ApplicationServerKey selects the legacy sender-ID
// mechanism; a populated one selects VAPID.
type SubscribeOptions struct {
	UserVisibleOnly      bool
	ApplicationServerKey []byte
}

// IsVAPID reports whether the options carry VAPID key material.
func (o SubscribeOptions) IsVAPID() bool {
	return len(o.ApplicationServerKey) > 0
}

// PushSubscription is a live platform push subscription.
type PushSubscription interface {
	// Endpoint returns the push endpoint URL.
	Endpoint() string

	// Options returns the options the subscription was created with. ok is
	// false on older browsers that do not expose them; resubscribing then
	// requires an explicit unsubscribe first.
	Options() (opts SubscribeOptions, ok bool)

	// Key returns raw encryption key material by name (KeyP256dh, KeyAuth).
	// Absence is tolerated on older browsers, not an error.
	Key(name string) (material []byte, ok bool)

	// Unsubscribe tears the platform subscription down.
	Unsubscribe(ctx context.Context) error
}

// PushManager is the push entry point bound to one worker registration.
type PushManager interface {
	// Subscribe creates a subscription with the given options.
	Subscribe(ctx context.Context, opts SubscribeOptions) (PushSubscription, error)

	// Subscription returns the existing subscription, or nil when none.
	Subscription(ctx context.Context) (PushSubscription, error)

	// PermissionState reports the push permission for the given options.
	PermissionState(ctx context.Context, opts SubscribeOptions) (PermissionState, error)
}
