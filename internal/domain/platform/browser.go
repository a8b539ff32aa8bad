package platform

import "context"

// Family is the coarse browser family the engine branches on. Finer
// distinctions (versions, forks) are deliberately not modeled; only the push
// mechanism differs between families.
type Family string

const (
	FamilyChromeLike Family = "chrome"
	FamilyFirefox    Family = "firefox"
	FamilySafari     Family = "safari"
)

// Browser reports the capabilities of the hosting browser.
type Browser interface {
	// Family returns the coarse browser family.
	Family() Family

	// NotificationPermission queries the current notification permission.
	NotificationPermission(ctx context.Context) (PermissionState, error)

	// SupportsVAPID reports whether subscribe accepts an application server
	// key. When false the legacy sender-ID mechanism must be used even if a
	// VAPID key is configured.
	SupportsVAPID() bool
}
