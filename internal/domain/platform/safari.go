package platform

import "context"

// SafariPermissionResult is the outcome of Safari's proprietary permission
// prompt.
type SafariPermissionResult struct {
	Permission  PermissionState
	DeviceToken string
}

// SafariPusher is Safari's proprietary push permission API.
type SafariPusher interface {
	// Available reports whether the proprietary API exists in this browser.
	Available() bool

	// RequestPermission prompts the user, identifying the site by its web
	// push identifier and passing app identity parameters the push service
	// echoes back on registration.
	RequestPermission(ctx context.Context, webServiceURL, webID string, params map[string]string) (SafariPermissionResult, error)
}
