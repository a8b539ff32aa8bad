// Package service defines the collaborator interfaces the engine drives:
// the backend registration API, the cross-context messenger, and the signal
// emitter.
package service

import (
	"context"

	"pushkit/internal/domain/entity"
)

// DeviceRegistration is the payload registered with the backend when a
// subscription is created or refreshed.
type DeviceRegistration struct {
	AppID      string                  `json:"app_id"`
	DeviceType entity.DeliveryPlatform `json:"device_type"`
	Identifier string                  `json:"identifier"` // Push endpoint URL or Safari device token.
	WebP256    string                  `json:"web_p256,omitempty"`
	WebAuth    string                  `json:"web_auth,omitempty"`
	SDKVersion int                     `json:"sdk_version"`
}

// BackendClient is the backend registration API collaborator.
type BackendClient interface {
	// CreateUser registers a brand-new device and returns its identity.
	CreateUser(ctx context.Context, reg *DeviceRegistration) (entity.DeviceIdentity, error)

	// UpdateUserSession refreshes an existing device's registration and
	// returns the confirmed identity.
	UpdateUserSession(ctx context.Context, id entity.DeviceIdentity, reg *DeviceRegistration) (entity.DeviceIdentity, error)

	// UpdatePlayer applies a partial update to an existing device record.
	UpdatePlayer(ctx context.Context, appID string, id entity.DeviceIdentity, patch map[string]any) error
}
