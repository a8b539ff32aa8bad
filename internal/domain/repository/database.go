// Package repository defines the persistence collaborator interface. Storage
// schema design stays outside the engine; only the store and key names below
// are part of its contract.
package repository

import (
	"context"

	"pushkit/internal/errors"
)

// ErrNotFound is returned when a store has no value under the requested key.
var ErrNotFound = errors.New("record not found")

// Store names referenced by the engine.
const (
	StoreIDs     = "Ids"
	StoreOptions = "Options"
)

// Keys referenced by the engine.
const (
	KeyUserID                 = "userId"                 // StoreIDs: device identity
	KeyRegistrationID         = "registrationId"         // StoreOptions: subscription token
	KeyOptedOut               = "optedOut"               // StoreOptions: opt-out flag
	KeyNotificationPermission = "notificationPermission" // StoreOptions: last observed permission
)

// Database is the key/value persistence collaborator, addressed by store and
// key. Values are opaque bytes; callers own the encoding.
type Database interface {
	// Get returns the value under store/key, or ErrNotFound.
	Get(ctx context.Context, store, key string) ([]byte, error)

	// Put writes the value under store/key, overwriting any previous value.
	Put(ctx context.Context, store, key string, value []byte) error
}
