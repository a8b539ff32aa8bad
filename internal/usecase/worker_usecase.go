package usecase

import (
	"context"

	"pushkit/internal/domain/entity"
)

// WorkerUsecase defines the interface for the worker lifecycle manager: it
// owns the install/update/detection state machine for the push-receiving
// worker, alternating between two script slots to force browser-level
// reinstallation when the worker code changes.
type WorkerUsecase interface {
	// GetActiveState classifies the current page's controlling registration.
	// Pure read; it never mutates registration state and is safe to poll.
	GetActiveState(ctx context.Context) (entity.ActiveState, error)

	// ShouldInstallWorker reports whether an install is needed, i.e. the
	// active state is anything other than one of our two slots.
	ShouldInstallWorker(ctx context.Context) (bool, error)

	// InstallWorker registers the appropriate slot. A foreign registration is
	// unregistered first; installing after a bypassed state fails because it
	// cannot gain control of the page.
	InstallWorker(ctx context.Context) error

	// GetWorkerVersion asks the active worker for its SDK version over the
	// message channel. Requires one of our slots to be active.
	GetWorkerVersion(ctx context.Context) (int, error)

	// UpdateWorker re-registers the opposite slot when the active worker's
	// reported version is stale. A no-op otherwise.
	UpdateWorker(ctx context.Context) error
}
