package platform

import (
	"context"

	"pushkit/internal/domain/entity"
)

// Registration is a handle on one worker registration.
type Registration interface {
	// Scope returns the registration scope.
	Scope() string

	// ActiveScriptURL returns the active worker's script URL. ok is false
	// while the worker is still installing or waiting.
	ActiveScriptURL() (scriptURL string, ok bool)

	// PushManager returns the push manager bound to this registration.
	PushManager() PushManager

	// Unregister removes the registration, destroying any push subscription
	// attached to it.
	Unregister(ctx context.Context) error
}

// WorkerContainer is the page-context view of the worker machinery: the
// current page's registration, the controller, and the page end of the
// cross-context message channel.
type WorkerContainer interface {
	// Registration returns the registration whose scope controls the current
	// page, or nil when none exists. Registrations nested under other paths
	// do not count; they exist but do not control this page.
	Registration(ctx context.Context) (Registration, error)

	// Register installs scriptURL under scope and returns the resulting
	// registration. The caller must separately await Ready before assuming
	// the new worker controls the page.
	Register(ctx context.Context, scriptURL, scope string) (Registration, error)

	// HasController reports whether any worker currently controls the page.
	HasController() bool

	// OnControllerChange subscribes to the platform's controller-change
	// event. The returned function removes the subscription.
	OnControllerChange(fn func()) (remove func())

	// Ready blocks until the page's registration has an active worker.
	Ready(ctx context.Context) error

	// PostToController posts a message to the page's active controller.
	PostToController(ctx context.Context, msg entity.Message) error

	// OnMessage installs the handler for messages arriving from the worker.
	OnMessage(fn func(msg entity.Message))
}

// Client is a browser tab or window controlled by the worker.
type Client interface {
	ID() string
	URL() string
}

// WorkerScope is the worker-context view: the worker's own registration, its
// activation state, and the clients it controls.
type WorkerScope interface {
	// Registration returns the worker's own registration.
	Registration(ctx context.Context) (Registration, error)

	// Activated reports whether this worker has finished activating.
	Activated() bool

	// OnActivated subscribes to the worker's activation event. The returned
	// function removes the subscription.
	OnActivated(fn func()) (remove func())

	// Clients enumerates the tabs and windows this worker controls.
	Clients(ctx context.Context) ([]Client, error)

	// PostToClient posts a message directly to one client.
	PostToClient(ctx context.Context, target Client, msg entity.Message) error

	// OnMessage installs the handler for messages arriving from pages.
	OnMessage(fn func(msg entity.Message))
}
