package service

import (
	"context"

	"pushkit/internal/domain/entity"
	"pushkit/internal/domain/platform"
)

// MessageHandler consumes one delivered message.
type MessageHandler func(msg entity.Message)

// WorkerMessenger is the bidirectional command/reply channel between the page
// and worker contexts. Listeners for a command fire in registration order;
// unmatched commands are ignored. Delivery is only guaranteed once the worker
// controls the page; WaitUntilWorkerControlsPage is the sole gate preventing
// sends from racing ahead of activation.
type WorkerMessenger interface {
	// On registers a durable listener for the command.
	On(cmd entity.Command, fn MessageHandler)

	// Once registers a listener removed after its first invocation.
	Once(cmd entity.Command, fn MessageHandler)

	// Off removes all listeners for the command.
	Off(cmd entity.Command)

	// Listen installs the message handler appropriate to the current context.
	// The page side first waits for worker control.
	Listen(ctx context.Context) error

	// Broadcast posts the message to every client the worker controls. It is
	// a no-op outside the worker context.
	Broadcast(ctx context.Context, msg entity.Message) error

	// Unicast posts the message to a single peer. In the worker context a
	// target client is required; in the page context target must be nil and
	// the message goes to the active controller once one exists.
	Unicast(ctx context.Context, msg entity.Message, target platform.Client) error

	// WaitUntilWorkerControlsPage resolves once a worker controls the page:
	// immediately if one already does, otherwise on the first
	// controller-change (page) or activation (worker) event.
	WaitUntilWorkerControlsPage(ctx context.Context) error
}
