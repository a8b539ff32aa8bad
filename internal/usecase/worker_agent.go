package usecase

import "context"

// WorkerAgent is the engine's worker-context entry point. It wires the
// message listeners the page-side components talk to (version requests,
// delegated subscription negotiation) and starts listening.
type WorkerAgent interface {
	// Run installs the agent's listeners and begins receiving messages.
	Run(ctx context.Context) error
}
