// Package platform defines the capability interfaces through which the engine
// consumes the browser. The engine never reaches into ambient globals; every
// component receives the slice of the platform it needs via injection, so the
// same code runs against a real binding or the in-memory simulator.
package platform

// ContextKind identifies which execution context the code is running in.
type ContextKind string

const (
	// ContextPage is the top-level hosting page.
	ContextPage ContextKind = "page"
	// ContextIFrame is a nested frame on the hosting page.
	ContextIFrame ContextKind = "iframe"
	// ContextPopup is a popup or modal window.
	ContextPopup ContextKind = "popup"
	// ContextWorker is the push-receiving worker.
	ContextWorker ContextKind = "worker"
)

// Environment reports which execution context the code is running in. The
// answer is fixed for the lifetime of the context, so components query it once
// at construction.
type Environment interface {
	Kind() ContextKind
}
