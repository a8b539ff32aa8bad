package entity

import (
	"net/url"
	"path"
	"strings"
)

// ActiveState describes which worker, if any, currently controls the page.
// The value is terminal per check and recomputed on every query: it can change
// between calls through installation, navigation, or a hard refresh, so it is
// never cached.
type ActiveState string

const (
	// ActiveStateNone means no worker registration exists for the page.
	ActiveStateNone ActiveState = "none"
	// ActiveStateWorkerA means slot A's script is the active controller.
	ActiveStateWorkerA ActiveState = "workerA"
	// ActiveStateWorkerB means slot B's script is the active controller.
	ActiveStateWorkerB ActiveState = "workerB"
	// ActiveStateThirdParty means a foreign worker is registered, or a worker
	// is still installing. Immediate-claim semantics mean any worker found
	// merely installing is assumed foreign.
	ActiveStateThirdParty ActiveState = "thirdParty"
	// ActiveStateBypassed means a worker is active but the page has no
	// controller for it, as happens after a hard, cache-bypassing reload.
	ActiveStateBypassed ActiveState = "bypassed"
)

func (s ActiveState) String() string {
	return string(s)
}

// IsOwnWorker reports whether the state refers to one of our two slots.
func (s ActiveState) IsOwnWorker() bool {
	return s == ActiveStateWorkerA || s == ActiveStateWorkerB
}

// WorkerPaths is the configured A/B pair of functionally-identical worker
// script locations plus the registration scope. Exactly one of the two slots
// is ever active: updates always swap to the other slot because browsers
// cache-skip re-registration of an identical URL.
type WorkerPaths struct {
	PathA string
	PathB string
	Scope string
}

// FileA returns the normalized file name of slot A's script.
func (w WorkerPaths) FileA() string {
	return NormalizeScriptName(w.PathA)
}

// FileB returns the normalized file name of slot B's script.
func (w WorkerPaths) FileB() string {
	return NormalizeScriptName(w.PathB)
}

// Match classifies a script URL against the A/B pair. URLs that match neither
// slot classify as ThirdParty.
func (w WorkerPaths) Match(scriptURL string) ActiveState {
	switch NormalizeScriptName(scriptURL) {
	case w.FileA():
		return ActiveStateWorkerA
	case w.FileB():
		return ActiveStateWorkerB
	default:
		return ActiveStateThirdParty
	}
}

// NormalizeScriptName reduces a worker script URL to its lowercase base file
// name, dropping any query parameters, so that registrations carrying
// identity query strings still compare equal to the configured paths.
func NormalizeScriptName(scriptURL string) string {
	name := scriptURL
	if u, err := url.Parse(scriptURL); err == nil {
		name = u.Path
	}

	return strings.ToLower(path.Base(name))
}
