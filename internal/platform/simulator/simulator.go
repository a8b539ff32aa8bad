// Package simulator is an in-memory browser standing in for the real
// platform bindings. One Simulator models one browser profile with a page
// context and a worker context sharing registration, controller, and push
// state. Message delivery between the contexts is synchronous.
package simulator

import (
	"context"
	"fmt"
	"sync"

	"pushkit/internal/domain/entity"
	"pushkit/internal/domain/platform"
)

type registrationState struct {
	scriptURL    string
	scope        string
	active       bool
	subscription *pushSubscription
}

// Simulator holds the scripted browser state both contexts observe.
type Simulator struct {
	mu sync.Mutex

	family                 platform.Family
	supportsVAPID          bool
	notificationPermission platform.PermissionState
	exposeOptions          bool

	safariAvailable bool
	safariResult    platform.SafariPermissionResult
	safariErr       error

	registration *registrationState
	controlled   bool

	nextSubID      int
	controllerSubs map[int]func()
	activationSubs map[int]func()

	pageHandler   func(entity.Message)
	workerHandler func(entity.Message)

	endpointSeq int
}

// Option configures a new Simulator.
type Option func(*Simulator)

// WithFamily sets the browser family.
func WithFamily(family platform.Family) Option {
	return func(s *Simulator) { s.family = family }
}

// WithVAPIDSupport toggles application-server-key support.
func WithVAPIDSupport(supported bool) Option {
	return func(s *Simulator) { s.supportsVAPID = supported }
}

// WithNotificationPermission scripts the permission state.
func WithNotificationPermission(perm platform.PermissionState) Option {
	return func(s *Simulator) { s.notificationPermission = perm }
}

// WithLegacySubscriptions makes new subscriptions hide their creation options,
// modeling older browsers.
func WithLegacySubscriptions() Option {
	return func(s *Simulator) { s.exposeOptions = false }
}

// WithSafari enables the proprietary Safari permission API with a scripted
// prompt outcome.
func WithSafari(result platform.SafariPermissionResult, err error) Option {
	return func(s *Simulator) {
		s.safariAvailable = true
		s.safariResult = result
		s.safariErr = err
	}
}

// New creates a simulator: a Chrome-family browser with VAPID support,
// permission undecided, no registration.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		family:                 platform.FamilyChromeLike,
		supportsVAPID:          true,
		notificationPermission: platform.PermissionDefault,
		exposeOptions:          true,
		controllerSubs:         make(map[int]func()),
		activationSubs:         make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// PageEnvironment returns the page-context environment report.
func (s *Simulator) PageEnvironment() platform.Environment {
	return contextEnv(platform.ContextPage)
}

// WorkerEnvironment returns the worker-context environment report.
func (s *Simulator) WorkerEnvironment() platform.Environment {
	return contextEnv(platform.ContextWorker)
}

// EnvironmentOf returns an environment report for an arbitrary context kind,
// used to exercise the iframe and popup refusals.
func (s *Simulator) EnvironmentOf(kind platform.ContextKind) platform.Environment {
	return contextEnv(kind)
}

// Browser returns the capability view of the simulated browser.
func (s *Simulator) Browser() platform.Browser {
	return browserView{sim: s}
}

// Container returns the page-context worker view.
func (s *Simulator) Container() platform.WorkerContainer {
	return &containerView{sim: s}
}

// Scope returns the worker-context view.
func (s *Simulator) Scope() platform.WorkerScope {
	return &scopeView{sim: s}
}

// SafariPusher returns the proprietary Safari API view.
func (s *Simulator) SafariPusher() platform.SafariPusher {
	return safariView{sim: s}
}

// SetNotificationPermission rescripts the permission state mid-scenario.
func (s *Simulator) SetNotificationPermission(perm platform.PermissionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notificationPermission = perm
}

// SetRegistration scripts a pre-existing registration, active or still
// installing, without going through Register. Used to stage foreign-worker
// scenarios.
func (s *Simulator) SetRegistration(scriptURL, scope string, active bool) {
	s.mu.Lock()
	s.registration = &registrationState{scriptURL: scriptURL, scope: scope, active: active}
	controllerSubs := s.snapshotLocked(s.controllerSubs, active && !s.controlled)
	activationSubs := s.snapshotLocked(s.activationSubs, active)
	s.controlled = active
	s.mu.Unlock()

	for _, fn := range controllerSubs {
		fn()
	}
	for _, fn := range activationSubs {
		fn()
	}
}

// SetControlled scripts whether a worker controls the page independently of
// the registration, staging the bypassed state after a hard reload.
func (s *Simulator) SetControlled(controlled bool) {
	s.mu.Lock()
	subs := s.snapshotLocked(s.controllerSubs, controlled && !s.controlled)
	s.controlled = controlled
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// ActiveScript reports the registered script URL, for assertions.
func (s *Simulator) ActiveScript() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registration == nil {
		return "", false
	}

	return s.registration.scriptURL, s.registration.active
}

// CurrentSubscription reports the live push subscription, for assertions.
func (s *Simulator) CurrentSubscription() platform.PushSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registration == nil || s.registration.subscription == nil {
		return nil
	}

	return s.registration.subscription
}

func (s *Simulator) snapshotLocked(subs map[int]func(), fire bool) []func() {
	if !fire {
		return nil
	}
	out := make([]func(), 0, len(subs))
	for _, fn := range subs {
		out = append(out, fn)
	}

	return out
}

// register installs a script, activating it synchronously. A re-registration
// under the same scope keeps the existing push subscription, matching browser
// behavior on worker updates.
func (s *Simulator) register(scriptURL, scope string) *registrationState {
	s.mu.Lock()

	var kept *pushSubscription
	if s.registration != nil && s.registration.scope == scope {
		kept = s.registration.subscription
	}
	reg := &registrationState{
		scriptURL:    scriptURL,
		scope:        scope,
		active:       true,
		subscription: kept,
	}
	s.registration = reg

	controllerSubs := s.snapshotLocked(s.controllerSubs, !s.controlled)
	activationSubs := s.snapshotLocked(s.activationSubs, true)
	s.controlled = true
	s.mu.Unlock()

	for _, fn := range controllerSubs {
		fn()
	}
	for _, fn := range activationSubs {
		fn()
	}

	return reg
}

func (s *Simulator) unregister(reg *registrationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registration != reg {
		return nil
	}
	s.registration = nil
	s.controlled = false

	return nil
}

// postToWorker delivers a page message to the worker handler synchronously.
func (s *Simulator) postToWorker(msg entity.Message) error {
	s.mu.Lock()
	handler := s.workerHandler
	controlled := s.controlled
	s.mu.Unlock()

	if !controlled {
		return fmt.Errorf("no controller to deliver %s to", msg.Command)
	}
	if handler != nil {
		handler(msg)
	}

	return nil
}

// postToPage delivers a worker message to the page handler synchronously.
func (s *Simulator) postToPage(msg entity.Message) error {
	s.mu.Lock()
	handler := s.pageHandler
	s.mu.Unlock()

	if handler != nil {
		handler(msg)
	}

	return nil
}

type contextEnv platform.ContextKind

func (e contextEnv) Kind() platform.ContextKind {
	return platform.ContextKind(e)
}

type browserView struct {
	sim *Simulator
}

func (v browserView) Family() platform.Family {
	v.sim.mu.Lock()
	defer v.sim.mu.Unlock()

	return v.sim.family
}

func (v browserView) NotificationPermission(context.Context) (platform.PermissionState, error) {
	v.sim.mu.Lock()
	defer v.sim.mu.Unlock()

	return v.sim.notificationPermission, nil
}

func (v browserView) SupportsVAPID() bool {
	v.sim.mu.Lock()
	defer v.sim.mu.Unlock()

	return v.sim.supportsVAPID
}

type safariView struct {
	sim *Simulator
}

func (v safariView) Available() bool {
	v.sim.mu.Lock()
	defer v.sim.mu.Unlock()

	return v.sim.safariAvailable
}

func (v safariView) RequestPermission(_ context.Context, _, _ string, _ map[string]string) (platform.SafariPermissionResult, error) {
	v.sim.mu.Lock()
	defer v.sim.mu.Unlock()

	return v.sim.safariResult, v.sim.safariErr
}
