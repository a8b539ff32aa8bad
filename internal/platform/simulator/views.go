package simulator

import (
	"bytes"
	"context"
	"fmt"

	"pushkit/internal/domain/entity"
	"pushkit/internal/domain/platform"
)

func (s *Simulator) onControllerChange(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.controllerSubs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.controllerSubs, id)
	}
}

func (s *Simulator) onActivated(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.activationSubs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.activationSubs, id)
	}
}

func (s *Simulator) currentRegistration() (platform.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registration == nil {
		return nil, nil
	}

	return &registrationView{sim: s, reg: s.registration}, nil
}

type containerView struct {
	sim *Simulator
}

var _ platform.WorkerContainer = (*containerView)(nil)

func (v *containerView) Registration(context.Context) (platform.Registration, error) {
	return v.sim.currentRegistration()
}

func (v *containerView) Register(_ context.Context, scriptURL, scope string) (platform.Registration, error) {
	reg := v.sim.register(scriptURL, scope)

	return &registrationView{sim: v.sim, reg: reg}, nil
}

func (v *containerView) HasController() bool {
	v.sim.mu.Lock()
	defer v.sim.mu.Unlock()

	return v.sim.controlled
}

func (v *containerView) OnControllerChange(fn func()) func() {
	return v.sim.onControllerChange(fn)
}

// Ready blocks until the registration has an active worker.
func (v *containerView) Ready(ctx context.Context) error {
	ready := func() bool {
		v.sim.mu.Lock()
		defer v.sim.mu.Unlock()

		return v.sim.registration != nil && v.sim.registration.active
	}

	if ready() {
		return nil
	}

	activated := make(chan struct{}, 1)
	remove := v.sim.onActivated(func() {
		select {
		case activated <- struct{}{}:
		default:
		}
	})
	defer remove()

	if ready() {
		return nil
	}

	select {
	case <-activated:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (v *containerView) PostToController(_ context.Context, msg entity.Message) error {
	return v.sim.postToWorker(msg)
}

func (v *containerView) OnMessage(fn func(msg entity.Message)) {
	v.sim.mu.Lock()
	defer v.sim.mu.Unlock()
	v.sim.pageHandler = fn
}

type scopeView struct {
	sim *Simulator
}

var _ platform.WorkerScope = (*scopeView)(nil)

func (v *scopeView) Registration(context.Context) (platform.Registration, error) {
	return v.sim.currentRegistration()
}

func (v *scopeView) Activated() bool {
	v.sim.mu.Lock()
	defer v.sim.mu.Unlock()

	return v.sim.registration != nil && v.sim.registration.active
}

func (v *scopeView) OnActivated(fn func()) func() {
	return v.sim.onActivated(fn)
}

func (v *scopeView) Clients(context.Context) ([]platform.Client, error) {
	v.sim.mu.Lock()
	defer v.sim.mu.Unlock()
	if !v.sim.controlled {
		return nil, nil
	}

	return []platform.Client{pageClient{}}, nil
}

func (v *scopeView) PostToClient(_ context.Context, _ platform.Client, msg entity.Message) error {
	return v.sim.postToPage(msg)
}

func (v *scopeView) OnMessage(fn func(msg entity.Message)) {
	v.sim.mu.Lock()
	defer v.sim.mu.Unlock()
	v.sim.workerHandler = fn
}

type pageClient struct{}

func (pageClient) ID() string  { return "page-1" }
func (pageClient) URL() string { return "https://app.example.test/" }

type registrationView struct {
	sim *Simulator
	reg *registrationState
}

var _ platform.Registration = (*registrationView)(nil)

func (v *registrationView) Scope() string {
	v.sim.mu.Lock()
	defer v.sim.mu.Unlock()

	return v.reg.scope
}

func (v *registrationView) ActiveScriptURL() (string, bool) {
	v.sim.mu.Lock()
	defer v.sim.mu.Unlock()
	if !v.reg.active {
		return "", false
	}

	return v.reg.scriptURL, true
}

func (v *registrationView) PushManager() platform.PushManager {
	return &pushManagerView{sim: v.sim, reg: v.reg}
}

func (v *registrationView) Unregister(context.Context) error {
	return v.sim.unregister(v.reg)
}

type pushManagerView struct {
	sim *Simulator
	reg *registrationState
}

var _ platform.PushManager = (*pushManagerView)(nil)

// Subscribe creates or reuses a push subscription. An existing subscription
// with different options is an error, mirroring the platform's refusal to
// change applicationServerKey in place.
func (v *pushManagerView) Subscribe(_ context.Context, opts platform.SubscribeOptions) (platform.PushSubscription, error) {
	v.sim.mu.Lock()
	defer v.sim.mu.Unlock()

	if v.sim.registration != v.reg {
		return nil, fmt.Errorf("registration no longer current")
	}

	if existing := v.reg.subscription; existing != nil {
		if !sameOptions(existing.opts, opts) {
			return nil, fmt.Errorf("existing subscription was created with different options")
		}

		return existing, nil
	}

	v.sim.endpointSeq++
	seq := v.sim.endpointSeq
	sub := &pushSubscription{
		sim:      v.sim,
		reg:      v.reg,
		endpoint: fmt.Sprintf("https://push.simulator.invalid/send/%06d", seq),
		opts:     opts,
		expose:   v.sim.exposeOptions,
		p256dh:   fillKey(65, byte(seq)),
		auth:     fillKey(16, byte(seq)+1),
	}
	v.reg.subscription = sub

	return sub, nil
}

func (v *pushManagerView) Subscription(context.Context) (platform.PushSubscription, error) {
	v.sim.mu.Lock()
	defer v.sim.mu.Unlock()
	if v.reg.subscription == nil {
		return nil, nil
	}

	return v.reg.subscription, nil
}

func (v *pushManagerView) PermissionState(context.Context, platform.SubscribeOptions) (platform.PermissionState, error) {
	v.sim.mu.Lock()
	defer v.sim.mu.Unlock()

	// Push permission reports "prompt" where notification permission reports
	// "default".
	if v.sim.notificationPermission == platform.PermissionDefault {
		return platform.PermissionPrompt, nil
	}

	return v.sim.notificationPermission, nil
}

type pushSubscription struct {
	sim      *Simulator
	reg      *registrationState
	endpoint string
	opts     platform.SubscribeOptions
	expose   bool
	p256dh   []byte
	auth     []byte
}

var _ platform.PushSubscription = (*pushSubscription)(nil)

func (p *pushSubscription) Endpoint() string {
	return p.endpoint
}

func (p *pushSubscription) Options() (platform.SubscribeOptions, bool) {
	if !p.expose {
		return platform.SubscribeOptions{}, false
	}

	return p.opts, true
}

func (p *pushSubscription) Key(name string) ([]byte, bool) {
	switch name {
	case platform.KeyP256dh:
		return p.p256dh, true
	case platform.KeyAuth:
		return p.auth, true
	default:
		return nil, false
	}
}

func (p *pushSubscription) Unsubscribe(context.Context) error {
	p.sim.mu.Lock()
	defer p.sim.mu.Unlock()
	if p.reg.subscription == p {
		p.reg.subscription = nil
	}

	return nil
}

func sameOptions(a, b platform.SubscribeOptions) bool {
	return a.UserVisibleOnly == b.UserVisibleOnly &&
		bytes.Equal(a.ApplicationServerKey, b.ApplicationServerKey)
}

func fillKey(size int, seed byte) []byte {
	key := make([]byte, size)
	for i := range key {
		key[i] = seed + byte(i)
	}

	return key
}
