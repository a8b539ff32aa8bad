// Package messaging implements the cross-context messenger over the
// platform's post-message channel.
package messaging

import (
	"context"
	"log/slog"
	"sync"

	"pushkit/internal/domain/entity"
	domainerrors "pushkit/internal/domain/errors"
	"pushkit/internal/domain/platform"
	"pushkit/internal/domain/service"
	"pushkit/internal/errors"

	"github.com/puzpuzpuz/xsync/v4"
)

type listenerRecord struct {
	fn   service.MessageHandler
	once bool
}

// listenerList keeps one command's listeners in registration order. The xsync
// map shards access across commands; the per-command mutex covers the rare
// mutation of a single list.
type listenerList struct {
	mu      sync.Mutex
	records []listenerRecord
}

// Messenger is the command/reply channel between the page and worker
// contexts. Exactly one of container/scope is set, matching the execution
// context the messenger was constructed for.
type Messenger struct {
	env       platform.Environment
	container platform.WorkerContainer // page-side transport, nil in worker context
	scope     platform.WorkerScope     // worker-side transport, nil in page context
	logger    *slog.Logger
	listeners *xsync.Map[entity.Command, *listenerList]
}

// NewPageMessenger creates the page-side messenger.
func NewPageMessenger(container platform.WorkerContainer, env platform.Environment, logger *slog.Logger) *Messenger {
	return &Messenger{
		env:       env,
		container: container,
		logger:    logger,
		listeners: xsync.NewMap[entity.Command, *listenerList](),
	}
}

// NewWorkerMessenger creates the worker-side messenger.
func NewWorkerMessenger(scope platform.WorkerScope, env platform.Environment, logger *slog.Logger) *Messenger {
	return &Messenger{
		env:       env,
		scope:     scope,
		logger:    logger,
		listeners: xsync.NewMap[entity.Command, *listenerList](),
	}
}

var _ service.WorkerMessenger = (*Messenger)(nil)

// On registers a durable listener for the command.
func (m *Messenger) On(cmd entity.Command, fn service.MessageHandler) {
	m.addListener(cmd, listenerRecord{fn: fn})
}

// Once registers a listener removed after its first invocation.
func (m *Messenger) Once(cmd entity.Command, fn service.MessageHandler) {
	m.addListener(cmd, listenerRecord{fn: fn, once: true})
}

// Off removes all listeners for the command.
func (m *Messenger) Off(cmd entity.Command) {
	m.listeners.Delete(cmd)
}

func (m *Messenger) addListener(cmd entity.Command, rec listenerRecord) {
	list, _ := m.listeners.LoadOrStore(cmd, &listenerList{})
	list.mu.Lock()
	list.records = append(list.records, rec)
	list.mu.Unlock()
}

// Listen installs the message handler appropriate to the current context. The
// page side first waits until a worker controls the page; listening earlier
// would observe nothing anyway.
func (m *Messenger) Listen(ctx context.Context) error {
	if m.inWorker() {
		m.scope.OnMessage(m.dispatch)

		return nil
	}

	if err := m.WaitUntilWorkerControlsPage(ctx); err != nil {
		return err
	}
	m.container.OnMessage(m.dispatch)

	return nil
}

// Broadcast posts the message to every client the worker controls. Outside
// the worker context there is nobody to broadcast to and the call is a no-op.
func (m *Messenger) Broadcast(ctx context.Context, msg entity.Message) error {
	if !m.inWorker() {
		m.logger.Debug("broadcast ignored outside worker context",
			slog.String("command", string(msg.Command)))

		return nil
	}

	clients, err := m.scope.Clients(ctx)
	if err != nil {
		return errors.Wrap(err, "enumerate clients")
	}

	for _, client := range clients {
		if err := m.scope.PostToClient(ctx, client, msg); err != nil {
			return errors.Wrapf(err, "post %s to client %s", msg.Command, client.ID())
		}
	}

	return nil
}

// Unicast posts the message to a single peer. In the worker context an
// explicit target client is required; in the page context target must be nil
// and the message goes to the active controller once one exists.
func (m *Messenger) Unicast(ctx context.Context, msg entity.Message, target platform.Client) error {
	if m.inWorker() {
		if target == nil {
			return domainerrors.ErrMissingArgument.WithDetails("worker unicast requires a target client")
		}

		return errors.Wrapf(m.scope.PostToClient(ctx, target, msg), "post %s to client %s", msg.Command, target.ID())
	}

	if err := m.WaitUntilWorkerControlsPage(ctx); err != nil {
		return err
	}

	return errors.Wrapf(m.container.PostToController(ctx, msg), "post %s to controller", msg.Command)
}

// WaitUntilWorkerControlsPage resolves once a worker controls the page. This
// is the single synchronization primitive bridging installation and the first
// usable message exchange; every controller-bound send routes through it.
// Callers in hostile environments should wrap it with a context deadline,
// since no worker may ever install.
func (m *Messenger) WaitUntilWorkerControlsPage(ctx context.Context) error {
	var (
		controlled func() bool
		subscribe  func(fn func()) func()
	)
	if m.inWorker() {
		controlled = m.scope.Activated
		subscribe = m.scope.OnActivated
	} else {
		controlled = m.container.HasController
		subscribe = m.container.OnControllerChange
	}

	if controlled() {
		return nil
	}

	gained := make(chan struct{}, 1)
	remove := subscribe(func() {
		select {
		case gained <- struct{}{}:
		default:
		}
	})
	defer remove()

	// Re-check after subscribing; control may have arrived in between.
	if controlled() {
		return nil
	}

	select {
	case <-gained:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "wait for worker control")
	}
}

func (m *Messenger) dispatch(msg entity.Message) {
	list, ok := m.listeners.Load(msg.Command)
	if !ok {
		// No registered listener is not an error.
		return
	}

	list.mu.Lock()
	records := make([]listenerRecord, len(list.records))
	copy(records, list.records)

	kept := list.records[:0]
	for _, rec := range list.records {
		if !rec.once {
			kept = append(kept, rec)
		}
	}
	list.records = kept
	list.mu.Unlock()

	m.logger.Debug("dispatching message",
		slog.String("command", string(msg.Command)),
		slog.Int("listeners", len(records)))

	for _, rec := range records {
		rec.fn(msg)
	}
}

func (m *Messenger) inWorker() bool {
	return m.env.Kind() == platform.ContextWorker
}
