package impl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"pushkit/config"
	"pushkit/internal/domain/entity"
	domainerrors "pushkit/internal/domain/errors"
	"pushkit/internal/domain/platform"
	"pushkit/internal/domain/service"
	"pushkit/internal/usecase"
	"pushkit/internal/version"
)

type workerService struct {
	cfg       *config.Config
	paths     entity.WorkerPaths
	container platform.WorkerContainer
	messenger service.WorkerMessenger
	logger    *slog.Logger
}

// NewWorkerService creates a new worker lifecycle manager instance
func NewWorkerService(
	cfg *config.Config,
	logger *slog.Logger,
	container platform.WorkerContainer,
	messenger service.WorkerMessenger,
) usecase.WorkerUsecase {
	return &workerService{
		cfg:       cfg,
		paths:     cfg.Worker.Paths(),
		container: container,
		messenger: messenger,
		logger:    logger,
	}
}

// GetActiveState classifies the current page's controlling registration.
// The registration is externally mutable, so the result is recomputed on
// every call rather than cached.
func (s *workerService) GetActiveState(ctx context.Context) (entity.ActiveState, error) {
	reg, err := s.container.Registration(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to query worker registration: %w", err)
	}
	if reg == nil {
		return entity.ActiveStateNone, nil
	}

	scriptURL, active := reg.ActiveScriptURL()
	if !active {
		// Immediate-claim semantics: a worker found merely installing is
		// assumed foreign.
		return entity.ActiveStateThirdParty, nil
	}

	if !s.container.HasController() {
		// Active registration but no controller, as after a hard reload.
		return entity.ActiveStateBypassed, nil
	}

	return s.paths.Match(scriptURL), nil
}

// ShouldInstallWorker reports whether an install is needed
func (s *workerService) ShouldInstallWorker(ctx context.Context) (bool, error) {
	state, err := s.GetActiveState(ctx)
	if err != nil {
		return false, err
	}

	return !state.IsOwnWorker(), nil
}

// InstallWorker registers the appropriate worker slot for the current state.
// The caller must separately await platform readiness before assuming the new
// worker controls the page.
func (s *workerService) InstallWorker(ctx context.Context) error {
	state, err := s.GetActiveState(ctx)
	if err != nil {
		return err
	}

	if state == entity.ActiveStateBypassed {
		// Installing after a cache-bypassing reload cannot gain control of
		// the page.
		return domainerrors.ErrUnsupportedEnvironment.WrapMessage("install worker after bypassed state")
	}

	if state == entity.ActiveStateThirdParty {
		reg, err := s.container.Registration(ctx)
		if err != nil {
			return fmt.Errorf("failed to query worker registration: %w", err)
		}
		if reg != nil {
			// Destroys the foreign push subscription. Its sender/key
			// material could not be reused anyway, so the user has to
			// re-subscribe either way.
			s.logger.Info("unregistering third-party worker", slog.String("scope", reg.Scope()))
			if err := reg.Unregister(ctx); err != nil {
				return fmt.Errorf("failed to unregister third-party worker: %w", err)
			}
		}
	}

	scriptURL, err := s.workerScriptURL(s.targetSlot(state))
	if err != nil {
		return err
	}

	s.logger.Info("installing worker",
		slog.String("script", scriptURL),
		slog.String("scope", s.paths.Scope))

	if _, err := s.container.Register(ctx, scriptURL, s.paths.Scope); err != nil {
		return fmt.Errorf("failed to register worker script: %w", err)
	}

	return nil
}

// GetWorkerVersion asks the active worker for its SDK version over the
// message channel and resolves on the one-shot reply.
func (s *workerService) GetWorkerVersion(ctx context.Context) (int, error) {
	state, err := s.GetActiveState(ctx)
	if err != nil {
		return 0, err
	}
	if !state.IsOwnWorker() {
		return 0, domainerrors.ErrWorkerNotActivated.WrapMessage("get worker version")
	}

	replyCh := make(chan int, 1)
	s.messenger.Once(entity.CommandWorkerVersionReply, func(msg entity.Message) {
		reply, err := entity.DecodePayload[entity.WorkerVersionReply](msg)
		if err != nil {
			s.logger.Error("failed to decode worker version reply", slog.Any("error", err))

			return
		}

		select {
		case replyCh <- reply.Version:
		default:
		}
	})

	msg, err := entity.NewMessage(entity.WorkerVersionRequest{})
	if err != nil {
		return 0, err
	}
	if err := s.messenger.Unicast(ctx, msg, nil); err != nil {
		return 0, fmt.Errorf("failed to send version request: %w", err)
	}

	select {
	case v := <-replyCh:
		return v, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// UpdateWorker re-registers the opposite slot when the active worker reports
// a stale version. Registering a different file name forces the browser to
// treat it as a distinct script and install immediately.
func (s *workerService) UpdateWorker(ctx context.Context) error {
	state, err := s.GetActiveState(ctx)
	if err != nil {
		return err
	}
	if !state.IsOwnWorker() {
		s.logger.Info("skipping worker update", slog.String("state", state.String()))

		return nil
	}

	workerVersion, err := s.GetWorkerVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get worker version: %w", err)
	}
	if workerVersion == version.Number {
		s.logger.Info("worker is up to date", slog.Int("version", workerVersion))

		return nil
	}

	scriptURL, err := s.workerScriptURL(s.targetSlot(state))
	if err != nil {
		return err
	}

	s.logger.Info("updating worker",
		slog.Int("workerVersion", workerVersion),
		slog.Int("sdkVersion", version.Number),
		slog.String("script", scriptURL))

	if _, err := s.container.Register(ctx, scriptURL, s.paths.Scope); err != nil {
		return fmt.Errorf("failed to register updated worker script: %w", err)
	}

	return nil
}

// targetSlot returns the script path to install for the given state. Installs
// always land on the slot opposite the active one; with no usable worker the
// fixed default is slot B. The default is policy, not preference: changing it
// changes which file every new install lands on.
func (s *workerService) targetSlot(state entity.ActiveState) string {
	switch state {
	case entity.ActiveStateWorkerA:
		return s.paths.PathB
	case entity.ActiveStateWorkerB:
		return s.paths.PathA
	default:
		return s.paths.PathB
	}
}

// workerScriptURL appends identity query parameters so the worker can recover
// app identity without message-passing on first load.
func (s *workerService) workerScriptURL(scriptPath string) (string, error) {
	u, err := url.Parse(scriptPath)
	if err != nil {
		return "", fmt.Errorf("failed to parse worker path %q: %w", scriptPath, err)
	}

	q := u.Query()
	q.Set("appId", s.cfg.App.AppID)
	q.Set("sdkVersion", strconv.Itoa(version.Number))
	u.RawQuery = q.Encode()

	return u.String(), nil
}
