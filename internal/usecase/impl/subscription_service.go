package impl

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"pushkit/config"
	"pushkit/internal/domain/entity"
	domainerrors "pushkit/internal/domain/errors"
	"pushkit/internal/domain/platform"
	"pushkit/internal/domain/repository"
	"pushkit/internal/domain/service"
	"pushkit/internal/usecase"
	"pushkit/internal/version"
)

// ErrNoDeviceIdentity is returned when an unsubscribe runs before any
// registration ever assigned an identity.
var ErrNoDeviceIdentity = errors.New("no persisted device identity")

type subscriptionService struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       repository.Database
	backend  service.BackendClient
	signals  service.SignalEmitter
	env      platform.Environment
	browser  platform.Browser
	strategy negotiationStrategy
}

// negotiationStrategy runs the permission checks and the platform-appropriate
// subscription protocol for one execution context. The strategy is selected
// once at construction; the service never re-queries the environment per call.
type negotiationStrategy interface {
	resolveRaw(ctx context.Context) (*entity.RawPushSubscription, error)
}

// NewSubscriptionService creates the page/host-context subscription
// negotiator. Nested frames and popups structurally cannot subscribe and get
// a strategy that refuses with an unsupported-environment failure.
func NewSubscriptionService(
	cfg *config.Config,
	logger *slog.Logger,
	db repository.Database,
	backend service.BackendClient,
	signals service.SignalEmitter,
	workerUC usecase.WorkerUsecase,
	container platform.WorkerContainer,
	env platform.Environment,
	browser platform.Browser,
	safari platform.SafariPusher,
) usecase.SubscriptionUsecase {
	svc := &subscriptionService{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		backend: backend,
		signals: signals,
		env:     env,
		browser: browser,
	}

	if env.Kind() == platform.ContextPage {
		svc.strategy = &pageStrategy{
			svc:       svc,
			workerUC:  workerUC,
			container: container,
			browser:   browser,
			safari:    safari,
		}
	} else {
		svc.strategy = unsupportedStrategy{kind: env.Kind()}
	}

	return svc
}

// NewWorkerSubscriptionService creates the worker-context subscription
// negotiator. A worker cannot prompt the user, so permission must already be
// granted before it can resolve a subscription.
func NewWorkerSubscriptionService(
	cfg *config.Config,
	logger *slog.Logger,
	db repository.Database,
	backend service.BackendClient,
	signals service.SignalEmitter,
	scope platform.WorkerScope,
	env platform.Environment,
	browser platform.Browser,
) usecase.SubscriptionUsecase {
	svc := &subscriptionService{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		backend: backend,
		signals: signals,
		env:     env,
		browser: browser,
	}
	svc.strategy = &workerStrategy{svc: svc, scope: scope, browser: browser}

	return svc
}

// Subscribe drives the context strategy through negotiation, registers the
// result with the backend, and persists identity locally.
func (s *subscriptionService) Subscribe(ctx context.Context) (*entity.Subscription, error) {
	raw, err := s.strategy.resolveRaw(ctx)
	if err != nil {
		return nil, err
	}

	return s.registerWithBackend(ctx, raw)
}

// Unsubscribe applies the chosen teardown strategy.
func (s *subscriptionService) Unsubscribe(ctx context.Context, strategy usecase.UnsubscribeStrategy) error {
	switch strategy {
	case usecase.UnsubscribeMarkUnsubscribed:
		return s.markUnsubscribed(ctx)
	case usecase.UnsubscribeDestroySubscription:
		// Designed as platform unsubscribe plus local opt-out with no
		// backend call, but blocked on the backend growing a delete
		// operation. Fails loudly so the stub is never mistaken for success.
		return domainerrors.ErrNotImplemented.WrapMessage("destroy subscription strategy")
	default:
		return domainerrors.ErrMissingArgument.WithDetails("unknown unsubscribe strategy")
	}
}

func (s *subscriptionService) markUnsubscribed(ctx context.Context) error {
	if s.env.Kind() != platform.ContextWorker {
		return domainerrors.ErrUnsupportedEnvironment.WrapMessage("mark unsubscribed outside worker context")
	}

	deviceID, err := s.savedDeviceID(ctx)
	if err != nil {
		return err
	}
	if !deviceID.IsAssigned() {
		return ErrNoDeviceIdentity
	}

	patch := map[string]any{"notification_types": -2}
	if err := s.backend.UpdatePlayer(ctx, s.cfg.App.AppID, deviceID, patch); err != nil {
		return fmt.Errorf("failed to mark player unsubscribed: %w", err)
	}

	return s.putOptedOut(ctx, true)
}

// negotiate resolves a raw subscription through the standards-based push
// manager, shared by the page and worker strategies.
func (s *subscriptionService) negotiate(ctx context.Context, pm platform.PushManager, vapidSupported bool) (*entity.RawPushSubscription, error) {
	existing, err := pm.Subscription(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing subscription: %w", err)
	}

	var sub platform.PushSubscription
	if existing != nil {
		if opts, ok := existing.Options(); ok {
			// Resubscribe with the exact original options. Substituting key
			// material here fails silently on some browser versions.
			sub, err = pm.Subscribe(ctx, opts)
			if err != nil {
				return nil, fmt.Errorf("failed to resubscribe with original options: %w", err)
			}
		} else {
			// Older browsers do not expose the original options, so the
			// stale subscription must be torn down before subscribing
			// fresh. Migrating legacy to VAPID in place is known to fail.
			if err := existing.Unsubscribe(ctx); err != nil {
				return nil, fmt.Errorf("failed to unsubscribe stale subscription: %w", err)
			}
			sub, err = s.subscribeFresh(ctx, pm, vapidSupported)
			if err != nil {
				return nil, err
			}
		}
	} else {
		sub, err = s.subscribeFresh(ctx, pm, vapidSupported)
		if err != nil {
			return nil, err
		}
	}

	return rawFromPlatform(sub), nil
}

func (s *subscriptionService) subscribeFresh(ctx context.Context, pm platform.PushManager, vapidSupported bool) (platform.PushSubscription, error) {
	opts := platform.SubscribeOptions{UserVisibleOnly: true}

	// VAPID requires both platform support and a configured key; anything
	// less falls back to the legacy sender-ID mechanism.
	if vapidSupported && s.cfg.Push.VAPIDPublicKey != "" {
		key, err := decodeApplicationServerKey(s.cfg.Push.VAPIDPublicKey)
		if err != nil {
			return nil, err
		}
		opts.ApplicationServerKey = key
	}

	sub, err := pm.Subscribe(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create push subscription: %w", err)
	}

	return sub, nil
}

func (s *subscriptionService) registerWithBackend(ctx context.Context, raw *entity.RawPushSubscription) (*entity.Subscription, error) {
	reg := &service.DeviceRegistration{
		AppID:      s.cfg.App.AppID,
		DeviceType: deliveryPlatformFor(s.browser.Family()),
		Identifier: raw.Token(),
		WebP256:    raw.P256dh,
		WebAuth:    raw.Auth,
		SDKVersion: version.Number,
	}

	existingID, err := s.savedDeviceID(ctx)
	if err != nil {
		return nil, err
	}

	var deviceID entity.DeviceIdentity
	if existingID.IsAssigned() {
		deviceID, err = s.backend.UpdateUserSession(ctx, existingID, reg)
		if err != nil {
			return nil, fmt.Errorf("failed to update user session: %w", err)
		}
	} else {
		deviceID, err = s.backend.CreateUser(ctx, reg)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	sub := &entity.Subscription{
		DeviceID:          deviceID,
		SubscriptionToken: raw.Token(),
		OptedOut:          false,
	}
	if err := s.persistSubscription(ctx, sub); err != nil {
		return nil, err
	}

	// The worker context has no listener for this signal.
	if s.env.Kind() != platform.ContextWorker {
		s.signals.Emit(ctx, service.SignalSubscriptionRegistered, sub)
	}

	s.logger.Info("subscription registered",
		slog.String("deviceId", deviceID.String()),
		slog.Bool("newUser", !existingID.IsAssigned()))

	return sub, nil
}

func (s *subscriptionService) savedDeviceID(ctx context.Context) (entity.DeviceIdentity, error) {
	value, err := s.db.Get(ctx, repository.StoreIDs, repository.KeyUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}

		return "", fmt.Errorf("failed to read device identity: %w", err)
	}

	return entity.DeviceIdentity(value), nil
}

func (s *subscriptionService) persistSubscription(ctx context.Context, sub *entity.Subscription) error {
	if err := s.db.Put(ctx, repository.StoreIDs, repository.KeyUserID, []byte(sub.DeviceID)); err != nil {
		return fmt.Errorf("failed to persist device identity: %w", err)
	}
	if err := s.db.Put(ctx, repository.StoreOptions, repository.KeyRegistrationID, []byte(sub.SubscriptionToken)); err != nil {
		return fmt.Errorf("failed to persist subscription token: %w", err)
	}

	return s.putOptedOut(ctx, sub.OptedOut)
}

func (s *subscriptionService) putOptedOut(ctx context.Context, optedOut bool) error {
	value := []byte(strconv.FormatBool(optedOut))
	if err := s.db.Put(ctx, repository.StoreOptions, repository.KeyOptedOut, value); err != nil {
		return fmt.Errorf("failed to persist opt-out flag: %w", err)
	}

	return nil
}

// pageStrategy negotiates from the hosting page: it may prompt, install the
// worker, and use any of the three push mechanisms.
type pageStrategy struct {
	svc       *subscriptionService
	workerUC  usecase.WorkerUsecase
	container platform.WorkerContainer
	browser   platform.Browser
	safari    platform.SafariPusher
}

func (st *pageStrategy) resolveRaw(ctx context.Context) (*entity.RawPushSubscription, error) {
	perm, err := st.browser.NotificationPermission(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification permission: %w", err)
	}
	if err := st.svc.db.Put(ctx, repository.StoreOptions, repository.KeyNotificationPermission, []byte(perm)); err != nil {
		return nil, fmt.Errorf("failed to persist notification permission: %w", err)
	}
	if perm == platform.PermissionDenied {
		return nil, domainerrors.ErrPermissionBlocked
	}

	if st.browser.Family() == platform.FamilySafari && st.safari != nil && st.safari.Available() {
		return st.resolveSafari(ctx)
	}

	// Standards-based push needs one of our worker slots active first.
	shouldInstall, err := st.workerUC.ShouldInstallWorker(ctx)
	if err != nil {
		return nil, err
	}
	if shouldInstall {
		if err := st.workerUC.InstallWorker(ctx); err != nil {
			return nil, err
		}
	}
	if err := st.container.Ready(ctx); err != nil {
		return nil, fmt.Errorf("failed waiting for worker readiness: %w", err)
	}

	reg, err := st.container.Registration(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query worker registration: %w", err)
	}
	if reg == nil {
		return nil, domainerrors.ErrWorkerNotActivated.WrapMessage("registration missing after install")
	}

	return st.svc.negotiate(ctx, reg.PushManager(), st.browser.SupportsVAPID())
}

func (st *pageStrategy) resolveSafari(ctx context.Context) (*entity.RawPushSubscription, error) {
	webID := st.svc.cfg.Push.SafariWebID
	if webID == "" {
		return nil, domainerrors.ErrMissingSafariWebID
	}

	params := map[string]string{"app_id": st.svc.cfg.App.AppID}
	result, err := st.safari.RequestPermission(ctx, st.svc.cfg.Backend.BaseURL+"/safari", webID, params)
	if err != nil {
		return nil, fmt.Errorf("safari permission prompt failed: %w", err)
	}
	if result.Permission == platform.PermissionDenied {
		return nil, domainerrors.ErrPermissionBlocked
	}
	if result.DeviceToken == "" {
		// Commonly a misconfigured push certificate, a missing icon, or
		// private browsing.
		return nil, domainerrors.ErrInvalidSafariSetup
	}

	return &entity.RawPushSubscription{
		SafariDeviceToken: strings.ToLower(result.DeviceToken),
	}, nil
}

// workerStrategy negotiates from inside the worker: it cannot prompt, so an
// undecided permission is reported, not retried.
type workerStrategy struct {
	svc     *subscriptionService
	scope   platform.WorkerScope
	browser platform.Browser
}

func (st *workerStrategy) resolveRaw(ctx context.Context) (*entity.RawPushSubscription, error) {
	reg, err := st.scope.Registration(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query own registration: %w", err)
	}
	if reg == nil {
		return nil, domainerrors.ErrWorkerNotActivated.WrapMessage("worker has no registration")
	}
	if _, active := reg.ActiveScriptURL(); !active {
		return nil, domainerrors.ErrWorkerNotActivated.WrapMessage("worker registration not active")
	}

	pm := reg.PushManager()
	perm, err := pm.PermissionState(ctx, platform.SubscribeOptions{UserVisibleOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to query push permission: %w", err)
	}
	if perm == platform.PermissionDenied {
		return nil, domainerrors.ErrPermissionBlocked
	}
	if perm.Undecided() {
		return nil, domainerrors.ErrPermissionDefault
	}

	return st.svc.negotiate(ctx, pm, st.browser.SupportsVAPID())
}

// unsupportedStrategy refuses to subscribe from contexts that structurally
// cannot, such as nested frames and popups.
type unsupportedStrategy struct {
	kind platform.ContextKind
}

func (st unsupportedStrategy) resolveRaw(context.Context) (*entity.RawPushSubscription, error) {
	return nil, st.err()
}

func (st unsupportedStrategy) err() error {
	return domainerrors.ErrUnsupportedEnvironment.WithDetails(string(st.kind))
}

func rawFromPlatform(sub platform.PushSubscription) *entity.RawPushSubscription {
	raw := &entity.RawPushSubscription{Endpoint: sub.Endpoint()}
	if material, ok := sub.Key(platform.KeyP256dh); ok {
		raw.P256dh = base64.StdEncoding.EncodeToString(material)
	}
	if material, ok := sub.Key(platform.KeyAuth); ok {
		raw.Auth = base64.StdEncoding.EncodeToString(material)
	}

	return raw
}

func decodeApplicationServerKey(key string) ([]byte, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(key, "="))
	if err != nil {
		return nil, fmt.Errorf("failed to decode VAPID public key: %w", err)
	}

	return decoded, nil
}

func deliveryPlatformFor(family platform.Family) entity.DeliveryPlatform {
	switch family {
	case platform.FamilySafari:
		return entity.DeliveryPlatformSafari
	case platform.FamilyFirefox:
		return entity.DeliveryPlatformFirefox
	default:
		return entity.DeliveryPlatformChromeLike
	}
}
