package impl_test

import (
	"context"
	"testing"

	"pushkit/config"
	"pushkit/internal/domain/entity"
	domainerrors "pushkit/internal/domain/errors"
	"pushkit/internal/domain/platform"
	"pushkit/internal/domain/repository"
	"pushkit/internal/domain/service"
	"pushkit/internal/infra/events"
	"pushkit/internal/infra/messaging"
	"pushkit/internal/infra/persistence/memory"
	mockservice "pushkit/internal/mocks/service"
	"pushkit/internal/platform/simulator"
	"pushkit/internal/usecase"
	"pushkit/internal/usecase/impl"
	"pushkit/internal/version"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type subscriptionFixture struct {
	cfg     *config.Config
	sim     *simulator.Simulator
	db      *memory.Database
	backend *mockservice.MockBackendClient
	emitter *events.Emitter
	uc      usecase.SubscriptionUsecase
}

func createSubscriptionFixture(t *testing.T, opts ...simulator.Option) *subscriptionFixture {
	t.Helper()

	cfg := testConfig()
	logger := testLogger()
	sim := simulator.New(opts...)
	db := memory.New()
	backend := mockservice.NewMockBackendClient(t)
	emitter := events.New(logger)

	pageMessenger := messaging.NewPageMessenger(sim.Container(), sim.PageEnvironment(), logger)
	workerUC := impl.NewWorkerService(cfg, logger, sim.Container(), pageMessenger)

	return &subscriptionFixture{
		cfg:     cfg,
		sim:     sim,
		db:      db,
		backend: backend,
		emitter: emitter,
		uc: impl.NewSubscriptionService(
			cfg, logger, db, backend, emitter,
			workerUC, sim.Container(), sim.PageEnvironment(), sim.Browser(), sim.SafariPusher(),
		),
	}
}

func (f *subscriptionFixture) storedValue(t *testing.T, store, key string) string {
	t.Helper()

	value, err := f.db.Get(context.Background(), store, key)
	require.NoError(t, err)

	return string(value)
}

func TestSubscribeFirstTime(t *testing.T) {
	ctx := context.Background()
	f := createSubscriptionFixture(t,
		simulator.WithNotificationPermission(platform.PermissionGranted),
	)

	var captured *service.DeviceRegistration
	f.backend.EXPECT().
		CreateUser(mock.Anything, mock.AnythingOfType("*service.DeviceRegistration")).
		Run(func(_ context.Context, reg *service.DeviceRegistration) {
			captured = reg
		}).
		Return(entity.DeviceIdentity("device-1"), nil)

	var signaled *entity.Subscription
	f.emitter.On(service.SignalSubscriptionRegistered, func(payload any) {
		signaled, _ = payload.(*entity.Subscription)
	})

	sub, err := f.uc.Subscribe(ctx)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, entity.DeviceIdentity("device-1"), sub.DeviceID)
	assert.False(t, sub.OptedOut)

	// Worker install landed on the default slot.
	state, _ := f.sim.ActiveScript()
	assert.Contains(t, state, "/push-worker-b.js")

	// Registration payload carries app identity, platform tag, and keys.
	require.NotNil(t, captured)
	assert.Equal(t, "app-123", captured.AppID)
	assert.Equal(t, entity.DeliveryPlatformChromeLike, captured.DeviceType)
	assert.Equal(t, sub.SubscriptionToken, captured.Identifier)
	assert.NotEmpty(t, captured.WebP256)
	assert.NotEmpty(t, captured.WebAuth)
	assert.Equal(t, version.Number, captured.SDKVersion)

	// VAPID options were applied.
	platformSub := f.sim.CurrentSubscription()
	require.NotNil(t, platformSub)
	opts, ok := platformSub.Options()
	require.True(t, ok)
	assert.True(t, opts.IsVAPID())
	assert.True(t, opts.UserVisibleOnly)

	// Local persistence.
	assert.Equal(t, "device-1", f.storedValue(t, repository.StoreIDs, repository.KeyUserID))
	assert.Equal(t, sub.SubscriptionToken, f.storedValue(t, repository.StoreOptions, repository.KeyRegistrationID))
	assert.Equal(t, "false", f.storedValue(t, repository.StoreOptions, repository.KeyOptedOut))
	assert.Equal(t, "granted", f.storedValue(t, repository.StoreOptions, repository.KeyNotificationPermission))

	// Signal reached the page-side subscriber.
	require.NotNil(t, signaled)
	assert.Equal(t, sub.DeviceID, signaled.DeviceID)
}

func TestSubscribeExistingIdentityUpdatesSession(t *testing.T) {
	ctx := context.Background()
	f := createSubscriptionFixture(t,
		simulator.WithNotificationPermission(platform.PermissionGranted),
	)
	require.NoError(t, f.db.Put(ctx, repository.StoreIDs, repository.KeyUserID, []byte("device-7")))

	f.backend.EXPECT().
		UpdateUserSession(mock.Anything, entity.DeviceIdentity("device-7"), mock.AnythingOfType("*service.DeviceRegistration")).
		Return(entity.DeviceIdentity("device-7"), nil)

	sub, err := f.uc.Subscribe(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DeviceIdentity("device-7"), sub.DeviceID)
}

func TestSubscribeDeniedPermissionFailsFast(t *testing.T) {
	f := createSubscriptionFixture(t,
		simulator.WithNotificationPermission(platform.PermissionDenied),
	)

	_, err := f.uc.Subscribe(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPermissionBlocked)

	// No worker was installed and the backend was never called.
	_, active := f.sim.ActiveScript()
	assert.False(t, active)
}

func TestSubscribeReusesExistingSubscriptionOptions(t *testing.T) {
	ctx := context.Background()
	f := createSubscriptionFixture(t,
		simulator.WithNotificationPermission(platform.PermissionGranted),
	)

	// Stage an active own worker with a live subscription.
	reg, err := f.sim.Container().Register(ctx, "/push-worker-b.js?appId=app-123", "/")
	require.NoError(t, err)
	existing, err := reg.PushManager().Subscribe(ctx, platform.SubscribeOptions{UserVisibleOnly: true})
	require.NoError(t, err)

	f.backend.EXPECT().
		CreateUser(mock.Anything, mock.AnythingOfType("*service.DeviceRegistration")).
		Return(entity.DeviceIdentity("device-2"), nil)

	sub, err := f.uc.Subscribe(ctx)
	require.NoError(t, err)

	// Same endpoint: the platform subscription survived the renewal.
	assert.Equal(t, existing.Endpoint(), sub.SubscriptionToken)
}

func TestSubscribeReplacesSubscriptionWithoutOptions(t *testing.T) {
	ctx := context.Background()
	f := createSubscriptionFixture(t,
		simulator.WithNotificationPermission(platform.PermissionGranted),
		simulator.WithLegacySubscriptions(),
	)

	reg, err := f.sim.Container().Register(ctx, "/push-worker-a.js", "/")
	require.NoError(t, err)
	stale, err := reg.PushManager().Subscribe(ctx, platform.SubscribeOptions{UserVisibleOnly: true})
	require.NoError(t, err)

	f.backend.EXPECT().
		CreateUser(mock.Anything, mock.AnythingOfType("*service.DeviceRegistration")).
		Return(entity.DeviceIdentity("device-3"), nil)

	sub, err := f.uc.Subscribe(ctx)
	require.NoError(t, err)

	// The stale subscription was torn down and replaced.
	assert.NotEqual(t, stale.Endpoint(), sub.SubscriptionToken)
}

func TestSubscribeWithoutVAPIDSupportFallsBackToLegacy(t *testing.T) {
	ctx := context.Background()
	f := createSubscriptionFixture(t,
		simulator.WithNotificationPermission(platform.PermissionGranted),
		simulator.WithVAPIDSupport(false),
	)

	f.backend.EXPECT().
		CreateUser(mock.Anything, mock.AnythingOfType("*service.DeviceRegistration")).
		Return(entity.DeviceIdentity("device-4"), nil)

	_, err := f.uc.Subscribe(ctx)
	require.NoError(t, err)

	platformSub := f.sim.CurrentSubscription()
	require.NotNil(t, platformSub)
	opts, ok := platformSub.Options()
	require.True(t, ok)
	assert.False(t, opts.IsVAPID(), "configured key must be ignored without platform support")
}

func TestSubscribeSafari(t *testing.T) {
	ctx := context.Background()

	t.Run("missing web id is a setup error", func(t *testing.T) {
		f := createSubscriptionFixture(t,
			simulator.WithFamily(platform.FamilySafari),
			simulator.WithNotificationPermission(platform.PermissionGranted),
			simulator.WithSafari(platform.SafariPermissionResult{
				Permission:  platform.PermissionGranted,
				DeviceToken: "ABCDEF",
			}, nil),
		)
		f.cfg.Push.SafariWebID = ""

		_, err := f.uc.Subscribe(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrMissingSafariWebID)
	})

	t.Run("device token registers without a worker", func(t *testing.T) {
		f := createSubscriptionFixture(t,
			simulator.WithFamily(platform.FamilySafari),
			simulator.WithNotificationPermission(platform.PermissionGranted),
			simulator.WithSafari(platform.SafariPermissionResult{
				Permission:  platform.PermissionGranted,
				DeviceToken: "ABCDEF0123",
			}, nil),
		)
		f.cfg.Push.SafariWebID = "web.com.example.app"

		var captured *service.DeviceRegistration
		f.backend.EXPECT().
			CreateUser(mock.Anything, mock.AnythingOfType("*service.DeviceRegistration")).
			Run(func(_ context.Context, reg *service.DeviceRegistration) {
				captured = reg
			}).
			Return(entity.DeviceIdentity("device-5"), nil)

		sub, err := f.uc.Subscribe(ctx)
		require.NoError(t, err)
		assert.Equal(t, "abcdef0123", sub.SubscriptionToken)

		require.NotNil(t, captured)
		assert.Equal(t, entity.DeliveryPlatformSafari, captured.DeviceType)
		assert.Empty(t, captured.WebP256)

		_, active := f.sim.ActiveScript()
		assert.False(t, active, "safari path must not install a worker")
	})

	t.Run("empty token is an invalid setup", func(t *testing.T) {
		f := createSubscriptionFixture(t,
			simulator.WithFamily(platform.FamilySafari),
			simulator.WithNotificationPermission(platform.PermissionGranted),
			simulator.WithSafari(platform.SafariPermissionResult{
				Permission: platform.PermissionGranted,
			}, nil),
		)
		f.cfg.Push.SafariWebID = "web.com.example.app"

		_, err := f.uc.Subscribe(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidSafariSetup)
	})
}

func TestSubscribeRefusedOutsidePage(t *testing.T) {
	cfg := testConfig()
	logger := testLogger()
	sim := simulator.New(simulator.WithNotificationPermission(platform.PermissionGranted))
	pageMessenger := messaging.NewPageMessenger(sim.Container(), sim.PageEnvironment(), logger)
	workerUC := impl.NewWorkerService(cfg, logger, sim.Container(), pageMessenger)

	for _, kind := range []platform.ContextKind{platform.ContextIFrame, platform.ContextPopup} {
		uc := impl.NewSubscriptionService(
			cfg, logger, memory.New(), mockservice.NewMockBackendClient(t), events.New(logger),
			workerUC, sim.Container(), sim.EnvironmentOf(kind), sim.Browser(), sim.SafariPusher(),
		)

		_, err := uc.Subscribe(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrUnsupportedEnvironment)
	}
}

func createWorkerSubscriptionFixture(t *testing.T, opts ...simulator.Option) *subscriptionFixture {
	t.Helper()

	cfg := testConfig()
	logger := testLogger()
	sim := simulator.New(opts...)
	db := memory.New()
	backend := mockservice.NewMockBackendClient(t)
	emitter := events.New(logger)

	return &subscriptionFixture{
		cfg:     cfg,
		sim:     sim,
		db:      db,
		backend: backend,
		emitter: emitter,
		uc: impl.NewWorkerSubscriptionService(
			cfg, logger, db, backend, emitter,
			sim.Scope(), sim.WorkerEnvironment(), sim.Browser(),
		),
	}
}

func TestWorkerSubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("negotiates with granted permission", func(t *testing.T) {
		f := createWorkerSubscriptionFixture(t,
			simulator.WithNotificationPermission(platform.PermissionGranted),
		)
		f.sim.SetRegistration("/push-worker-b.js", "/", true)

		f.backend.EXPECT().
			CreateUser(mock.Anything, mock.AnythingOfType("*service.DeviceRegistration")).
			Return(entity.DeviceIdentity("device-6"), nil)

		sub, err := f.uc.Subscribe(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.DeviceIdentity("device-6"), sub.DeviceID)
	})

	t.Run("undecided permission cannot prompt", func(t *testing.T) {
		f := createWorkerSubscriptionFixture(t)
		f.sim.SetRegistration("/push-worker-b.js", "/", true)

		_, err := f.uc.Subscribe(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrPermissionDefault)
	})

	t.Run("requires an active registration", func(t *testing.T) {
		f := createWorkerSubscriptionFixture(t,
			simulator.WithNotificationPermission(platform.PermissionGranted),
		)

		_, err := f.uc.Subscribe(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrWorkerNotActivated)
	})
}

func TestUnsubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the player unsubscribed", func(t *testing.T) {
		f := createWorkerSubscriptionFixture(t)
		require.NoError(t, f.db.Put(ctx, repository.StoreIDs, repository.KeyUserID, []byte("device-9")))

		f.backend.EXPECT().
			UpdatePlayer(mock.Anything, "app-123", entity.DeviceIdentity("device-9"),
				map[string]any{"notification_types": -2}).
			Return(nil)

		require.NoError(t, f.uc.Unsubscribe(ctx, usecase.UnsubscribeMarkUnsubscribed))
		assert.Equal(t, "true", f.storedValue(t, repository.StoreOptions, repository.KeyOptedOut))
	})

	t.Run("requires a persisted identity", func(t *testing.T) {
		f := createWorkerSubscriptionFixture(t)

		err := f.uc.Unsubscribe(ctx, usecase.UnsubscribeMarkUnsubscribed)
		require.Error(t, err)
		assert.ErrorIs(t, err, impl.ErrNoDeviceIdentity)
	})

	t.Run("refused outside the worker context", func(t *testing.T) {
		f := createSubscriptionFixture(t)

		err := f.uc.Unsubscribe(ctx, usecase.UnsubscribeMarkUnsubscribed)
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrUnsupportedEnvironment)
	})

	t.Run("destroy strategy is explicitly unimplemented", func(t *testing.T) {
		f := createWorkerSubscriptionFixture(t)

		err := f.uc.Unsubscribe(ctx, usecase.UnsubscribeDestroySubscription)
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrNotImplemented)
	})
}
