// Command harness runs the full engine against the in-memory browser
// simulator and the stub registration API: install, subscribe, version check,
// update, delegated worker subscribe, and opt-out.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"pushkit/config"
	"pushkit/internal/domain/platform"
	"pushkit/internal/domain/service"
	"pushkit/internal/infra/backend"
	"pushkit/internal/infra/backend/stub"
	"pushkit/internal/infra/events"
	logs "pushkit/internal/infra/log"
	"pushkit/internal/infra/messaging"
	"pushkit/internal/infra/persistence/sqlite"
	"pushkit/internal/platform/simulator"
	"pushkit/internal/usecase"
	"pushkit/internal/usecase/impl"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			stub.New,
			newSimulator,
			newDatabase,
			events.New,
			backend.New,
		),
		fx.Invoke(startStub, runScenario),
	).Run()
}

func newSimulator() *simulator.Simulator {
	return simulator.New(
		simulator.WithNotificationPermission(platform.PermissionGranted),
	)
}

func newDatabase(lc fx.Lifecycle) (*sqlite.Database, error) {
	db, err := sqlite.New(filepath.Join(os.TempDir(), "pushkit-harness.db"))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return db.Close() },
	})

	return db, nil
}

func startStub(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger, server *stub.Server) error {
	u, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := server.Start(u.Host); err != nil {
					logger.Error("stub server failed", slog.Any("error", err))
					os.Exit(1)
				}
			}()

			return nil
		},
		OnStop: server.Shutdown,
	})

	return nil
}

type scenarioParams struct {
	fx.In

	Shutdowner fx.Shutdowner
	Cfg        *config.Config
	Logger     *slog.Logger
	Sim        *simulator.Simulator
	DB         *sqlite.Database
	Emitter    *events.Emitter
	Backend    *backend.Client
}

func runScenario(lc fx.Lifecycle, p scenarioParams) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := scenario(p); err != nil {
					p.Logger.Error("scenario failed", slog.Any("error", err))
				}
				_ = p.Shutdowner.Shutdown()
			}()

			return nil
		},
	})
}

func scenario(p scenarioParams) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Give the stub a moment to bind its listener.
	time.Sleep(200 * time.Millisecond)

	pageMessenger := messaging.NewPageMessenger(p.Sim.Container(), p.Sim.PageEnvironment(), p.Logger)
	workerMessenger := messaging.NewWorkerMessenger(p.Sim.Scope(), p.Sim.WorkerEnvironment(), p.Logger)

	workerUC := impl.NewWorkerService(p.Cfg, p.Logger, p.Sim.Container(), pageMessenger)
	pageSubs := impl.NewSubscriptionService(
		p.Cfg, p.Logger, p.DB, p.Backend, p.Emitter,
		workerUC, p.Sim.Container(), p.Sim.PageEnvironment(), p.Sim.Browser(), p.Sim.SafariPusher(),
	)
	workerSubs := impl.NewWorkerSubscriptionService(
		p.Cfg, p.Logger, p.DB, p.Backend, p.Emitter,
		p.Sim.Scope(), p.Sim.WorkerEnvironment(), p.Sim.Browser(),
	)
	agent := impl.NewWorkerAgent(workerMessenger, workerSubs, p.Logger)

	remove := p.Emitter.On(service.SignalSubscriptionRegistered, func(payload any) {
		p.Logger.Info("signal observed", slog.Any("subscription", payload))
	})
	defer remove()

	if err := agent.Run(ctx); err != nil {
		return err
	}

	sub, err := pageSubs.Subscribe(ctx)
	if err != nil {
		return err
	}
	p.Logger.Info("page subscribed",
		slog.String("deviceId", sub.DeviceID.String()),
		slog.String("token", sub.SubscriptionToken))

	if err := pageMessenger.Listen(ctx); err != nil {
		return err
	}

	workerVersion, err := workerUC.GetWorkerVersion(ctx)
	if err != nil {
		return err
	}
	p.Logger.Info("worker version", slog.Int("version", workerVersion))

	if err := workerUC.UpdateWorker(ctx); err != nil {
		return err
	}

	// Second subscribe reuses the persisted identity.
	again, err := pageSubs.Subscribe(ctx)
	if err != nil {
		return err
	}
	p.Logger.Info("resubscribed", slog.String("deviceId", again.DeviceID.String()))

	if err := workerSubs.Unsubscribe(ctx, usecase.UnsubscribeMarkUnsubscribed); err != nil {
		return err
	}
	p.Logger.Info("marked unsubscribed")

	return nil
}
