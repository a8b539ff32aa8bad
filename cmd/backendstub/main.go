package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"

	"pushkit/config"
	"pushkit/internal/infra/backend/stub"
	logs "pushkit/internal/infra/log"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			stub.New,
		),
		fx.Invoke(startStub),
	).Run()
}

func startStub(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger, server *stub.Server) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			addr, err := stubAddr(cfg.Backend.BaseURL)
			if err != nil {
				return err
			}
			go func() {
				if err := server.Start(addr); err != nil {
					logger.Error("stub server failed", slog.Any("error", err))
					os.Exit(1)
				}
			}()

			return nil
		},
		OnStop: server.Shutdown,
	})
}

func stubAddr(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}

	return u.Host, nil
}
