package impl_test

import (
	"io"
	"log/slog"
	"time"

	"pushkit/config"
)

const testVAPIDKey = "BNcRdreALRFXTkOOUHK1EtK2wtaz5Ry4YfYCA_0QTpQtUbVlUls0VJXg7A8u-Ts1XbjhazAkj7I99e8QcYP7DkM"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Env.Log.Level = "debug"
	cfg.App.AppID = "app-123"
	cfg.Worker.PathA = "/push-worker-a.js"
	cfg.Worker.PathB = "/push-worker-b.js"
	cfg.Worker.Scope = "/"
	cfg.Push.VAPIDPublicKey = testVAPIDKey
	cfg.Backend.BaseURL = "https://backend.test"
	cfg.Backend.Timeout = 5 * time.Second

	return cfg
}
