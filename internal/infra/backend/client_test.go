package backend_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"pushkit/config"
	"pushkit/internal/domain/entity"
	"pushkit/internal/domain/service"
	"pushkit/internal/infra/backend"
	"pushkit/internal/infra/backend/stub"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestClient(t *testing.T) *backend.Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httptest.NewServer(stub.New(logger).Handler())
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Backend.BaseURL = server.URL
	cfg.Backend.Timeout = 5 * time.Second

	return backend.New(cfg, logger)
}

func testRegistration() *service.DeviceRegistration {
	return &service.DeviceRegistration{
		AppID:      "app-123",
		DeviceType: entity.DeliveryPlatformChromeLike,
		Identifier: "https://push.example.com/send/abc",
		WebP256:    "cDI1Ng==",
		WebAuth:    "YXV0aA==",
		SDKVersion: 10302,
	}
}

func TestCreateUser(t *testing.T) {
	client := createTestClient(t)

	id, err := client.CreateUser(context.Background(), testRegistration())
	require.NoError(t, err)
	require.True(t, id.IsAssigned())

	_, err = uuid.Parse(id.String())
	assert.NoError(t, err, "stub assigns uuid identities")
}

func TestUpdateUserSessionKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	client := createTestClient(t)

	id, err := client.CreateUser(ctx, testRegistration())
	require.NoError(t, err)

	confirmed, err := client.UpdateUserSession(ctx, id, testRegistration())
	require.NoError(t, err)
	assert.Equal(t, id, confirmed)
}

func TestUpdateUserSessionUnknownIdentity(t *testing.T) {
	client := createTestClient(t)

	// The stub accepts unknown identities and keeps them.
	confirmed, err := client.UpdateUserSession(context.Background(), "device-x", testRegistration())
	require.NoError(t, err)
	assert.Equal(t, entity.DeviceIdentity("device-x"), confirmed)
}

func TestUpdatePlayer(t *testing.T) {
	ctx := context.Background()
	client := createTestClient(t)

	id, err := client.CreateUser(ctx, testRegistration())
	require.NoError(t, err)

	err = client.UpdatePlayer(ctx, "app-123", id, map[string]any{"notification_types": -2})
	require.NoError(t, err)
}

func TestUpdatePlayerUnknownIdentity(t *testing.T) {
	client := createTestClient(t)

	err := client.UpdatePlayer(context.Background(), "app-123", "missing", map[string]any{"notification_types": -2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
