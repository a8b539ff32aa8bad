// Package backend implements the registration API client.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"pushkit/config"
	"pushkit/internal/domain/entity"
	"pushkit/internal/domain/service"
)

// Client talks to the device registration API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a registration API client from the backend config.
func New(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.Backend.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Backend.Timeout},
		logger:     logger,
	}
}

var _ service.BackendClient = (*Client)(nil)

type playerResponse struct {
	ID string `json:"id"`
}

// CreateUser registers a brand-new device and returns its assigned identity.
func (c *Client) CreateUser(ctx context.Context, reg *service.DeviceRegistration) (entity.DeviceIdentity, error) {
	var resp playerResponse
	if err := c.do(ctx, http.MethodPost, "/players", reg, &resp); err != nil {
		return "", fmt.Errorf("failed to create player: %w", err)
	}

	c.logger.Debug("player created", slog.String("id", resp.ID))

	return entity.DeviceIdentity(resp.ID), nil
}

// UpdateUserSession refreshes an existing device's registration. The backend
// may answer with a different identity than the one sent; the confirmed one
// wins.
func (c *Client) UpdateUserSession(ctx context.Context, id entity.DeviceIdentity, reg *service.DeviceRegistration) (entity.DeviceIdentity, error) {
	var resp playerResponse
	path := fmt.Sprintf("/players/%s/on_session", id)
	if err := c.do(ctx, http.MethodPost, path, reg, &resp); err != nil {
		return "", fmt.Errorf("failed to update player session: %w", err)
	}

	if resp.ID == "" {
		return id, nil
	}

	return entity.DeviceIdentity(resp.ID), nil
}

// UpdatePlayer applies a partial update to an existing device record.
func (c *Client) UpdatePlayer(ctx context.Context, appID string, id entity.DeviceIdentity, patch map[string]any) error {
	body := map[string]any{"app_id": appID}
	for k, v := range patch {
		body[k] = v
	}

	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/players/%s", id), body, nil); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}

	return nil
}
