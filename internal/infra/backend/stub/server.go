// Package stub serves an in-memory rendition of the registration API for
// local development and integration tests.
package stub

import (
	"context"
	"log/slog"
	"net/http"

	"pushkit/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/puzpuzpuz/xsync/v4"
)

type playerRecord struct {
	AppID             string `json:"app_id"`
	DeviceType        int    `json:"device_type"`
	Identifier        string `json:"identifier"`
	WebP256           string `json:"web_p256,omitempty"`
	WebAuth           string `json:"web_auth,omitempty"`
	SDKVersion        int    `json:"sdk_version"`
	NotificationTypes *int   `json:"notification_types,omitempty"`
	SessionCount      int    `json:"session_count"`
}

type registerPlayerRequest struct {
	AppID      string `json:"app_id" validate:"required"`
	DeviceType int    `json:"device_type" validate:"required"`
	Identifier string `json:"identifier"`
	WebP256    string `json:"web_p256"`
	WebAuth    string `json:"web_auth"`
	SDKVersion int    `json:"sdk_version"`
}

type updatePlayerRequest struct {
	AppID             string `json:"app_id" validate:"required"`
	NotificationTypes *int   `json:"notification_types"`
}

type playerResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

// Server is the stub registration API.
type Server struct {
	logger  *slog.Logger
	echo    *echo.Echo
	players *xsync.Map[string, *playerRecord]
}

type echoValidator struct {
	validate *validator.Validate
}

func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}

// New creates the stub server with an empty player store.
func New(logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Validator = &echoValidator{validate: validator.New()}

	s := &Server{
		logger:  logger,
		echo:    e,
		players: xsync.NewMap[string, *playerRecord](),
	}

	e.POST("/players", s.createPlayer)
	e.POST("/players/:id/on_session", s.onSession)
	e.PUT("/players/:id", s.updatePlayer)
	e.GET("/players/:id", s.getPlayer)

	return s
}

// Handler exposes the stub as an http.Handler for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves the stub on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting registration stub", slog.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

// Shutdown stops the stub server.
func (s *Server) Shutdown(ctx context.Context) error {
	return errors.WithStack(s.echo.Shutdown(ctx))
}

func (s *Server) createPlayer(c echo.Context) error {
	var req registerPlayerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid player payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id := uuid.NewString()
	s.players.Store(id, &playerRecord{
		AppID:        req.AppID,
		DeviceType:   req.DeviceType,
		Identifier:   req.Identifier,
		WebP256:      req.WebP256,
		WebAuth:      req.WebAuth,
		SDKVersion:   req.SDKVersion,
		SessionCount: 1,
	})

	s.logger.Info("player created",
		slog.String("id", id),
		slog.Int("deviceType", req.DeviceType))

	return c.JSON(http.StatusOK, playerResponse{ID: id, Success: true})
}

func (s *Server) onSession(c echo.Context) error {
	id := c.Param("id")

	var req registerPlayerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid player payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	record, ok := s.players.Load(id)
	if !ok {
		// Unknown identities get a fresh record under the same id; devices
		// keep their local identity across stub restarts.
		record = &playerRecord{}
		s.players.Store(id, record)
	}

	record.AppID = req.AppID
	record.DeviceType = req.DeviceType
	record.Identifier = req.Identifier
	record.WebP256 = req.WebP256
	record.WebAuth = req.WebAuth
	record.SDKVersion = req.SDKVersion
	record.SessionCount++

	return c.JSON(http.StatusOK, playerResponse{ID: id, Success: true})
}

func (s *Server) updatePlayer(c echo.Context) error {
	id := c.Param("id")

	var req updatePlayerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid update payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	record, ok := s.players.Load(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "player not found")
	}

	if req.NotificationTypes != nil {
		record.NotificationTypes = req.NotificationTypes
	}

	return c.JSON(http.StatusOK, playerResponse{ID: id, Success: true})
}

func (s *Server) getPlayer(c echo.Context) error {
	record, ok := s.players.Load(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "player not found")
	}

	return c.JSON(http.StatusOK, record)
}
