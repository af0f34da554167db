package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/srgjo27/royale_boxoffice/internal/adapter/session"
	"github.com/srgjo27/royale_boxoffice/internal/platform/logging"
)

type Server struct {
	addr string
	e    *echo.Echo
}

func NewServer(addr string, sessions *session.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Server.ReadTimeout = 5 * time.Second
	e.Server.WriteTimeout = 10 * time.Second
	e.Server.IdleTimeout = 120 * time.Second

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	NewBoxOfficeHandler(sessions).Register(e)

	return &Server{addr: addr, e: e}
}

// Run serves until ctx is done, then shuts down with a five second grace period.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.e.Shutdown(shutdownCtx); err != nil {
			logging.FromContext(ctx).WithError(err).Error("Failed to shutdown HTTP server")
		}
	}()

	logging.FromContext(ctx).WithField("addr", s.addr).Info("Server starting")
	if err := s.e.Start(s.addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
