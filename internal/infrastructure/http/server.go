package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

// Server runs an Echo instance until its context is cancelled, then drains
// in-flight requests.
type Server struct {
	e               *echo.Echo
	addr            string
	shutdownTimeout time.Duration
	log             zerolog.Logger
}

// NewServer binds e to port on all interfaces.
func NewServer(e *echo.Echo, port string, log zerolog.Logger) *Server {
	e.Server.ReadHeaderTimeout = 5 * time.Second
	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 30 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	return &Server{
		e:               e,
		addr:            net.JoinHostPort("", port),
		shutdownTimeout: defaultShutdownTimeout,
		log:             log,
	}
}

// Run blocks until ctx is done or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.log.Info().Str("addr", s.addr).Msg("http server listening")
		if err := s.e.Start(s.addr); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.log.Info().Msg("http server shutting down")
	if err := s.e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
