//go:generate mockgen -source=server.go -destination=server_mock.go -package=server
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"blogd/internal/app/errors"
	"blogd/internal/config"
	"blogd/internal/config/logger"
)

// Server manages the HTTP listener serving the routes
type Server interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Addr() string
}

// server implements the Server interface
type server struct {
	address    string
	httpServer *http.Server
	listener   net.Listener
	running    atomic.Bool
	wg         sync.WaitGroup
	log        logger.Logger
}

// NewServer creates an HTTP server for the router on the configured address
func NewServer(cfg *config.Config, router *gin.Engine, log logger.Logger) Server {
	return &server{
		address: cfg.Server.Address,
		httpServer: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: config.ReadHeaderTimeout,
		},
		log: log.WithComponent("SERVER"),
	}
}

// Addr returns the bound address once started, the configured one before
func (s *server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.address
}

// Start binds the listener and serves in the background
func (s *server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("%w %s: %w", errors.ErrFailedToListen, s.address, err)
	}

	s.listener = listener
	s.running.Store(true)
	s.log.Info().Msgf("Server listening on %s", listener.Addr())

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("Server stopped unexpectedly")
		}
	}()

	return nil
}

// Stop drains in-flight requests until ctx expires
func (s *server) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}

	s.running.Store(false)

	err := s.httpServer.Shutdown(ctx)
	s.wg.Wait()

	if err != nil {
		return err
	}

	s.log.Info().Msg("Server stopped")

	return nil
}
