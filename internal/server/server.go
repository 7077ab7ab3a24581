package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-rest-api/internal/config"
	"github.com/MKhiriev/go-rest-api/internal/handler"
	"github.com/MKhiriev/go-rest-api/internal/logger"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

// NewServer binds a listener for every configured address. Binding happens
// here so a taken port fails startup instead of a background goroutine.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	if cfg.HTTPAddress != "" {
		if handlers.HTTP == nil {
			return nil, fmt.Errorf("%w: HTTP %s", errMissingHandler, cfg.HTTPAddress)
		}
		httpSrv, err := newHTTPServer(handlers.HTTP.Init(), cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.httpServer = httpSrv
	}
	if cfg.GRPCAddress != "" {
		if handlers.GRPC == nil {
			servers.closeListeners()
			return nil, fmt.Errorf("%w: gRPC %s", errMissingHandler, cfg.GRPCAddress)
		}
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			servers.closeListeners()
			return nil, err
		}
		servers.gRPCServer = grpcSrv
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoListeners
	}

	return servers, nil
}

func (s *server) RunServer(ctx context.Context) error {
	errs := make(chan error, 2)

	if s.httpServer != nil {
		s.logger.Info().Msg("Launching HTTP server")
		go func() { errs <- s.httpServer.RunServer() }()
	}
	if s.gRPCServer != nil {
		s.logger.Info().Msg("Launching GRPC server")
		go func() { errs <- s.gRPCServer.RunServer() }()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case runErr = <-errs:
		s.logger.Error().Err(runErr).Msg("transport stopped unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, err)
	}
	if runErr == nil {
		s.logger.Info().Msg("server Shutdown gracefully")
	}

	return runErr
}

func (s *server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		errs = append(errs, s.httpServer.Shutdown(ctx))
	}
	if s.gRPCServer != nil {
		errs = append(errs, s.gRPCServer.Shutdown(ctx))
	}

	return errors.Join(errs...)
}

func (s *server) closeListeners() {
	if s.httpServer != nil {
		_ = s.httpServer.listener.Close()
	}
}
