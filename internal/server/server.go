package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/go-diff-sync/internal/config"
	"github.com/MKhiriev/go-diff-sync/internal/handler"
	"github.com/MKhiriev/go-diff-sync/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// host is one of the servers run by [server].
type host interface {
	listen() error
	serve() error
	shutdown(ctx context.Context)
}

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer

	shutdownOnce sync.Once
	// ready is closed once every host is listening.
	ready chan struct{}

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.ClientServer, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		ready:  make(chan struct{}),
		logger: logger,
	}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg.HTTPAddress, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg.GRPCAddress, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) hosts() []host {
	hosts := make([]host, 0, 2)
	if s.httpServer != nil {
		hosts = append(hosts, s.httpServer)
	}
	if s.gRPCServer != nil {
		hosts = append(hosts, s.gRPCServer)
	}
	return hosts
}

func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(
		ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	hosts := s.hosts()
	for i, h := range hosts {
		if err := h.listen(); err != nil {
			s.logger.Err(err).Msg("error starting server")
			for _, started := range hosts[:i] {
				started.shutdown(context.Background())
			}
			return err
		}
	}
	close(s.ready)

	errCh := make(chan error, len(hosts))
	for _, h := range hosts {
		go func(h host) {
			errCh <- h.serve()
		}(h)
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	s.Shutdown()
	if runErr != nil {
		s.logger.Err(runErr).Msg("server stopped with error")
		return runErr
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

func (s *server) Shutdown() {
	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		for _, h := range s.hosts() {
			h.shutdown(ctx)
		}
	})
}
