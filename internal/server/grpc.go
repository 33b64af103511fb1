package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	myGRPC "github.com/MKhiriev/go-diff-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-diff-sync/internal/logger"
)

type grpcServer struct {
	address  string
	server   *grpc.Server
	listener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, address string, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer(grpc.UnaryInterceptor(myGRPC.LoggingInterceptor(logger)))
	handler.Register(server)

	return &grpcServer{
		address: address,
		server:  server,
		logger:  logger,
	}
}

func (g *grpcServer) listen() error {
	ln, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("grpc listen on %s: %w", g.address, err)
	}
	g.listener = ln
	return nil
}

func (g *grpcServer) serve() error {
	g.logger.Info().Str("address", g.listener.Addr().String()).Msg("Launching GRPC server")
	if err := g.server.Serve(g.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// shutdown waits for in-flight calls until ctx is done, then stops hard.
func (g *grpcServer) shutdown(ctx context.Context) {
	g.logger.Info().Msg("GRPC server Shutdown")

	done := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		g.server.Stop()
	}
}
