package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-diff-sync/internal/logger"
)

type httpServer struct {
	address  string
	server   *http.Server
	listener net.Listener

	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, address string, logger *logger.Logger) *httpServer {
	return &httpServer{
		address: address,
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (h *httpServer) listen() error {
	ln, err := net.Listen("tcp", h.address)
	if err != nil {
		return fmt.Errorf("http listen on %s: %w", h.address, err)
	}
	h.listener = ln
	return nil
}

func (h *httpServer) serve() error {
	h.logger.Info().Str("address", h.listener.Addr().String()).Msg("Launching HTTP server")
	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http serve: %w", err)
	}
	return nil
}

func (h *httpServer) shutdown(ctx context.Context) {
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Msg("HTTP server Shutdown")
	}
}
