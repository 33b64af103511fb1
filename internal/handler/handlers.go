package handler

import (
	"github.com/MKhiriev/go-diff-sync/internal/config"
	"github.com/MKhiriev/go-diff-sync/internal/gateway"
	"github.com/MKhiriev/go-diff-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-diff-sync/internal/handler/http"
	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/models"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers creates a host handler for every address set in cfg. All of
// them serve the same dispatcher.
func NewHandlers(dispatcher gateway.Dispatcher, buildInfo models.AppBuildInfo, cfg config.ClientServer, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(dispatcher, buildInfo, cfg.RequestTimeout, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(dispatcher, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
