package http

import (
	"time"

	"github.com/MKhiriev/go-diff-sync/internal/gateway"
	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/models"
)

type Handler struct {
	dispatcher gateway.Dispatcher
	buildInfo  models.AppBuildInfo

	// requestTimeout bounds every dispatch; zero disables the limit.
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(dispatcher gateway.Dispatcher, buildInfo models.AppBuildInfo, requestTimeout time.Duration, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		dispatcher:     dispatcher,
		buildInfo:      buildInfo,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}
