package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/models"
)

type clientSyncService struct {
	puller PullService
	logger *logger.Logger
}

// NewClientSyncService creates the begin-sync orchestrator on top of puller.
func NewClientSyncService(puller PullService, logger *logger.Logger) SyncService {
	return &clientSyncService{puller: puller, logger: logger}
}

// BeginSync implements [SyncService]. Each call is an independent pull
// attempt; nothing is carried over between calls.
func (s *clientSyncService) BeginSync(ctx context.Context, session models.SyncSession) (models.BeginSyncResponse, error) {
	if _, err := s.puller.Pull(ctx, session); err != nil {
		return models.BeginSyncResponse{}, fmt.Errorf("%w: %w", ErrPullFailed, err)
	}

	// TODO: apply the returned patch and advance the replica's base state
	// once the store exposes a patch-application API.
	s.logger.Info().Str("db", session.DatabaseName).Msg("begin sync finished")

	return models.BeginSyncResponse{}, nil
}
