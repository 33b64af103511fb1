package service

import (
	"github.com/MKhiriev/go-diff-sync/internal/adapter"
	"github.com/MKhiriev/go-diff-sync/internal/logger"
)

// ClientServices groups the services the dispatch gateway and the sync
// worker call into.
type ClientServices struct {
	PullService PullService
	SyncService SyncService
}

// NewClientServices wires the pull protocol and the begin-sync orchestrator
// over the given transport, state provider and id generator.
func NewClientServices(transport adapter.Transport, states StateProvider, ids IDGenerator, logger *logger.Logger) *ClientServices {
	puller := NewPullService(transport, states, ids, logger)

	return &ClientServices{
		PullService: puller,
		SyncService: NewClientSyncService(puller, logger),
	}
}
