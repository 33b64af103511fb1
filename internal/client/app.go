package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-diff-sync/internal/adapter"
	"github.com/MKhiriev/go-diff-sync/internal/config"
	"github.com/MKhiriev/go-diff-sync/internal/gateway"
	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/internal/service"
	"github.com/MKhiriev/go-diff-sync/internal/store"
	"github.com/MKhiriev/go-diff-sync/internal/utils"
	"github.com/MKhiriev/go-diff-sync/internal/workers"
	"github.com/MKhiriev/go-diff-sync/models"
)

type App struct {
	cfg      *config.ClientConfig
	stores   store.Registry
	services *service.ClientServices
	gateway  *gateway.Gateway

	logger *logger.Logger
}

// NewApp wires a client over stores. The transport is the build's default:
// resty on native targets, the browser fetch bridge on js/wasm.
func NewApp(cfg *config.ClientConfig, stores store.Registry, logger *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, ErrNoConfig
	}
	if stores == nil {
		return nil, ErrNoStores
	}

	httpClient := utils.NewHTTPClient(cfg.Adapter.RequestTimeout)
	transport := adapter.NewTransport(httpClient, logger)
	return newApp(cfg, stores, transport, logger), nil
}

func newApp(cfg *config.ClientConfig, stores store.Registry, transport adapter.Transport, logger *logger.Logger) *App {
	services := service.NewClientServices(transport, stores, utils.NewUUIDGenerator(), logger)

	return &App{
		cfg:      cfg,
		stores:   stores,
		services: services,
		gateway:  gateway.New(stores, services.SyncService, logger),
		logger:   logger,
	}
}

// Gateway returns the dispatch boundary the hosts serve.
func (a *App) Gateway() *gateway.Gateway {
	return a.gateway
}

func (a *App) Dispatch(ctx context.Context, dbName string, rpc uint8, args []byte) ([]byte, error) {
	return a.gateway.Dispatch(ctx, dbName, rpc, args)
}

// Exec is a one-shot dispatch: unless op is open or close, the database is
// opened first so a fresh process can act on a persisted replica.
func (a *App) Exec(ctx context.Context, dbName string, op gateway.Operation, args []byte) ([]byte, error) {
	if op != gateway.OpOpen && op != gateway.OpClose {
		if _, err := a.gateway.Dispatch(ctx, dbName, uint8(gateway.OpOpen), nil); err != nil {
			return nil, err
		}
	}

	return a.gateway.Dispatch(ctx, dbName, uint8(op), args)
}

func (a *App) RunSync(ctx context.Context) error {
	if err := a.cfg.ValidateSync(); err != nil {
		return err
	}

	session := models.SyncSession{
		DatabaseName:   a.cfg.Sync.DatabaseName,
		DataLayerAuth:  a.cfg.Sync.DataLayerAuth,
		DiffServerURL:  a.cfg.Sync.DiffServerURL,
		DiffServerAuth: a.cfg.Sync.DiffServerAuth,
	}

	if err := a.stores.Open(ctx, session.DatabaseName); err != nil {
		return fmt.Errorf("open %q: %w", session.DatabaseName, err)
	}

	job := workers.NewSyncJob(a.services.SyncService, session, a.cfg.Workers.SyncInterval, a.logger)
	workers.NewWorkers(job).Run(ctx)

	report := job.Report()
	a.logger.Info().
		Int("runs", report.Runs).
		Int("failures", report.Failures).
		Dur("avg_latency", report.AvgLatency).
		Msg("sync worker finished")

	return nil
}

func (a *App) Close() error {
	return a.stores.CloseAll()
}
