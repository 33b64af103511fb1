package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ClientAdapter holds network settings used by the pull transport.
type ClientAdapter struct {
	// RequestTimeout is the timeout of one outbound pull.
	RequestTimeout time.Duration
}

// ClientStorage groups local replica settings.
type ClientStorage struct {
	// Dir is the directory SQLite replicas are kept in.
	Dir string
}

// ClientServer holds the dispatch host addresses. An empty address disables
// that host.
type ClientServer struct {
	HTTPAddress    string
	GRPCAddress    string
	RequestTimeout time.Duration
}

// ClientWorkers contains background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the sync job runs.
	SyncInterval time.Duration
}

// ClientSync is the session the sync command begins on every tick.
type ClientSync struct {
	DatabaseName   string
	DataLayerAuth  string
	DiffServerURL  string
	DiffServerAuth string
}

// ClientConfig is the validated configuration of the sync client.
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage
	Server  ClientServer
	Workers ClientWorkers
	Sync    ClientSync
}

// Load builds and validates a [ClientConfig] from defaults, the
// environment, the flags registered on fs by [RegisterFlags] and the
// optional JSON file. fs may be nil.
func Load(fs *pflag.FlagSet) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(fs).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		Adapter: ClientAdapter{RequestTimeout: cfg.Adapter.RequestTimeout},
		Storage: ClientStorage{Dir: cfg.Storage.Dir},
		Server: ClientServer{
			HTTPAddress:    cfg.Server.HTTPAddress,
			GRPCAddress:    cfg.Server.GRPCAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		Sync: ClientSync{
			DatabaseName:   cfg.Sync.DatabaseName,
			DataLayerAuth:  cfg.Sync.DataLayerAuth,
			DiffServerURL:  cfg.Sync.DiffServerURL,
			DiffServerAuth: cfg.Sync.DiffServerAuth,
		},
	}
}
