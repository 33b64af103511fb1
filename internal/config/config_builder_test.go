package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceWins verifies that non-zero fields of later configs
// override earlier ones while zero fields keep the earlier value.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{Dir: "./data"}, Adapter: Adapter{RequestTimeout: time.Second}},
		&StructuredConfig{Storage: Storage{Dir: "/srv/data"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", cfg.Storage.Dir)
	assert.Equal(t, time.Second, cfg.Adapter.RequestTimeout)
}

// ── sources ───────────────────────────────────────────────────────────────────

func TestWithDefaults(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()

	require.NoError(t, err)
	assert.Equal(t, "./data", cfg.Storage.Dir)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
}

func TestWithFlags_NilFlagSet(t *testing.T) {
	b := newConfigBuilder().withFlags(nil)

	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithJSON_NotSpecified(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()

	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/definitely/not/here.json"})

	_, err := b.withJSON().build()

	require.Error(t, err)
}

// ── Load ──────────────────────────────────────────────────────────────────────

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"sync": map[string]any{"diff_server_url": "https://json.example.com/pull"},
	})
	setEnvVars(t, map[string]string{
		"STORAGE_DIR":           "/env/dir",
		"SYNC_DATABASE":         "env-db",
		"SYNC_DIFF_SERVER_URL":  "https://env.example.com/pull",
		"WORKERS_SYNC_INTERVAL": "5m",
	})
	fs := newTestFlagSet(t, "--db", "flag-db", "-c", path)

	cfg, err := Load(fs)

	require.NoError(t, err)
	assert.Equal(t, "/env/dir", cfg.Storage.Dir)
	assert.Equal(t, "flag-db", cfg.Sync.DatabaseName)
	assert.Equal(t, "https://json.example.com/pull", cfg.Sync.DiffServerURL)
	assert.Equal(t, 5*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
}

func TestLoad_EnvError(t *testing.T) {
	setEnvVars(t, map[string]string{"ADAPTER_REQUEST_TIMEOUT": "never"})

	cfg, err := Load(nil)

	require.Error(t, err)
	assert.Nil(t, cfg)
}

// ── validation ────────────────────────────────────────────────────────────────

func validClientConfig() *ClientConfig {
	return newClientConfig(defaults())
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ClientConfig)
		wantErr error
	}{
		{name: "defaults", mutate: func(*ClientConfig) {}},
		{name: "empty storage dir", mutate: func(c *ClientConfig) { c.Storage.Dir = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "zero request timeout", mutate: func(c *ClientConfig) { c.Adapter.RequestTimeout = 0 }, wantErr: ErrInvalidAdapterConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientConfig_ValidateServer(t *testing.T) {
	cfg := validClientConfig()
	assert.NoError(t, cfg.ValidateServer())

	cfg.Server.HTTPAddress = ""
	assert.ErrorIs(t, cfg.ValidateServer(), ErrInvalidServerConfigs)

	cfg.Server.GRPCAddress = "localhost:9090"
	assert.NoError(t, cfg.ValidateServer())
}

func TestClientConfig_ValidateSync(t *testing.T) {
	cfg := validClientConfig()
	assert.ErrorIs(t, cfg.ValidateSync(), ErrInvalidSyncConfigs)

	cfg.Sync.DatabaseName = "todo"
	assert.ErrorIs(t, cfg.ValidateSync(), ErrInvalidSyncConfigs)

	cfg.Sync.DiffServerURL = "https://diff.example.com/pull"
	assert.NoError(t, cfg.ValidateSync())

	cfg.Workers.SyncInterval = 0
	assert.ErrorIs(t, cfg.ValidateSync(), ErrInvalidWorkerConfigs)
}
