package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	if content == "" {
		return filepath.Join(tmpDir, "nonexistent.yaml")
	}
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func TestLoadListenerConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *ListenerConfig)
	}{
		{
			name: "valid config",
			configFile: `
debug: true
sentry_dsn: https://sentry.example
database:
  host: localhost
  port: 5433
  user: rental
  password: secret
  dbname: rental_indexer
ledger:
  rpc_urls:
    - https://primary.example/v3/key
    - https://fallback.example
  chain_id: 11155111
  asset_contract: "0x00000000000000000000000000000000000000a1"
  marketplace_contract: "0x00000000000000000000000000000000000000b2"
  confirmation_depth: 6
listener:
  id: sepolia-rental
  batch_size: 50
  max_attempts: 3
  poll_interval: 5s
redis:
  addr: localhost:6379
health:
  port: 9000
`,
			validate: func(t *testing.T, cfg *ListenerConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example", cfg.SentryDSN)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, []string{"https://primary.example/v3/key", "https://fallback.example"}, cfg.Ledger.RPCURLs)
				assert.Equal(t, uint64(11155111), cfg.Ledger.ChainID)
				assert.Equal(t, "0x00000000000000000000000000000000000000a1", cfg.Ledger.AssetContract)
				assert.Equal(t, "0x00000000000000000000000000000000000000b2", cfg.Ledger.MarketplaceContract)
				assert.Equal(t, uint64(6), cfg.Ledger.ConfirmationDepth)
				assert.Equal(t, "sepolia-rental", cfg.Listener.ID)
				assert.Equal(t, uint64(50), cfg.Listener.BatchSize)
				assert.Equal(t, 3, cfg.Listener.MaxAttempts)
				assert.Equal(t, 5*time.Second, cfg.Listener.PollInterval)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, "ff:rental:rpc:", cfg.Redis.KeyPrefix)
				assert.Equal(t, 9000, cfg.Health.Port)
			},
		},
		{
			name:       "defaults",
			configFile: "debug: false\n",
			validate: func(t *testing.T, cfg *ListenerConfig) {
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, uint64(12), cfg.Ledger.ConfirmationDepth)
				assert.Equal(t, 12*time.Second, cfg.Ledger.BlockHeadTTL)
				assert.Equal(t, time.Minute, cfg.Ledger.BlockHeadStaleWindow)
				assert.Equal(t, uint64(2000), cfg.Ledger.MaxBlockSpan)
				assert.Equal(t, "rental-listener", cfg.Listener.ID)
				assert.Equal(t, uint64(12), cfg.Listener.ReorgGuardDepth)
				assert.Equal(t, uint64(100), cfg.Listener.InitialWindow)
				assert.Equal(t, uint64(500), cfg.Listener.BatchSize)
				assert.Equal(t, 4, cfg.Listener.MaxAttempts)
				assert.Equal(t, time.Second, cfg.Listener.RetryInitialInterval)
				assert.Equal(t, 30*time.Second, cfg.Listener.RetryMaxInterval)
				assert.Equal(t, 15*time.Second, cfg.Listener.PollInterval)
				assert.Equal(t, 2, cfg.Listener.FetchConcurrency)
				assert.Equal(t, 5, cfg.Listener.RequestsPerSecond)
				assert.Empty(t, cfg.Ledger.RPCURLs)
				assert.Empty(t, cfg.Redis.Addr)
				assert.Equal(t, 8081, cfg.Health.Port)
			},
		},
		{
			name:       "missing config file",
			configFile: "",
			validate: func(t *testing.T, cfg *ListenerConfig) {
				assert.Equal(t, uint64(500), cfg.Listener.BatchSize)
			},
		},
		{
			name: "invalid yaml",
			configFile: `
database:
  host: localhost
  port: invalid
`,
			expectError: true, // Invalid port should cause unmarshal error
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := writeConfig(t, tt.configFile)

			cfg, err := LoadListenerConfig(configFile, t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadProjectorConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *ProjectorConfig)
	}{
		{
			name: "valid config",
			configFile: `
database:
  host: db
projector:
  max_retries: 3
  idle_interval: 250ms
nats:
  url: nats://localhost:4222
  stream_name: PROJECTIONS
webhook:
  url: https://hooks.example.com/rentals
  secret: s3cret
  max_retries: 0
listener:
  id: sepolia-rental
health:
  port: 0
`,
			validate: func(t *testing.T, cfg *ProjectorConfig) {
				assert.Equal(t, "db", cfg.Database.Host)
				assert.Equal(t, 3, cfg.Projector.MaxRetries)
				assert.Equal(t, 250*time.Millisecond, cfg.Projector.IdleInterval)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "PROJECTIONS", cfg.NATS.StreamName)
				assert.Equal(t, "https://hooks.example.com/rentals", cfg.Webhook.URL)
				assert.Equal(t, "s3cret", cfg.Webhook.Secret)
				assert.Equal(t, uint64(0), cfg.Webhook.MaxRetries)
				assert.Equal(t, "sepolia-rental", cfg.Listener.ID)
				assert.Equal(t, 0, cfg.Health.Port)
			},
		},
		{
			name:       "defaults",
			configFile: "debug: false\n",
			validate: func(t *testing.T, cfg *ProjectorConfig) {
				assert.Equal(t, 5, cfg.Projector.MaxRetries)
				assert.Equal(t, 2*time.Second, cfg.Projector.IdleInterval)
				assert.Equal(t, 500*time.Millisecond, cfg.Projector.RetryInitialInterval)
				assert.Equal(t, 30*time.Second, cfg.Projector.RetryMaxInterval)
				assert.Empty(t, cfg.NATS.URL)
				assert.Equal(t, "RENTAL_PROJECTIONS", cfg.NATS.StreamName)
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
				assert.Empty(t, cfg.Webhook.URL)
				assert.Equal(t, 10*time.Second, cfg.Webhook.Timeout)
				assert.Equal(t, uint64(2), cfg.Webhook.MaxRetries)
				assert.Equal(t, 500*time.Millisecond, cfg.Webhook.RetryInterval)
				assert.Equal(t, "rental-listener", cfg.Listener.ID)
				assert.Equal(t, 8082, cfg.Health.Port)
			},
		},
		{
			name: "invalid duration",
			configFile: `
projector:
  idle_interval: soon
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := writeConfig(t, tt.configFile)

			cfg, err := LoadProjectorConfig(configFile, t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadRebuildConfig(t *testing.T) {
	tests := []struct {
		name       string
		configFile string
		validate   func(*testing.T, *RebuildConfig)
	}{
		{
			name: "valid config",
			configFile: `
listener:
  id: sepolia-rental
rebuild:
  from_block: 4200000
`,
			validate: func(t *testing.T, cfg *RebuildConfig) {
				assert.Equal(t, "sepolia-rental", cfg.Listener.ID)
				assert.Equal(t, uint64(4200000), cfg.Rebuild.FromBlock)
			},
		},
		{
			name:       "defaults",
			configFile: "",
			validate: func(t *testing.T, cfg *RebuildConfig) {
				assert.Equal(t, "rental-listener", cfg.Listener.ID)
				assert.Equal(t, uint64(0), cfg.Rebuild.FromBlock)
				assert.Equal(t, 5432, cfg.Database.Port)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := writeConfig(t, tt.configFile)

			cfg, err := LoadRebuildConfig(configFile, t.TempDir())
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLedgerConfig_Endpoints(t *testing.T) {
	tests := []struct {
		name     string
		urls     []string
		expected []string
	}{
		{
			name:     "none",
			urls:     nil,
			expected: nil,
		},
		{
			name:     "keeps order",
			urls:     []string{"https://b.example", "https://a.example"},
			expected: []string{"https://b.example", "https://a.example"},
		},
		{
			name:     "trims and drops blanks",
			urls:     []string{" https://a.example", "", "  ", "https://b.example "},
			expected: []string{"https://a.example", "https://b.example"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LedgerConfig{RPCURLs: tt.urls}
			assert.Equal(t, tt.expected, cfg.Endpoints())
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "p@ssw0rd!",
				DBName:   "testdb",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	keys := []string{
		"FF_RENTAL_DEBUG",
		"FF_RENTAL_DATABASE_HOST",
		"FF_RENTAL_DATABASE_PORT",
		"FF_RENTAL_LEDGER_RPC_URLS",
		"FF_RENTAL_LEDGER_CHAIN_ID",
		"FF_RENTAL_LISTENER_BATCH_SIZE",
	}
	// Registers cleanup so the values written by godotenv do not leak into other tests
	for _, key := range keys {
		t.Setenv(key, "")
	}

	tmpDir := t.TempDir()
	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	envContent := `FF_RENTAL_DEBUG=true
FF_RENTAL_DATABASE_HOST=env-host
FF_RENTAL_DATABASE_PORT=6543
FF_RENTAL_LEDGER_RPC_URLS=https://env-primary.example,https://env-fallback.example
FF_RENTAL_LEDGER_CHAIN_ID=1
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))

	// Service-local file wins over the shared one
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env.listener.local"), []byte("FF_RENTAL_LISTENER_BATCH_SIZE=25\n"), 0600))

	configPath := filepath.Join(tmpDir, "config.yaml")
	configFile := `
debug: false
database:
  host: file-host
  port: 5432
listener:
  batch_size: 400
`
	require.NoError(t, os.WriteFile(configPath, []byte(configFile), 0600))

	cfg, err := LoadListenerConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, []string{"https://env-primary.example", "https://env-fallback.example"}, cfg.Ledger.Endpoints())
	assert.Equal(t, uint64(1), cfg.Ledger.ChainID)
	assert.Equal(t, uint64(25), cfg.Listener.BatchSize)
}
