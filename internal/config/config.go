package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-rental-indexer/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration. An empty URL disables notifications.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// WebhookConfig holds the signed webhook that receives projection changes. An empty URL disables it.
type WebhookConfig struct {
	URL           string        `mapstructure:"url"`
	Secret        string        `mapstructure:"secret"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetries    uint64        `mapstructure:"max_retries"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

// RedisConfig holds the Redis connection used by the shared RPC rate limiter.
// An empty Addr means every process limits itself locally.
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// LedgerConfig holds the ledger connection and the deployed contracts
type LedgerConfig struct {
	RPCURLs              []string      `mapstructure:"rpc_urls"` // priority order
	ChainID              uint64        `mapstructure:"chain_id"` // 0 skips the chain id check
	AssetContract        string        `mapstructure:"asset_contract"`
	MarketplaceContract  string        `mapstructure:"marketplace_contract"`
	ConfirmationDepth    uint64        `mapstructure:"confirmation_depth"`
	BlockHeadTTL         time.Duration `mapstructure:"block_head_ttl"`
	BlockHeadStaleWindow time.Duration `mapstructure:"block_head_stale_window"`
	MaxBlockSpan         uint64        `mapstructure:"max_block_span"`
}

// ListenerSettings holds the listener loop tuning
type ListenerSettings struct {
	ID                   string        `mapstructure:"id"`
	ReorgGuardDepth      uint64        `mapstructure:"reorg_guard_depth"`
	InitialWindow        uint64        `mapstructure:"initial_window"`
	BatchSize            uint64        `mapstructure:"batch_size"`
	MaxAttempts          int           `mapstructure:"max_attempts"`
	RetryInitialInterval time.Duration `mapstructure:"retry_initial_interval"`
	RetryMaxInterval     time.Duration `mapstructure:"retry_max_interval"`
	PollInterval         time.Duration `mapstructure:"poll_interval"`
	FetchConcurrency     int           `mapstructure:"fetch_concurrency"`
	RequestsPerSecond    int           `mapstructure:"requests_per_second"`
	RequestBurst         int           `mapstructure:"request_burst"`
}

// ProjectorSettings holds the projector loop tuning
type ProjectorSettings struct {
	MaxRetries           int           `mapstructure:"max_retries"`
	IdleInterval         time.Duration `mapstructure:"idle_interval"`
	RetryInitialInterval time.Duration `mapstructure:"retry_initial_interval"`
	RetryMaxInterval     time.Duration `mapstructure:"retry_max_interval"`
}

// HealthConfig holds the health/metrics HTTP server configuration. Port 0 disables it.
type HealthConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// RebuildSettings holds the rebuild tool configuration
type RebuildSettings struct {
	FromBlock uint64 `mapstructure:"from_block"`
}

// ListenerConfig holds configuration for the listener program
type ListenerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	Listener   ListenerSettings `mapstructure:"listener"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Health     HealthConfig     `mapstructure:"health"`
}

// ProjectorConfig holds configuration for the projector program
type ProjectorConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig    `mapstructure:"database"`
	Projector  ProjectorSettings `mapstructure:"projector"`
	Listener   ListenerSettings  `mapstructure:"listener"` // only id, for the checkpoint in health reports
	NATS       NATSConfig        `mapstructure:"nats"`
	Webhook    WebhookConfig     `mapstructure:"webhook"`
	Health     HealthConfig      `mapstructure:"health"`
}

// RebuildConfig holds configuration for the rebuild tool
type RebuildConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Listener   ListenerSettings `mapstructure:"listener"`
	Rebuild    RebuildSettings  `mapstructure:"rebuild"`
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.conn_max_idle_time", "5m")
}

func setListenerDefaults(v *viper.Viper) {
	v.SetDefault("listener.id", domain.DEFAULT_LISTENER_ID)
	v.SetDefault("listener.reorg_guard_depth", 12)
	v.SetDefault("listener.initial_window", 100)
	v.SetDefault("listener.batch_size", 500)
	v.SetDefault("listener.max_attempts", 4)
	v.SetDefault("listener.retry_initial_interval", "1s")
	v.SetDefault("listener.retry_max_interval", "30s")
	v.SetDefault("listener.poll_interval", "15s")
	v.SetDefault("listener.fetch_concurrency", 2)
	v.SetDefault("listener.requests_per_second", 5)
	v.SetDefault("listener.request_burst", 1)
}

func setHealthDefaults(v *viper.Viper) {
	v.SetDefault("health.host", "0.0.0.0")
	v.SetDefault("health.read_timeout", "10s")
	v.SetDefault("health.write_timeout", "10s")
	v.SetDefault("health.idle_timeout", "60s")
}

// LoadListenerConfig loads configuration for the listener
func LoadListenerConfig(configFile string, envPath string) (*ListenerConfig, error) {
	v := configureViper("listener", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setListenerDefaults(v)
	setHealthDefaults(v)
	v.SetDefault("ledger.confirmation_depth", 12)
	v.SetDefault("ledger.block_head_ttl", "12s")
	v.SetDefault("ledger.block_head_stale_window", "60s")
	v.SetDefault("ledger.max_block_span", 2000)
	v.SetDefault("redis.key_prefix", "ff:rental:rpc:")
	v.SetDefault("health.port", 8081)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config ListenerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadProjectorConfig loads configuration for the projector
func LoadProjectorConfig(configFile string, envPath string) (*ProjectorConfig, error) {
	v := configureViper("projector", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setHealthDefaults(v)
	v.SetDefault("listener.id", domain.DEFAULT_LISTENER_ID)
	v.SetDefault("projector.max_retries", 5)
	v.SetDefault("projector.idle_interval", "2s")
	v.SetDefault("projector.retry_initial_interval", "500ms")
	v.SetDefault("projector.retry_max_interval", "30s")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "RENTAL_PROJECTIONS")
	v.SetDefault("nats.connection_name", "rental-projector")
	v.SetDefault("webhook.timeout", "10s")
	v.SetDefault("webhook.max_retries", 2)
	v.SetDefault("webhook.retry_interval", "500ms")
	v.SetDefault("health.port", 8082)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config ProjectorConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadRebuildConfig loads configuration for the rebuild tool
func LoadRebuildConfig(configFile string, envPath string) (*RebuildConfig, error) {
	v := configureViper("rebuild", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	v.SetDefault("listener.id", domain.DEFAULT_LISTENER_ID)
	v.SetDefault("rebuild.from_block", 0)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config RebuildConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// readConfig reads the config file, falling back to defaults and environment
// variables when there is no file
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper configures viper for a service
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables from .env files
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/listener/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_RENTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Webhook
		"webhook.url",
		"webhook.secret",
		"webhook.timeout",
		"webhook.max_retries",
		"webhook.retry_interval",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		"redis.key_prefix",
		// Ledger
		"ledger.rpc_urls",
		"ledger.chain_id",
		"ledger.asset_contract",
		"ledger.marketplace_contract",
		"ledger.confirmation_depth",
		"ledger.block_head_ttl",
		"ledger.block_head_stale_window",
		"ledger.max_block_span",
		// Listener
		"listener.id",
		"listener.reorg_guard_depth",
		"listener.initial_window",
		"listener.batch_size",
		"listener.max_attempts",
		"listener.retry_initial_interval",
		"listener.retry_max_interval",
		"listener.poll_interval",
		"listener.fetch_concurrency",
		"listener.requests_per_second",
		"listener.request_burst",
		// Projector
		"projector.max_retries",
		"projector.idle_interval",
		"projector.retry_initial_interval",
		"projector.retry_max_interval",
		// Health server
		"health.host",
		"health.port",
		"health.read_timeout",
		"health.write_timeout",
		"health.idle_timeout",
		// Rebuild
		"rebuild.from_block",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Endpoints returns the configured RPC urls in priority order without blanks.
// Env values arrive comma separated, so entries are trimmed.
func (c *LedgerConfig) Endpoints() []string {
	var urls []string
	for _, u := range c.RPCURLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
