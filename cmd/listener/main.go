package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-rental-indexer/internal/adapter"
	"github.com/feral-file/ff-rental-indexer/internal/api/server"
	"github.com/feral-file/ff-rental-indexer/internal/block"
	"github.com/feral-file/ff-rental-indexer/internal/config"
	"github.com/feral-file/ff-rental-indexer/internal/domain"
	"github.com/feral-file/ff-rental-indexer/internal/health"
	"github.com/feral-file/ff-rental-indexer/internal/listener"
	"github.com/feral-file/ff-rental-indexer/internal/logger"
	"github.com/feral-file/ff-rental-indexer/internal/metrics"
	"github.com/feral-file/ff-rental-indexer/internal/providers/ethereum"
	"github.com/feral-file/ff-rental-indexer/internal/ratelimit"
	"github.com/feral-file/ff-rental-indexer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadListenerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service":     "rental-listener",
			"listener_id": cfg.Listener.ID,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting rental ledger listener")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime,
		cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	dataStore := store.NewPGStore(db)
	clockAdapter := adapter.NewClock()

	// Connect to the first reachable RPC endpoint on the configured chain
	ethClient, _, err := ethereum.DialWithFallback(ctx, adapter.NewEthClientDialer(), cfg.Ledger.Endpoints(), cfg.Ledger.ChainID)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to the ledger", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to ledger RPC", zap.Uint64("chain_id", cfg.Ledger.ChainID))

	limiter := newLimiter(ctx, cfg, clockAdapter)
	defer func() {
		if err := limiter.Close(); err != nil {
			logger.Warn("Failed to close rate limiter", zap.Error(err))
		}
	}()

	ledgerClient := ethereum.NewClient(ethClient, ethereum.ClientConfig{
		AssetContract:       cfg.Ledger.AssetContract,
		MarketplaceContract: cfg.Ledger.MarketplaceContract,
		MaxBlockSpan:        cfg.Ledger.MaxBlockSpan,
	}, limiter)
	defer ledgerClient.Close()

	headProvider := block.NewBlockHeadProvider(ledgerClient, block.Config{
		TTL:               cfg.Ledger.BlockHeadTTL,
		StaleWindow:       cfg.Ledger.BlockHeadStaleWindow,
		ConfirmationDepth: cfg.Ledger.ConfirmationDepth,
	}, clockAdapter)

	ledgerListener := listener.New(listener.Config{
		ID:                   cfg.Listener.ID,
		AssetContract:        cfg.Ledger.AssetContract,
		MarketplaceContract:  cfg.Ledger.MarketplaceContract,
		ReorgGuardDepth:      cfg.Listener.ReorgGuardDepth,
		InitialWindow:        cfg.Listener.InitialWindow,
		BatchSize:            cfg.Listener.BatchSize,
		MaxAttempts:          cfg.Listener.MaxAttempts,
		RetryInitialInterval: cfg.Listener.RetryInitialInterval,
		RetryMaxInterval:     cfg.Listener.RetryMaxInterval,
		PollInterval:         cfg.Listener.PollInterval,
		FetchConcurrency:     cfg.Listener.FetchConcurrency,
	}, ledgerClient, headProvider, dataStore, clockAdapter)

	// Health and metrics server
	var healthServer *server.Server
	errCh := make(chan error, 2)
	if cfg.Health.Port != 0 {
		reporter := health.NewReporter(ledgerListener, dataStore, dataStore, cfg.Listener.ID, clockAdapter)
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			metrics.NewCollector("listener", reporter),
		)
		healthServer = server.New(server.Config{
			Debug:        cfg.Debug,
			Host:         cfg.Health.Host,
			Port:         cfg.Health.Port,
			ReadTimeout:  cfg.Health.ReadTimeout,
			WriteTimeout: cfg.Health.WriteTimeout,
			IdleTimeout:  cfg.Health.IdleTimeout,
		}, reporter, registry)
		go func() {
			if err := healthServer.Start(); err != nil {
				errCh <- err
			}
		}()
	}

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	listenerDone := make(chan struct{})
	go func() {
		defer close(listenerDone)
		if err := ledgerListener.Start(ctx); err != nil {
			if errors.Is(err, domain.ErrListenerStuck) {
				// Stay up so the stuck phase stays visible on /healthz
				logger.ErrorCtx(ctx, err, zap.String("component", "listener"))
				return
			}
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "listener"))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := ledgerListener.Stop(shutdownCtx); err != nil {
		logger.Warn("Listener did not stop in time", zap.Error(err))
	}
	cancel()
	<-listenerDone

	if healthServer != nil {
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Failed to shutdown health server", zap.Error(err))
		}
	}

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Rental ledger listener stopped")
}

// newLimiter shares the RPC budget through Redis when configured, otherwise limits locally
func newLimiter(ctx context.Context, cfg *config.ListenerConfig, clock adapter.Clock) ratelimit.Limiter {
	if cfg.Redis.Addr == "" {
		return ratelimit.NewLocalLimiter(cfg.Listener.RequestsPerSecond, cfg.Listener.RequestBurst)
	}

	limiter, err := ratelimit.NewDistributedLimiter(ratelimit.Config{
		Name:                    "ledger-rpc",
		RequestsPerSecond:       cfg.Listener.RequestsPerSecond,
		Burst:                   cfg.Listener.RequestBurst,
		RedisKeyPrefix:          cfg.Redis.KeyPrefix,
		LocalFallbackMultiplier: 0.5,
		HealthCheckInterval:     10 * time.Second,
	}, adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), clock)
	if err != nil {
		logger.WarnCtx(ctx, "Falling back to a local rate limiter", zap.Error(err))
		return ratelimit.NewLocalLimiter(cfg.Listener.RequestsPerSecond, cfg.Listener.RequestBurst)
	}
	logger.InfoCtx(ctx, "Using distributed RPC rate limiter", zap.String("redis", cfg.Redis.Addr))
	return limiter
}
