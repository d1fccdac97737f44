package main

import (
	"context"
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
	"github.com/feral-file/ff-rental-indexer/internal/config"
	"github.com/feral-file/ff-rental-indexer/internal/health"
	"github.com/feral-file/ff-rental-indexer/internal/logger"
	"github.com/feral-file/ff-rental-indexer/internal/messaging"
	"github.com/feral-file/ff-rental-indexer/internal/metrics"
	"github.com/feral-file/ff-rental-indexer/internal/projector"
	"github.com/feral-file/ff-rental-indexer/internal/providers/jetstream"
	"github.com/feral-file/ff-rental-indexer/internal/store"
	"github.com/feral-file/ff-rental-indexer/internal/webhook"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadProjectorConfig(*configFile, *envPath)
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
			"service": "rental-projector",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting rental projector")

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

	// Change notifications are optional
	var publishers []messaging.Publisher
	if cfg.NATS.URL != "" {
		natsPublisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), adapter.NewJSON())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		publishers = append(publishers, natsPublisher)
		logger.InfoCtx(ctx, "Connected to NATS JetStream", zap.String("stream", cfg.NATS.StreamName))
	}
	if cfg.Webhook.URL != "" {
		webhookPublisher, err := webhook.NewPublisher(webhook.Config{
			URL:           cfg.Webhook.URL,
			Secret:        cfg.Webhook.Secret,
			MaxRetries:    cfg.Webhook.MaxRetries,
			RetryInterval: cfg.Webhook.RetryInterval,
		}, adapter.NewHTTPClient(cfg.Webhook.Timeout), adapter.NewJSON(), clockAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create webhook publisher", zap.Error(err))
		}
		publishers = append(publishers, webhookPublisher)
		logger.InfoCtx(ctx, "Delivering projection changes to webhook")
	}
	publisher := messaging.NewFanoutPublisher(publishers...)
	defer publisher.Close()

	ledgerProjector := projector.New(projector.Config{
		MaxRetries:           cfg.Projector.MaxRetries,
		IdleInterval:         cfg.Projector.IdleInterval,
		RetryInitialInterval: cfg.Projector.RetryInitialInterval,
		RetryMaxInterval:     cfg.Projector.RetryMaxInterval,
	}, dataStore, publisher, clockAdapter)

	// Health and metrics server
	var healthServer *server.Server
	errCh := make(chan error, 2)
	if cfg.Health.Port != 0 {
		reporter := health.NewReporter(ledgerProjector, dataStore, dataStore, cfg.Listener.ID, clockAdapter)
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			metrics.NewCollector("projector", reporter),
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

	projectorDone := make(chan struct{})
	go func() {
		defer close(projectorDone)
		if err := ledgerProjector.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "projector"))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// The entry in flight is finished before Stop returns
	if err := ledgerProjector.Stop(shutdownCtx); err != nil {
		logger.Warn("Projector did not stop in time", zap.Error(err))
	}
	cancel()
	<-projectorDone

	if healthServer != nil {
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Failed to shutdown health server", zap.Error(err))
		}
	}

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Rental projector stopped")
}
