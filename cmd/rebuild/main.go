package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-rental-indexer/internal/config"
	"github.com/feral-file/ff-rental-indexer/internal/logger"
	"github.com/feral-file/ff-rental-indexer/internal/rebuild"
	"github.com/feral-file/ff-rental-indexer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	fromBlock  = flag.Int64("from-block", -1, "Block the listener restarts from (defaults to rebuild.from_block)")
	dryRun     = flag.Bool("dry-run", false, "Report what would be reset without changing anything")
	confirm    = flag.Bool("yes", false, "Confirm the rebuild; the listener and projector must be stopped")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadRebuildConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !*dryRun && !*confirm {
		fmt.Fprintln(os.Stderr, "Refusing to rebuild without -yes. Stop the listener and projector first, or use -dry-run.")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "rental-rebuild",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	opts := rebuild.Options{
		ListenerID: cfg.Listener.ID,
		FromBlock:  cfg.Rebuild.FromBlock,
		DryRun:     *dryRun,
	}
	if *fromBlock >= 0 {
		opts.FromBlock = uint64(*fromBlock) //nolint:gosec,G115
	}

	logger.InfoCtx(ctx, "Starting rebuild",
		zap.String("listener_id", opts.ListenerID),
		zap.Uint64("from_block", opts.FromBlock),
		zap.Bool("dry_run", opts.DryRun))

	report, err := rebuild.New(store.NewPGStore(db)).Rebuild(ctx, opts)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("component", "rebuild"))
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.FatalCtx(ctx, "Failed to encode report", zap.Error(err))
	}
	fmt.Println(string(out))
}
