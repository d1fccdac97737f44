package rebuild

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-rental-indexer/internal/logger"
	"github.com/feral-file/ff-rental-indexer/internal/store"
)

// Store is the storage a rebuild resets
type Store interface {
	store.LedgerStore
	store.CheckpointStore
	store.ProjectionStore
}

// Options selects what a rebuild does
type Options struct {
	ListenerID string
	// FromBlock is the checkpoint the listener restarts from
	FromBlock uint64
	// DryRun only reports what would be reset
	DryRun bool
}

// Report summarizes a rebuild
type Report struct {
	DryRun             bool                   `json:"dry_run"`
	ListenerID         string                 `json:"listener_id"`
	PreviousCheckpoint *uint64                `json:"previous_checkpoint,omitempty"`
	FromBlock          uint64                 `json:"from_block"`
	Entries            store.EntryCounts      `json:"entries"`
	EntriesReset       int64                  `json:"entries_reset"`
	Projections        store.ProjectionCounts `json:"projections"`
	DeadLetters        int64                  `json:"dead_letters"`
}

// Rebuilder resets the pipeline so the listener and projector rebuild every derived record
type Rebuilder interface {
	// Rebuild resets the checkpoint, returns every ledger entry to pending and clears
	// the derived read models. Dead letters and local drafts are kept.
	Rebuild(ctx context.Context, opts Options) (Report, error)
}

type rebuilder struct {
	store Store
}

// New creates a rebuilder
func New(st Store) Rebuilder {
	return &rebuilder{store: st}
}

func (r *rebuilder) Rebuild(ctx context.Context, opts Options) (Report, error) {
	report := Report{
		DryRun:     opts.DryRun,
		ListenerID: opts.ListenerID,
		FromBlock:  opts.FromBlock,
	}

	checkpoint, found, err := r.store.GetCheckpoint(ctx, opts.ListenerID)
	if err != nil {
		return report, fmt.Errorf("failed to get checkpoint: %w", err)
	}
	if found {
		report.PreviousCheckpoint = &checkpoint
	}

	if report.Entries, err = r.store.CountEntriesByStatus(ctx); err != nil {
		return report, fmt.Errorf("failed to count ledger entries: %w", err)
	}
	if report.DeadLetters, err = r.store.CountDeadLetters(ctx); err != nil {
		return report, fmt.Errorf("failed to count dead letters: %w", err)
	}

	if opts.DryRun {
		if report.Projections, err = r.store.CountProjections(ctx); err != nil {
			return report, fmt.Errorf("failed to count projections: %w", err)
		}
		logger.InfoCtx(ctx, "Dry run, nothing reset",
			zap.String("listener_id", opts.ListenerID),
			zap.Uint64("from_block", opts.FromBlock),
			zap.Int64("processed_entries", report.Entries.Processed),
			zap.Int64("failed_entries", report.Entries.Failed),
			zap.Int64("assets", report.Projections.Assets),
			zap.Int64("ledger_listings", report.Projections.LedgerListings),
			zap.Int64("rentals", report.Projections.Rentals))
		return report, nil
	}

	// Checkpoint first: if a later step fails the listener already restarts early
	// and the insert-if-absent ledger absorbs the overlap
	if err := r.store.ResetCheckpoint(ctx, opts.ListenerID, opts.FromBlock); err != nil {
		return report, fmt.Errorf("failed to reset checkpoint: %w", err)
	}
	logger.InfoCtx(ctx, "Checkpoint reset",
		zap.String("listener_id", opts.ListenerID),
		zap.Uint64("from_block", opts.FromBlock))

	if report.EntriesReset, err = r.store.ResetEntries(ctx); err != nil {
		return report, fmt.Errorf("failed to reset ledger entries: %w", err)
	}
	logger.InfoCtx(ctx, "Ledger entries reset to pending", zap.Int64("count", report.EntriesReset))

	if report.Projections, err = r.store.ClearProjections(ctx); err != nil {
		return report, fmt.Errorf("failed to clear projections: %w", err)
	}
	logger.InfoCtx(ctx, "Projections cleared",
		zap.Int64("assets", report.Projections.Assets),
		zap.Int64("ledger_listings", report.Projections.LedgerListings),
		zap.Int64("draft_listings_reset", report.Projections.DraftListings),
		zap.Int64("rentals", report.Projections.Rentals))

	return report, nil
}
