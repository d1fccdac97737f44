package projector

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rental-indexer/internal/adapter"
	"github.com/feral-file/ff-rental-indexer/internal/domain"
	"github.com/feral-file/ff-rental-indexer/internal/health"
	"github.com/feral-file/ff-rental-indexer/internal/logger"
	"github.com/feral-file/ff-rental-indexer/internal/messaging"
	"github.com/feral-file/ff-rental-indexer/internal/store"
	"github.com/feral-file/ff-rental-indexer/internal/store/schema"
)

const componentName = "projector"

// Config holds the projector configuration
type Config struct {
	// MaxRetries is the number of failed attempts after which an entry is parked as failed
	MaxRetries int
	// IdleInterval is how long to wait when no entry is pending
	IdleInterval         time.Duration
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
}

// Store is the storage the projector reads from and writes to
type Store interface {
	store.LedgerStore
	store.ProjectionStore
}

// Projector applies pending ledger entries to the read models, one at a time, in ledger order
type Projector interface {
	// Start runs the projection loop until the context is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop signals the loop to stop and waits for it to exit
	Stop(ctx context.Context) error

	// State returns a snapshot for health reporting
	State() health.ComponentState

	// ProcessNext applies the oldest pending entry. It returns false when nothing was pending.
	// A handler failure is recorded on the entry and returned.
	ProcessNext(ctx context.Context) (bool, error)
}

type projector struct {
	config    Config
	store     Store
	publisher messaging.Publisher
	clock     adapter.Clock

	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}

	mu    sync.RWMutex
	state health.ComponentState
}

// New creates a projector. publisher may be a no-op publisher.
func New(config Config, st Store, publisher messaging.Publisher, clock adapter.Clock) Projector {
	if config.MaxRetries <= 0 {
		config.MaxRetries = 1
	}
	if publisher == nil {
		publisher = messaging.NewNopPublisher()
	}

	return &projector{
		config:    config,
		store:     st,
		publisher: publisher,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
		state: health.ComponentState{
			Name:      componentName,
			Phase:     health.PhaseIdle,
			UpdatedAt: clock.Now(),
		},
	}
}

// Start begins the projection loop
func (p *projector) Start(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return fmt.Errorf("projector %w", domain.ErrAlreadyRunning)
	}
	defer func() {
		p.running.Store(false)
		close(p.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting projector",
		zap.Int("max_retries", p.config.MaxRetries),
		zap.Duration("idle_interval", p.config.IdleInterval))

	// Delay between failed attempts, reset after every success
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.config.RetryInitialInterval
	b.MaxInterval = p.config.RetryMaxInterval
	b.MaxElapsedTime = 0 // Retries are bounded per entry by MaxRetries
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5
	b.Reset()

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Projector stopping due to context cancellation", zap.Error(ctx.Err()))
			p.setPhase(health.PhaseStopped)
			return nil
		case <-p.stopChan:
			logger.InfoCtx(ctx, "Projector stop requested")
			p.setPhase(health.PhaseStopped)
			return nil
		default:
		}

		processed, err := p.ProcessNext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			p.setLastError(err.Error())
			p.sleep(ctx, b.NextBackOff())
			continue
		}
		b.Reset()

		if !processed {
			p.setPhase(health.PhaseIdle)
			p.sleep(ctx, p.config.IdleInterval)
			continue
		}
		p.setPhase(health.PhaseProcessing)
	}
}

// Stop gracefully stops the projector
func (p *projector) Stop(ctx context.Context) error {
	if !p.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping projector")
	close(p.stopChan)

	select {
	case <-p.stoppedCh:
		logger.InfoCtx(ctx, "Projector stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Projector stop interrupted by context timeout")
		return ctx.Err()
	}
}

// State returns a copy of the current state
func (p *projector) State() health.ComponentState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

func (p *projector) ProcessNext(ctx context.Context) (bool, error) {
	entry, err := p.store.NextPendingEntry(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get next pending entry: %w", err)
	}
	if entry == nil {
		return false, nil
	}

	// An entry in flight is always finished, even when a stop arrives
	writeCtx := context.WithoutCancel(ctx)

	ev, err := ledgerEvent(entry)
	var res result
	if err == nil {
		res, err = p.apply(writeCtx, ev)
	}
	if err != nil {
		return true, p.fail(writeCtx, entry, err)
	}

	if err := p.store.MarkEntryProcessed(writeCtx, entry.ID); err != nil {
		return true, fmt.Errorf("failed to mark entry %d processed: %w", entry.ID, err)
	}

	logger.DebugCtx(ctx, "Applied ledger entry",
		zap.Uint64("entry_id", entry.ID),
		zap.String("kind", string(entry.Kind)),
		logger.Position(entry.BlockNumber, entry.TxHash, entry.LogIndex),
		zap.Bool("projected", res.applied))

	if res.applied {
		p.notify(writeCtx, ev, res.ledgerListingID)
	}

	return true, nil
}

// fail records a handler error on the entry and returns it
func (p *projector) fail(ctx context.Context, entry *schema.LedgerEntry, cause error) error {
	status, err := p.store.MarkEntryFailed(ctx, entry.ID, cause.Error(), p.config.MaxRetries)
	if err != nil {
		return fmt.Errorf("failed to mark entry %d failed: %w (handler error: %w)", entry.ID, err, cause)
	}

	fields := []zap.Field{
		zap.Uint64("entry_id", entry.ID),
		zap.String("kind", string(entry.Kind)),
		logger.Position(entry.BlockNumber, entry.TxHash, entry.LogIndex),
		zap.Int("attempt", entry.RetryCount+1),
		zap.Int("max_retries", p.config.MaxRetries),
	}
	if status == schema.EntryStatusFailed {
		logger.ErrorCtx(ctx, fmt.Errorf("ledger entry %d parked as failed: %w", entry.ID, cause), fields...)
	} else {
		logger.WarnCtx(ctx, "Failed to apply ledger entry, will retry", append(fields, zap.Error(cause))...)
	}

	return fmt.Errorf("failed to apply entry %d: %w", entry.ID, cause)
}

// notify publishes the change. Failures are logged and never retried.
func (p *projector) notify(ctx context.Context, ev domain.LedgerEvent, ledgerListingID *string) {
	change := messaging.NewProjectionChange(ev, ledgerListingID, p.clock.Now())
	if err := p.publisher.PublishChange(ctx, change); err != nil {
		logger.WarnCtx(ctx, "Failed to publish projection change",
			zap.Error(err),
			zap.String("subject", change.Subject()),
			logger.Position(ev.BlockNumber, ev.TxHash, ev.LogIndex))
	}
}

// ledgerEvent restores the typed event of a stored entry
func ledgerEvent(entry *schema.LedgerEntry) (domain.LedgerEvent, error) {
	event, err := entry.Event()
	if err != nil {
		return domain.LedgerEvent{}, err
	}
	return domain.LedgerEvent{
		TxHash:          entry.TxHash,
		LogIndex:        entry.LogIndex,
		BlockNumber:     entry.BlockNumber,
		BlockHash:       entry.BlockHash,
		ContractAddress: entry.ContractAddress,
		Event:           event,
	}, nil
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted
func (p *projector) sleep(ctx context.Context, duration time.Duration) bool {
	if duration == backoff.Stop {
		duration = p.config.RetryMaxInterval
	}
	select {
	case <-p.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-p.stopChan:
		return false
	}
}

func (p *projector) setPhase(phase health.Phase) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.Phase == phase {
		return
	}
	p.state.Phase = phase
	p.state.UpdatedAt = p.clock.Now()
}

func (p *projector) setLastError(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.LastError = msg
	p.state.UpdatedAt = p.clock.Now()
}
