package listener

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rental-indexer/internal/adapter"
	"github.com/feral-file/ff-rental-indexer/internal/block"
	"github.com/feral-file/ff-rental-indexer/internal/domain"
	"github.com/feral-file/ff-rental-indexer/internal/health"
	"github.com/feral-file/ff-rental-indexer/internal/logger"
	"github.com/feral-file/ff-rental-indexer/internal/providers/ethereum"
	"github.com/feral-file/ff-rental-indexer/internal/store"
)

const componentName = "listener"

// Config holds the listener configuration
type Config struct {
	// ID is the checkpoint identity
	ID                  string
	AssetContract       string
	MarketplaceContract string

	// ReorgGuardDepth is how many already checkpointed blocks are scanned again on resume
	ReorgGuardDepth uint64
	// InitialWindow is how far behind the head a listener without a checkpoint starts
	InitialWindow uint64
	// BatchSize is the number of blocks per checkpointed range
	BatchSize uint64

	// MaxAttempts bounds the attempts per range before the listener halts
	MaxAttempts          int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration

	PollInterval time.Duration
	// FetchConcurrency is the number of sub-ranges fetched in parallel
	FetchConcurrency int
}

// Store is the storage the listener writes to
type Store interface {
	store.LedgerStore
	store.CheckpointStore
}

// Listener ingests ledger logs into the event ledger and keeps its checkpoint
type Listener interface {
	// Start runs the ingestion loop until the context is canceled, Stop is called
	// or a range exhausts its retries (domain.ErrListenerStuck)
	Start(ctx context.Context) error

	// Stop signals the loop to stop and waits for it to exit
	Stop(ctx context.Context) error

	// State returns a snapshot for health reporting
	State() health.ComponentState
}

type listener struct {
	config Config
	client ethereum.LedgerClient
	head   block.BlockHeadProvider
	store  Store
	clock  adapter.Clock
	pool   pond.ResultPool[[]types.Log]

	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}

	mu    sync.RWMutex
	state health.ComponentState
}

// New creates a listener
func New(config Config, client ethereum.LedgerClient, head block.BlockHeadProvider, st Store, clock adapter.Clock) Listener {
	if config.ID == "" {
		config.ID = domain.DEFAULT_LISTENER_ID
	}
	if config.BatchSize == 0 {
		config.BatchSize = 500
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	if config.FetchConcurrency <= 0 {
		config.FetchConcurrency = 1
	}

	return &listener{
		config:    config,
		client:    client,
		head:      head,
		store:     st,
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

// Start begins the ingestion loop
func (l *listener) Start(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return fmt.Errorf("listener %w", domain.ErrAlreadyRunning)
	}
	defer func() {
		l.running.Store(false)
		close(l.stoppedCh)
	}()

	// The loop context is canceled on Stop so in-flight RPC calls return early.
	// Storage writes use a detached context and always complete.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-l.stopChan:
			cancel()
		case <-runCtx.Done():
		}
	}()

	if l.config.AssetContract == "" || l.config.MarketplaceContract == "" {
		logger.WarnCtx(ctx, "Ledger contract addresses are not configured, listener is idle",
			zap.String("asset_contract", l.config.AssetContract),
			zap.String("marketplace_contract", l.config.MarketplaceContract))
		l.setPhase(health.PhaseDegraded, "contract addresses not configured")
		<-runCtx.Done()
		l.setPhase(health.PhaseStopped, "")
		return nil
	}

	l.pool = pond.NewResultPool[[]types.Log](l.config.FetchConcurrency, pond.WithContext(runCtx))
	defer l.pool.StopAndWait()

	logger.InfoCtx(ctx, "Starting listener",
		zap.String("listener_id", l.config.ID),
		zap.Uint64("batch_size", l.config.BatchSize),
		zap.Uint64("reorg_guard_depth", l.config.ReorgGuardDepth),
		zap.Int("max_attempts", l.config.MaxAttempts),
		zap.Int("fetch_concurrency", l.config.FetchConcurrency))

	var (
		next    uint64
		resumed bool
	)
	for {
		select {
		case <-runCtx.Done():
			logger.InfoCtx(ctx, "Listener stopping due to context cancellation", zap.Uint64("next_block", next))
			l.setPhase(health.PhaseStopped, "")
			return nil
		case <-l.stopChan:
			logger.InfoCtx(ctx, "Listener stop requested", zap.Uint64("next_block", next))
			l.setPhase(health.PhaseStopped, "")
			return nil
		default:
		}

		if !resumed {
			from, err := l.resumePoint(runCtx)
			if err != nil {
				l.transientFailure(runCtx, "failed to resolve resume point", err)
				continue
			}
			next, resumed = from, true
		}

		safeHead, err := l.head.GetSafeHead(runCtx)
		if err != nil {
			l.transientFailure(runCtx, "failed to get safe head", err)
			continue
		}
		l.setSafeHead(safeHead)

		if next > safeHead {
			l.setPhase(health.PhaseRealtime, "")
			l.sleep(runCtx, l.config.PollInterval)
			continue
		}

		to := next + l.config.BatchSize - 1
		if to >= safeHead {
			to = safeHead
			l.setPhase(health.PhaseRealtime, "")
		} else {
			l.setPhase(health.PhaseBackfill, "")
		}

		if err := l.processRangeWithRetry(runCtx, next, to); err != nil {
			if runCtx.Err() != nil {
				continue
			}
			stuckErr := fmt.Errorf("%w: blocks %d-%d: %w", domain.ErrListenerStuck, next, to, err)
			l.setPhase(health.PhaseStuck, stuckErr.Error())
			logger.ErrorCtx(ctx, stuckErr,
				zap.String("listener_id", l.config.ID),
				zap.Uint64("from_block", next),
				zap.Uint64("to_block", to))
			return stuckErr
		}

		next = to + 1
	}
}

// Stop gracefully stops the listener
func (l *listener) Stop(ctx context.Context) error {
	if !l.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping listener")
	close(l.stopChan)

	select {
	case <-l.stoppedCh:
		logger.InfoCtx(ctx, "Listener stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Listener stop interrupted by context timeout")
		return ctx.Err()
	}
}

// State returns a copy of the current state
func (l *listener) State() health.ComponentState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// resumePoint loads the checkpoint, initializing it behind the head when absent,
// and returns the first block to scan
func (l *listener) resumePoint(ctx context.Context) (uint64, error) {
	checkpoint, found, err := l.store.GetCheckpoint(ctx, l.config.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to get checkpoint: %w", err)
	}

	if !found {
		head, err := l.head.GetLatestBlock(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to get latest block: %w", err)
		}
		checkpoint = saturatingSub(head, l.config.InitialWindow)
		if err := l.store.SaveCheckpoint(context.WithoutCancel(ctx), l.config.ID, checkpoint); err != nil {
			return 0, fmt.Errorf("failed to initialize checkpoint: %w", err)
		}
		logger.InfoCtx(ctx, "Initialized checkpoint",
			zap.String("listener_id", l.config.ID),
			zap.Uint64("head", head),
			zap.Uint64("checkpoint", checkpoint))
	}
	l.setCheckpoint(checkpoint)

	from := saturatingSub(checkpoint+1, l.config.ReorgGuardDepth)
	logger.InfoCtx(ctx, "Resuming ingestion",
		zap.String("listener_id", l.config.ID),
		zap.Uint64("checkpoint", checkpoint),
		zap.Uint64("from_block", from))

	return from, nil
}

// processRangeWithRetry retries a range with exponential backoff up to MaxAttempts attempts
func (l *listener) processRangeWithRetry(ctx context.Context, fromBlock, toBlock uint64) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.config.RetryInitialInterval
	b.MaxInterval = l.config.RetryMaxInterval
	b.MaxElapsedTime = 0 // Bounded by attempts
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(l.config.MaxAttempts-1)), ctx) //nolint:gosec,G115

	operation := func() error {
		err := l.processRange(ctx, fromBlock, toBlock)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		l.setLastError(err.Error())
		logger.WarnCtx(ctx, "Block range failed, retrying",
			zap.Error(err),
			zap.Uint64("from_block", fromBlock),
			zap.Uint64("to_block", toBlock),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration))
	}

	err := backoff.RetryNotify(operation, policy, notifyOnError)
	if err != nil {
		return fmt.Errorf("failed after %d attempts: %w", attemptCount+1, err)
	}

	if attemptCount > 0 {
		logger.InfoCtx(ctx, "Block range succeeded after retries",
			zap.Uint64("from_block", fromBlock),
			zap.Uint64("to_block", toBlock),
			zap.Int("total_attempts", attemptCount+1))
	}

	return nil
}

// processRange fetches, decodes and appends every log in [fromBlock, toBlock], then
// advances the checkpoint. A failure anywhere leaves the checkpoint untouched.
func (l *listener) processRange(ctx context.Context, fromBlock, toBlock uint64) error {
	logs, err := l.fetchRange(ctx, fromBlock, toBlock)
	if err != nil {
		return err
	}

	writeCtx := context.WithoutCancel(ctx)
	var inserted, duplicates, deadLetters int
	for _, vLog := range logs {
		ev, err := ethereum.DecodeLog(vLog)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to decode log, recording dead letter",
				zap.Error(err),
				logger.Position(vLog.BlockNumber, vLog.TxHash.Hex(), vLog.Index))
			if err := l.store.RecordDeadLetter(writeCtx, newDeadLetter(vLog, err)); err != nil {
				return fmt.Errorf("failed to record dead letter: %w", err)
			}
			deadLetters++
			continue
		}
		if ev == nil {
			continue
		}

		input, err := store.NewAppendEntryInput(*ev)
		if err != nil {
			return fmt.Errorf("failed to encode ledger entry: %w", err)
		}
		ok, err := l.store.AppendEntry(writeCtx, input)
		if err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}
		if ok {
			inserted++
		} else {
			duplicates++
		}
	}

	if err := l.store.SaveCheckpoint(writeCtx, l.config.ID, toBlock); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	l.setCheckpoint(toBlock)

	logger.DebugCtx(ctx, "Processed block range",
		zap.Uint64("from_block", fromBlock),
		zap.Uint64("to_block", toBlock),
		zap.Int("logs", len(logs)),
		zap.Int("inserted", inserted),
		zap.Int("duplicates", duplicates),
		zap.Int("dead_letters", deadLetters))

	return nil
}

// fetchRange splits the range across the worker pool and merges the results in ledger order
func (l *listener) fetchRange(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, error) {
	group := l.pool.NewGroup()
	for _, r := range splitRange(fromBlock, toBlock, l.config.FetchConcurrency) {
		group.SubmitErr(func() ([]types.Log, error) {
			return l.client.FilterLedgerLogs(ctx, r.from, r.to)
		})
	}

	results, err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logs for blocks %d-%d: %w", fromBlock, toBlock, err)
	}

	var logs []types.Log
	for _, chunk := range results {
		logs = append(logs, chunk...)
	}
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		return logs[i].Index < logs[j].Index
	})

	return logs, nil
}

// transientFailure records an error that does not count against a range and waits one poll interval
func (l *listener) transientFailure(ctx context.Context, msg string, err error) {
	if ctx.Err() != nil {
		return
	}
	l.setLastError(err.Error())
	logger.WarnCtx(ctx, msg, zap.Error(err), zap.String("listener_id", l.config.ID))
	l.sleep(ctx, l.config.PollInterval)
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted
func (l *listener) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-l.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-l.stopChan:
		return false
	}
}

func (l *listener) setPhase(phase health.Phase, lastError string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Phase = phase
	if lastError != "" || phase == health.PhaseStopped {
		l.state.LastError = lastError
	}
	l.state.UpdatedAt = l.clock.Now()
}

func (l *listener) setLastError(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.LastError = msg
	l.state.UpdatedAt = l.clock.Now()
}

func (l *listener) setCheckpoint(checkpoint uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.Checkpoint != nil && *l.state.Checkpoint >= checkpoint {
		return
	}
	l.state.Checkpoint = &checkpoint
	l.state.UpdatedAt = l.clock.Now()
}

func (l *listener) setSafeHead(safeHead uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.SafeHead = &safeHead
}

type blockRange struct {
	from uint64
	to   uint64
}

// splitRange divides [from, to] into at most n contiguous sub-ranges of near equal size
func splitRange(from, to uint64, n int) []blockRange {
	if from > to {
		return nil
	}
	span := to - from + 1
	if n <= 1 || span == 1 {
		return []blockRange{{from: from, to: to}}
	}
	parts := uint64(n) //nolint:gosec,G115
	if parts > span {
		parts = span
	}

	size := span / parts
	extra := span % parts
	ranges := make([]blockRange, 0, parts)
	start := from
	for i := uint64(0); i < parts; i++ {
		end := start + size - 1
		if i < extra {
			end++
		}
		ranges = append(ranges, blockRange{from: start, to: end})
		start = end + 1
	}
	return ranges
}

func newDeadLetter(vLog types.Log, cause error) store.DeadLetterInput {
	dl := store.DeadLetterInput{
		ContractAddress: domain.NormalizeAddress(vLog.Address.Hex()),
		BlockNumber:     vLog.BlockNumber,
		LogIndex:        vLog.Index,
		Data:            "0x" + hex.EncodeToString(vLog.Data),
		Reason:          cause.Error(),
	}
	if !errors.Is(cause, domain.ErrMissingTxHash) {
		dl.TxHash = vLog.TxHash.Hex()
	}
	if len(vLog.Topics) > 0 {
		dl.Topic0 = vLog.Topics[0].Hex()
	}
	return dl
}

func saturatingSub(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}
