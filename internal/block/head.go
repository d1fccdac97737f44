package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-rental-indexer/internal/adapter"
	"github.com/feral-file/ff-rental-indexer/internal/logger"
)

// BlockInfo represents cached block information
type BlockInfo struct {
	Number    uint64
	Timestamp time.Time
}

// BlockHeadProvider provides cached access to the ledger head and the
// confirmed ("safe") head derived from it
//
//go:generate mockgen -source=head.go -destination=../mocks/block_head_provider.go -package=mocks -mock_names=BlockHeadProvider=MockBlockHeadProvider
type BlockHeadProvider interface {
	// GetLatestBlock returns the latest block number, potentially from cache
	GetLatestBlock(ctx context.Context) (uint64, error)

	// GetSafeHead returns the latest block minus the confirmation depth, saturating at 0
	GetSafeHead(ctx context.Context) (uint64, error)
}

// BlockFetcher is the interface for fetching the latest block from the ledger
//
//go:generate mockgen -source=head.go -destination=../mocks/block_head_provider.go -package=mocks -mock_names=BlockFetcher=MockBlockFetcher
type BlockFetcher interface {
	// FetchLatestBlock fetches the latest block from the ledger
	FetchLatestBlock(ctx context.Context) (uint64, error)
}

// Config holds configuration for the BlockHeadProvider
type Config struct {
	// TTL is how long to cache the block number
	TTL time.Duration

	// StaleWindow is how long to use stale data if fetching fails.
	// If the cached data is older than this and fetch fails, return error
	StaleWindow time.Duration

	// ConfirmationDepth is how many blocks behind the head a block must be to count as final
	ConfirmationDepth uint64
}

type blockHeadProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock

	mu        sync.RWMutex
	blockInfo *BlockInfo
}

// NewBlockHeadProvider creates a new BlockHeadProvider with caching
func NewBlockHeadProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) BlockHeadProvider {
	return &blockHeadProvider{
		fetcher: fetcher,
		config:  config,
		clock:   clock,
	}
}

// GetLatestBlock returns the latest block number, using cache if valid
func (p *blockHeadProvider) GetLatestBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.blockInfo
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && now.Sub(cached.Timestamp) < p.config.TTL {
		logger.DebugCtx(ctx, "Using cached block number", zap.Uint64("block_number", cached.Number))
		return cached.Number, nil
	}

	blockNumber, err := p.fetcher.FetchLatestBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.Timestamp) < p.config.StaleWindow {
			logger.WarnCtx(ctx, "Using stale block number", zap.Uint64("block_number", cached.Number), zap.Error(err))
			return cached.Number, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	// never move the cached head backwards when a lagging endpoint answers
	if p.blockInfo == nil || blockNumber >= p.blockInfo.Number {
		p.blockInfo = &BlockInfo{Number: blockNumber, Timestamp: now}
	} else {
		blockNumber = p.blockInfo.Number
		p.blockInfo.Timestamp = now
	}
	p.mu.Unlock()

	return blockNumber, nil
}

// GetSafeHead returns the highest block considered final
func (p *blockHeadProvider) GetSafeHead(ctx context.Context) (uint64, error) {
	head, err := p.GetLatestBlock(ctx)
	if err != nil {
		return 0, err
	}
	return SafeHead(head, p.config.ConfirmationDepth), nil
}

// SafeHead subtracts the confirmation depth from head, saturating at 0
func SafeHead(head, confirmationDepth uint64) uint64 {
	if head < confirmationDepth {
		return 0
	}
	return head - confirmationDepth
}
