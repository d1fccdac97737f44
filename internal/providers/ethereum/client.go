package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rental-indexer/internal/adapter"
	"github.com/feral-file/ff-rental-indexer/internal/domain"
	"github.com/feral-file/ff-rental-indexer/internal/logger"
	"github.com/feral-file/ff-rental-indexer/internal/ratelimit"
)

// LedgerClient is the read-only view of the ledger used by the listener
//
//go:generate mockgen -source=client.go -destination=../../mocks/ledger_client.go -package=mocks -mock_names=LedgerClient=MockLedgerClient
type LedgerClient interface {
	// FetchLatestBlock returns the current head block number
	FetchLatestBlock(ctx context.Context) (uint64, error)

	// FilterLedgerLogs returns the logs of the supported events emitted by the
	// configured contracts in [fromBlock, toBlock], sorted by (block, log index)
	FilterLedgerLogs(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, error)

	// Close closes the connection
	Close()
}

// ClientConfig describes which contracts are watched
type ClientConfig struct {
	AssetContract       string
	MarketplaceContract string
	// MaxBlockSpan is the widest block span sent in a single eth_getLogs call
	MaxBlockSpan uint64
}

type ledgerClient struct {
	client  adapter.EthClient
	config  ClientConfig
	limiter ratelimit.Limiter
}

// NewClient wraps a dialed ethclient. limiter may be nil for unlimited requests.
func NewClient(client adapter.EthClient, config ClientConfig, limiter ratelimit.Limiter) LedgerClient {
	if config.MaxBlockSpan == 0 {
		config.MaxBlockSpan = 2000
	}
	return &ledgerClient{client: client, config: config, limiter: limiter}
}

func (c *ledgerClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// FetchLatestBlock fetches the latest block number
func (c *ledgerClient) FetchLatestBlock(ctx context.Context) (uint64, error) {
	if err := c.wait(ctx); err != nil {
		return 0, err
	}
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return header.Number.Uint64(), nil
}

// FilterLedgerLogs fetches logs for the watched contracts and event signatures
func (c *ledgerClient) FilterLedgerLogs(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, error) {
	if fromBlock > toBlock {
		return nil, nil
	}

	query := ethereum.FilterQuery{
		Addresses: c.addresses(),
		Topics:    [][]common.Hash{LedgerTopics()},
	}

	logs, err := c.getLogsWithRetry(ctx, query, fromBlock, toBlock, c.config.MaxBlockSpan)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		return logs[i].Index < logs[j].Index
	})

	return logs, nil
}

func (c *ledgerClient) addresses() []common.Address {
	var addrs []common.Address
	for _, a := range []string{c.config.AssetContract, c.config.MarketplaceContract} {
		if a != "" {
			addrs = append(addrs, common.HexToAddress(a))
		}
	}
	return addrs
}

// getLogsWithRetry walks [fromBlock, toBlock] in chunks, halving the chunk when
// the provider rejects a query for returning too many results
func (c *ledgerClient) getLogsWithRetry(ctx context.Context, query ethereum.FilterQuery, fromBlock, toBlock, stepSize uint64) ([]types.Log, error) {
	var allLogs []types.Log
	currentFrom := fromBlock

	for currentFrom <= toBlock {
		currentTo := currentFrom + stepSize - 1
		if currentTo > toBlock {
			currentTo = toBlock
		}

		chunk := query
		chunk.FromBlock = new(big.Int).SetUint64(currentFrom)
		chunk.ToBlock = new(big.Int).SetUint64(currentTo)

		if err := c.wait(ctx); err != nil {
			return nil, err
		}

		logs, err := c.client.FilterLogs(ctx, chunk)
		if err == nil {
			allLogs = append(allLogs, logs...)
			if currentTo == toBlock {
				break
			}
			currentFrom = currentTo + 1
			continue
		}

		if !isTooManyResultsError(err) || stepSize == 1 {
			return nil, fmt.Errorf("failed to get logs for range %d-%d: %w", currentFrom, currentTo, err)
		}

		stepSize = stepSize / 2
		logger.WarnCtx(ctx, "Too many results, reducing step size",
			zap.Uint64("oldStepSize", stepSize*2),
			zap.Uint64("newStepSize", stepSize),
			zap.Uint64("fromBlock", currentFrom),
			zap.Uint64("toBlock", currentTo))
	}

	return allLogs, nil
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum")
}

// Close closes the underlying connection
func (c *ledgerClient) Close() {
	c.client.Close()
}

// DialWithFallback tries each RPC endpoint in priority order and returns the first
// reachable one whose chain id matches expectedChainID (0 skips the check)
func DialWithFallback(ctx context.Context, dialer adapter.EthClientDialer, urls []string, expectedChainID uint64) (adapter.EthClient, string, error) {
	if len(urls) == 0 {
		return nil, "", domain.ErrNoRPCEndpoint
	}

	var errs []error
	for _, url := range urls {
		client, err := dialer.Dial(ctx, url)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to dial RPC endpoint", zap.String("url", redactURL(url)), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", redactURL(url), err))
			continue
		}

		chainID, err := client.ChainID(ctx)
		if err != nil {
			client.Close()
			logger.WarnCtx(ctx, "RPC endpoint did not report a chain id", zap.String("url", redactURL(url)), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", redactURL(url), err))
			continue
		}
		if expectedChainID != 0 && chainID.Uint64() != expectedChainID {
			client.Close()
			logger.WarnCtx(ctx, "RPC endpoint is on the wrong chain",
				zap.String("url", redactURL(url)),
				zap.Uint64("expected", expectedChainID),
				zap.String("actual", chainID.String()))
			errs = append(errs, fmt.Errorf("%s: chain id %s, expected %d", redactURL(url), chainID.String(), expectedChainID))
			continue
		}

		return client, url, nil
	}

	return nil, "", fmt.Errorf("%w: %w", domain.ErrRPCUnreachable, errors.Join(errs...))
}

// redactURL drops the path of an RPC url, which usually carries the provider key
func redactURL(url string) string {
	scheme := ""
	rest := url
	if i := strings.Index(url, "://"); i >= 0 {
		scheme, rest = url[:i+3], url[i+3:]
	}
	if i := strings.IndexAny(rest, "/?"); i >= 0 {
		rest = rest[:i]
	}
	return scheme + rest
}
