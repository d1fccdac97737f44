package ethereum_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-rental-indexer/internal/adapter"
	"github.com/feral-file/ff-rental-indexer/internal/domain"
	"github.com/feral-file/ff-rental-indexer/internal/logger"
	"github.com/feral-file/ff-rental-indexer/internal/mocks"
	ledger "github.com/feral-file/ff-rental-indexer/internal/providers/ethereum"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func newTestClient(ctrl *gomock.Controller, span uint64) (*mocks.MockEthClient, ledger.LedgerClient) {
	eth := mocks.NewMockEthClient(ctrl)
	client := ledger.NewClient(eth, ledger.ClientConfig{
		AssetContract:       assetContract.Hex(),
		MarketplaceContract: marketplaceContract.Hex(),
		MaxBlockSpan:        span,
	}, nil)
	return eth, client
}

func rangeOf(q ethereum.FilterQuery) (uint64, uint64) {
	return q.FromBlock.Uint64(), q.ToBlock.Uint64()
}

func TestFilterLedgerLogs_ChunksAndSorts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth, client := newTestClient(ctrl, 5)
	ctx := context.Background()

	var seen [][2]uint64
	eth.EXPECT().FilterLogs(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
		from, to := rangeOf(q)
		seen = append(seen, [2]uint64{from, to})

		assert.Len(t, q.Addresses, 2)
		require.Len(t, q.Topics, 1)
		assert.Equal(t, ledger.LedgerTopics(), q.Topics[0])

		if from == 100 {
			return []types.Log{{BlockNumber: 103, Index: 2}, {BlockNumber: 101, Index: 0}}, nil
		}
		return []types.Log{{BlockNumber: 105, Index: 1}, {BlockNumber: 105, Index: 0}}, nil
	}).Times(2)

	logs, err := client.FilterLedgerLogs(ctx, 100, 109)
	require.NoError(t, err)

	assert.Equal(t, [][2]uint64{{100, 104}, {105, 109}}, seen)
	require.Len(t, logs, 4)
	assert.Equal(t, uint64(101), logs[0].BlockNumber)
	assert.Equal(t, uint64(103), logs[1].BlockNumber)
	assert.Equal(t, uint(0), logs[2].Index)
	assert.Equal(t, uint(1), logs[3].Index)
}

func TestFilterLedgerLogs_HalvesOnTooManyResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth, client := newTestClient(ctrl, 10)
	ctx := context.Background()

	var seen [][2]uint64
	eth.EXPECT().FilterLogs(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
		from, to := rangeOf(q)
		seen = append(seen, [2]uint64{from, to})
		if to-from+1 > 5 {
			return nil, errors.New("query returned more than 10000 results")
		}
		return nil, nil
	}).Times(3)

	_, err := client.FilterLedgerLogs(ctx, 100, 109)
	require.NoError(t, err)
	assert.Equal(t, [][2]uint64{{100, 109}, {100, 104}, {105, 109}}, seen)
}

func TestFilterLedgerLogs_ReturnsTransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth, client := newTestClient(ctrl, 10)
	ctx := context.Background()

	eth.EXPECT().FilterLogs(ctx, gomock.Any()).Return(nil, errors.New("502 bad gateway"))

	_, err := client.FilterLedgerLogs(ctx, 100, 109)
	assert.ErrorContains(t, err, "failed to get logs for range 100-109")
}

func TestFilterLedgerLogs_EmptyRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, client := newTestClient(ctrl, 10)

	logs, err := client.FilterLedgerLogs(context.Background(), 110, 109)
	assert.NoError(t, err)
	assert.Empty(t, logs)
}

func TestFilterLedgerLogs_WaitsOnLimiter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	eth := mocks.NewMockEthClient(ctrl)
	limiter := mocks.NewMockLimiter(ctrl)
	client := ledger.NewClient(eth, ledger.ClientConfig{AssetContract: assetContract.Hex()}, limiter)

	gomock.InOrder(
		limiter.EXPECT().Wait(ctx).Return(nil),
		eth.EXPECT().FilterLogs(ctx, gomock.Any()).Return(nil, nil),
	)

	_, err := client.FilterLedgerLogs(ctx, 1, 1)
	assert.NoError(t, err)

	limiter.EXPECT().Wait(ctx).Return(context.DeadlineExceeded)
	_, err = client.FetchLatestBlock(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchLatestBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth, client := newTestClient(ctrl, 10)
	ctx := context.Background()

	eth.EXPECT().HeaderByNumber(ctx, nil).Return(&types.Header{Number: big.NewInt(1234)}, nil)
	head, err := client.FetchLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), head)

	eth.EXPECT().HeaderByNumber(ctx, nil).Return(nil, errors.New("timeout"))
	_, err = client.FetchLatestBlock(ctx)
	assert.ErrorContains(t, err, "failed to get latest block")
}

func TestDialWithFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("no endpoints", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, _, err := ledger.DialWithFallback(ctx, mocks.NewMockEthClientDialer(ctrl), nil, 1)
		assert.ErrorIs(t, err, domain.ErrNoRPCEndpoint)
	})

	t.Run("first reachable wins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		dialer := mocks.NewMockEthClientDialer(ctrl)
		wrongChain := mocks.NewMockEthClient(ctrl)
		good := mocks.NewMockEthClient(ctrl)

		gomock.InOrder(
			dialer.EXPECT().Dial(ctx, "https://a.example/key").Return(nil, errors.New("connection refused")),
			dialer.EXPECT().Dial(ctx, "https://b.example/key").Return(wrongChain, nil),
			wrongChain.EXPECT().ChainID(ctx).Return(big.NewInt(5), nil),
			wrongChain.EXPECT().Close(),
			dialer.EXPECT().Dial(ctx, "https://c.example/key").Return(good, nil),
			good.EXPECT().ChainID(ctx).Return(big.NewInt(1), nil),
		)

		client, url, err := ledger.DialWithFallback(ctx, dialer,
			[]string{"https://a.example/key", "https://b.example/key", "https://c.example/key", "https://d.example/key"}, 1)
		require.NoError(t, err)
		assert.Equal(t, adapter.EthClient(good), client)
		assert.Equal(t, "https://c.example/key", url)
	})

	t.Run("all unreachable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		dialer := mocks.NewMockEthClientDialer(ctrl)
		dialer.EXPECT().Dial(ctx, gomock.Any()).Return(nil, errors.New("connection refused")).Times(2)

		_, _, err := ledger.DialWithFallback(ctx, dialer, []string{"https://a.example/secret", "wss://b.example/secret"}, 1)
		assert.ErrorIs(t, err, domain.ErrRPCUnreachable)
		assert.NotContains(t, err.Error(), "secret")
	})
}
