package ethereum_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-rental-indexer/internal/domain"
	"github.com/feral-file/ff-rental-indexer/internal/providers/ethereum"
)

var (
	assetContract       = common.HexToAddress("0x52908400098527886E0F7030069857D2E4169EE7")
	marketplaceContract = common.HexToAddress("0x8617E340B3D01FA5F11F306F4090FD50E238070D")
	alice               = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob                 = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	integrity           = common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111111")
	txHash              = common.HexToHash("0xabcdef0000000000000000000000000000000000000000000000000000000001")
)

func packData(t *testing.T, event string, values ...any) []byte {
	t.Helper()
	data, err := ethereum.LedgerABI().Events[event].Inputs.NonIndexed().Pack(values...)
	require.NoError(t, err)
	return data
}

func buildLog(address common.Address, topics []common.Hash, data []byte) types.Log {
	return types.Log{
		Address:     address,
		Topics:      topics,
		Data:        data,
		BlockNumber: 105,
		BlockHash:   common.HexToHash("0xbb"),
		TxHash:      txHash,
		Index:       3,
	}
}

func mintLog(t *testing.T, assetID int64, creator common.Address) types.Log {
	return buildLog(assetContract,
		[]common.Hash{ethereum.AssetMintedTopic, common.BigToHash(big.NewInt(assetID)), common.BytesToHash(creator.Bytes())},
		packData(t, ethereum.EventAssetMinted, "ipfs://asset", [32]byte(integrity)))
}

func TestDecodeLog_AssetMinted(t *testing.T) {
	ev, err := ethereum.DecodeLog(mintLog(t, 1, alice))
	require.NoError(t, err)
	require.NotNil(t, ev)

	assert.Equal(t, txHash.Hex(), ev.TxHash)
	assert.Equal(t, uint(3), ev.LogIndex)
	assert.Equal(t, uint64(105), ev.BlockNumber)
	assert.Equal(t, assetContract.Hex(), ev.ContractAddress)

	minted, ok := ev.Event.(domain.AssetMinted)
	require.True(t, ok)
	assert.Equal(t, domain.AssetMinted{
		AssetContract: assetContract.Hex(),
		AssetID:       "1",
		Creator:       alice.Hex(),
		URI:           "ipfs://asset",
		IntegrityHash: integrity.Hex(),
	}, minted)
}

func TestDecodeLog_ListingCreated(t *testing.T) {
	vLog := buildLog(marketplaceContract,
		[]common.Hash{
			ethereum.ListingCreatedTopic,
			common.BigToHash(big.NewInt(7)),
			common.BytesToHash(alice.Bytes()),
			common.BytesToHash(assetContract.Bytes()),
		},
		packData(t, ethereum.EventListingCreated, big.NewInt(1), big.NewInt(5000), uint64(3600), uint64(86400), [32]byte(integrity)))

	ev, err := ethereum.DecodeLog(vLog)
	require.NoError(t, err)
	require.NotNil(t, ev)

	assert.Equal(t, domain.ListingCreated{
		ListingID:      "7",
		Seller:         alice.Hex(),
		AssetContract:  assetContract.Hex(),
		AssetID:        "1",
		PricePerPeriod: "5000",
		MinDuration:    3600,
		MaxDuration:    86400,
		IntegrityHash:  integrity.Hex(),
	}, ev.Event)
}

func TestDecodeLog_RentalGranted(t *testing.T) {
	vLog := buildLog(marketplaceContract,
		[]common.Hash{
			ethereum.RentalGrantedTopic,
			common.BigToHash(big.NewInt(7)),
			common.BytesToHash(bob.Bytes()),
			common.BytesToHash(assetContract.Bytes()),
		},
		packData(t, ethereum.EventRentalGranted, big.NewInt(1), uint64(1767225600), big.NewInt(10000)))

	ev, err := ethereum.DecodeLog(vLog)
	require.NoError(t, err)
	require.NotNil(t, ev)

	assert.Equal(t, domain.RentalGranted{
		ListingID:     "7",
		Holder:        bob.Hex(),
		AssetContract: assetContract.Hex(),
		AssetID:       "1",
		ExpiresAt:     1767225600,
		TotalPrice:    "10000",
	}, ev.Event)
}

func TestDecodeLog_ListingCancelled(t *testing.T) {
	vLog := buildLog(marketplaceContract,
		[]common.Hash{
			ethereum.ListingCancelledTopic,
			common.BigToHash(big.NewInt(7)),
			common.BytesToHash(assetContract.Bytes()),
		},
		packData(t, ethereum.EventListingCancelled, big.NewInt(1)))

	ev, err := ethereum.DecodeLog(vLog)
	require.NoError(t, err)
	require.NotNil(t, ev)

	assert.Equal(t, domain.ListingCancelled{
		ListingID:     "7",
		AssetContract: assetContract.Hex(),
		AssetID:       "1",
	}, ev.Event)
}

func TestDecodeLog_Skipped(t *testing.T) {
	removed := mintLog(t, 1, alice)
	removed.Removed = true

	unknown := mintLog(t, 1, alice)
	unknown.Topics[0] = common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")

	noTopics := mintLog(t, 1, alice)
	noTopics.Topics = nil

	for name, vLog := range map[string]types.Log{"removed": removed, "unknown topic": unknown, "no topics": noTopics} {
		t.Run(name, func(t *testing.T) {
			ev, err := ethereum.DecodeLog(vLog)
			assert.NoError(t, err)
			assert.Nil(t, ev)
		})
	}
}

func TestDecodeLog_Malformed(t *testing.T) {
	missingTx := mintLog(t, 1, alice)
	missingTx.TxHash = common.Hash{}

	truncated := mintLog(t, 1, alice)
	truncated.Data = truncated.Data[:31]

	missingTopic := mintLog(t, 1, alice)
	missingTopic.Topics = missingTopic.Topics[:2]

	emptyData := mintLog(t, 1, alice)
	emptyData.Data = nil

	zeroCreator := mintLog(t, 1, common.Address{})

	farExpiry := buildLog(marketplaceContract,
		[]common.Hash{
			ethereum.RentalGrantedTopic,
			common.BigToHash(big.NewInt(7)),
			common.BytesToHash(bob.Bytes()),
			common.BytesToHash(assetContract.Bytes()),
		},
		packData(t, ethereum.EventRentalGranted, big.NewInt(1), uint64(math.MaxUint64), big.NewInt(10000)))

	tests := []struct {
		name string
		log  types.Log
		is   error
	}{
		{name: "missing tx hash", log: missingTx, is: domain.ErrMissingTxHash},
		{name: "truncated data", log: truncated},
		{name: "missing indexed topic", log: missingTopic},
		{name: "empty data", log: emptyData},
		{name: "zero creator", log: zeroCreator},
		{name: "expiry beyond int64", log: farExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := ethereum.DecodeLog(tt.log)
			assert.Error(t, err)
			assert.Nil(t, ev)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestLedgerTopics(t *testing.T) {
	topics := ethereum.LedgerTopics()
	require.Len(t, topics, 4)
	assert.Equal(t, crypto.Keccak256Hash([]byte("AssetMinted(uint256,address,string,bytes32)")), topics[0])
	assert.Equal(t, crypto.Keccak256Hash([]byte("ListingCancelled(uint256,address,uint256)")), topics[3])
}
