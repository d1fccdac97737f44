package ethereum

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/feral-file/ff-rental-indexer/internal/domain"
)

// DecodeLog converts a raw log into a typed ledger event.
// It returns nil, nil for logs that should be skipped: removed by a reorg or carrying
// a topic outside the supported event set. Any other failure means the log is malformed.
func DecodeLog(vLog types.Log) (*domain.LedgerEvent, error) {
	if vLog.Removed {
		return nil, nil
	}
	if len(vLog.Topics) == 0 {
		return nil, nil
	}

	event, err := ledgerABI.EventByID(vLog.Topics[0])
	if err != nil {
		return nil, nil //nolint:nilerr // unknown topic, not ours
	}

	if vLog.TxHash.Hex() == domain.ETHEREUM_ZERO_HASH {
		return nil, fmt.Errorf("%w: %s log at block %d index %d", domain.ErrMissingTxHash, event.Name, vLog.BlockNumber, vLog.Index)
	}

	args, err := unpackLog(event, vLog)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", event.Name, err)
	}

	var typed domain.Event
	switch event.Name {
	case EventAssetMinted:
		typed, err = decodeAssetMinted(vLog.Address, args)
	case EventListingCreated:
		typed, err = decodeListingCreated(args)
	case EventRentalGranted:
		typed, err = decodeRentalGranted(args)
	case EventListingCancelled:
		typed, err = decodeListingCancelled(args)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", event.Name, err)
	}

	return &domain.LedgerEvent{
		TxHash:          vLog.TxHash.Hex(),
		LogIndex:        vLog.Index,
		BlockNumber:     vLog.BlockNumber,
		BlockHash:       vLog.BlockHash.Hex(),
		ContractAddress: vLog.Address.Hex(),
		Event:           typed,
	}, nil
}

// unpackLog merges the indexed topics and the data section into one argument map
func unpackLog(event *abi.Event, vLog types.Log) (map[string]any, error) {
	args := make(map[string]any)

	if err := ledgerABI.UnpackIntoMap(args, event.Name, vLog.Data); err != nil {
		return nil, fmt.Errorf("invalid data: %w", err)
	}

	var indexed abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if len(vLog.Topics)-1 != len(indexed) {
		return nil, fmt.Errorf("expected %d indexed topics, got %d", len(indexed), len(vLog.Topics)-1)
	}
	if err := abi.ParseTopicsIntoMap(args, indexed, vLog.Topics[1:]); err != nil {
		return nil, fmt.Errorf("invalid topics: %w", err)
	}

	return args, nil
}

func decodeAssetMinted(contract common.Address, args map[string]any) (domain.Event, error) {
	assetID, err := argBigInt(args, "assetId")
	if err != nil {
		return nil, err
	}
	creator, err := argAccount(args, "creator")
	if err != nil {
		return nil, err
	}
	uri, err := argString(args, "uri")
	if err != nil {
		return nil, err
	}
	integrityHash, err := argBytes32(args, "integrityHash")
	if err != nil {
		return nil, err
	}

	return domain.AssetMinted{
		AssetContract: contract.Hex(),
		AssetID:       assetID,
		Creator:       creator,
		URI:           uri,
		IntegrityHash: integrityHash,
	}, nil
}

func decodeListingCreated(args map[string]any) (domain.Event, error) {
	var (
		ev  domain.ListingCreated
		err error
	)
	if ev.ListingID, err = argBigInt(args, "listingId"); err != nil {
		return nil, err
	}
	if ev.Seller, err = argAccount(args, "seller"); err != nil {
		return nil, err
	}
	if ev.AssetContract, err = argAddress(args, "assetContract"); err != nil {
		return nil, err
	}
	if ev.AssetID, err = argBigInt(args, "assetId"); err != nil {
		return nil, err
	}
	if ev.PricePerPeriod, err = argBigInt(args, "pricePerPeriod"); err != nil {
		return nil, err
	}
	if ev.MinDuration, err = argUint64(args, "minDuration"); err != nil {
		return nil, err
	}
	if ev.MaxDuration, err = argUint64(args, "maxDuration"); err != nil {
		return nil, err
	}
	if ev.IntegrityHash, err = argBytes32(args, "integrityHash"); err != nil {
		return nil, err
	}
	return ev, nil
}

func decodeRentalGranted(args map[string]any) (domain.Event, error) {
	var (
		ev  domain.RentalGranted
		err error
	)
	if ev.ListingID, err = argBigInt(args, "listingId"); err != nil {
		return nil, err
	}
	if ev.Holder, err = argAccount(args, "holder"); err != nil {
		return nil, err
	}
	if ev.AssetContract, err = argAddress(args, "assetContract"); err != nil {
		return nil, err
	}
	if ev.AssetID, err = argBigInt(args, "assetId"); err != nil {
		return nil, err
	}
	if ev.ExpiresAt, err = argUint64(args, "expiresAt"); err != nil {
		return nil, err
	}
	if ev.ExpiresAt > math.MaxInt64 {
		return nil, fmt.Errorf("argument expiresAt: %d is not a unix timestamp", ev.ExpiresAt)
	}
	if ev.TotalPrice, err = argBigInt(args, "totalPrice"); err != nil {
		return nil, err
	}
	return ev, nil
}

func decodeListingCancelled(args map[string]any) (domain.Event, error) {
	var (
		ev  domain.ListingCancelled
		err error
	)
	if ev.ListingID, err = argBigInt(args, "listingId"); err != nil {
		return nil, err
	}
	if ev.AssetContract, err = argAddress(args, "assetContract"); err != nil {
		return nil, err
	}
	if ev.AssetID, err = argBigInt(args, "assetId"); err != nil {
		return nil, err
	}
	return ev, nil
}

func argBigInt(args map[string]any, name string) (string, error) {
	v, ok := args[name].(*big.Int)
	if !ok || v == nil {
		return "", fmt.Errorf("argument %s: expected uint256, got %T", name, args[name])
	}
	return v.String(), nil
}

func argAddress(args map[string]any, name string) (string, error) {
	v, ok := args[name].(common.Address)
	if !ok {
		return "", fmt.Errorf("argument %s: expected address, got %T", name, args[name])
	}
	return v.Hex(), nil
}

// argAccount decodes an address that names a participant, which is never the zero address
func argAccount(args map[string]any, name string) (string, error) {
	address, err := argAddress(args, name)
	if err != nil {
		return "", err
	}
	if address == domain.ETHEREUM_ZERO_ADDRESS {
		return "", fmt.Errorf("argument %s: zero address", name)
	}
	return address, nil
}

func argString(args map[string]any, name string) (string, error) {
	v, ok := args[name].(string)
	if !ok {
		return "", fmt.Errorf("argument %s: expected string, got %T", name, args[name])
	}
	return v, nil
}

func argUint64(args map[string]any, name string) (uint64, error) {
	v, ok := args[name].(uint64)
	if !ok {
		return 0, fmt.Errorf("argument %s: expected uint64, got %T", name, args[name])
	}
	return v, nil
}

func argBytes32(args map[string]any, name string) (string, error) {
	v, ok := args[name].([32]byte)
	if !ok {
		return "", fmt.Errorf("argument %s: expected bytes32, got %T", name, args[name])
	}
	return common.Hash(v).Hex(), nil
}
