package ethereum

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const (
	EventAssetMinted      = "AssetMinted"
	EventListingCreated   = "ListingCreated"
	EventRentalGranted    = "RentalGranted"
	EventListingCancelled = "ListingCancelled"
)

// ledgerEventsABI covers the events emitted by the asset and marketplace contracts
const ledgerEventsABI = `[
	{"anonymous":false,"type":"event","name":"AssetMinted","inputs":[
		{"indexed":true,"name":"assetId","type":"uint256"},
		{"indexed":true,"name":"creator","type":"address"},
		{"indexed":false,"name":"uri","type":"string"},
		{"indexed":false,"name":"integrityHash","type":"bytes32"}]},
	{"anonymous":false,"type":"event","name":"ListingCreated","inputs":[
		{"indexed":true,"name":"listingId","type":"uint256"},
		{"indexed":true,"name":"seller","type":"address"},
		{"indexed":true,"name":"assetContract","type":"address"},
		{"indexed":false,"name":"assetId","type":"uint256"},
		{"indexed":false,"name":"pricePerPeriod","type":"uint256"},
		{"indexed":false,"name":"minDuration","type":"uint64"},
		{"indexed":false,"name":"maxDuration","type":"uint64"},
		{"indexed":false,"name":"integrityHash","type":"bytes32"}]},
	{"anonymous":false,"type":"event","name":"RentalGranted","inputs":[
		{"indexed":true,"name":"listingId","type":"uint256"},
		{"indexed":true,"name":"holder","type":"address"},
		{"indexed":true,"name":"assetContract","type":"address"},
		{"indexed":false,"name":"assetId","type":"uint256"},
		{"indexed":false,"name":"expiresAt","type":"uint64"},
		{"indexed":false,"name":"totalPrice","type":"uint256"}]},
	{"anonymous":false,"type":"event","name":"ListingCancelled","inputs":[
		{"indexed":true,"name":"listingId","type":"uint256"},
		{"indexed":true,"name":"assetContract","type":"address"},
		{"indexed":false,"name":"assetId","type":"uint256"}]}
]`

var (
	ledgerABI = mustParseABI(ledgerEventsABI)

	// Event signature hashes (topic 0)
	AssetMintedTopic      = ledgerABI.Events[EventAssetMinted].ID
	ListingCreatedTopic   = ledgerABI.Events[EventListingCreated].ID
	RentalGrantedTopic    = ledgerABI.Events[EventRentalGranted].ID
	ListingCancelledTopic = ledgerABI.Events[EventListingCancelled].ID
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

// LedgerABI returns the parsed event ABI
func LedgerABI() abi.ABI {
	return ledgerABI
}

// LedgerTopics returns the topic-0 filter for every supported event
func LedgerTopics() []common.Hash {
	return []common.Hash{
		AssetMintedTopic,
		ListingCreatedTopic,
		RentalGrantedTopic,
		ListingCancelledTopic,
	}
}
