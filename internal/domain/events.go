package domain

import (
	"encoding/json"
	"fmt"
)

// EventKind is the closed set of ledger events the pipeline understands
type EventKind string

const (
	EventKindAssetMinted      EventKind = "asset_minted"
	EventKindListingCreated   EventKind = "listing_created"
	EventKindRentalGranted    EventKind = "rental_granted"
	EventKindListingCancelled EventKind = "listing_cancelled"
)

// EventKinds lists every kind in a stable order
var EventKinds = []EventKind{
	EventKindAssetMinted,
	EventKindListingCreated,
	EventKindRentalGranted,
	EventKindListingCancelled,
}

// Event is one of the typed ledger event variants.
// The set is sealed: only the types in this file implement it.
type Event interface {
	Kind() EventKind
	Asset() AssetKey
	sealed()
}

// AssetMinted is emitted by the asset contract when a new asset is created
type AssetMinted struct {
	AssetContract string `json:"asset_contract"`
	AssetID       string `json:"asset_id"`
	Creator       string `json:"creator"`
	URI           string `json:"uri"`
	IntegrityHash string `json:"integrity_hash"`
}

// ListingCreated is emitted by the marketplace when a seller lists an asset for rent
type ListingCreated struct {
	ListingID      string `json:"listing_id"`
	Seller         string `json:"seller"`
	AssetContract  string `json:"asset_contract"`
	AssetID        string `json:"asset_id"`
	PricePerPeriod string `json:"price_per_period"`
	MinDuration    uint64 `json:"min_duration"`
	MaxDuration    uint64 `json:"max_duration"`
	IntegrityHash  string `json:"integrity_hash"`
}

// RentalGranted is emitted by the marketplace when a listing is rented.
// ExpiresAt is a unix timestamp in seconds.
type RentalGranted struct {
	ListingID     string `json:"listing_id"`
	Holder        string `json:"holder"`
	AssetContract string `json:"asset_contract"`
	AssetID       string `json:"asset_id"`
	ExpiresAt     uint64 `json:"expires_at"`
	TotalPrice    string `json:"total_price"`
}

// ListingCancelled is emitted by the marketplace when a seller withdraws a listing
type ListingCancelled struct {
	ListingID     string `json:"listing_id"`
	AssetContract string `json:"asset_contract"`
	AssetID       string `json:"asset_id"`
}

func (AssetMinted) Kind() EventKind      { return EventKindAssetMinted }
func (ListingCreated) Kind() EventKind   { return EventKindListingCreated }
func (RentalGranted) Kind() EventKind    { return EventKindRentalGranted }
func (ListingCancelled) Kind() EventKind { return EventKindListingCancelled }

func (e AssetMinted) Asset() AssetKey      { return NewAssetKey(e.AssetContract, e.AssetID) }
func (e ListingCreated) Asset() AssetKey   { return NewAssetKey(e.AssetContract, e.AssetID) }
func (e RentalGranted) Asset() AssetKey    { return NewAssetKey(e.AssetContract, e.AssetID) }
func (e ListingCancelled) Asset() AssetKey { return NewAssetKey(e.AssetContract, e.AssetID) }

func (AssetMinted) sealed()      {}
func (ListingCreated) sealed()   {}
func (RentalGranted) sealed()    {}
func (ListingCancelled) sealed() {}

// LedgerEvent is a decoded log together with its position on the ledger
type LedgerEvent struct {
	TxHash          string
	LogIndex        uint
	BlockNumber     uint64
	BlockHash       string
	ContractAddress string
	Event           Event
}

// EncodeEventArgs serializes the argument bag of an event
func EncodeEventArgs(event Event) (EventKind, []byte, error) {
	if event == nil {
		return "", nil, fmt.Errorf("nil event")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal %s args: %w", event.Kind(), err)
	}

	return event.Kind(), data, nil
}

// DecodeEventArgs restores the typed variant stored under kind
func DecodeEventArgs(kind EventKind, data []byte) (Event, error) {
	switch kind {
	case EventKindAssetMinted:
		return decodeArgs[AssetMinted](kind, data)
	case EventKindListingCreated:
		return decodeArgs[ListingCreated](kind, data)
	case EventKindRentalGranted:
		return decodeArgs[RentalGranted](kind, data)
	case EventKindListingCancelled:
		return decodeArgs[ListingCancelled](kind, data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventKind, kind)
	}
}

func decodeArgs[T Event](kind EventKind, data []byte) (Event, error) {
	var ev T
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s args: %w", kind, err)
	}
	return ev, nil
}
