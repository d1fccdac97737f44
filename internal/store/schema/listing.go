package schema

import "time"

// ListingStatus is the lifecycle state of a rental listing
type ListingStatus string

const (
	ListingStatusDraft         ListingStatus = "draft"
	ListingStatusPendingCreate ListingStatus = "pending_create"
	ListingStatusActive        ListingStatus = "active"
	ListingStatusPendingCancel ListingStatus = "pending_cancel"
	ListingStatusCancelled     ListingStatus = "cancelled"
	ListingStatusRented        ListingStatus = "rented"
)

// ListingOrigin records who created the row first
type ListingOrigin string

const (
	// ListingOriginDraft rows were created by the write-side API before confirmation
	ListingOriginDraft ListingOrigin = "draft"
	// ListingOriginLedger rows were created by the projector from a confirmed event
	ListingOriginLedger ListingOrigin = "ledger"
)

// Listing represents the listings table - rental offers, either local drafts or confirmed on the ledger
type Listing struct {
	// ID is a locally generated UUID
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// LedgerListingID is the marketplace assigned id, authoritative once set
	LedgerListingID *string       `gorm:"column:ledger_listing_id;type:text;uniqueIndex"`
	Origin          ListingOrigin `gorm:"column:origin;not null;type:text"`
	AssetContract   string        `gorm:"column:asset_contract;not null;type:text;index:idx_listings_asset,priority:1"`
	AssetID         string        `gorm:"column:asset_id;not null;type:text;index:idx_listings_asset,priority:2"`
	// Seller is the seller snapshot taken from the listing event
	Seller string `gorm:"column:seller;not null;type:text"`
	// PricePerPeriod is stored as numeric to support uint256 values
	PricePerPeriod string        `gorm:"column:price_per_period;not null;type:numeric(78,0)"`
	MinDuration    uint64        `gorm:"column:min_duration;not null;type:bigint"`
	MaxDuration    uint64        `gorm:"column:max_duration;not null;type:bigint"`
	IntegrityHash  string        `gorm:"column:integrity_hash;not null;type:text;default:''"`
	Status         ListingStatus `gorm:"column:status;not null;type:text"`
	// PendingTxHash is the user submitted transaction hash, never trusted
	PendingTxHash *string   `gorm:"column:pending_tx_hash;type:text;index"`
	// CancelTxHash is the user submitted cancellation transaction, never trusted
	CancelTxHash  *string   `gorm:"column:cancel_tx_hash;type:text"`
	ConfirmTxHash *string   `gorm:"column:confirm_tx_hash;type:text"`
	ConfirmBlock  *uint64   `gorm:"column:confirm_block;type:bigint"`
	CreatedAt     time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

func (Listing) TableName() string {
	return "listings"
}
