package schema

import "time"

// RentalStatus is the state of a rental grant
type RentalStatus string

const (
	RentalStatusPending RentalStatus = "pending"
	RentalStatusActive  RentalStatus = "active"
)

// Rental represents the rentals table - one row per confirmed rental grant
type Rental struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TxHash is the granting transaction, the rental identity
	TxHash          string       `gorm:"column:tx_hash;not null;type:text;uniqueIndex"`
	LedgerListingID string       `gorm:"column:ledger_listing_id;not null;type:text;index"`
	AssetContract   string       `gorm:"column:asset_contract;not null;type:text"`
	AssetID         string       `gorm:"column:asset_id;not null;type:text"`
	Holder          string       `gorm:"column:holder;not null;type:text"`
	Grantor         string       `gorm:"column:grantor;not null;type:text"`
	TotalPrice      string       `gorm:"column:total_price;not null;type:numeric(78,0)"`
	ExpiresAt       time.Time    `gorm:"column:expires_at;not null;type:timestamptz"`
	Status          RentalStatus `gorm:"column:status;not null;type:text"`
	BlockNumber     uint64       `gorm:"column:block_number;not null;type:bigint"`
	CreatedAt       time.Time    `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt       time.Time    `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

func (Rental) TableName() string {
	return "rentals"
}

// IsExpired reports whether the rental period has passed.
// Expiry is computed on read; nothing rewrites the row when it happens.
func (r *Rental) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
