package schema

import "time"

// Asset represents the assets table - the projected state of one minted asset
type Asset struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ContractAddress is the asset contract (checksummed)
	ContractAddress string `gorm:"column:contract_address;not null;type:text;uniqueIndex:idx_assets_identity,priority:1"`
	// AssetID is the on-ledger asset identifier in decimal
	AssetID string `gorm:"column:asset_id;not null;type:text;uniqueIndex:idx_assets_identity,priority:2"`
	Creator string `gorm:"column:creator;not null;type:text"`
	// Owner is only ever written from ledger events
	Owner         string `gorm:"column:owner;not null;type:text;index"`
	URI           string `gorm:"column:uri;not null;type:text;default:''"`
	IntegrityHash string `gorm:"column:integrity_hash;not null;type:text"`
	// Holder is the current renter, meaningful only until HolderExpiresAt
	Holder          *string    `gorm:"column:holder;type:text"`
	HolderExpiresAt *time.Time `gorm:"column:holder_expires_at;type:timestamptz"`
	MintTxHash      string     `gorm:"column:mint_tx_hash;not null;type:text"`
	// LastUpdatedBlock is the block of the last event applied to this asset
	LastUpdatedBlock uint64    `gorm:"column:last_updated_block;not null;type:bigint"`
	CreatedAt        time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

func (Asset) TableName() string {
	return "assets"
}

// ActiveHolder returns the holder if the rental period has not passed yet
func (a *Asset) ActiveHolder(now time.Time) *string {
	if a.Holder == nil || a.HolderExpiresAt == nil {
		return nil
	}
	if !now.Before(*a.HolderExpiresAt) {
		return nil
	}
	return a.Holder
}
