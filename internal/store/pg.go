package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-rental-indexer/internal/domain"
	"github.com/feral-file/ff-rental-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool applies pool settings to the sql.DB behind a GORM connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and keeps idle connections within the open limit.
//
// Defaults (when zero):
//   - MaxOpenConns: 10
//   - MaxIdleConns: 2
//   - ConnMaxLifetime: 30 minutes
//   - ConnMaxIdleTime: 5 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 10
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 2
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 30 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 5 * time.Minute
	}

	maxIdleConns = min(maxIdleConns, maxOpenConns)

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// =============================================================================
// Ledger
// =============================================================================

// AppendEntry inserts a ledger entry if its natural key is absent
func (s *pgStore) AppendEntry(ctx context.Context, input AppendEntryInput) (bool, error) {
	entry := schema.LedgerEntry{
		TxHash:          input.TxHash,
		LogIndex:        input.LogIndex,
		BlockNumber:     input.BlockNumber,
		BlockHash:       input.BlockHash,
		ContractAddress: input.ContractAddress,
		Kind:            input.Kind,
		Args:            input.Args,
		Status:          schema.EntryStatusPending,
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tx_hash"}, {Name: "log_index"}},
		DoNothing: true,
	}).Create(&entry)
	if result.Error != nil {
		return false, fmt.Errorf("failed to append ledger entry: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// NextPendingEntry returns the oldest pending entry in ledger order
func (s *pgStore) NextPendingEntry(ctx context.Context) (*schema.LedgerEntry, error) {
	var entry schema.LedgerEntry
	err := s.db.WithContext(ctx).
		Where("status = ?", schema.EntryStatusPending).
		Order("block_number ASC").
		Order("log_index ASC").
		Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get next pending entry: %w", err)
	}

	return &entry, nil
}

// MarkEntryProcessed marks an entry as applied
func (s *pgStore) MarkEntryProcessed(ctx context.Context, id uint64) error {
	result := s.db.WithContext(ctx).
		Model(&schema.LedgerEntry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       schema.EntryStatusProcessed,
			"processed_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark entry processed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}

	return nil
}

// MarkEntryFailed increments the retry counter in a single statement and
// flips the entry to failed once the bound is reached
func (s *pgStore) MarkEntryFailed(ctx context.Context, id uint64, reason string, maxRetries int) (schema.EntryStatus, error) {
	var entry schema.LedgerEntry
	result := s.db.WithContext(ctx).
		Model(&entry).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}, {Name: "status"}, {Name: "retry_count"}}}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"retry_count": gorm.Expr("retry_count + 1"),
			"last_error":  reason,
			"status": gorm.Expr("CASE WHEN retry_count + 1 >= ? THEN ? ELSE ? END",
				maxRetries, string(schema.EntryStatusFailed), string(schema.EntryStatusPending)),
		})
	if result.Error != nil {
		return "", fmt.Errorf("failed to mark entry failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return "", fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}

	return entry.Status, nil
}

// GetEntry retrieves a ledger entry by id
func (s *pgStore) GetEntry(ctx context.Context, id uint64) (*schema.LedgerEntry, error) {
	var entry schema.LedgerEntry
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return &entry, nil
}

// CountEntriesByStatus counts ledger entries per status
func (s *pgStore) CountEntriesByStatus(ctx context.Context) (EntryCounts, error) {
	var rows []struct {
		Status schema.EntryStatus
		Count  int64
	}
	err := s.db.WithContext(ctx).
		Model(&schema.LedgerEntry{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return EntryCounts{}, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	var counts EntryCounts
	for _, row := range rows {
		switch row.Status {
		case schema.EntryStatusPending:
			counts.Pending = row.Count
		case schema.EntryStatusProcessed:
			counts.Processed = row.Count
		case schema.EntryStatusFailed:
			counts.Failed = row.Count
		}
	}

	return counts, nil
}

// LastProcessedBlock returns the highest block among processed entries
func (s *pgStore) LastProcessedBlock(ctx context.Context) (uint64, bool, error) {
	var block sql.NullInt64
	err := s.db.WithContext(ctx).
		Model(&schema.LedgerEntry{}).
		Where("status = ?", schema.EntryStatusProcessed).
		Select("MAX(block_number)").
		Scan(&block).Error
	if err != nil {
		return 0, false, fmt.Errorf("failed to get last processed block: %w", err)
	}
	if !block.Valid {
		return 0, false, nil
	}

	return uint64(block.Int64), true, nil //nolint:gosec,G115 // block numbers are never negative
}

// ResetEntries returns every entry to pending. Entry content is left untouched.
func (s *pgStore) ResetEntries(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.LedgerEntry{}).
		Where("status <> ? OR retry_count <> 0 OR last_error IS NOT NULL OR processed_at IS NOT NULL", schema.EntryStatusPending).
		Updates(map[string]interface{}{
			"status":       schema.EntryStatusPending,
			"retry_count":  0,
			"last_error":   nil,
			"processed_at": nil,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reset ledger entries: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// RecordDeadLetter stores an undecodable log
func (s *pgStore) RecordDeadLetter(ctx context.Context, input DeadLetterInput) error {
	dl := schema.DeadLetter{
		ContractAddress: input.ContractAddress,
		BlockNumber:     input.BlockNumber,
		LogIndex:        input.LogIndex,
		TxHash:          input.TxHash,
		Topic0:          input.Topic0,
		Data:            input.Data,
		Reason:          input.Reason,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contract_address"}, {Name: "block_number"}, {Name: "log_index"}},
		DoNothing: true,
	}).Create(&dl).Error
	if err != nil {
		return fmt.Errorf("failed to record dead letter: %w", err)
	}

	return nil
}

// CountDeadLetters counts recorded dead letters
func (s *pgStore) CountDeadLetters(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&schema.DeadLetter{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count dead letters: %w", err)
	}
	return count, nil
}

// =============================================================================
// Checkpoints
// =============================================================================

// GetCheckpoint retrieves the checkpoint of a listener
func (s *pgStore) GetCheckpoint(ctx context.Context, listenerID string) (uint64, bool, error) {
	var cp schema.Checkpoint
	err := s.db.WithContext(ctx).Where("listener_id = ?", listenerID).Take(&cp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get checkpoint: %w", err)
	}

	return cp.BlockNumber, true, nil
}

// SaveCheckpoint upserts the checkpoint without ever moving it backwards
func (s *pgStore) SaveCheckpoint(ctx context.Context, listenerID string, block uint64) error {
	cp := schema.Checkpoint{
		ListenerID:  listenerID,
		BlockNumber: block,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "listener_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"block_number": gorm.Expr("GREATEST(checkpoints.block_number, EXCLUDED.block_number)"),
			"updated_at":   gorm.Expr("now()"),
		}),
	}).Create(&cp).Error
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}

	return nil
}

// ResetCheckpoint overwrites the checkpoint
func (s *pgStore) ResetCheckpoint(ctx context.Context, listenerID string, block uint64) error {
	cp := schema.Checkpoint{
		ListenerID:  listenerID,
		BlockNumber: block,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "listener_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"block_number", "updated_at"}),
	}).Create(&cp).Error
	if err != nil {
		return fmt.Errorf("failed to reset checkpoint: %w", err)
	}

	return nil
}

// =============================================================================
// Projections
// =============================================================================

// GetAsset retrieves an asset by identity
func (s *pgStore) GetAsset(ctx context.Context, key domain.AssetKey) (*schema.Asset, error) {
	return getAsset(s.db.WithContext(ctx), key)
}

func getAsset(db *gorm.DB, key domain.AssetKey) (*schema.Asset, error) {
	var asset schema.Asset
	err := db.Where("contract_address = ? AND asset_id = ?", key.Contract, key.AssetID).Take(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	return &asset, nil
}

// UpsertMintedAsset creates or refreshes an asset from its mint event
func (s *pgStore) UpsertMintedAsset(ctx context.Context, input UpsertMintedAssetInput) error {
	creator := domain.NormalizeAddress(input.Creator)
	asset := schema.Asset{
		ContractAddress:  input.Asset.Contract,
		AssetID:          input.Asset.AssetID,
		Creator:          creator,
		Owner:            creator,
		URI:              input.URI,
		IntegrityHash:    input.IntegrityHash,
		MintTxHash:       input.TxHash,
		LastUpdatedBlock: input.BlockNumber,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "contract_address"}, {Name: "asset_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"creator":            asset.Creator,
			"owner":              asset.Owner,
			"uri":                asset.URI,
			"integrity_hash":     asset.IntegrityHash,
			"mint_tx_hash":       asset.MintTxHash,
			"last_updated_block": gorm.Expr("GREATEST(assets.last_updated_block, EXCLUDED.last_updated_block)"),
			"updated_at":         gorm.Expr("now()"),
		}),
	}).Create(&asset).Error
	if err != nil {
		return fmt.Errorf("failed to upsert asset: %w", err)
	}

	return nil
}

// ActivateListing upserts a confirmed listing keyed by its ledger listing id
func (s *pgStore) ActivateListing(ctx context.Context, input ActivateListingInput) (*schema.Listing, error) {
	var listing schema.Listing
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Find the row that already carries the ledger identity, or a draft submitted with this transaction
		existing, err := findListingForActivation(tx, input)
		if err != nil {
			return err
		}

		status := activationStatus(existing)

		// 2. Retire any other active listing of the asset
		if supersedesActive(status) {
			if err := tx.Model(&schema.Listing{}).
				Where("asset_contract = ? AND asset_id = ? AND status = ?", input.Asset.Contract, input.Asset.AssetID, schema.ListingStatusActive).
				Where("ledger_listing_id IS NULL OR ledger_listing_id <> ?", input.LedgerListingID).
				Update("status", schema.ListingStatusCancelled).Error; err != nil {
				return fmt.Errorf("failed to retire active listing: %w", err)
			}
		}

		row := buildActivatedListing(input, existing, status)

		// 3. Write. A claimed draft is updated by primary key, anything else goes
		// through the upsert on the authoritative ledger listing id.
		if existing != nil && existing.LedgerListingID == nil {
			if err := tx.Model(&schema.Listing{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
				"ledger_listing_id": row.LedgerListingID,
				"asset_contract":    row.AssetContract,
				"asset_id":          row.AssetID,
				"seller":            row.Seller,
				"price_per_period":  row.PricePerPeriod,
				"min_duration":      row.MinDuration,
				"max_duration":      row.MaxDuration,
				"integrity_hash":    row.IntegrityHash,
				"status":            row.Status,
				"confirm_tx_hash":   row.ConfirmTxHash,
				"confirm_block":     row.ConfirmBlock,
				"updated_at":        gorm.Expr("now()"),
			}).Error; err != nil {
				return fmt.Errorf("failed to claim draft listing: %w", err)
			}
		} else {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "ledger_listing_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"asset_contract", "asset_id", "seller", "price_per_period", "min_duration",
					"max_duration", "integrity_hash", "status", "confirm_tx_hash", "confirm_block", "updated_at",
				}),
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("failed to upsert listing: %w", err)
			}
		}

		if err := tx.Where("ledger_listing_id = ?", input.LedgerListingID).Take(&listing).Error; err != nil {
			return fmt.Errorf("failed to reload listing: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &listing, nil
}

func findListingForActivation(tx *gorm.DB, input ActivateListingInput) (*schema.Listing, error) {
	var existing schema.Listing
	err := tx.Where("ledger_listing_id = ?", input.LedgerListingID).Take(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get listing by ledger id: %w", err)
	}

	if input.TxHash == "" {
		return nil, nil
	}

	err = tx.Where("pending_tx_hash = ? AND ledger_listing_id IS NULL AND origin = ?", input.TxHash, schema.ListingOriginDraft).
		Order("created_at ASC").
		Order("id ASC").
		Take(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft listing by tx hash: %w", err)
	}

	return &existing, nil
}

// GrantRental projects a rental grant onto the listing, the rental and the asset
func (s *pgStore) GrantRental(ctx context.Context, input GrantRentalInput) (*schema.Rental, error) {
	var rental schema.Rental
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		asset, err := getAsset(tx, input.Asset)
		if err != nil {
			return err
		}
		if asset == nil {
			return fmt.Errorf("%w: %s", domain.ErrAssetNotIndexed, input.Asset)
		}

		var listing schema.Listing
		grantor := asset.Owner
		err = tx.Where("ledger_listing_id = ?", input.LedgerListingID).Take(&listing).Error
		switch {
		case err == nil:
			grantor = listing.Seller
			if err := tx.Model(&schema.Listing{}).Where("id = ?", listing.ID).
				Update("status", schema.ListingStatusRented).Error; err != nil {
				return fmt.Errorf("failed to mark listing rented: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return fmt.Errorf("failed to get listing: %w", err)
		}

		rental = buildRental(input, grantor)
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tx_hash"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"ledger_listing_id", "asset_contract", "asset_id", "holder", "grantor",
				"total_price", "expires_at", "status", "block_number", "updated_at",
			}),
		}).Create(&rental).Error; err != nil {
			return fmt.Errorf("failed to upsert rental: %w", err)
		}

		if err := tx.Model(&schema.Asset{}).Where("id = ?", asset.ID).Updates(map[string]interface{}{
			"holder":             rental.Holder,
			"holder_expires_at":  rental.ExpiresAt,
			"last_updated_block": gorm.Expr("GREATEST(last_updated_block, ?)", input.BlockNumber),
		}).Error; err != nil {
			return fmt.Errorf("failed to update asset holder: %w", err)
		}

		return tx.Where("tx_hash = ?", input.TxHash).Take(&rental).Error
	})
	if err != nil {
		return nil, err
	}

	return &rental, nil
}

// CancelListing marks a confirmed listing cancelled
func (s *pgStore) CancelListing(ctx context.Context, input CancelListingInput) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.Listing{}).
		Where("ledger_listing_id = ?", input.LedgerListingID).
		Update("status", schema.ListingStatusCancelled)
	if result.Error != nil {
		return false, fmt.Errorf("failed to cancel listing: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// GetListingByLedgerID retrieves a listing by ledger listing id
func (s *pgStore) GetListingByLedgerID(ctx context.Context, ledgerListingID string) (*schema.Listing, error) {
	var listing schema.Listing
	err := s.db.WithContext(ctx).Where("ledger_listing_id = ?", ledgerListingID).Take(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return &listing, nil
}

// GetRentalByTxHash retrieves a rental by granting transaction
func (s *pgStore) GetRentalByTxHash(ctx context.Context, txHash string) (*schema.Rental, error) {
	var rental schema.Rental
	err := s.db.WithContext(ctx).Where("tx_hash = ?", txHash).Take(&rental).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rental: %w", err)
	}

	return &rental, nil
}

// ListAssets returns all assets ordered by identity
func (s *pgStore) ListAssets(ctx context.Context) ([]schema.Asset, error) {
	var assets []schema.Asset
	if err := s.db.WithContext(ctx).Order("contract_address ASC, asset_id ASC").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

// ListListings returns all listings, confirmed ones first
func (s *pgStore) ListListings(ctx context.Context) ([]schema.Listing, error) {
	var listings []schema.Listing
	if err := s.db.WithContext(ctx).Order("ledger_listing_id ASC NULLS LAST, id ASC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, nil
}

// ListRentals returns all rentals ordered by transaction hash
func (s *pgStore) ListRentals(ctx context.Context) ([]schema.Rental, error) {
	var rentals []schema.Rental
	if err := s.db.WithContext(ctx).Order("tx_hash ASC").Find(&rentals).Error; err != nil {
		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}
	return rentals, nil
}

// CountProjections counts derived rows
func (s *pgStore) CountProjections(ctx context.Context) (ProjectionCounts, error) {
	var counts ProjectionCounts
	db := s.db.WithContext(ctx)

	if err := db.Model(&schema.Asset{}).Count(&counts.Assets).Error; err != nil {
		return counts, fmt.Errorf("failed to count assets: %w", err)
	}
	if err := db.Model(&schema.Listing{}).Where("origin = ?", schema.ListingOriginLedger).Count(&counts.LedgerListings).Error; err != nil {
		return counts, fmt.Errorf("failed to count ledger listings: %w", err)
	}
	if err := db.Model(&schema.Listing{}).Where("origin = ?", schema.ListingOriginDraft).Count(&counts.DraftListings).Error; err != nil {
		return counts, fmt.Errorf("failed to count draft listings: %w", err)
	}
	if err := db.Model(&schema.Rental{}).Count(&counts.Rentals).Error; err != nil {
		return counts, fmt.Errorf("failed to count rentals: %w", err)
	}

	return counts, nil
}

// ClearProjections deletes ledger-derived rows and strips ledger fields from drafts
func (s *pgStore) ClearProjections(ctx context.Context) (ProjectionCounts, error) {
	var counts ProjectionCounts
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		global := tx.Session(&gorm.Session{AllowGlobalUpdate: true})

		result := global.Delete(&schema.Rental{})
		if result.Error != nil {
			return fmt.Errorf("failed to clear rentals: %w", result.Error)
		}
		counts.Rentals = result.RowsAffected

		result = global.Delete(&schema.Asset{})
		if result.Error != nil {
			return fmt.Errorf("failed to clear assets: %w", result.Error)
		}
		counts.Assets = result.RowsAffected

		result = tx.Where("origin = ? AND cancel_tx_hash IS NULL", schema.ListingOriginLedger).Delete(&schema.Listing{})
		if result.Error != nil {
			return fmt.Errorf("failed to clear ledger listings: %w", result.Error)
		}
		counts.LedgerListings = result.RowsAffected

		// A seller's cancel request outlives the rebuild. The row keeps its ledger
		// listing id so the replayed listing-created event finds it again.
		result = tx.Model(&schema.Listing{}).
			Where("origin = ? AND cancel_tx_hash IS NOT NULL", schema.ListingOriginLedger).
			Updates(map[string]interface{}{
				"confirm_tx_hash": nil,
				"confirm_block":   nil,
				"status":          schema.ListingStatusPendingCreate,
				"updated_at":      gorm.Expr("now()"),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to reset cancel requested listings: %w", result.Error)
		}
		counts.LedgerListings += result.RowsAffected

		result = tx.Model(&schema.Listing{}).
			Where("origin = ?", schema.ListingOriginDraft).
			Updates(map[string]interface{}{
				"ledger_listing_id": nil,
				"confirm_tx_hash":   nil,
				"confirm_block":     nil,
				"status": gorm.Expr("CASE WHEN pending_tx_hash IS NOT NULL THEN ? ELSE ? END",
					string(schema.ListingStatusPendingCreate), string(schema.ListingStatusDraft)),
				"updated_at": gorm.Expr("now()"),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to reset draft listings: %w", result.Error)
		}
		counts.DraftListings = result.RowsAffected

		return nil
	})
	if err != nil {
		return ProjectionCounts{}, err
	}

	return counts, nil
}

// =============================================================================
// Draft listings
// =============================================================================

// CreateDraftListing creates a listing in draft status
func (s *pgStore) CreateDraftListing(ctx context.Context, input CreateDraftListingInput) (*schema.Listing, error) {
	listing := buildDraftListing(input)
	if err := s.db.WithContext(ctx).Create(&listing).Error; err != nil {
		return nil, fmt.Errorf("failed to create draft listing: %w", err)
	}
	return &listing, nil
}

// SubmitListingTransaction moves a draft to pending_create
func (s *pgStore) SubmitListingTransaction(ctx context.Context, listingID string, txHash string) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Listing{}).
		Where("id = ? AND status IN ?", listingID, []schema.ListingStatus{schema.ListingStatusDraft, schema.ListingStatusPendingCreate}).
		Updates(map[string]interface{}{
			"pending_tx_hash": txHash,
			"status":          schema.ListingStatusPendingCreate,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to submit listing transaction: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	listing, err := s.GetListing(ctx, listingID)
	if err != nil {
		return err
	}
	if listing == nil {
		return fmt.Errorf("%w: %s", domain.ErrListingNotFound, listingID)
	}
	return fmt.Errorf("%w: %s is %s", domain.ErrInvalidListingTransition, listingID, listing.Status)
}

// RequestListingCancel moves an active listing to pending_cancel
func (s *pgStore) RequestListingCancel(ctx context.Context, ledgerListingID string, txHash string) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Listing{}).
		Where("ledger_listing_id = ? AND status = ?", ledgerListingID, schema.ListingStatusActive).
		Updates(map[string]interface{}{
			"cancel_tx_hash": txHash,
			"status":         schema.ListingStatusPendingCancel,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to request listing cancel: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	listing, err := s.GetListingByLedgerID(ctx, ledgerListingID)
	if err != nil {
		return err
	}
	if listing == nil {
		return fmt.Errorf("%w: ledger id %s", domain.ErrListingNotFound, ledgerListingID)
	}
	return fmt.Errorf("%w: ledger id %s is %s", domain.ErrInvalidListingTransition, ledgerListingID, listing.Status)
}

// GetListing retrieves a listing by local id
func (s *pgStore) GetListing(ctx context.Context, listingID string) (*schema.Listing, error) {
	var listing schema.Listing
	err := s.db.WithContext(ctx).Where("id = ?", listingID).Take(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return &listing, nil
}
