package store

import (
	"github.com/feral-file/ff-rental-indexer/internal/domain"
	"github.com/feral-file/ff-rental-indexer/internal/store/schema"
	"github.com/feral-file/ff-rental-indexer/internal/types"
)

// isPromotable reports whether a confirmed listing-created event may move a listing to active.
// Listings that already moved past active keep their status when the event is re-applied.
func isPromotable(status schema.ListingStatus) bool {
	switch status {
	case schema.ListingStatusDraft, schema.ListingStatusPendingCreate, schema.ListingStatusActive:
		return true
	}
	return false
}

// activationStatus is the status a confirmed listing-created event leaves the listing in.
// A listing the seller asked to cancel goes back to pending_cancel when the event is replayed.
func activationStatus(existing *schema.Listing) schema.ListingStatus {
	switch {
	case existing == nil:
		return schema.ListingStatusActive
	case !isPromotable(existing.Status):
		return existing.Status
	case existing.CancelTxHash != nil:
		return schema.ListingStatusPendingCancel
	}
	return schema.ListingStatusActive
}

// supersedesActive reports whether activating a listing with this status retires the other active listings of the asset
func supersedesActive(status schema.ListingStatus) bool {
	return status == schema.ListingStatusActive || status == schema.ListingStatusPendingCancel
}

func buildActivatedListing(input ActivateListingInput, existing *schema.Listing, status schema.ListingStatus) schema.Listing {
	row := schema.Listing{
		ID:              LedgerListingUUID(input.LedgerListingID),
		LedgerListingID: types.StringPtr(input.LedgerListingID),
		Origin:          schema.ListingOriginLedger,
		AssetContract:   input.Asset.Contract,
		AssetID:         input.Asset.AssetID,
		Seller:          domain.NormalizeAddress(input.Seller),
		PricePerPeriod:  types.NumericOrZero(input.PricePerPeriod),
		MinDuration:     input.MinDuration,
		MaxDuration:     input.MaxDuration,
		IntegrityHash:   input.IntegrityHash,
		Status:          status,
		ConfirmTxHash:   types.StringPtr(input.TxHash),
		ConfirmBlock:    types.Uint64Ptr(input.BlockNumber),
	}

	if existing != nil {
		row.ID = existing.ID
		row.Origin = existing.Origin
		row.PendingTxHash = existing.PendingTxHash
		row.CancelTxHash = existing.CancelTxHash
		row.CreatedAt = existing.CreatedAt
	}

	return row
}

func buildRental(input GrantRentalInput, grantor string) schema.Rental {
	return schema.Rental{
		TxHash:          input.TxHash,
		LedgerListingID: input.LedgerListingID,
		AssetContract:   input.Asset.Contract,
		AssetID:         input.Asset.AssetID,
		Holder:          domain.NormalizeAddress(input.Holder),
		Grantor:         grantor,
		TotalPrice:      types.NumericOrZero(input.TotalPrice),
		ExpiresAt:       input.ExpiresAt.UTC(),
		Status:          schema.RentalStatusActive,
		BlockNumber:     input.BlockNumber,
	}
}

func buildDraftListing(input CreateDraftListingInput) schema.Listing {
	return schema.Listing{
		ID:             NewDraftListingID(),
		Origin:         schema.ListingOriginDraft,
		AssetContract:  input.Asset.Contract,
		AssetID:        input.Asset.AssetID,
		Seller:         domain.NormalizeAddress(input.Seller),
		PricePerPeriod: types.NumericOrZero(input.PricePerPeriod),
		MinDuration:    input.MinDuration,
		MaxDuration:    input.MaxDuration,
		Status:         schema.ListingStatusDraft,
	}
}
