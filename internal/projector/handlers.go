package projector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-rental-indexer/internal/domain"
	"github.com/feral-file/ff-rental-indexer/internal/logger"
	"github.com/feral-file/ff-rental-indexer/internal/store"
)

// result describes what a handler did with an event
type result struct {
	// applied is false when the event was rejected or referenced nothing projected
	applied         bool
	ledgerListingID *string
}

// apply dispatches the event to the handler of its variant
func (p *projector) apply(ctx context.Context, ev domain.LedgerEvent) (result, error) {
	switch e := ev.Event.(type) {
	case domain.AssetMinted:
		return p.handleAssetMinted(ctx, ev, e)
	case domain.ListingCreated:
		return p.handleListingCreated(ctx, ev, e)
	case domain.RentalGranted:
		return p.handleRentalGranted(ctx, ev, e)
	case domain.ListingCancelled:
		return p.handleListingCancelled(ctx, ev, e)
	default:
		return result{}, fmt.Errorf("%w: %T", domain.ErrUnknownEventKind, ev.Event)
	}
}

// handleAssetMinted creates the asset with the minter as creator and owner
func (p *projector) handleAssetMinted(ctx context.Context, ev domain.LedgerEvent, e domain.AssetMinted) (result, error) {
	err := p.store.UpsertMintedAsset(ctx, store.UpsertMintedAssetInput{
		Asset:         e.Asset(),
		Creator:       e.Creator,
		URI:           e.URI,
		IntegrityHash: e.IntegrityHash,
		TxHash:        ev.TxHash,
		BlockNumber:   ev.BlockNumber,
	})
	if err != nil {
		return result{}, fmt.Errorf("failed to upsert asset %s: %w", e.Asset(), err)
	}
	return result{applied: true}, nil
}

// handleListingCreated activates the listing when the seller snapshot matches the current owner.
// A mismatch or an unknown asset is a rejection: nothing is projected and the entry is done.
func (p *projector) handleListingCreated(ctx context.Context, ev domain.LedgerEvent, e domain.ListingCreated) (result, error) {
	asset, err := p.store.GetAsset(ctx, e.Asset())
	if err != nil {
		return result{}, fmt.Errorf("failed to get asset %s: %w", e.Asset(), err)
	}

	if asset == nil {
		logger.WarnCtx(ctx, "Listing rejected, asset is not indexed",
			zap.String("listing_id", e.ListingID),
			zap.String("asset", e.Asset().String()),
			logger.Position(ev.BlockNumber, ev.TxHash, ev.LogIndex))
		return result{}, nil
	}
	if !domain.SameAddress(asset.Owner, e.Seller) {
		logger.WarnCtx(ctx, "Listing rejected, seller is not the asset owner",
			zap.String("listing_id", e.ListingID),
			zap.String("asset", e.Asset().String()),
			zap.String("seller", e.Seller),
			zap.String("owner", asset.Owner),
			logger.Position(ev.BlockNumber, ev.TxHash, ev.LogIndex))
		return result{}, nil
	}

	listing, err := p.store.ActivateListing(ctx, store.ActivateListingInput{
		LedgerListingID: e.ListingID,
		Asset:           e.Asset(),
		Seller:          e.Seller,
		PricePerPeriod:  e.PricePerPeriod,
		MinDuration:     e.MinDuration,
		MaxDuration:     e.MaxDuration,
		IntegrityHash:   e.IntegrityHash,
		TxHash:          ev.TxHash,
		BlockNumber:     ev.BlockNumber,
	})
	if err != nil {
		return result{}, fmt.Errorf("failed to activate listing %s: %w", e.ListingID, err)
	}

	logger.DebugCtx(ctx, "Listing activated",
		zap.String("listing_id", e.ListingID),
		zap.String("id", listing.ID),
		zap.String("status", string(listing.Status)))

	return result{applied: true, ledgerListingID: &e.ListingID}, nil
}

// handleRentalGranted records the rental and the new holder. The asset must already be projected.
func (p *projector) handleRentalGranted(ctx context.Context, ev domain.LedgerEvent, e domain.RentalGranted) (result, error) {
	_, err := p.store.GrantRental(ctx, store.GrantRentalInput{
		LedgerListingID: e.ListingID,
		Asset:           e.Asset(),
		Holder:          e.Holder,
		TotalPrice:      e.TotalPrice,
		ExpiresAt:       p.clock.Unix(int64(e.ExpiresAt), 0), //nolint:gosec,G115
		TxHash:          ev.TxHash,
		BlockNumber:     ev.BlockNumber,
	})
	if err != nil {
		return result{}, fmt.Errorf("failed to grant rental for listing %s: %w", e.ListingID, err)
	}
	return result{applied: true, ledgerListingID: &e.ListingID}, nil
}

// handleListingCancelled cancels the listing if it is known
func (p *projector) handleListingCancelled(ctx context.Context, ev domain.LedgerEvent, e domain.ListingCancelled) (result, error) {
	found, err := p.store.CancelListing(ctx, store.CancelListingInput{
		LedgerListingID: e.ListingID,
		TxHash:          ev.TxHash,
		BlockNumber:     ev.BlockNumber,
	})
	if err != nil {
		return result{}, fmt.Errorf("failed to cancel listing %s: %w", e.ListingID, err)
	}
	if !found {
		logger.DebugCtx(ctx, "Cancelled listing is not projected, nothing to do",
			zap.String("listing_id", e.ListingID),
			logger.Position(ev.BlockNumber, ev.TxHash, ev.LogIndex))
		return result{}, nil
	}
	return result{applied: true, ledgerListingID: &e.ListingID}, nil
}
