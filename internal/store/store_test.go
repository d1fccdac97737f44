package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-rental-indexer/internal/domain"
	"github.com/feral-file/ff-rental-indexer/internal/store/schema"
)

const (
	testAssetContract = "0x52908400098527886E0F7030069857D2E4169EE7"
	testAlice         = "0x8617E340B3D01FA5F11F306F4090FD50E238070D"
	testBob           = "0xde709f2102306220921060314715629080e2fb77"
	testCarol         = "0x27b1fdb04752bbc536007a920d24acb045561c26"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func buildTestEntry(t *testing.T, block uint64, logIndex uint, ev domain.Event) AppendEntryInput {
	t.Helper()

	input, err := NewAppendEntryInput(domain.LedgerEvent{
		TxHash:          fmt.Sprintf("0x%064x", block*1000+uint64(logIndex)),
		LogIndex:        logIndex,
		BlockNumber:     block,
		BlockHash:       fmt.Sprintf("0x%064x", block),
		ContractAddress: testAssetContract,
		Event:           ev,
	})
	require.NoError(t, err)
	return input
}

func buildTestMint(assetID string, creator string) UpsertMintedAssetInput {
	return UpsertMintedAssetInput{
		Asset:         domain.NewAssetKey(testAssetContract, assetID),
		Creator:       creator,
		URI:           "ipfs://asset/" + assetID,
		IntegrityHash: "0xabc",
		TxHash:        "0xmint" + assetID,
		BlockNumber:   100,
	}
}

func buildTestListing(ledgerID string, assetID string, seller string, block uint64) ActivateListingInput {
	return ActivateListingInput{
		LedgerListingID: ledgerID,
		Asset:           domain.NewAssetKey(testAssetContract, assetID),
		Seller:          seller,
		PricePerPeriod:  "1000",
		MinDuration:     3600,
		MaxDuration:     86400,
		IntegrityHash:   "0xabc",
		TxHash:          "0xlist" + ledgerID,
		BlockNumber:     block,
	}
}

// =============================================================================
// Suite
// =============================================================================

// RunStoreTests runs the shared behaviour tests against a Store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s Store)
	}{
		{"AppendEntry_Idempotent", testAppendEntryIdempotent},
		{"NextPendingEntry_LedgerOrder", testNextPendingEntryOrder},
		{"MarkEntryFailed_RetryBound", testMarkEntryFailedRetryBound},
		{"MarkEntry_UnknownID", testMarkEntryUnknownID},
		{"CountsAndLastProcessedBlock", testCountsAndLastProcessedBlock},
		{"ResetEntries", testResetEntries},
		{"DeadLetters", testDeadLetters},
		{"Checkpoint_Monotonic", testCheckpointMonotonic},
		{"UpsertMintedAsset_Idempotent", testUpsertMintedAssetIdempotent},
		{"ActivateListing_New", testActivateListingNew},
		{"ActivateListing_ClaimsDraft", testActivateListingClaimsDraft},
		{"ActivateListing_ClaimedDraftTakesLedgerAsset", testActivateListingClaimedDraftTakesLedgerAsset},
		{"ActivateListing_ClaimedDraftSupersedesActive", testActivateListingClaimedDraftSupersedesActive},
		{"ActivateListing_SingleActivePerAsset", testActivateListingSingleActive},
		{"ActivateListing_ReapplyKeepsRented", testActivateListingReapplyKeepsRented},
		{"GrantRental", testGrantRental},
		{"GrantRental_AssetMissing", testGrantRentalAssetMissing},
		{"CancelListing", testCancelListing},
		{"DraftTransitions", testDraftTransitions},
		{"ClearProjections", testClearProjections},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, s)
		})
	}
}

func testAppendEntryIdempotent(t *testing.T, s Store) {
	ctx := context.Background()
	input := buildTestEntry(t, 10, 1, domain.AssetMinted{AssetContract: testAssetContract, AssetID: "1", Creator: testAlice})

	inserted, err := s.AppendEntry(ctx, input)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = s.AppendEntry(ctx, input)
	require.NoError(t, err)
	assert.False(t, inserted)

	counts, err := s.CountEntriesByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Pending)

	entry, err := s.NextPendingEntry(ctx)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, domain.EventKindAssetMinted, entry.Kind)

	ev, err := entry.Event()
	require.NoError(t, err)
	assert.Equal(t, "1", ev.(domain.AssetMinted).AssetID)
}

func testNextPendingEntryOrder(t *testing.T, s Store) {
	ctx := context.Background()
	ev := domain.ListingCancelled{ListingID: "1", AssetContract: testAssetContract, AssetID: "1"}

	for _, pos := range []struct {
		block uint64
		index uint
	}{{12, 0}, {10, 5}, {11, 3}, {10, 2}} {
		_, err := s.AppendEntry(ctx, buildTestEntry(t, pos.block, pos.index, ev))
		require.NoError(t, err)
	}

	var order [][2]uint64
	for {
		entry, err := s.NextPendingEntry(ctx)
		require.NoError(t, err)
		if entry == nil {
			break
		}
		order = append(order, [2]uint64{entry.BlockNumber, uint64(entry.LogIndex)})
		require.NoError(t, s.MarkEntryProcessed(ctx, entry.ID))
	}

	assert.Equal(t, [][2]uint64{{10, 2}, {10, 5}, {11, 3}, {12, 0}}, order)
}

func testMarkEntryFailedRetryBound(t *testing.T, s Store) {
	ctx := context.Background()
	_, err := s.AppendEntry(ctx, buildTestEntry(t, 10, 0, domain.ListingCancelled{ListingID: "1"}))
	require.NoError(t, err)

	entry, err := s.NextPendingEntry(ctx)
	require.NoError(t, err)
	require.NotNil(t, entry)

	status, err := s.MarkEntryFailed(ctx, entry.ID, "boom 1", 3)
	require.NoError(t, err)
	assert.Equal(t, schema.EntryStatusPending, status)

	status, err = s.MarkEntryFailed(ctx, entry.ID, "boom 2", 3)
	require.NoError(t, err)
	assert.Equal(t, schema.EntryStatusPending, status)

	status, err = s.MarkEntryFailed(ctx, entry.ID, "boom 3", 3)
	require.NoError(t, err)
	assert.Equal(t, schema.EntryStatusFailed, status)

	stored, err := s.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 3, stored.RetryCount)
	assert.Equal(t, "boom 3", *stored.LastError)

	next, err := s.NextPendingEntry(ctx)
	require.NoError(t, err)
	assert.Nil(t, next, "failed entries are excluded from automatic retries")
}

func testMarkEntryUnknownID(t *testing.T, s Store) {
	ctx := context.Background()

	err := s.MarkEntryProcessed(ctx, 999999)
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = s.MarkEntryFailed(ctx, 999999, "x", 3)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func testCountsAndLastProcessedBlock(t *testing.T, s Store) {
	ctx := context.Background()

	_, found, err := s.LastProcessedBlock(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	for i, block := range []uint64{20, 21, 22} {
		_, err := s.AppendEntry(ctx, buildTestEntry(t, block, uint(i), domain.ListingCancelled{ListingID: "1"}))
		require.NoError(t, err)
	}

	first, err := s.NextPendingEntry(ctx)
	require.NoError(t, err)
	require.NoError(t, s.MarkEntryProcessed(ctx, first.ID))

	second, err := s.NextPendingEntry(ctx)
	require.NoError(t, err)
	_, err = s.MarkEntryFailed(ctx, second.ID, "bad", 1)
	require.NoError(t, err)

	counts, err := s.CountEntriesByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, EntryCounts{Pending: 1, Processed: 1, Failed: 1}, counts)

	block, found, err := s.LastProcessedBlock(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(20), block)
}

func testResetEntries(t *testing.T, s Store) {
	ctx := context.Background()
	for i := range 3 {
		_, err := s.AppendEntry(ctx, buildTestEntry(t, uint64(30+i), 0, domain.ListingCancelled{ListingID: "1"}))
		require.NoError(t, err)
	}

	first, err := s.NextPendingEntry(ctx)
	require.NoError(t, err)
	require.NoError(t, s.MarkEntryProcessed(ctx, first.ID))
	second, err := s.NextPendingEntry(ctx)
	require.NoError(t, err)
	_, err = s.MarkEntryFailed(ctx, second.ID, "bad", 1)
	require.NoError(t, err)

	n, err := s.ResetEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	counts, err := s.CountEntriesByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, EntryCounts{Pending: 3}, counts)

	stored, err := s.GetEntry(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.RetryCount)
	assert.Nil(t, stored.LastError)
	assert.Equal(t, second.Args, stored.Args)
}

func testDeadLetters(t *testing.T, s Store) {
	ctx := context.Background()
	input := DeadLetterInput{
		ContractAddress: testAssetContract,
		BlockNumber:     50,
		LogIndex:        2,
		Topic0:          "0xdead",
		Reason:          "missing transaction hash",
	}

	require.NoError(t, s.RecordDeadLetter(ctx, input))
	require.NoError(t, s.RecordDeadLetter(ctx, input))

	count, err := s.CountDeadLetters(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func testCheckpointMonotonic(t *testing.T, s Store) {
	ctx := context.Background()

	_, found, err := s.GetCheckpoint(ctx, "listener-a")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.SaveCheckpoint(ctx, "listener-a", 109))
	require.NoError(t, s.SaveCheckpoint(ctx, "listener-a", 99))

	block, found, err := s.GetCheckpoint(ctx, "listener-a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(109), block)

	require.NoError(t, s.ResetCheckpoint(ctx, "listener-a", 5))
	block, _, err = s.GetCheckpoint(ctx, "listener-a")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), block)

	_, found, err = s.GetCheckpoint(ctx, "listener-b")
	require.NoError(t, err)
	assert.False(t, found)
}

func testUpsertMintedAssetIdempotent(t *testing.T, s Store) {
	ctx := context.Background()
	input := buildTestMint("1", testBob)

	require.NoError(t, s.UpsertMintedAsset(ctx, input))
	require.NoError(t, s.UpsertMintedAsset(ctx, input))

	assets, err := s.ListAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 1)

	asset := assets[0]
	assert.Equal(t, domain.NormalizeAddress(testBob), asset.Creator)
	assert.Equal(t, domain.NormalizeAddress(testBob), asset.Owner)
	assert.Equal(t, "0xmint1", asset.MintTxHash)
	assert.Nil(t, asset.Holder)

	got, err := s.GetAsset(ctx, domain.NewAssetKey(testAssetContract, "1"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, asset.ID, got.ID)

	missing, err := s.GetAsset(ctx, domain.NewAssetKey(testAssetContract, "2"))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testActivateListingNew(t *testing.T, s Store) {
	ctx := context.Background()

	listing, err := s.ActivateListing(ctx, buildTestListing("7", "1", testAlice, 101))
	require.NoError(t, err)
	require.NotNil(t, listing)

	assert.Equal(t, LedgerListingUUID("7"), listing.ID)
	assert.Equal(t, "7", *listing.LedgerListingID)
	assert.Equal(t, schema.ListingOriginLedger, listing.Origin)
	assert.Equal(t, schema.ListingStatusActive, listing.Status)
	assert.Equal(t, "1000", listing.PricePerPeriod)
	assert.Equal(t, uint64(101), *listing.ConfirmBlock)

	again, err := s.ActivateListing(ctx, buildTestListing("7", "1", testAlice, 101))
	require.NoError(t, err)
	assert.Equal(t, listing.ID, again.ID)

	counts, err := s.CountProjections(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.LedgerListings)
}

func testActivateListingClaimsDraft(t *testing.T, s Store) {
	ctx := context.Background()

	draft, err := s.CreateDraftListing(ctx, CreateDraftListingInput{
		Asset:          domain.NewAssetKey(testAssetContract, "1"),
		Seller:         testCarol,
		PricePerPeriod: "1",
		MinDuration:    1,
		MaxDuration:    2,
	})
	require.NoError(t, err)
	require.NoError(t, s.SubmitListingTransaction(ctx, draft.ID, "0xlist7"))

	listing, err := s.ActivateListing(ctx, buildTestListing("7", "1", testAlice, 101))
	require.NoError(t, err)

	assert.Equal(t, draft.ID, listing.ID, "the draft row is claimed, not duplicated")
	assert.Equal(t, schema.ListingOriginDraft, listing.Origin)
	assert.Equal(t, schema.ListingStatusActive, listing.Status)
	assert.Equal(t, domain.NormalizeAddress(testAlice), listing.Seller, "ledger values overwrite draft values")
	assert.Equal(t, "1000", listing.PricePerPeriod)

	counts, err := s.CountProjections(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.LedgerListings)
	assert.Equal(t, int64(1), counts.DraftListings)
}

func testActivateListingClaimedDraftTakesLedgerAsset(t *testing.T, s Store) {
	ctx := context.Background()

	// Asset 3 already has a confirmed active listing
	_, err := s.ActivateListing(ctx, buildTestListing("5", "3", testCarol, 100))
	require.NoError(t, err)

	// The draft names asset 3, the confirmed event lists asset 1
	draft, err := s.CreateDraftListing(ctx, CreateDraftListingInput{
		Asset:          domain.NewAssetKey(testAssetContract, "3"),
		Seller:         testCarol,
		PricePerPeriod: "1",
		MinDuration:    1,
		MaxDuration:    2,
	})
	require.NoError(t, err)
	require.NoError(t, s.SubmitListingTransaction(ctx, draft.ID, "0xlist7"))

	listing, err := s.ActivateListing(ctx, buildTestListing("7", "1", testAlice, 101))
	require.NoError(t, err)
	require.NotNil(t, listing)

	assert.Equal(t, draft.ID, listing.ID)
	assert.Equal(t, "7", *listing.LedgerListingID)
	assert.Equal(t, testAssetContract, listing.AssetContract)
	assert.Equal(t, "1", listing.AssetID)
	assert.Equal(t, domain.NormalizeAddress(testAlice), listing.Seller)
	assert.Equal(t, "1000", listing.PricePerPeriod)
	assert.Equal(t, uint64(3600), listing.MinDuration)
	assert.Equal(t, uint64(86400), listing.MaxDuration)
	assert.Equal(t, "0xabc", listing.IntegrityHash)
	assert.Equal(t, "0xlist7", *listing.ConfirmTxHash)
	assert.Equal(t, uint64(101), *listing.ConfirmBlock)
	assert.Equal(t, schema.ListingStatusActive, listing.Status)

	stored, err := s.GetListing(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "1", stored.AssetID)

	other, err := s.GetListingByLedgerID(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, schema.ListingStatusActive, other.Status, "listings of other assets are left alone")
}

func testActivateListingClaimedDraftSupersedesActive(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.ActivateListing(ctx, buildTestListing("6", "1", testAlice, 100))
	require.NoError(t, err)

	draft, err := s.CreateDraftListing(ctx, CreateDraftListingInput{
		Asset:  domain.NewAssetKey(testAssetContract, "1"),
		Seller: testAlice,
	})
	require.NoError(t, err)
	require.NoError(t, s.SubmitListingTransaction(ctx, draft.ID, "0xlist7"))

	listing, err := s.ActivateListing(ctx, buildTestListing("7", "1", testAlice, 101))
	require.NoError(t, err)
	assert.Equal(t, draft.ID, listing.ID)
	assert.Equal(t, schema.ListingStatusActive, listing.Status)

	previous, err := s.GetListingByLedgerID(ctx, "6")
	require.NoError(t, err)
	assert.Equal(t, schema.ListingStatusCancelled, previous.Status)

	listings, err := s.ListListings(ctx)
	require.NoError(t, err)
	var active []string
	for _, l := range listings {
		if l.Status == schema.ListingStatusActive {
			active = append(active, l.ID)
		}
	}
	assert.Equal(t, []string{draft.ID}, active)
}

func testActivateListingSingleActive(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.ActivateListing(ctx, buildTestListing("7", "1", testAlice, 101))
	require.NoError(t, err)
	_, err = s.ActivateListing(ctx, buildTestListing("8", "1", testAlice, 105))
	require.NoError(t, err)
	_, err = s.ActivateListing(ctx, buildTestListing("9", "2", testAlice, 106))
	require.NoError(t, err)

	first, err := s.GetListingByLedgerID(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, schema.ListingStatusCancelled, first.Status)

	listings, err := s.ListListings(ctx)
	require.NoError(t, err)

	active := map[string]int{}
	for _, l := range listings {
		if l.Status == schema.ListingStatusActive {
			active[l.AssetID]++
		}
	}
	assert.Equal(t, map[string]int{"1": 1, "2": 1}, active)
}

func testActivateListingReapplyKeepsRented(t *testing.T, s Store) {
	ctx := context.Background()
	require.NoError(t, s.UpsertMintedAsset(ctx, buildTestMint("1", testAlice)))

	_, err := s.ActivateListing(ctx, buildTestListing("7", "1", testAlice, 101))
	require.NoError(t, err)
	_, err = s.GrantRental(ctx, GrantRentalInput{
		LedgerListingID: "7",
		Asset:           domain.NewAssetKey(testAssetContract, "1"),
		Holder:          testBob,
		TotalPrice:      "3000",
		ExpiresAt:       time.Unix(1900000000, 0),
		TxHash:          "0xrent7",
		BlockNumber:     102,
	})
	require.NoError(t, err)

	listing, err := s.ActivateListing(ctx, buildTestListing("7", "1", testAlice, 101))
	require.NoError(t, err)
	assert.Equal(t, schema.ListingStatusRented, listing.Status)
}

func testGrantRental(t *testing.T, s Store) {
	ctx := context.Background()
	require.NoError(t, s.UpsertMintedAsset(ctx, buildTestMint("1", testAlice)))
	_, err := s.ActivateListing(ctx, buildTestListing("7", "1", testAlice, 101))
	require.NoError(t, err)

	expires := time.Unix(1900000000, 0)
	input := GrantRentalInput{
		LedgerListingID: "7",
		Asset:           domain.NewAssetKey(testAssetContract, "1"),
		Holder:          testBob,
		TotalPrice:      "3000",
		ExpiresAt:       expires,
		TxHash:          "0xrent7",
		BlockNumber:     102,
	}

	rental, err := s.GrantRental(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, domain.NormalizeAddress(testBob), rental.Holder)
	assert.Equal(t, domain.NormalizeAddress(testAlice), rental.Grantor)
	assert.Equal(t, schema.RentalStatusActive, rental.Status)
	assert.True(t, expires.Equal(rental.ExpiresAt))

	_, err = s.GrantRental(ctx, input)
	require.NoError(t, err)

	rentals, err := s.ListRentals(ctx)
	require.NoError(t, err)
	assert.Len(t, rentals, 1)

	listing, err := s.GetListingByLedgerID(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, schema.ListingStatusRented, listing.Status)

	asset, err := s.GetAsset(ctx, input.Asset)
	require.NoError(t, err)
	require.NotNil(t, asset.Holder)
	assert.Equal(t, domain.NormalizeAddress(testBob), *asset.Holder)
	assert.True(t, expires.Equal(*asset.HolderExpiresAt))
	assert.Equal(t, domain.NormalizeAddress(testAlice), asset.Owner)
	assert.Equal(t, uint64(102), asset.LastUpdatedBlock)

	stored, err := s.GetRentalByTxHash(ctx, "0xrent7")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "7", stored.LedgerListingID)
}

func testGrantRentalAssetMissing(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.GrantRental(ctx, GrantRentalInput{
		LedgerListingID: "7",
		Asset:           domain.NewAssetKey(testAssetContract, "404"),
		Holder:          testBob,
		ExpiresAt:       time.Unix(1900000000, 0),
		TxHash:          "0xrent",
	})
	assert.ErrorIs(t, err, domain.ErrAssetNotIndexed)

	rental, err := s.GetRentalByTxHash(ctx, "0xrent")
	require.NoError(t, err)
	assert.Nil(t, rental)
}

func testCancelListing(t *testing.T, s Store) {
	ctx := context.Background()

	found, err := s.CancelListing(ctx, CancelListingInput{LedgerListingID: "7"})
	require.NoError(t, err)
	assert.False(t, found)

	_, err = s.ActivateListing(ctx, buildTestListing("7", "1", testAlice, 101))
	require.NoError(t, err)

	found, err = s.CancelListing(ctx, CancelListingInput{LedgerListingID: "7", TxHash: "0xcancel", BlockNumber: 103})
	require.NoError(t, err)
	assert.True(t, found)

	listing, err := s.GetListingByLedgerID(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, schema.ListingStatusCancelled, listing.Status)
}

func testDraftTransitions(t *testing.T, s Store) {
	ctx := context.Background()

	draft, err := s.CreateDraftListing(ctx, CreateDraftListingInput{
		Asset:  domain.NewAssetKey(testAssetContract, "1"),
		Seller: testAlice,
	})
	require.NoError(t, err)
	assert.Equal(t, schema.ListingStatusDraft, draft.Status)
	assert.Equal(t, "0", draft.PricePerPeriod)

	err = s.SubmitListingTransaction(ctx, NewDraftListingID(), "0x1")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	require.NoError(t, s.SubmitListingTransaction(ctx, draft.ID, "0xlist7"))
	stored, err := s.GetListing(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, schema.ListingStatusPendingCreate, stored.Status)
	assert.Equal(t, "0xlist7", *stored.PendingTxHash)

	err = s.RequestListingCancel(ctx, "7", "0xcancel")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	_, err = s.ActivateListing(ctx, buildTestListing("7", "1", testAlice, 101))
	require.NoError(t, err)

	require.NoError(t, s.RequestListingCancel(ctx, "7", "0xcancel"))
	stored, err = s.GetListing(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, schema.ListingStatusPendingCancel, stored.Status)

	err = s.RequestListingCancel(ctx, "7", "0xcancel")
	assert.ErrorIs(t, err, domain.ErrInvalidListingTransition)

	err = s.SubmitListingTransaction(ctx, draft.ID, "0xother")
	assert.ErrorIs(t, err, domain.ErrInvalidListingTransition)
}

func testClearProjections(t *testing.T, s Store) {
	ctx := context.Background()

	untouched, err := s.CreateDraftListing(ctx, CreateDraftListingInput{Asset: domain.NewAssetKey(testAssetContract, "3"), Seller: testAlice})
	require.NoError(t, err)
	claimed, err := s.CreateDraftListing(ctx, CreateDraftListingInput{Asset: domain.NewAssetKey(testAssetContract, "1"), Seller: testAlice})
	require.NoError(t, err)
	require.NoError(t, s.SubmitListingTransaction(ctx, claimed.ID, "0xlist7"))

	require.NoError(t, s.UpsertMintedAsset(ctx, buildTestMint("1", testAlice)))
	_, err = s.ActivateListing(ctx, buildTestListing("7", "1", testAlice, 101))
	require.NoError(t, err)
	_, err = s.ActivateListing(ctx, buildTestListing("8", "2", testAlice, 102))
	require.NoError(t, err)
	_, err = s.ActivateListing(ctx, buildTestListing("9", "4", testAlice, 102))
	require.NoError(t, err)
	require.NoError(t, s.RequestListingCancel(ctx, "9", "0xcancel9"))
	_, err = s.GrantRental(ctx, GrantRentalInput{
		LedgerListingID: "7",
		Asset:           domain.NewAssetKey(testAssetContract, "1"),
		Holder:          testBob,
		TotalPrice:      "1",
		ExpiresAt:       time.Unix(1900000000, 0),
		TxHash:          "0xrent7",
		BlockNumber:     103,
	})
	require.NoError(t, err)

	cleared, err := s.ClearProjections(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared.Assets)
	assert.Equal(t, int64(1), cleared.Rentals)
	assert.Equal(t, int64(2), cleared.LedgerListings)
	assert.Equal(t, int64(2), cleared.DraftListings)

	counts, err := s.CountProjections(ctx)
	require.NoError(t, err)
	assert.Equal(t, ProjectionCounts{LedgerListings: 1, DraftListings: 2}, counts)

	// The cancel request survives, waiting for the listing to be replayed
	requested, err := s.GetListingByLedgerID(ctx, "9")
	require.NoError(t, err)
	require.NotNil(t, requested)
	assert.Equal(t, schema.ListingStatusPendingCreate, requested.Status)
	assert.Equal(t, "0xcancel9", *requested.CancelTxHash)
	assert.Nil(t, requested.ConfirmBlock)

	replayed, err := s.ActivateListing(ctx, buildTestListing("9", "4", testAlice, 102))
	require.NoError(t, err)
	assert.Equal(t, requested.ID, replayed.ID)
	assert.Equal(t, schema.ListingStatusPendingCancel, replayed.Status)
	assert.Equal(t, uint64(102), *replayed.ConfirmBlock)

	stored, err := s.GetListing(ctx, claimed.ID)
	require.NoError(t, err)
	assert.Equal(t, schema.ListingStatusPendingCreate, stored.Status)
	assert.Nil(t, stored.LedgerListingID)
	assert.Nil(t, stored.ConfirmBlock)
	assert.Equal(t, "0xlist7", *stored.PendingTxHash)

	stored, err = s.GetListing(ctx, untouched.ID)
	require.NoError(t, err)
	assert.Equal(t, schema.ListingStatusDraft, stored.Status)
}
