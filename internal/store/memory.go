package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/feral-file/ff-rental-indexer/internal/domain"
	"github.com/feral-file/ff-rental-indexer/internal/store/schema"
	"github.com/feral-file/ff-rental-indexer/internal/types"
)

type entryKey struct {
	txHash   string
	logIndex uint
}

type deadLetterKey struct {
	contract string
	block    uint64
	logIndex uint
}

// memoryStore is a Store kept in process memory. It follows the same
// uniqueness and ordering rules as the PostgreSQL schema.
type memoryStore struct {
	mu sync.Mutex

	nextEntryID  uint64
	nextAssetID  uint64
	nextRentalID uint64

	entries      map[uint64]*schema.LedgerEntry
	entryKeys    map[entryKey]uint64
	checkpoints  map[string]uint64
	assets       map[domain.AssetKey]*schema.Asset
	listings     map[string]*schema.Listing
	rentals      map[string]*schema.Rental
	deadLetters  map[deadLetterKey]schema.DeadLetter
	deadLetterID uint64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() Store {
	return &memoryStore{
		entries:     make(map[uint64]*schema.LedgerEntry),
		entryKeys:   make(map[entryKey]uint64),
		checkpoints: make(map[string]uint64),
		assets:      make(map[domain.AssetKey]*schema.Asset),
		listings:    make(map[string]*schema.Listing),
		rentals:     make(map[string]*schema.Rental),
		deadLetters: make(map[deadLetterKey]schema.DeadLetter),
	}
}

func now() time.Time {
	return time.Now().UTC()
}

// =============================================================================
// Ledger
// =============================================================================

func (m *memoryStore) AppendEntry(ctx context.Context, input AppendEntryInput) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := entryKey{txHash: input.TxHash, logIndex: input.LogIndex}
	if _, ok := m.entryKeys[key]; ok {
		return false, nil
	}

	m.nextEntryID++
	ts := now()
	args := make([]byte, len(input.Args))
	copy(args, input.Args)
	m.entries[m.nextEntryID] = &schema.LedgerEntry{
		ID:              m.nextEntryID,
		TxHash:          input.TxHash,
		LogIndex:        input.LogIndex,
		BlockNumber:     input.BlockNumber,
		BlockHash:       input.BlockHash,
		ContractAddress: input.ContractAddress,
		Kind:            input.Kind,
		Args:            args,
		Status:          schema.EntryStatusPending,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	m.entryKeys[key] = m.nextEntryID

	return true, nil
}

func (m *memoryStore) NextPendingEntry(ctx context.Context) (*schema.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var next *schema.LedgerEntry
	for _, e := range m.entries {
		if e.Status != schema.EntryStatusPending {
			continue
		}
		if next == nil ||
			e.BlockNumber < next.BlockNumber ||
			(e.BlockNumber == next.BlockNumber && e.LogIndex < next.LogIndex) {
			next = e
		}
	}
	if next == nil {
		return nil, nil
	}

	cp := *next
	return &cp, nil
}

func (m *memoryStore) MarkEntryProcessed(ctx context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}

	ts := now()
	e.Status = schema.EntryStatusProcessed
	e.ProcessedAt = &ts
	e.UpdatedAt = ts
	return nil
}

func (m *memoryStore) MarkEntryFailed(ctx context.Context, id uint64, reason string, maxRetries int) (schema.EntryStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}

	e.RetryCount++
	e.LastError = types.StringPtr(reason)
	e.UpdatedAt = now()
	if e.RetryCount >= maxRetries {
		e.Status = schema.EntryStatusFailed
	} else {
		e.Status = schema.EntryStatusPending
	}

	return e.Status, nil
}

func (m *memoryStore) GetEntry(ctx context.Context, id uint64) (*schema.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (m *memoryStore) CountEntriesByStatus(ctx context.Context) (EntryCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var counts EntryCounts
	for _, e := range m.entries {
		switch e.Status {
		case schema.EntryStatusPending:
			counts.Pending++
		case schema.EntryStatusProcessed:
			counts.Processed++
		case schema.EntryStatusFailed:
			counts.Failed++
		}
	}
	return counts, nil
}

func (m *memoryStore) LastProcessedBlock(ctx context.Context) (uint64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var block uint64
	found := false
	for _, e := range m.entries {
		if e.Status == schema.EntryStatusProcessed && (!found || e.BlockNumber > block) {
			block = e.BlockNumber
			found = true
		}
	}
	return block, found, nil
}

func (m *memoryStore) ResetEntries(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, e := range m.entries {
		if e.Status == schema.EntryStatusPending && e.RetryCount == 0 && e.LastError == nil && e.ProcessedAt == nil {
			continue
		}
		e.Status = schema.EntryStatusPending
		e.RetryCount = 0
		e.LastError = nil
		e.ProcessedAt = nil
		e.UpdatedAt = now()
		n++
	}
	return n, nil
}

func (m *memoryStore) RecordDeadLetter(ctx context.Context, input DeadLetterInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := deadLetterKey{contract: input.ContractAddress, block: input.BlockNumber, logIndex: input.LogIndex}
	if _, ok := m.deadLetters[key]; ok {
		return nil
	}

	m.deadLetterID++
	m.deadLetters[key] = schema.DeadLetter{
		ID:              m.deadLetterID,
		ContractAddress: input.ContractAddress,
		BlockNumber:     input.BlockNumber,
		LogIndex:        input.LogIndex,
		TxHash:          input.TxHash,
		Topic0:          input.Topic0,
		Data:            input.Data,
		Reason:          input.Reason,
		CreatedAt:       now(),
	}
	return nil
}

func (m *memoryStore) CountDeadLetters(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return int64(len(m.deadLetters)), nil
}

// =============================================================================
// Checkpoints
// =============================================================================

func (m *memoryStore) GetCheckpoint(ctx context.Context, listenerID string) (uint64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	block, ok := m.checkpoints[listenerID]
	return block, ok, nil
}

func (m *memoryStore) SaveCheckpoint(ctx context.Context, listenerID string, block uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.checkpoints[listenerID]; ok && current > block {
		return nil
	}
	m.checkpoints[listenerID] = block
	return nil
}

func (m *memoryStore) ResetCheckpoint(ctx context.Context, listenerID string, block uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checkpoints[listenerID] = block
	return nil
}

// =============================================================================
// Projections
// =============================================================================

func (m *memoryStore) GetAsset(ctx context.Context, key domain.AssetKey) (*schema.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.assets[key]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *memoryStore) UpsertMintedAsset(ctx context.Context, input UpsertMintedAssetInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	creator := domain.NormalizeAddress(input.Creator)
	ts := now()
	a, ok := m.assets[input.Asset]
	if !ok {
		m.nextAssetID++
		a = &schema.Asset{
			ID:              m.nextAssetID,
			ContractAddress: input.Asset.Contract,
			AssetID:         input.Asset.AssetID,
			CreatedAt:       ts,
		}
		m.assets[input.Asset] = a
	}

	a.Creator = creator
	a.Owner = creator
	a.URI = input.URI
	a.IntegrityHash = input.IntegrityHash
	a.MintTxHash = input.TxHash
	a.LastUpdatedBlock = max(a.LastUpdatedBlock, input.BlockNumber)
	a.UpdatedAt = ts
	return nil
}

func (m *memoryStore) ActivateListing(ctx context.Context, input ActivateListingInput) (*schema.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := m.findListingForActivation(input)

	status := activationStatus(existing)

	ts := now()
	if supersedesActive(status) {
		for _, l := range m.listings {
			if l.AssetContract == input.Asset.Contract && l.AssetID == input.Asset.AssetID &&
				l.Status == schema.ListingStatusActive && types.SafeString(l.LedgerListingID) != input.LedgerListingID {
				l.Status = schema.ListingStatusCancelled
				l.UpdatedAt = ts
			}
		}
	}

	row := buildActivatedListing(input, existing, status)
	row.UpdatedAt = ts
	if existing == nil {
		row.CreatedAt = ts
	}
	m.listings[row.ID] = &row

	cp := row
	return &cp, nil
}

func (m *memoryStore) findListingForActivation(input ActivateListingInput) *schema.Listing {
	if l := m.listingByLedgerID(input.LedgerListingID); l != nil {
		return l
	}
	if input.TxHash == "" {
		return nil
	}

	var claimed *schema.Listing
	for _, l := range m.listings {
		if l.Origin != schema.ListingOriginDraft || l.LedgerListingID != nil || types.SafeString(l.PendingTxHash) != input.TxHash {
			continue
		}
		if claimed == nil || l.CreatedAt.Before(claimed.CreatedAt) ||
			(l.CreatedAt.Equal(claimed.CreatedAt) && l.ID < claimed.ID) {
			claimed = l
		}
	}
	return claimed
}

func (m *memoryStore) listingByLedgerID(ledgerListingID string) *schema.Listing {
	for _, l := range m.listings {
		if l.LedgerListingID != nil && *l.LedgerListingID == ledgerListingID {
			return l
		}
	}
	return nil
}

func (m *memoryStore) GrantRental(ctx context.Context, input GrantRentalInput) (*schema.Rental, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	asset, ok := m.assets[input.Asset]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotIndexed, input.Asset)
	}

	ts := now()
	grantor := asset.Owner
	if l := m.listingByLedgerID(input.LedgerListingID); l != nil {
		grantor = l.Seller
		l.Status = schema.ListingStatusRented
		l.UpdatedAt = ts
	}

	rental := buildRental(input, grantor)
	rental.UpdatedAt = ts
	if existing, ok := m.rentals[input.TxHash]; ok {
		rental.ID = existing.ID
		rental.CreatedAt = existing.CreatedAt
	} else {
		m.nextRentalID++
		rental.ID = m.nextRentalID
		rental.CreatedAt = ts
	}
	m.rentals[input.TxHash] = &rental

	asset.Holder = types.StringPtr(rental.Holder)
	expiresAt := rental.ExpiresAt
	asset.HolderExpiresAt = &expiresAt
	asset.LastUpdatedBlock = max(asset.LastUpdatedBlock, input.BlockNumber)
	asset.UpdatedAt = ts

	cp := rental
	return &cp, nil
}

func (m *memoryStore) CancelListing(ctx context.Context, input CancelListingInput) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.listingByLedgerID(input.LedgerListingID)
	if l == nil {
		return false, nil
	}
	l.Status = schema.ListingStatusCancelled
	l.UpdatedAt = now()
	return true, nil
}

func (m *memoryStore) GetListingByLedgerID(ctx context.Context, ledgerListingID string) (*schema.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.listingByLedgerID(ledgerListingID)
	if l == nil {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (m *memoryStore) GetRentalByTxHash(ctx context.Context, txHash string) (*schema.Rental, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rentals[txHash]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memoryStore) ListAssets(ctx context.Context) ([]schema.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	assets := make([]schema.Asset, 0, len(m.assets))
	for _, a := range m.assets {
		assets = append(assets, *a)
	}
	sort.Slice(assets, func(i, j int) bool {
		if assets[i].ContractAddress != assets[j].ContractAddress {
			return assets[i].ContractAddress < assets[j].ContractAddress
		}
		return assets[i].AssetID < assets[j].AssetID
	})
	return assets, nil
}

func (m *memoryStore) ListListings(ctx context.Context) ([]schema.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	listings := make([]schema.Listing, 0, len(m.listings))
	for _, l := range m.listings {
		listings = append(listings, *l)
	}
	sort.Slice(listings, func(i, j int) bool {
		a, b := listings[i].LedgerListingID, listings[j].LedgerListingID
		switch {
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		case a != nil && b != nil && *a != *b:
			return *a < *b
		}
		return listings[i].ID < listings[j].ID
	})
	return listings, nil
}

func (m *memoryStore) ListRentals(ctx context.Context) ([]schema.Rental, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rentals := make([]schema.Rental, 0, len(m.rentals))
	for _, r := range m.rentals {
		rentals = append(rentals, *r)
	}
	sort.Slice(rentals, func(i, j int) bool {
		return rentals[i].TxHash < rentals[j].TxHash
	})
	return rentals, nil
}

func (m *memoryStore) CountProjections(ctx context.Context) (ProjectionCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := ProjectionCounts{
		Assets:  int64(len(m.assets)),
		Rentals: int64(len(m.rentals)),
	}
	for _, l := range m.listings {
		if l.Origin == schema.ListingOriginLedger {
			counts.LedgerListings++
		} else {
			counts.DraftListings++
		}
	}
	return counts, nil
}

func (m *memoryStore) ClearProjections(ctx context.Context) (ProjectionCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := ProjectionCounts{
		Assets:  int64(len(m.assets)),
		Rentals: int64(len(m.rentals)),
	}
	m.assets = make(map[domain.AssetKey]*schema.Asset)
	m.rentals = make(map[string]*schema.Rental)

	ts := now()
	for id, l := range m.listings {
		if l.Origin == schema.ListingOriginLedger {
			counts.LedgerListings++
			if l.CancelTxHash == nil {
				delete(m.listings, id)
				continue
			}
			l.ConfirmTxHash = nil
			l.ConfirmBlock = nil
			l.Status = schema.ListingStatusPendingCreate
			l.UpdatedAt = ts
			continue
		}

		l.LedgerListingID = nil
		l.ConfirmTxHash = nil
		l.ConfirmBlock = nil
		if l.PendingTxHash != nil {
			l.Status = schema.ListingStatusPendingCreate
		} else {
			l.Status = schema.ListingStatusDraft
		}
		l.UpdatedAt = ts
		counts.DraftListings++
	}

	return counts, nil
}

// =============================================================================
// Draft listings
// =============================================================================

func (m *memoryStore) CreateDraftListing(ctx context.Context, input CreateDraftListingInput) (*schema.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	listing := buildDraftListing(input)
	ts := now()
	listing.CreatedAt = ts
	listing.UpdatedAt = ts
	m.listings[listing.ID] = &listing

	cp := listing
	return &cp, nil
}

func (m *memoryStore) SubmitListingTransaction(ctx context.Context, listingID string, txHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.listings[listingID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrListingNotFound, listingID)
	}
	if l.Status != schema.ListingStatusDraft && l.Status != schema.ListingStatusPendingCreate {
		return fmt.Errorf("%w: %s is %s", domain.ErrInvalidListingTransition, listingID, l.Status)
	}

	l.PendingTxHash = types.StringPtr(txHash)
	l.Status = schema.ListingStatusPendingCreate
	l.UpdatedAt = now()
	return nil
}

func (m *memoryStore) RequestListingCancel(ctx context.Context, ledgerListingID string, txHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.listingByLedgerID(ledgerListingID)
	if l == nil {
		return fmt.Errorf("%w: ledger id %s", domain.ErrListingNotFound, ledgerListingID)
	}
	if l.Status != schema.ListingStatusActive {
		return fmt.Errorf("%w: ledger id %s is %s", domain.ErrInvalidListingTransition, ledgerListingID, l.Status)
	}

	l.CancelTxHash = types.StringPtr(txHash)
	l.Status = schema.ListingStatusPendingCancel
	l.UpdatedAt = now()
	return nil
}

func (m *memoryStore) GetListing(ctx context.Context, listingID string) (*schema.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.listings[listingID]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}
