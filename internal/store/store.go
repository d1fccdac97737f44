package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-rental-indexer/internal/domain"
	"github.com/feral-file/ff-rental-indexer/internal/store/schema"
)

// ErrEntryNotFound is returned when a ledger entry id does not exist
var ErrEntryNotFound = errors.New("ledger entry not found")

// LedgerStore is the append-only event ledger
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=LedgerStore=MockLedgerStore
type LedgerStore interface {
	// AppendEntry inserts the entry unless (tx_hash, log_index) already exists.
	// Both outcomes are a success; inserted reports which one happened.
	AppendEntry(ctx context.Context, input AppendEntryInput) (inserted bool, err error)
	// NextPendingEntry returns the pending entry with the lowest (block_number, log_index), or nil
	NextPendingEntry(ctx context.Context) (*schema.LedgerEntry, error)
	// MarkEntryProcessed marks an entry as applied
	MarkEntryProcessed(ctx context.Context, id uint64) error
	// MarkEntryFailed bumps the retry counter and records the reason.
	// The entry becomes failed once the counter reaches maxRetries, otherwise it stays pending.
	MarkEntryFailed(ctx context.Context, id uint64, reason string, maxRetries int) (schema.EntryStatus, error)
	// GetEntry retrieves an entry by id
	GetEntry(ctx context.Context, id uint64) (*schema.LedgerEntry, error)
	// CountEntriesByStatus counts entries per processing status
	CountEntriesByStatus(ctx context.Context) (EntryCounts, error)
	// LastProcessedBlock returns the highest block among processed entries
	LastProcessedBlock(ctx context.Context) (block uint64, found bool, err error)
	// ResetEntries returns every entry to pending with a zero retry counter
	ResetEntries(ctx context.Context) (int64, error)
	// RecordDeadLetter stores an undecodable log, ignoring duplicates
	RecordDeadLetter(ctx context.Context, input DeadLetterInput) error
	// CountDeadLetters counts recorded dead letters
	CountDeadLetters(ctx context.Context) (int64, error)
}

// CheckpointStore persists the ingestion position per listener identity
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=CheckpointStore=MockCheckpointStore
type CheckpointStore interface {
	// GetCheckpoint returns the last fully ingested block for the listener
	GetCheckpoint(ctx context.Context, listenerID string) (block uint64, found bool, err error)
	// SaveCheckpoint stores the block; the stored value never decreases
	SaveCheckpoint(ctx context.Context, listenerID string, block uint64) error
	// ResetCheckpoint overwrites the stored block unconditionally
	ResetCheckpoint(ctx context.Context, listenerID string, block uint64) error
}

// ProjectionStore holds the read models derived from the ledger
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=ProjectionStore=MockProjectionStore
type ProjectionStore interface {
	// GetAsset retrieves an asset by its ledger identity, nil if absent
	GetAsset(ctx context.Context, key domain.AssetKey) (*schema.Asset, error)
	// UpsertMintedAsset creates or refreshes an asset from a mint event
	UpsertMintedAsset(ctx context.Context, input UpsertMintedAssetInput) error
	// ActivateListing upserts a confirmed listing keyed by its ledger listing id.
	// A draft submitted with the same transaction hash is claimed instead of duplicated,
	// and any other active listing on the same asset is cancelled.
	ActivateListing(ctx context.Context, input ActivateListingInput) (*schema.Listing, error)
	// GrantRental marks the listing rented, upserts the rental and sets the asset holder
	GrantRental(ctx context.Context, input GrantRentalInput) (*schema.Rental, error)
	// CancelListing marks the listing cancelled; found is false when no such listing exists
	CancelListing(ctx context.Context, input CancelListingInput) (found bool, err error)
	// GetListingByLedgerID retrieves a listing by its ledger listing id, nil if absent
	GetListingByLedgerID(ctx context.Context, ledgerListingID string) (*schema.Listing, error)
	// GetRentalByTxHash retrieves a rental by its granting transaction, nil if absent
	GetRentalByTxHash(ctx context.Context, txHash string) (*schema.Rental, error)
	// ListAssets returns every asset ordered by identity
	ListAssets(ctx context.Context) ([]schema.Asset, error)
	// ListListings returns every listing ordered by ledger id then id
	ListListings(ctx context.Context) ([]schema.Listing, error)
	// ListRentals returns every rental ordered by transaction hash
	ListRentals(ctx context.Context) ([]schema.Rental, error)
	// CountProjections counts derived rows
	CountProjections(ctx context.Context) (ProjectionCounts, error)
	// ClearProjections removes ledger-derived state and keeps local draft workflow state
	ClearProjections(ctx context.Context) (ProjectionCounts, error)
}

// ListingDraftStore is the write-side interface used by the API layer for pre-confirmation listings
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=ListingDraftStore=MockListingDraftStore
type ListingDraftStore interface {
	// CreateDraftListing creates a listing in draft status with a fresh local id
	CreateDraftListing(ctx context.Context, input CreateDraftListingInput) (*schema.Listing, error)
	// SubmitListingTransaction records the user's creation transaction and moves the draft to pending_create
	SubmitListingTransaction(ctx context.Context, listingID string, txHash string) error
	// RequestListingCancel records the user's cancellation transaction and moves an active listing to pending_cancel
	RequestListingCancel(ctx context.Context, ledgerListingID string, txHash string) error
	// GetListing retrieves a listing by local id, nil if absent
	GetListing(ctx context.Context, listingID string) (*schema.Listing, error)
}

// Store groups every storage concern of the pipeline
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	LedgerStore
	CheckpointStore
	ProjectionStore
	ListingDraftStore
}

// AppendEntryInput describes a decoded log to append to the ledger
type AppendEntryInput struct {
	TxHash          string
	LogIndex        uint
	BlockNumber     uint64
	BlockHash       string
	ContractAddress string
	Kind            domain.EventKind
	Args            datatypes.JSON
}

// NewAppendEntryInput builds the ledger row for a decoded event
func NewAppendEntryInput(ev domain.LedgerEvent) (AppendEntryInput, error) {
	kind, args, err := domain.EncodeEventArgs(ev.Event)
	if err != nil {
		return AppendEntryInput{}, err
	}

	return AppendEntryInput{
		TxHash:          ev.TxHash,
		LogIndex:        ev.LogIndex,
		BlockNumber:     ev.BlockNumber,
		BlockHash:       ev.BlockHash,
		ContractAddress: domain.NormalizeAddress(ev.ContractAddress),
		Kind:            kind,
		Args:            datatypes.JSON(args),
	}, nil
}

// DeadLetterInput describes a log that could not be decoded
type DeadLetterInput struct {
	ContractAddress string
	BlockNumber     uint64
	LogIndex        uint
	TxHash          string
	Topic0          string
	Data            string
	Reason          string
}

// EntryCounts holds ledger entry counts per status
type EntryCounts struct {
	Pending   int64
	Processed int64
	Failed    int64
}

// ProjectionCounts holds derived row counts
type ProjectionCounts struct {
	Assets         int64
	LedgerListings int64
	DraftListings  int64
	Rentals        int64
}

// UpsertMintedAssetInput is the projection of an asset-minted event
type UpsertMintedAssetInput struct {
	Asset         domain.AssetKey
	Creator       string
	URI           string
	IntegrityHash string
	TxHash        string
	BlockNumber   uint64
}

// ActivateListingInput is the projection of an accepted listing-created event
type ActivateListingInput struct {
	LedgerListingID string
	Asset           domain.AssetKey
	Seller          string
	PricePerPeriod  string
	MinDuration     uint64
	MaxDuration     uint64
	IntegrityHash   string
	TxHash          string
	BlockNumber     uint64
}

// GrantRentalInput is the projection of a rental-granted event
type GrantRentalInput struct {
	LedgerListingID string
	Asset           domain.AssetKey
	Holder          string
	TotalPrice      string
	ExpiresAt       time.Time
	TxHash          string
	BlockNumber     uint64
}

// CancelListingInput is the projection of a listing-cancelled event
type CancelListingInput struct {
	LedgerListingID string
	TxHash          string
	BlockNumber     uint64
}

// CreateDraftListingInput is what the API layer knows about a listing before it hits the ledger
type CreateDraftListingInput struct {
	Asset          domain.AssetKey
	Seller         string
	PricePerPeriod string
	MinDuration    uint64
	MaxDuration    uint64
}
