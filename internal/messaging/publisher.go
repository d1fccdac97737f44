package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/feral-file/ff-rental-indexer/internal/domain"
)

// ProjectionChange announces that an applied ledger entry changed the read models
type ProjectionChange struct {
	ID              string           `json:"id"`
	Kind            domain.EventKind `json:"kind"`
	TxHash          string           `json:"tx_hash"`
	LogIndex        uint             `json:"log_index"`
	BlockNumber     uint64           `json:"block_number"`
	AssetContract   string           `json:"asset_contract"`
	AssetID         string           `json:"asset_id"`
	LedgerListingID *string          `json:"ledger_listing_id,omitempty"`
	AppliedAt       time.Time        `json:"applied_at"`
}

// NewProjectionChange builds a change notification with a fresh sortable id
func NewProjectionChange(ev domain.LedgerEvent, ledgerListingID *string, appliedAt time.Time) ProjectionChange {
	asset := ev.Event.Asset()
	return ProjectionChange{
		ID:              ulid.MustNew(ulid.Timestamp(appliedAt), ulid.DefaultEntropy()).String(),
		Kind:            ev.Event.Kind(),
		TxHash:          ev.TxHash,
		LogIndex:        ev.LogIndex,
		BlockNumber:     ev.BlockNumber,
		AssetContract:   asset.Contract,
		AssetID:         asset.AssetID,
		LedgerListingID: ledgerListingID,
		AppliedAt:       appliedAt,
	}
}

// Subject returns the subject a change is published on
func (c ProjectionChange) Subject() string {
	return SubjectFor(c.Kind)
}

// SubjectFor returns the subject changes of the given kind are published on
func SubjectFor(kind domain.EventKind) string {
	return fmt.Sprintf("%s.%s", domain.PROJECTION_SUBJECT_PREFIX, kind)
}

// Publisher defines the interface for publishing projection changes to a message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishChange publishes a projection change notification
	PublishChange(ctx context.Context, change ProjectionChange) error
	// Close closes the connection
	Close()
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops every change, used when no broker is configured
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishChange(context.Context, ProjectionChange) error { return nil }

func (nopPublisher) Close() {}
