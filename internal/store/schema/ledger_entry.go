package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-rental-indexer/internal/domain"
)

// EntryStatus is the processing state of a ledger entry
type EntryStatus string

const (
	// EntryStatusPending marks an entry waiting for the projector
	EntryStatusPending EntryStatus = "pending"
	// EntryStatusProcessed marks an entry applied to the read models
	EntryStatusProcessed EntryStatus = "processed"
	// EntryStatusFailed marks an entry that exhausted its retries and needs an operator
	EntryStatusFailed EntryStatus = "failed"
)

// LedgerEntry represents the ledger_entries table - the append-only log of decoded ledger events
type LedgerEntry struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TxHash is the hash of the transaction that emitted the log
	TxHash string `gorm:"column:tx_hash;not null;type:text;uniqueIndex:idx_ledger_entries_tx_log,priority:1"`
	// LogIndex is the position of the log inside its block
	LogIndex uint `gorm:"column:log_index;not null;type:integer;uniqueIndex:idx_ledger_entries_tx_log,priority:2"`
	// BlockNumber is the block that included the log
	BlockNumber uint64 `gorm:"column:block_number;not null;type:bigint;index:idx_ledger_entries_order,priority:2"`
	// BlockHash is the hash of the including block
	BlockHash string `gorm:"column:block_hash;not null;type:text"`
	// ContractAddress is the emitting contract
	ContractAddress string `gorm:"column:contract_address;not null;type:text"`
	// Kind is one of the decoded event kinds
	Kind domain.EventKind `gorm:"column:kind;not null;type:text"`
	// Args holds the kind specific argument bag. Never rewritten.
	Args datatypes.JSON `gorm:"column:args;not null;type:jsonb"`
	// Status is the processing state
	Status EntryStatus `gorm:"column:status;not null;type:text;default:pending;index:idx_ledger_entries_order,priority:1"`
	// RetryCount counts failed projection attempts
	RetryCount int `gorm:"column:retry_count;not null;default:0"`
	// LastError is the most recent projection failure
	LastError *string `gorm:"column:last_error;type:text"`
	// ProcessedAt is set when the projector applies the entry
	ProcessedAt *time.Time `gorm:"column:processed_at;type:timestamptz"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// Event decodes the argument bag into its typed variant
func (e *LedgerEntry) Event() (domain.Event, error) {
	return domain.DecodeEventArgs(e.Kind, []byte(e.Args))
}
