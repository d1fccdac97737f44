package schema

import "time"

// DeadLetter represents the dead_letters table - ledger logs that could not be decoded
type DeadLetter struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	ContractAddress string    `gorm:"column:contract_address;not null;type:text;uniqueIndex:idx_dead_letters_position,priority:1"`
	BlockNumber     uint64    `gorm:"column:block_number;not null;type:bigint;uniqueIndex:idx_dead_letters_position,priority:2"`
	LogIndex        uint      `gorm:"column:log_index;not null;type:integer;uniqueIndex:idx_dead_letters_position,priority:3"`
	TxHash          string    `gorm:"column:tx_hash;not null;type:text;default:''"`
	Topic0          string    `gorm:"column:topic0;not null;type:text;default:''"`
	Data            string    `gorm:"column:data;not null;type:text;default:''"`
	Reason          string    `gorm:"column:reason;not null;type:text"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

func (DeadLetter) TableName() string {
	return "dead_letters"
}
