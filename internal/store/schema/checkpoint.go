package schema

import "time"

// Checkpoint represents the checkpoints table - the last fully ingested block per listener
type Checkpoint struct {
	ListenerID  string    `gorm:"column:listener_id;primaryKey;type:text"`
	BlockNumber uint64    `gorm:"column:block_number;not null;type:bigint"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

func (Checkpoint) TableName() string {
	return "checkpoints"
}
