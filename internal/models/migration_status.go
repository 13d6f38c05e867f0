package models

import "time"

// Migration status values
const (
	MigrationPending   = "pending"
	MigrationCompleted = "completed"
	MigrationFailed    = "failed"
)

// Entity types tracked by the migration ledger
const (
	EntityFeature     = "feature"
	EntityUiUxRequest = "uiux_request"
)

// MigrationStatus tracks the migration outcome of one source record.
// One row per (entity_type, gitlab_id); re-runs mutate the row in place.
type MigrationStatus struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	EntityType   string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_entity_gitlab" json:"entity_type"`
	GitlabID     int64      `gorm:"not null;uniqueIndex:idx_entity_gitlab" json:"gitlab_id"`
	PostgresID   *uint      `json:"postgres_id,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ErrorMessage *string    `gorm:"type:text" json:"error_message,omitempty"`
	MigratedAt   *time.Time `json:"migrated_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TableName specifies the table name
func (MigrationStatus) TableName() string {
	return "migration_status"
}
