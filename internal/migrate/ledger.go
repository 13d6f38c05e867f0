package migrate

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/prodboard/prodboard/internal/models"
)

// Ledger records migration outcomes per (entity_type, gitlab_id). It is the
// single source of truth for "has this record been done" and what makes the
// pipeline safe to re-run after a crash.
type Ledger struct {
	db *gorm.DB
}

// NewLedger creates a ledger against the given database handle
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Outcome is one migration attempt's result for a source record
type Outcome struct {
	PostgresID   *uint
	Status       string
	ErrorMessage string
}

// EntitySummary aggregates ledger counts for one entity type
type EntitySummary struct {
	EntityType string `json:"entity_type"`
	Total      int64  `json:"total"`
	Completed  int64  `json:"completed"`
	Failed     int64  `json:"failed"`
	Pending    int64  `json:"pending"`
}

// IsCompleted reports whether the record was already migrated successfully
func (l *Ledger) IsCompleted(entityType string, gitlabID int64) (bool, error) {
	var count int64
	err := l.db.Model(&models.MigrationStatus{}).
		Where("entity_type = ? AND gitlab_id = ? AND status = ?", entityType, gitlabID, models.MigrationCompleted).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// RecordOutcome upserts the ledger row for the given key. Implemented as
// find-then-create-or-update inside one transaction so the one-row-per-key
// invariant holds without a store-specific conflict clause. Calling it twice
// for the same key is idempotent: last write wins, no duplicate rows.
func (l *Ledger) RecordOutcome(entityType string, gitlabID int64, out Outcome) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		// migrated_at is set iff the outcome is completed, cleared otherwise
		var migratedAt *time.Time
		if out.Status == models.MigrationCompleted {
			now := time.Now().UTC()
			migratedAt = &now
		}

		var errMsg *string
		if out.ErrorMessage != "" {
			errMsg = &out.ErrorMessage
		}

		var existing models.MigrationStatus
		err := tx.Where("entity_type = ? AND gitlab_id = ?", entityType, gitlabID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.MigrationStatus{
				EntityType:   entityType,
				GitlabID:     gitlabID,
				PostgresID:   out.PostgresID,
				Status:       out.Status,
				ErrorMessage: errMsg,
				MigratedAt:   migratedAt,
			}).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&existing).Updates(map[string]interface{}{
			"postgres_id":   out.PostgresID,
			"status":        out.Status,
			"error_message": errMsg,
			"migrated_at":   migratedAt,
		}).Error
	})
}

// ResetEntityType bulk-deletes all ledger rows for one entity type and
// returns the number of rows removed.
func (l *Ledger) ResetEntityType(entityType string) (int64, error) {
	result := l.db.Where("entity_type = ?", entityType).Delete(&models.MigrationStatus{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reset %s migrations: %w", entityType, result.Error)
	}
	return result.RowsAffected, nil
}

// SummaryByEntityType aggregates ledger counts for observability
func (l *Ledger) SummaryByEntityType() ([]EntitySummary, error) {
	var rows []EntitySummary
	err := l.db.Model(&models.MigrationStatus{}).
		Select(`entity_type,
			COUNT(*) AS total,
			SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END) AS completed,
			SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END) AS failed,
			SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END) AS pending`).
		Group("entity_type").
		Order("entity_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate migration status: %w", err)
	}
	return rows, nil
}
