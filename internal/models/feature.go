package models

import (
	"time"

	"gorm.io/datatypes"
)

// Feature represents a product feature tracked through its lifecycle
type Feature struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	ProductID       *uint    `gorm:"index" json:"product_id,omitempty"`
	Title           string   `gorm:"not null" json:"title"`
	Overview        string   `gorm:"type:text" json:"overview"`
	CurrentProblems string   `gorm:"type:text" json:"current_problems"`
	Requirements    string   `gorm:"type:text" json:"requirements"`
	Priority        string   `gorm:"type:varchar(20);default:'medium'" json:"priority"`
	Estimate        *float64 `json:"estimate,omitempty"` // in days
	Status          string   `gorm:"type:varchar(50);default:'pending'" json:"status"`
	Requestor       string   `gorm:"type:varchar(255)" json:"requestor"`

	// Immutable source identifiers. Stamped on every migrated row so it can
	// be traced back and re-matched on re-runs.
	GitlabIssueID   *int64 `gorm:"index" json:"gitlab_issue_id,omitempty"`
	GitlabIssueIID  *int64 `json:"gitlab_issue_iid,omitempty"`
	GitlabProjectID *int64 `json:"gitlab_project_id,omitempty"`
	GitlabNoteID    *int64 `gorm:"index" json:"gitlab_note_id,omitempty"`

	// Front-matter attributes as found in the source body, kept verbatim.
	RawMetadata datatypes.JSON `gorm:"type:jsonb" json:"raw_metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Product   *Product          `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Platforms []FeaturePlatform `gorm:"foreignKey:FeatureID" json:"platforms,omitempty"`
}

// TableName specifies the table name
func (Feature) TableName() string {
	return "features"
}

// FeaturePlatform is a (feature, platform) join row. The set is fully
// replaced on every update to the parent feature, never diffed.
type FeaturePlatform struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FeatureID uint   `gorm:"not null;index" json:"feature_id"`
	Platform  string `gorm:"type:varchar(50);not null" json:"platform"`
}

// TableName specifies the table name
func (FeaturePlatform) TableName() string {
	return "feature_platforms"
}
