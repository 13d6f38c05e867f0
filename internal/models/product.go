package models

import "time"

// Product represents a tracked product line
type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// GitLab issue the product was originally imported from, used by the
	// migration pipeline to re-match product references on re-runs.
	GitlabIssueID *int64 `gorm:"index" json:"gitlab_issue_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}
