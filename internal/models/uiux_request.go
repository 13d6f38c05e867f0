package models

import (
	"time"

	"gorm.io/datatypes"
)

// UiUxRequest represents a UI/UX change request
type UiUxRequest struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	ProductID   *uint   `gorm:"index" json:"product_id,omitempty"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Priority    *string `gorm:"type:varchar(20)" json:"priority,omitempty"`
	Status      string  `gorm:"type:varchar(50);default:'todo'" json:"status"`
	Step        string  `gorm:"type:varchar(100)" json:"step"`
	Assignee    string  `gorm:"type:varchar(255)" json:"assignee"`
	Requestor   string  `gorm:"type:varchar(255)" json:"requestor"`

	DueDate              *time.Time `json:"due_date,omitempty"`
	CompletionPercentage int        `gorm:"default:0" json:"completion_percentage"`

	Tags          datatypes.JSON `gorm:"type:jsonb" json:"tags,omitempty"`
	GitlabTickets datatypes.JSON `gorm:"type:jsonb" json:"gitlab_tickets,omitempty"`

	// Immutable source identifier, stamped for traceability and re-matching.
	GitlabNoteID *int64 `gorm:"index" json:"gitlab_note_id,omitempty"`

	CreatedBy string    `gorm:"type:varchar(255)" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName specifies the table name
func (UiUxRequest) TableName() string {
	return "uiux_requests"
}
