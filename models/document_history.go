package models

import "time"

// DocumentHistory is the append-only workflow ledger. Rows are written inside
// the same transaction as the status change they record and never updated.
// Statuses are stored as stable string codes, not ordinals.
type DocumentHistory struct {
	HistoryID      int        `gorm:"primaryKey;column:history_id" json:"history_id"`
	DocumentID     int        `gorm:"column:document_id" json:"document_id"`
	Action         string     `gorm:"column:action" json:"action"`
	PreviousStatus *string    `gorm:"column:previous_status" json:"previous_status,omitempty"`
	NewStatus      string     `gorm:"column:new_status" json:"new_status"`
	Comments       *string    `gorm:"column:comments" json:"comments,omitempty"`
	AttachmentPath *string    `gorm:"column:attachment_path" json:"attachment_path,omitempty"`
	PerformedBy    int        `gorm:"column:performed_by" json:"performed_by"`
	AssignedTo     *int       `gorm:"column:assigned_to" json:"assigned_to,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`

	// Relations (users are referenced, never owned by history rows)
	Performer      *User `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
	AssignedToUser *User `gorm:"foreignKey:AssignedTo" json:"assigned_to_user,omitempty"`

	PreviousStatusDisplay string `gorm:"-" json:"previous_status_display,omitempty"`
	NewStatusDisplay      string `gorm:"-" json:"new_status_display,omitempty"`
}

// TableName specifies the table for DocumentHistory.
func (DocumentHistory) TableName() string {
	return "document_history"
}

// FillStatusDisplays resolves the stored status codes to display names.
func (h *DocumentHistory) FillStatusDisplays() {
	if h.PreviousStatus != nil {
		if s, err := ParseStatus(*h.PreviousStatus); err == nil {
			h.PreviousStatusDisplay = s.DisplayName()
		}
	}
	if s, err := ParseStatus(h.NewStatus); err == nil {
		h.NewStatusDisplay = s.DisplayName()
	}
}
