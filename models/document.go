package models

import "time"

// Document kinds. Incoming, outgoing and internal documents share one table
// and one workflow status column; kind-specific fields are nullable.
const (
	DocumentKindIncoming = "incoming"
	DocumentKindOutgoing = "outgoing"
	DocumentKindInternal = "internal"
)

type Document struct {
	DocumentID     int            `gorm:"primaryKey;column:document_id" json:"document_id"`
	DocumentKind   string         `gorm:"column:document_kind" json:"document_kind"`
	DocumentNumber string         `gorm:"column:document_number" json:"document_number"`
	Title          string         `gorm:"column:title" json:"title"`
	Summary        *string        `gorm:"column:summary" json:"summary,omitempty"`
	DocumentTypeID *int           `gorm:"column:document_type_id" json:"document_type_id,omitempty"`
	Urgency        *string        `gorm:"column:urgency" json:"urgency,omitempty"`
	Confidential   *string        `gorm:"column:confidentiality" json:"confidentiality,omitempty"`
	IssuingAgency  *string        `gorm:"column:issuing_agency" json:"issuing_agency,omitempty"`
	IssuedDate     *time.Time     `gorm:"column:issued_date" json:"issued_date,omitempty"`
	ReceivedDate   *time.Time     `gorm:"column:received_date" json:"received_date,omitempty"`
	RegisterNumber *int           `gorm:"column:register_number" json:"register_number,omitempty"`
	Status         DocumentStatus `gorm:"column:status_code" json:"status"`
	ProcessDeadline *time.Time    `gorm:"column:process_deadline" json:"process_deadline,omitempty"`
	// Version guards concurrent workflow writes (optimistic locking).
	Version   int        `gorm:"column:version" json:"version"`
	CreatedBy int        `gorm:"column:created_by" json:"created_by"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	DocumentType *DocumentType `gorm:"foreignKey:DocumentTypeID" json:"document_type,omitempty"`
	Creator      *User         `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`

	// StatusDisplay is filled for responses, not persisted.
	StatusDisplay string `gorm:"-" json:"status_display,omitempty"`
}

// DocumentAssignee links a document to a user responsible for it at the
// current stage. Ordering by assigned_at DESC yields most-recent-first.
type DocumentAssignee struct {
	ID         int       `gorm:"primaryKey;column:id" json:"id"`
	DocumentID int       `gorm:"column:document_id" json:"document_id"`
	UserID     int       `gorm:"column:user_id" json:"user_id"`
	AssignedBy int       `gorm:"column:assigned_by" json:"assigned_by"`
	AssignedAt time.Time `gorm:"column:assigned_at" json:"assigned_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// DocumentAttachment is a stored file belonging to a document.
type DocumentAttachment struct {
	AttachmentID int        `gorm:"primaryKey;column:attachment_id" json:"attachment_id"`
	DocumentID   int        `gorm:"column:document_id" json:"document_id"`
	OriginalName string     `gorm:"column:original_name" json:"original_name"`
	StoredPath   string     `gorm:"column:stored_path" json:"stored_path"`
	FileSize     int64      `gorm:"column:file_size" json:"file_size"`
	MimeType     string     `gorm:"column:mime_type" json:"mime_type"`
	UploadedBy   int        `gorm:"column:uploaded_by" json:"uploaded_by"`
	UploadedAt   time.Time  `gorm:"column:uploaded_at" json:"uploaded_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (Document) TableName() string {
	return "documents"
}

func (DocumentAssignee) TableName() string {
	return "document_assignees"
}

func (DocumentAttachment) TableName() string {
	return "document_attachments"
}
