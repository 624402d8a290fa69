package models

import "time"

// DocumentType classifies documents (công văn, quyết định, kế hoạch, ...).
type DocumentType struct {
	DocumentTypeID int        `gorm:"primaryKey;column:document_type_id" json:"document_type_id"`
	Name           string     `gorm:"column:name" json:"name"`
	Code           string     `gorm:"column:code;unique" json:"code"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (DocumentType) TableName() string {
	return "document_types"
}
