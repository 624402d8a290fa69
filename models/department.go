package models

import "time"

type Department struct {
	DepartmentID int        `gorm:"primaryKey;column:department_id" json:"department_id"`
	Name         string     `gorm:"column:name" json:"name"`
	Code         string     `gorm:"column:code;unique" json:"code"`
	ParentID     *int       `gorm:"column:parent_id" json:"parent_id,omitempty"`
	Phone        *string    `gorm:"column:phone" json:"phone,omitempty"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// Assignment roles for the document/department join table.
const (
	DepartmentRolePrimary       = "PRIMARY"
	DepartmentRoleCollaborating = "COLLABORATING"
)

// DocumentDepartment links a document to a department that processes it.
// At most one PRIMARY row may exist per document; COLLABORATING rows form a set.
type DocumentDepartment struct {
	ID           int       `gorm:"primaryKey;column:id" json:"id"`
	DocumentID   int       `gorm:"column:document_id" json:"document_id"`
	DepartmentID int       `gorm:"column:department_id" json:"department_id"`
	Role         string    `gorm:"column:role" json:"role"`
	AssignedAt   time.Time `gorm:"column:assigned_at" json:"assigned_at"`

	Department Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// TableName overrides
func (Department) TableName() string {
	return "departments"
}

func (DocumentDepartment) TableName() string {
	return "document_departments"
}
