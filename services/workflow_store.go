package services

import "document-flow-api/models"

// WorkflowStore is the persistence surface the workflow engine depends on.
// The production implementation wraps GORM; tests substitute an in-memory
// fake. InTransaction must run the callback against a store whose writes
// commit or roll back as a unit.
type WorkflowStore interface {
	Document(id int) (*models.Document, error)
	CreateDocument(doc *models.Document) error
	// SaveDocumentStatus persists status, deadline and register number under
	// optimistic locking; a stale version yields ErrVersionConflict.
	SaveDocumentStatus(doc *models.Document) error
	DocumentNumberExists(kind, number string) (bool, error)

	AppendHistory(h *models.DocumentHistory) error
	History(docID int) ([]models.DocumentHistory, error)

	UpsertPrimaryDepartment(docID, departmentID int) error
	ReplaceCollaboratingDepartments(docID int, departmentIDs []int) error
	PrimaryDepartment(docID int) (*models.Department, error)
	CollaboratingDepartments(docID int) ([]models.Department, error)

	AddAssignee(a *models.DocumentAssignee) error
	Assignees(docID int) ([]models.User, error)

	User(id int) (*models.User, error)
	Department(id int) (*models.Department, error)

	InTransaction(fn func(WorkflowStore) error) error
}
