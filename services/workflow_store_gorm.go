package services

import (
	"errors"
	"time"

	"document-flow-api/models"

	"gorm.io/gorm"
)

// GormWorkflowStore implements WorkflowStore on top of GORM/MySQL.
type GormWorkflowStore struct {
	db *gorm.DB
}

func NewGormWorkflowStore(db *gorm.DB) *GormWorkflowStore {
	return &GormWorkflowStore{db: db}
}

func (s *GormWorkflowStore) Document(id int) (*models.Document, error) {
	var doc models.Document
	err := s.db.Preload("DocumentType").
		Where("document_id = ? AND delete_at IS NULL", id).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (s *GormWorkflowStore) CreateDocument(doc *models.Document) error {
	now := time.Now()
	doc.CreateAt = &now
	doc.UpdateAt = &now
	return s.db.Create(doc).Error
}

func (s *GormWorkflowStore) SaveDocumentStatus(doc *models.Document) error {
	now := time.Now()
	result := s.db.Model(&models.Document{}).
		Where("document_id = ? AND version = ?", doc.DocumentID, doc.Version).
		Updates(map[string]interface{}{
			"status_code":      doc.Status,
			"process_deadline": doc.ProcessDeadline,
			"register_number":  doc.RegisterNumber,
			"version":          doc.Version + 1,
			"update_at":        now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	doc.Version++
	doc.UpdateAt = &now
	return nil
}

func (s *GormWorkflowStore) DocumentNumberExists(kind, number string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Document{}).
		Where("document_kind = ? AND document_number = ? AND delete_at IS NULL", kind, number).
		Count(&count).Error
	return count > 0, err
}

func (s *GormWorkflowStore) AppendHistory(h *models.DocumentHistory) error {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	return s.db.Create(h).Error
}

func (s *GormWorkflowStore) History(docID int) ([]models.DocumentHistory, error) {
	var rows []models.DocumentHistory
	err := s.db.Preload("Performer").Preload("AssignedToUser").
		Where("document_id = ?", docID).
		Order("created_at DESC, history_id DESC").
		Find(&rows).Error
	return rows, err
}

func (s *GormWorkflowStore) UpsertPrimaryDepartment(docID, departmentID int) error {
	// Delete-then-insert keeps the at-most-one-PRIMARY invariant without
	// relying on a database constraint.
	if err := s.db.Where("document_id = ? AND role = ?", docID, models.DepartmentRolePrimary).
		Delete(&models.DocumentDepartment{}).Error; err != nil {
		return err
	}
	row := models.DocumentDepartment{
		DocumentID:   docID,
		DepartmentID: departmentID,
		Role:         models.DepartmentRolePrimary,
		AssignedAt:   time.Now(),
	}
	return s.db.Create(&row).Error
}

func (s *GormWorkflowStore) ReplaceCollaboratingDepartments(docID int, departmentIDs []int) error {
	if err := s.db.Where("document_id = ? AND role = ?", docID, models.DepartmentRoleCollaborating).
		Delete(&models.DocumentDepartment{}).Error; err != nil {
		return err
	}
	now := time.Now()
	for _, deptID := range departmentIDs {
		row := models.DocumentDepartment{
			DocumentID:   docID,
			DepartmentID: deptID,
			Role:         models.DepartmentRoleCollaborating,
			AssignedAt:   now,
		}
		if err := s.db.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *GormWorkflowStore) PrimaryDepartment(docID int) (*models.Department, error) {
	var row models.DocumentDepartment
	err := s.db.Preload("Department").
		Where("document_id = ? AND role = ?", docID, models.DepartmentRolePrimary).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row.Department, nil
}

func (s *GormWorkflowStore) CollaboratingDepartments(docID int) ([]models.Department, error) {
	var rows []models.DocumentDepartment
	err := s.db.Preload("Department").
		Where("document_id = ? AND role = ?", docID, models.DepartmentRoleCollaborating).
		Order("assigned_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	departments := make([]models.Department, 0, len(rows))
	for _, row := range rows {
		departments = append(departments, row.Department)
	}
	return departments, nil
}

func (s *GormWorkflowStore) AddAssignee(a *models.DocumentAssignee) error {
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now()
	}
	return s.db.Create(a).Error
}

func (s *GormWorkflowStore) Assignees(docID int) ([]models.User, error) {
	var rows []models.DocumentAssignee
	err := s.db.Preload("User").
		Where("document_id = ?", docID).
		Order("assigned_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.User)
	}
	return users, nil
}

func (s *GormWorkflowStore) User(id int) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Roles").Preload("Department").
		Where("user_id = ? AND delete_at IS NULL", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormWorkflowStore) Department(id int) (*models.Department, error) {
	var dept models.Department
	err := s.db.Where("department_id = ? AND delete_at IS NULL", id).First(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return &dept, nil
}

func (s *GormWorkflowStore) InTransaction(fn func(WorkflowStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormWorkflowStore{db: tx})
	})
}
