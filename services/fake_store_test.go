package services

import (
	"errors"
	"time"

	"document-flow-api/models"
)

// fakeStore is an in-memory WorkflowStore. InTransaction snapshots state and
// restores it when the callback fails, mirroring a database rollback.
type fakeStore struct {
	docs        map[int]*models.Document
	history     []models.DocumentHistory
	assignments []models.DocumentDepartment
	assignees   []models.DocumentAssignee
	users       map[int]*models.User
	departments map[int]*models.Department

	nextDocID     int
	nextHistoryID int

	failAppendHistory bool
	conflictOnSave    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:        make(map[int]*models.Document),
		users:       make(map[int]*models.User),
		departments: make(map[int]*models.Department),
		nextDocID:   1,
	}
}

func (f *fakeStore) addDocument(id int, kind string, status models.DocumentStatus) *models.Document {
	doc := &models.Document{
		DocumentID:     id,
		DocumentKind:   kind,
		DocumentNumber: "123/CV",
		Title:          "Test document",
		Status:         status,
	}
	f.docs[id] = doc
	if id >= f.nextDocID {
		f.nextDocID = id + 1
	}
	return doc
}

func (f *fakeStore) addUser(id int, roleNames ...string) *models.User {
	roles := make([]models.Role, 0, len(roleNames))
	for i, name := range roleNames {
		roles = append(roles, models.Role{RoleID: i + 1, Name: name})
	}
	u := &models.User{UserID: id, FullName: "User", Roles: roles, IsActive: true}
	f.users[id] = u
	return u
}

func (f *fakeStore) addDepartment(id int, name string) *models.Department {
	d := &models.Department{DepartmentID: id, Name: name}
	f.departments[id] = d
	return d
}

func copyDoc(doc *models.Document) *models.Document {
	clone := *doc
	return &clone
}

func (f *fakeStore) Document(id int) (*models.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return copyDoc(doc), nil
}

func (f *fakeStore) CreateDocument(doc *models.Document) error {
	doc.DocumentID = f.nextDocID
	f.nextDocID++
	now := time.Now()
	doc.CreateAt = &now
	f.docs[doc.DocumentID] = copyDoc(doc)
	return nil
}

func (f *fakeStore) SaveDocumentStatus(doc *models.Document) error {
	stored, ok := f.docs[doc.DocumentID]
	if !ok {
		return ErrDocumentNotFound
	}
	if f.conflictOnSave || stored.Version != doc.Version {
		return ErrVersionConflict
	}
	stored.Status = doc.Status
	stored.ProcessDeadline = doc.ProcessDeadline
	stored.RegisterNumber = doc.RegisterNumber
	stored.Version++
	doc.Version++
	return nil
}

func (f *fakeStore) DocumentNumberExists(kind, number string) (bool, error) {
	for _, doc := range f.docs {
		if doc.DocumentKind == kind && doc.DocumentNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) AppendHistory(h *models.DocumentHistory) error {
	if f.failAppendHistory {
		return errors.New("history insert failed")
	}
	f.nextHistoryID++
	h.HistoryID = f.nextHistoryID
	f.history = append(f.history, *h)
	return nil
}

func (f *fakeStore) History(docID int) ([]models.DocumentHistory, error) {
	// newest first
	var out []models.DocumentHistory
	for i := len(f.history) - 1; i >= 0; i-- {
		if f.history[i].DocumentID == docID {
			out = append(out, f.history[i])
		}
	}
	return out, nil
}

func (f *fakeStore) UpsertPrimaryDepartment(docID, departmentID int) error {
	kept := f.assignments[:0]
	for _, a := range f.assignments {
		if a.DocumentID == docID && a.Role == models.DepartmentRolePrimary {
			continue
		}
		kept = append(kept, a)
	}
	f.assignments = append(kept, models.DocumentDepartment{
		DocumentID:   docID,
		DepartmentID: departmentID,
		Role:         models.DepartmentRolePrimary,
		AssignedAt:   time.Now(),
	})
	return nil
}

func (f *fakeStore) ReplaceCollaboratingDepartments(docID int, departmentIDs []int) error {
	kept := f.assignments[:0]
	for _, a := range f.assignments {
		if a.DocumentID == docID && a.Role == models.DepartmentRoleCollaborating {
			continue
		}
		kept = append(kept, a)
	}
	f.assignments = kept
	for _, id := range departmentIDs {
		f.assignments = append(f.assignments, models.DocumentDepartment{
			DocumentID:   docID,
			DepartmentID: id,
			Role:         models.DepartmentRoleCollaborating,
			AssignedAt:   time.Now(),
		})
	}
	return nil
}

func (f *fakeStore) PrimaryDepartment(docID int) (*models.Department, error) {
	for _, a := range f.assignments {
		if a.DocumentID == docID && a.Role == models.DepartmentRolePrimary {
			if d, ok := f.departments[a.DepartmentID]; ok {
				return d, nil
			}
			return &models.Department{DepartmentID: a.DepartmentID}, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CollaboratingDepartments(docID int) ([]models.Department, error) {
	var out []models.Department
	for _, a := range f.assignments {
		if a.DocumentID == docID && a.Role == models.DepartmentRoleCollaborating {
			if d, ok := f.departments[a.DepartmentID]; ok {
				out = append(out, *d)
			} else {
				out = append(out, models.Department{DepartmentID: a.DepartmentID})
			}
		}
	}
	return out, nil
}

func (f *fakeStore) AddAssignee(a *models.DocumentAssignee) error {
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now()
	}
	f.assignees = append(f.assignees, *a)
	return nil
}

func (f *fakeStore) Assignees(docID int) ([]models.User, error) {
	// most recent first (insertion order reversed)
	var out []models.User
	for i := len(f.assignees) - 1; i >= 0; i-- {
		if f.assignees[i].DocumentID == docID {
			if u, ok := f.users[f.assignees[i].UserID]; ok {
				out = append(out, *u)
			} else {
				out = append(out, models.User{UserID: f.assignees[i].UserID})
			}
		}
	}
	return out, nil
}

func (f *fakeStore) User(id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeStore) Department(id int) (*models.Department, error) {
	d, ok := f.departments[id]
	if !ok {
		return nil, ErrDepartmentNotFound
	}
	return d, nil
}

func (f *fakeStore) snapshot() *fakeStore {
	clone := &fakeStore{
		docs:          make(map[int]*models.Document, len(f.docs)),
		history:       append([]models.DocumentHistory(nil), f.history...),
		assignments:   append([]models.DocumentDepartment(nil), f.assignments...),
		assignees:     append([]models.DocumentAssignee(nil), f.assignees...),
		users:         f.users,
		departments:   f.departments,
		nextDocID:     f.nextDocID,
		nextHistoryID: f.nextHistoryID,
	}
	for id, doc := range f.docs {
		clone.docs[id] = copyDoc(doc)
	}
	return clone
}

func (f *fakeStore) restore(snap *fakeStore) {
	f.docs = snap.docs
	f.history = snap.history
	f.assignments = snap.assignments
	f.assignees = snap.assignees
	f.nextDocID = snap.nextDocID
	f.nextHistoryID = snap.nextHistoryID
}

func (f *fakeStore) InTransaction(fn func(WorkflowStore) error) error {
	snap := f.snapshot()
	if err := fn(f); err != nil {
		f.restore(snap)
		return err
	}
	return nil
}
