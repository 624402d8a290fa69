package services

import (
	"strings"
	"time"

	"document-flow-api/models"
)

// DocumentInput is the payload for workflow-level document creation.
type DocumentInput struct {
	DocumentNumber  string
	Title           string
	Summary         *string
	DocumentTypeID  *int
	Urgency         *string
	Confidentiality *string
	IssuingAgency   *string
	IssuedDate      *time.Time
	ReceivedDate    *time.Time
	ProcessDeadline *time.Time
}

// FullIncomingInput extends DocumentInput with optional routing performed in
// the same unit of work as the creation.
type FullIncomingInput struct {
	DocumentInput
	PrimaryDepartmentID        *int
	CollaboratingDepartmentIDs []int
	Comments                   string
}

func (in *DocumentInput) validate() error {
	if strings.TrimSpace(in.DocumentNumber) == "" {
		return newValidationError("document number is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return newValidationError("title is required")
	}
	return nil
}

// CreateStandaloneOutgoingDocument initializes the workflow for an outgoing
// document that has no incoming origin. Any authenticated actor may create.
func (s *WorkflowService) CreateStandaloneOutgoingDocument(in DocumentInput, actor *models.User) (*models.Document, error) {
	if actor == nil {
		return nil, &ForbiddenError{Action: ActionCreateDocument}
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	exists, err := s.store.DocumentNumberExists(models.DocumentKindOutgoing, in.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, newValidationError("a document with number '%s' already exists", in.DocumentNumber)
	}

	doc := newDocumentFromInput(in, models.DocumentKindOutgoing, actor)

	err = s.store.InTransaction(func(tx WorkflowStore) error {
		if err := tx.CreateDocument(doc); err != nil {
			return err
		}
		status := string(models.StatusDraft)
		return tx.AppendHistory(&models.DocumentHistory{
			DocumentID:  doc.DocumentID,
			Action:      ActionCreateDocument,
			NewStatus:   status,
			PerformedBy: actor.UserID,
			CreatedAt:   time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	doc.StatusDisplay = doc.Status.DisplayName()
	return doc, nil
}

// CreateFullIncomingDocument performs, as one unit, duplicate-number check,
// document creation, register entry and (when a primary department is given)
// distribution. Creation, registration and distribution commit or roll back
// together; attachment upload happens afterwards at the boundary and never
// rolls the document back.
func (s *WorkflowService) CreateFullIncomingDocument(in FullIncomingInput, actor *models.User) (*models.Document, error) {
	if actor == nil {
		return nil, &ForbiddenError{Action: ActionCreateDocument}
	}
	if !clerkRoles.Allows(actor) {
		return nil, &ForbiddenError{Action: ActionRegisterIncoming, Required: clerkRoles.Names()}
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	exists, err := s.store.DocumentNumberExists(models.DocumentKindIncoming, in.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, newValidationError("a document with number '%s' already exists", in.DocumentNumber)
	}

	if in.PrimaryDepartmentID != nil {
		if _, err := s.store.Department(*in.PrimaryDepartmentID); err != nil {
			return nil, err
		}
	}
	collabs := dedupIDs(in.CollaboratingDepartmentIDs)
	for _, id := range collabs {
		if _, err := s.store.Department(id); err != nil {
			return nil, err
		}
	}

	doc := newDocumentFromInput(in.DocumentInput, models.DocumentKindIncoming, actor)

	err = s.store.InTransaction(func(tx WorkflowStore) error {
		if err := tx.CreateDocument(doc); err != nil {
			return err
		}

		now := time.Now()
		draft := string(models.StatusDraft)
		registered := string(models.StatusRegistered)
		comments := strings.TrimSpace(in.Comments)

		doc.Status = models.StatusRegistered
		if err := tx.SaveDocumentStatus(doc); err != nil {
			return err
		}
		register := &models.DocumentHistory{
			DocumentID:     doc.DocumentID,
			Action:         ActionRegisterIncoming,
			PreviousStatus: &draft,
			NewStatus:      registered,
			PerformedBy:    actor.UserID,
			CreatedAt:      now,
		}
		if comments != "" {
			register.Comments = &comments
		}
		if err := tx.AppendHistory(register); err != nil {
			return err
		}

		if in.PrimaryDepartmentID == nil {
			return nil
		}

		if err := tx.UpsertPrimaryDepartment(doc.DocumentID, *in.PrimaryDepartmentID); err != nil {
			return err
		}
		if collabs != nil {
			if err := tx.ReplaceCollaboratingDepartments(doc.DocumentID, collabs); err != nil {
				return err
			}
		}
		doc.Status = models.StatusDistributed
		if err := tx.SaveDocumentStatus(doc); err != nil {
			return err
		}
		distributed := string(models.StatusDistributed)
		distribute := &models.DocumentHistory{
			DocumentID:     doc.DocumentID,
			Action:         ActionDistribute,
			PreviousStatus: &registered,
			NewStatus:      distributed,
			PerformedBy:    actor.UserID,
			CreatedAt:      now,
		}
		if comments != "" {
			distribute.Comments = &comments
		}
		return tx.AppendHistory(distribute)
	})
	if err != nil {
		return nil, err
	}

	doc.StatusDisplay = doc.Status.DisplayName()
	return doc, nil
}

func newDocumentFromInput(in DocumentInput, kind string, actor *models.User) *models.Document {
	return &models.Document{
		DocumentKind:    kind,
		DocumentNumber:  strings.TrimSpace(in.DocumentNumber),
		Title:           strings.TrimSpace(in.Title),
		Summary:         in.Summary,
		DocumentTypeID:  in.DocumentTypeID,
		Urgency:         in.Urgency,
		Confidential:    in.Confidentiality,
		IssuingAgency:   in.IssuingAgency,
		IssuedDate:      in.IssuedDate,
		ReceivedDate:    in.ReceivedDate,
		ProcessDeadline: in.ProcessDeadline,
		Status:          models.StatusDraft,
		CreatedBy:       actor.UserID,
	}
}
