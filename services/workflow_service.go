package services

import (
	"strings"
	"time"

	"document-flow-api/models"
)

// WorkflowService is the document workflow engine. It validates role gates
// and status transitions, mutates document status, and appends exactly one
// history row per successful operation. The acting user is always passed
// explicitly; the engine never consults ambient request state.
type WorkflowService struct {
	store WorkflowStore
}

func NewWorkflowService(store WorkflowStore) *WorkflowService {
	return &WorkflowService{store: store}
}

// transitionExtras carries optional side effects applied inside the same
// transaction as the status change.
type transitionExtras struct {
	attachmentPath *string
	assignedTo     *int
	deadline       *time.Time
	inTx           func(tx WorkflowStore, doc *models.Document) error
}

// applyTransition runs the shared transition pipeline: load, gate by role,
// gate by source status, then atomically update status and append history.
func (s *WorkflowService) applyTransition(docID int, actor *models.User, action, comments string, extras transitionExtras) (*models.Document, *models.DocumentHistory, error) {
	t, ok := transitionTable[action]
	if !ok {
		return nil, nil, newValidationError("unknown workflow action '%s'", action)
	}

	doc, err := s.store.Document(docID)
	if err != nil {
		return nil, nil, err
	}

	if !t.Roles.Allows(actor) {
		return nil, nil, &ForbiddenError{Action: action, Required: t.Roles.Names()}
	}

	if !t.statusAllows(doc.Status) {
		return nil, nil, &InvalidTransitionError{Action: action, From: doc.Status, To: t.To}
	}

	history := newHistoryRecord(doc, action, t.To, actor, comments, extras)

	err = s.store.InTransaction(func(tx WorkflowStore) error {
		doc.Status = t.To
		if extras.deadline != nil {
			doc.ProcessDeadline = extras.deadline
		}
		if err := tx.SaveDocumentStatus(doc); err != nil {
			return err
		}
		if extras.inTx != nil {
			if err := extras.inTx(tx, doc); err != nil {
				return err
			}
		}
		return tx.AppendHistory(history)
	})
	if err != nil {
		return nil, nil, err
	}

	doc.StatusDisplay = doc.Status.DisplayName()
	return doc, history, nil
}

func newHistoryRecord(doc *models.Document, action string, newStatus models.DocumentStatus, actor *models.User, comments string, extras transitionExtras) *models.DocumentHistory {
	prev := string(doc.Status)
	h := &models.DocumentHistory{
		DocumentID:     doc.DocumentID,
		Action:         action,
		PreviousStatus: &prev,
		NewStatus:      string(newStatus),
		PerformedBy:    actor.UserID,
		AssignedTo:     extras.assignedTo,
		AttachmentPath: extras.attachmentPath,
		CreatedAt:      time.Now(),
	}
	if trimmed := strings.TrimSpace(comments); trimmed != "" {
		h.Comments = &trimmed
	}
	return h
}

// RegisterIncoming records an incoming document into the register
// (DRAFT -> REGISTERED). Clerk only.
func (s *WorkflowService) RegisterIncoming(docID int, actor *models.User, comments string) (*models.Document, error) {
	doc, _, err := s.applyTransition(docID, actor, ActionRegisterIncoming, comments, transitionExtras{})
	return doc, err
}

// PublishOutgoing issues the document (-> PUBLISHED). Clerk only.
func (s *WorkflowService) PublishOutgoing(docID int, actor *models.User, comments string) (*models.Document, error) {
	doc, _, err := s.applyTransition(docID, actor, ActionPublishOutgoing, comments, transitionExtras{})
	return doc, err
}

// Distribute routes a document to departments (-> DISTRIBUTED).
//
// When primaryDepartmentID and collaboratingIDs are both absent this is the
// simple variant: the status moves without touching department assignments.
// Otherwise the primary row is upserted (at most one ever exists) and the
// collaborating set is replaced wholesale with the supplied list.
func (s *WorkflowService) Distribute(docID int, primaryDepartmentID *int, collaboratingIDs []int, actor *models.User, comments string) (*models.Document, error) {
	collaboratingIDs = dedupIDs(collaboratingIDs)

	if primaryDepartmentID != nil {
		if _, err := s.store.Department(*primaryDepartmentID); err != nil {
			return nil, err
		}
	}
	for _, id := range collaboratingIDs {
		if _, err := s.store.Department(id); err != nil {
			return nil, err
		}
	}

	extras := transitionExtras{}
	if primaryDepartmentID != nil || collaboratingIDs != nil {
		primary := primaryDepartmentID
		collabs := collaboratingIDs
		extras.inTx = func(tx WorkflowStore, doc *models.Document) error {
			if primary != nil {
				if err := tx.UpsertPrimaryDepartment(doc.DocumentID, *primary); err != nil {
					return err
				}
			}
			if collabs != nil {
				if err := tx.ReplaceCollaboratingDepartments(doc.DocumentID, collabs); err != nil {
					return err
				}
			}
			return nil
		}
	}

	doc, _, err := s.applyTransition(docID, actor, ActionDistribute, comments, extras)
	return doc, err
}

// Assign adds an assignee at the current stage without changing status.
func (s *WorkflowService) Assign(docID, assigneeID int, actor *models.User, comments string) (*models.DocumentHistory, error) {
	doc, err := s.store.Document(docID)
	if err != nil {
		return nil, err
	}
	assignee, err := s.store.User(assigneeID)
	if err != nil {
		return nil, err
	}

	prev := string(doc.Status)
	assignedTo := assignee.UserID
	history := &models.DocumentHistory{
		DocumentID:     doc.DocumentID,
		Action:         ActionAssign,
		PreviousStatus: &prev,
		NewStatus:      prev,
		PerformedBy:    actor.UserID,
		AssignedTo:     &assignedTo,
		CreatedAt:      time.Now(),
	}
	if trimmed := strings.TrimSpace(comments); trimmed != "" {
		history.Comments = &trimmed
	}

	err = s.store.InTransaction(func(tx WorkflowStore) error {
		if err := tx.AddAssignee(&models.DocumentAssignee{
			DocumentID: doc.DocumentID,
			UserID:     assignee.UserID,
			AssignedBy: actor.UserID,
		}); err != nil {
			return err
		}
		return tx.AppendHistory(history)
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

// AssignToSpecialist hands the document to a specialist for substantive
// processing (-> SPECIALIST_PROCESSING). Department heads only. The optional
// deadline is persisted on the document together with the status.
func (s *WorkflowService) AssignToSpecialist(docID, specialistID int, actor *models.User, comments string, deadline *time.Time) (*models.DocumentHistory, error) {
	specialist, err := s.store.User(specialistID)
	if err != nil {
		return nil, err
	}

	assignedTo := specialist.UserID
	extras := transitionExtras{
		assignedTo: &assignedTo,
		deadline:   deadline,
		inTx: func(tx WorkflowStore, doc *models.Document) error {
			return tx.AddAssignee(&models.DocumentAssignee{
				DocumentID: doc.DocumentID,
				UserID:     specialist.UserID,
				AssignedBy: actor.UserID,
			})
		},
	}

	_, history, err := s.applyTransition(docID, actor, ActionAssignSpecialist, comments, extras)
	if err != nil {
		return nil, err
	}
	return history, nil
}

// ForwardToLeadership routes the document up from the department tier
// (-> SUBMITTED_TO_LEADER). Department heads and admins.
func (s *WorkflowService) ForwardToLeadership(docID int, actor *models.User, comments string) (*models.Document, error) {
	doc, _, err := s.applyTransition(docID, actor, ActionForwardToLeadership, comments, transitionExtras{})
	return doc, err
}

// StartProcessing marks the assigned specialist as working on the document.
// The status stays in the processing stage; the action is still logged.
func (s *WorkflowService) StartProcessing(docID int, actor *models.User, comments string) (*models.Document, error) {
	doc, _, err := s.applyTransition(docID, actor, ActionStartProcessing, comments, transitionExtras{})
	return doc, err
}

// SubmitToLeadership is the specialist's hand-off upward
// (-> SUBMITTED_TO_LEADER).
func (s *WorkflowService) SubmitToLeadership(docID int, actor *models.User, comments string) (*models.Document, error) {
	doc, _, err := s.applyTransition(docID, actor, ActionSubmitToLeadership, comments, transitionExtras{})
	return doc, err
}

// StartReviewing marks leadership review as begun (-> LEADER_REVIEWING).
func (s *WorkflowService) StartReviewing(docID int, actor *models.User, comments string) (*models.Document, error) {
	doc, _, err := s.applyTransition(docID, actor, ActionStartReviewing, comments, transitionExtras{})
	return doc, err
}

// ProvideFeedback records leadership comments (-> LEADER_COMMENTED). Plain
// feedback is open to the whole leadership tier; attaching a file is limited
// to the director tier.
func (s *WorkflowService) ProvideFeedback(docID int, actor *models.User, comments string, attachmentPath *string) (*models.Document, error) {
	if attachmentPath != nil && !directorRoles.Allows(actor) {
		return nil, &ForbiddenError{Action: ActionProvideFeedback, Required: directorRoles.Names()}
	}
	doc, _, err := s.applyTransition(docID, actor, ActionProvideFeedback, comments, transitionExtras{attachmentPath: attachmentPath})
	return doc, err
}

// Approve is the director-tier approval (-> APPROVED).
func (s *WorkflowService) Approve(docID int, actor *models.User, comments string) (*models.Document, error) {
	doc, _, err := s.applyTransition(docID, actor, ActionApprove, comments, transitionExtras{})
	return doc, err
}

// RejectWithAttachment rejects the document (-> REJECTED). The rejection
// rationale file is mandatory and must already be persisted; the stored path
// goes into the history row.
func (s *WorkflowService) RejectWithAttachment(docID int, actor *models.User, comments, attachmentPath string) (*models.Document, error) {
	if strings.TrimSpace(attachmentPath) == "" {
		return nil, newValidationError("rejection requires an attachment")
	}
	doc, _, err := s.applyTransition(docID, actor, ActionReject, comments, transitionExtras{attachmentPath: &attachmentPath})
	return doc, err
}

// StartHeaderDepartmentReviewing begins the unit-commander review tier
// (-> HEADER_DEPARTMENT_REVIEWING).
func (s *WorkflowService) StartHeaderDepartmentReviewing(docID int, actor *models.User, comments string) (*models.Document, error) {
	doc, _, err := s.applyTransition(docID, actor, ActionStartHeaderDeptReviewing, comments, transitionExtras{})
	return doc, err
}

// CommentHeaderDepartment records unit-commander comments, optionally with a
// persisted attachment (-> HEADER_DEPARTMENT_COMMENTED).
func (s *WorkflowService) CommentHeaderDepartment(docID int, actor *models.User, comments string, attachmentPath *string) (*models.Document, error) {
	doc, _, err := s.applyTransition(docID, actor, ActionCommentHeaderDept, comments, transitionExtras{attachmentPath: attachmentPath})
	return doc, err
}

// ApproveHeaderDepartment is the unit-commander approval
// (-> HEADER_DEPARTMENT_APPROVED).
func (s *WorkflowService) ApproveHeaderDepartment(docID int, actor *models.User, comments string) (*models.Document, error) {
	doc, _, err := s.applyTransition(docID, actor, ActionApproveHeaderDept, comments, transitionExtras{})
	return doc, err
}

// RejectForFormatCorrection returns the document to its submitter for
// formatting fixes (-> FORMAT_CORRECTION). Clerk only; the guidance file is
// optional.
func (s *WorkflowService) RejectForFormatCorrection(docID int, actor *models.User, comments string, attachmentPath *string) (*models.Document, error) {
	doc, _, err := s.applyTransition(docID, actor, ActionRejectForFormatCorrection, comments, transitionExtras{attachmentPath: attachmentPath})
	return doc, err
}

// ResubmitAfterFormatCorrection signals the formatting was fixed
// (-> FORMAT_CORRECTED) so the clerk can issue a number and publish without
// re-routing through leadership. Also the recovery path out of REJECTED.
func (s *WorkflowService) ResubmitAfterFormatCorrection(docID int, actor *models.User, comments string) (*models.Document, error) {
	doc, _, err := s.applyTransition(docID, actor, ActionResubmitAfterCorrection, comments, transitionExtras{})
	return doc, err
}

// CanChangeStatus reports whether the state machine permits moving the
// document to the target status. True means allowed.
func (s *WorkflowService) CanChangeStatus(docID int, target models.DocumentStatus) (bool, error) {
	if !target.Valid() {
		return false, newValidationError("unknown document status code '%s'", target)
	}
	doc, err := s.store.Document(docID)
	if err != nil {
		return false, err
	}
	return statusEdges[doc.Status][target], nil
}

// ChangeStatus is the generic escape hatch: it moves the document along any
// edge the state machine declares, without per-action role gating beyond
// authentication.
func (s *WorkflowService) ChangeStatus(docID int, target models.DocumentStatus, actor *models.User, comments string) (*models.Document, error) {
	if !target.Valid() {
		return nil, newValidationError("unknown document status code '%s'", target)
	}
	doc, err := s.store.Document(docID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, &ForbiddenError{Action: ActionChangeStatus}
	}
	if !statusEdges[doc.Status][target] {
		return nil, &InvalidTransitionError{Action: ActionChangeStatus, From: doc.Status, To: target}
	}

	history := newHistoryRecord(doc, ActionChangeStatus, target, actor, comments, transitionExtras{})

	err = s.store.InTransaction(func(tx WorkflowStore) error {
		doc.Status = target
		if err := tx.SaveDocumentStatus(doc); err != nil {
			return err
		}
		return tx.AppendHistory(history)
	})
	if err != nil {
		return nil, err
	}
	doc.StatusDisplay = doc.Status.DisplayName()
	return doc, nil
}

// GetDocument returns the document with its display status filled.
func (s *WorkflowService) GetDocument(docID int) (*models.Document, error) {
	doc, err := s.store.Document(docID)
	if err != nil {
		return nil, err
	}
	doc.StatusDisplay = doc.Status.DisplayName()
	return doc, nil
}

// GetStatus returns the current workflow status of a document.
func (s *WorkflowService) GetStatus(docID int) (models.DocumentStatus, error) {
	doc, err := s.store.Document(docID)
	if err != nil {
		return "", err
	}
	return doc.Status, nil
}

// GetHistory returns the document's workflow ledger, newest first.
func (s *WorkflowService) GetHistory(docID int) ([]models.DocumentHistory, error) {
	if _, err := s.store.Document(docID); err != nil {
		return nil, err
	}
	rows, err := s.store.History(docID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].FillStatusDisplays()
	}
	return rows, nil
}

// GetAssignees returns the document's assignees, most recent first.
func (s *WorkflowService) GetAssignees(docID int) ([]models.User, error) {
	if _, err := s.store.Document(docID); err != nil {
		return nil, err
	}
	return s.store.Assignees(docID)
}

// GetPrimaryDepartment returns the lead processing department, or nil.
func (s *WorkflowService) GetPrimaryDepartment(docID int) (*models.Department, error) {
	if _, err := s.store.Document(docID); err != nil {
		return nil, err
	}
	return s.store.PrimaryDepartment(docID)
}

// GetCollaboratingDepartments returns the assisting departments.
func (s *WorkflowService) GetCollaboratingDepartments(docID int) ([]models.Department, error) {
	if _, err := s.store.Document(docID); err != nil {
		return nil, err
	}
	return s.store.CollaboratingDepartments(docID)
}

func dedupIDs(ids []int) []int {
	if ids == nil {
		return nil
	}
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
