package services

import "document-flow-api/models"

// Action tags recorded in document_history.action.
const (
	ActionCreateDocument            = "CREATE_DOCUMENT"
	ActionRegisterIncoming          = "REGISTER_INCOMING"
	ActionPublishOutgoing           = "PUBLISH_OUTGOING"
	ActionDistribute                = "DISTRIBUTE"
	ActionAssign                    = "ASSIGN"
	ActionAssignSpecialist          = "ASSIGN_SPECIALIST"
	ActionForwardToLeadership       = "FORWARD_TO_LEADERSHIP"
	ActionStartProcessing           = "START_PROCESSING"
	ActionSubmitToLeadership        = "SUBMIT_TO_LEADERSHIP"
	ActionStartReviewing            = "START_REVIEWING"
	ActionProvideFeedback           = "PROVIDE_FEEDBACK"
	ActionApprove                   = "APPROVE"
	ActionReject                    = "REJECT"
	ActionStartHeaderDeptReviewing  = "START_HEADER_DEPARTMENT_REVIEWING"
	ActionCommentHeaderDept         = "COMMENT_HEADER_DEPARTMENT"
	ActionApproveHeaderDept         = "APPROVE_HEADER_DEPARTMENT"
	ActionRejectForFormatCorrection = "REJECT_FOR_FORMAT_CORRECTION"
	ActionResubmitAfterCorrection   = "RESUBMIT_AFTER_FORMAT_CORRECTION"
	ActionChangeStatus              = "CHANGE_STATUS"
)

// transition declares who may perform an action and between which statuses.
// A nil Roles set admits any authenticated actor; a nil From list admits any
// non-terminal source status.
type transition struct {
	Roles RoleSet
	From  []models.DocumentStatus
	To    models.DocumentStatus
}

var transitionTable = map[string]transition{
	ActionRegisterIncoming: {
		Roles: clerkRoles,
		From:  []models.DocumentStatus{models.StatusDraft},
		To:    models.StatusRegistered,
	},
	ActionPublishOutgoing: {
		Roles: clerkRoles,
		From: []models.DocumentStatus{
			models.StatusApproved,
			models.StatusHeaderDepartmentApproved,
			models.StatusFormatCorrected,
		},
		To: models.StatusPublished,
	},
	ActionDistribute: {
		Roles: distributorRoles,
		From: []models.DocumentStatus{
			models.StatusRegistered,
			models.StatusDistributed,
		},
		To: models.StatusDistributed,
	},
	ActionAssignSpecialist: {
		Roles: departmentHeadRoles,
		From: []models.DocumentStatus{
			models.StatusDistributed,
			models.StatusSpecialistProcessing,
			models.StatusHeaderDepartmentApproved,
		},
		To: models.StatusSpecialistProcessing,
	},
	ActionForwardToLeadership: {
		Roles: departmentHeadRoles,
		From: []models.DocumentStatus{
			models.StatusDistributed,
			models.StatusSpecialistProcessing,
			models.StatusHeaderDepartmentApproved,
		},
		To: models.StatusSubmittedToLeader,
	},
	ActionStartProcessing: {
		Roles: specialistRoles,
		From: []models.DocumentStatus{
			models.StatusDistributed,
			models.StatusSpecialistProcessing,
		},
		To: models.StatusSpecialistProcessing,
	},
	ActionSubmitToLeadership: {
		Roles: specialistRoles,
		From:  []models.DocumentStatus{models.StatusSpecialistProcessing},
		To:    models.StatusSubmittedToLeader,
	},
	ActionStartReviewing: {
		Roles: leaderRoles,
		From:  []models.DocumentStatus{models.StatusSubmittedToLeader},
		To:    models.StatusLeaderReviewing,
	},
	ActionProvideFeedback: {
		Roles: leaderRoles,
		From: []models.DocumentStatus{
			models.StatusSubmittedToLeader,
			models.StatusLeaderReviewing,
		},
		To: models.StatusLeaderCommented,
	},
	ActionApprove: {
		Roles: directorRoles,
		From: []models.DocumentStatus{
			models.StatusSubmittedToLeader,
			models.StatusLeaderReviewing,
			models.StatusLeaderCommented,
		},
		To: models.StatusApproved,
	},
	ActionReject: {
		// Any authenticated actor may reject; the attachment requirement is
		// enforced by the operation itself.
		Roles: nil,
		From:  nil,
		To:    models.StatusRejected,
	},
	ActionStartHeaderDeptReviewing: {
		Roles: unitCommanderRoles,
		From: []models.DocumentStatus{
			models.StatusDistributed,
			models.StatusSpecialistProcessing,
		},
		To: models.StatusHeaderDepartmentReviewing,
	},
	ActionCommentHeaderDept: {
		Roles: unitCommanderRoles,
		From: []models.DocumentStatus{
			models.StatusHeaderDepartmentReviewing,
			models.StatusDistributed,
		},
		To: models.StatusHeaderDepartmentCommented,
	},
	ActionApproveHeaderDept: {
		Roles: unitCommanderRoles,
		From: []models.DocumentStatus{
			models.StatusHeaderDepartmentReviewing,
			models.StatusHeaderDepartmentCommented,
		},
		To: models.StatusHeaderDepartmentApproved,
	},
	ActionRejectForFormatCorrection: {
		Roles: clerkRoles,
		From: []models.DocumentStatus{
			models.StatusApproved,
			models.StatusHeaderDepartmentApproved,
			models.StatusSubmittedToLeader,
		},
		To: models.StatusFormatCorrection,
	},
	ActionResubmitAfterCorrection: {
		Roles: nil,
		From: []models.DocumentStatus{
			models.StatusFormatCorrection,
			models.StatusRejected,
		},
		To: models.StatusFormatCorrected,
	},
}

// statusEdges is the union of all edges declared in the transition table,
// used by CanChangeStatus. true means the edge is allowed.
var statusEdges = func() map[models.DocumentStatus]map[models.DocumentStatus]bool {
	edges := make(map[models.DocumentStatus]map[models.DocumentStatus]bool)
	add := func(from, to models.DocumentStatus) {
		if edges[from] == nil {
			edges[from] = make(map[models.DocumentStatus]bool)
		}
		edges[from][to] = true
	}
	for _, t := range transitionTable {
		if t.From == nil {
			for _, s := range models.AllStatuses() {
				if !s.IsTerminal() {
					add(s, t.To)
				}
			}
			continue
		}
		for _, from := range t.From {
			add(from, t.To)
		}
	}
	// Clerk can re-publish a corrected document without re-routing through
	// leadership, and a corrected document can re-enter clerk review.
	add(models.StatusFormatCorrected, models.StatusSubmittedToLeader)
	return edges
}()

// statusAllows reports whether the transition admits the given source status.
func (t transition) statusAllows(from models.DocumentStatus) bool {
	if t.From == nil {
		return !from.IsTerminal()
	}
	for _, s := range t.From {
		if s == from {
			return true
		}
	}
	return false
}
