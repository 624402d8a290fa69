package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"document-flow-api/models"
)

func newTestService() (*WorkflowService, *fakeStore) {
	store := newFakeStore()
	return NewWorkflowService(store), store
}

func TestRegisterIncoming(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindIncoming, models.StatusDraft)
	clerk := store.addUser(10, RoleVanThu)

	doc, err := svc.RegisterIncoming(1, clerk, "so den 42")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRegistered, doc.Status)
	assert.Equal(t, "Đã vào sổ", doc.StatusDisplay)

	rows, err := svc.GetHistory(1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ActionRegisterIncoming, rows[0].Action)
	require.NotNil(t, rows[0].PreviousStatus)
	assert.Equal(t, string(models.StatusDraft), *rows[0].PreviousStatus)
	assert.Equal(t, string(models.StatusRegistered), rows[0].NewStatus)
	assert.Equal(t, clerk.UserID, rows[0].PerformedBy)
	require.NotNil(t, rows[0].Comments)
	assert.Equal(t, "so den 42", *rows[0].Comments)
}

func TestRoleGateLeavesNoTrace(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindIncoming, models.StatusDraft)
	specialist := store.addUser(20, RoleChuyenVien)

	_, err := svc.RegisterIncoming(1, specialist, "")
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, ActionRegisterIncoming, forbidden.Action)

	// The denied attempt must not move the document or write to the ledger.
	status, err := svc.GetStatus(1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, status)
	assert.Empty(t, store.history)
}

func TestRoleGateGrid(t *testing.T) {
	cases := []struct {
		name    string
		from    models.DocumentStatus
		roles   []string
		run     func(svc *WorkflowService, actor *models.User) error
		allowed bool
	}{
		{
			name:  "clerk registers",
			from:  models.StatusDraft,
			roles: []string{RoleVanThu},
			run: func(svc *WorkflowService, actor *models.User) error {
				_, err := svc.RegisterIncoming(1, actor, "")
				return err
			},
			allowed: true,
		},
		{
			name:  "director cannot register",
			from:  models.StatusDraft,
			roles: []string{RoleCucTruong},
			run: func(svc *WorkflowService, actor *models.User) error {
				_, err := svc.RegisterIncoming(1, actor, "")
				return err
			},
		},
		{
			name:  "clerk distributes",
			from:  models.StatusRegistered,
			roles: []string{RoleVanThu},
			run: func(svc *WorkflowService, actor *models.User) error {
				_, err := svc.Distribute(1, nil, nil, actor, "")
				return err
			},
			allowed: true,
		},
		{
			name:  "director distributes",
			from:  models.StatusRegistered,
			roles: []string{RoleCucPho},
			run: func(svc *WorkflowService, actor *models.User) error {
				_, err := svc.Distribute(1, nil, nil, actor, "")
				return err
			},
			allowed: true,
		},
		{
			name:  "specialist cannot distribute",
			from:  models.StatusRegistered,
			roles: []string{RoleChuyenVien},
			run: func(svc *WorkflowService, actor *models.User) error {
				_, err := svc.Distribute(1, nil, nil, actor, "")
				return err
			},
		},
		{
			name:  "specialist submits to leadership",
			from:  models.StatusSpecialistProcessing,
			roles: []string{RoleChuyenVien},
			run: func(svc *WorkflowService, actor *models.User) error {
				_, err := svc.SubmitToLeadership(1, actor, "")
				return err
			},
			allowed: true,
		},
		{
			name:  "commissar reviews",
			from:  models.StatusSubmittedToLeader,
			roles: []string{RoleChinhUy},
			run: func(svc *WorkflowService, actor *models.User) error {
				_, err := svc.StartReviewing(1, actor, "")
				return err
			},
			allowed: true,
		},
		{
			name:  "commissar cannot approve",
			from:  models.StatusLeaderReviewing,
			roles: []string{RoleChinhUy},
			run: func(svc *WorkflowService, actor *models.User) error {
				_, err := svc.Approve(1, actor, "")
				return err
			},
		},
		{
			name:  "deputy director approves",
			from:  models.StatusLeaderReviewing,
			roles: []string{RoleCucPho},
			run: func(svc *WorkflowService, actor *models.User) error {
				_, err := svc.Approve(1, actor, "")
				return err
			},
			allowed: true,
		},
		{
			name:  "station head runs unit commander review",
			from:  models.StatusDistributed,
			roles: []string{RoleTramTruong},
			run: func(svc *WorkflowService, actor *models.User) error {
				_, err := svc.StartHeaderDepartmentReviewing(1, actor, "")
				return err
			},
			allowed: true,
		},
		{
			name:  "specialist cannot run unit commander review",
			from:  models.StatusDistributed,
			roles: []string{RoleChuyenVien},
			run: func(svc *WorkflowService, actor *models.User) error {
				_, err := svc.StartHeaderDepartmentReviewing(1, actor, "")
				return err
			},
		},
		{
			name:  "clerk sends back for format correction",
			from:  models.StatusApproved,
			roles: []string{RoleVanThu},
			run: func(svc *WorkflowService, actor *models.User) error {
				_, err := svc.RejectForFormatCorrection(1, actor, "sai the thuc", nil)
				return err
			},
			allowed: true,
		},
		{
			name:  "clerk publishes approved document",
			from:  models.StatusApproved,
			roles: []string{RoleVanThu},
			run: func(svc *WorkflowService, actor *models.User) error {
				_, err := svc.PublishOutgoing(1, actor, "")
				return err
			},
			allowed: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newTestService()
			store.addDocument(1, models.DocumentKindIncoming, tc.from)
			actor := store.addUser(10, tc.roles...)

			err := tc.run(svc, actor)
			if tc.allowed {
				assert.NoError(t, err)
				return
			}
			var forbidden *ForbiddenError
			require.ErrorAs(t, err, &forbidden)
			status, _ := svc.GetStatus(1)
			assert.Equal(t, tc.from, status)
		})
	}
}

func TestInvalidTransition(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindIncoming, models.StatusDraft)
	director := store.addUser(30, RoleCucTruong)

	_, err := svc.Approve(1, director, "")
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.StatusDraft, invalid.From)
	assert.Equal(t, models.StatusApproved, invalid.To)

	status, err := svc.GetStatus(1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, status)
	assert.Empty(t, store.history)
}

func TestDocumentNotFound(t *testing.T) {
	svc, store := newTestService()
	clerk := store.addUser(10, RoleVanThu)

	_, err := svc.RegisterIncoming(404, clerk, "")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	_, err = svc.GetHistory(404)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDistributeReplacesDepartments(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindIncoming, models.StatusRegistered)
	clerk := store.addUser(10, RoleVanThu)
	store.addDepartment(1, "Phòng Tham mưu")
	store.addDepartment(2, "Phòng Chính trị")
	store.addDepartment(3, "Trạm 5")

	primary := 1
	doc, err := svc.Distribute(1, &primary, []int{2, 3, 3}, clerk, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDistributed, doc.Status)

	lead, err := svc.GetPrimaryDepartment(1)
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, 1, lead.DepartmentID)

	collabs, err := svc.GetCollaboratingDepartments(1)
	require.NoError(t, err)
	require.Len(t, collabs, 2)

	// Re-distribution replaces both the primary and the collaborating set.
	primary = 2
	_, err = svc.Distribute(1, &primary, []int{3}, clerk, "chuyen phong")
	require.NoError(t, err)

	lead, err = svc.GetPrimaryDepartment(1)
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, 2, lead.DepartmentID)

	collabs, err = svc.GetCollaboratingDepartments(1)
	require.NoError(t, err)
	require.Len(t, collabs, 1)
	assert.Equal(t, 3, collabs[0].DepartmentID)

	// Empty list clears collaborators entirely.
	_, err = svc.Distribute(1, nil, []int{}, clerk, "")
	require.NoError(t, err)
	collabs, err = svc.GetCollaboratingDepartments(1)
	require.NoError(t, err)
	assert.Empty(t, collabs)
}

func TestDistributeSimpleVariantKeepsAssignments(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindIncoming, models.StatusRegistered)
	clerk := store.addUser(10, RoleVanThu)
	store.addDepartment(1, "Phòng Tham mưu")

	primary := 1
	_, err := svc.Distribute(1, &primary, nil, clerk, "")
	require.NoError(t, err)

	// Omitting both department arguments moves status only.
	_, err = svc.Distribute(1, nil, nil, clerk, "")
	require.NoError(t, err)

	lead, err := svc.GetPrimaryDepartment(1)
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, 1, lead.DepartmentID)
}

func TestDistributeUnknownDepartment(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindIncoming, models.StatusRegistered)
	clerk := store.addUser(10, RoleVanThu)

	primary := 99
	_, err := svc.Distribute(1, &primary, nil, clerk, "")
	assert.ErrorIs(t, err, ErrDepartmentNotFound)

	status, _ := svc.GetStatus(1)
	assert.Equal(t, models.StatusRegistered, status)
}

func TestAssignToSpecialist(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindIncoming, models.StatusDistributed)
	head := store.addUser(10, RoleTruongPhong)
	first := store.addUser(20, RoleChuyenVien)
	second := store.addUser(21, RoleChuyenVien)

	deadline := time.Now().Add(72 * time.Hour)
	history, err := svc.AssignToSpecialist(1, first.UserID, head, "xu ly gap", &deadline)
	require.NoError(t, err)
	require.NotNil(t, history.AssignedTo)
	assert.Equal(t, first.UserID, *history.AssignedTo)

	doc, err := svc.GetDocument(1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSpecialistProcessing, doc.Status)
	require.NotNil(t, doc.ProcessDeadline)
	assert.True(t, doc.ProcessDeadline.Equal(deadline))

	// Re-assignment from the processing stage, newest assignee first.
	_, err = svc.AssignToSpecialist(1, second.UserID, head, "", nil)
	require.NoError(t, err)

	assignees, err := svc.GetAssignees(1)
	require.NoError(t, err)
	require.Len(t, assignees, 2)
	assert.Equal(t, second.UserID, assignees[0].UserID)
	assert.Equal(t, first.UserID, assignees[1].UserID)
}

func TestAssignToSpecialistUnknownUser(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindIncoming, models.StatusDistributed)
	head := store.addUser(10, RoleTruongPhong)

	_, err := svc.AssignToSpecialist(1, 999, head, "", nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, store.history)
}

func TestAssignWithoutStatusChange(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindIncoming, models.StatusSpecialistProcessing)
	head := store.addUser(10, RoleTruongPhong)
	helper := store.addUser(22, RoleChuyenVien)

	history, err := svc.Assign(1, helper.UserID, head, "ho tro")
	require.NoError(t, err)
	assert.Equal(t, ActionAssign, history.Action)
	require.NotNil(t, history.PreviousStatus)
	assert.Equal(t, history.NewStatus, *history.PreviousStatus)

	status, _ := svc.GetStatus(1)
	assert.Equal(t, models.StatusSpecialistProcessing, status)
}

func TestRejectRequiresAttachment(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindOutgoing, models.StatusLeaderReviewing)
	director := store.addUser(30, RoleCucTruong)

	_, err := svc.RejectWithAttachment(1, director, "thieu can cu", "  ")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	status, _ := svc.GetStatus(1)
	assert.Equal(t, models.StatusLeaderReviewing, status)
	assert.Empty(t, store.history)
}

func TestRejectRecordsAttachmentPath(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindOutgoing, models.StatusLeaderReviewing)
	specialist := store.addUser(20, RoleChuyenVien)

	// Any authenticated actor may reject from any non-terminal status.
	doc, err := svc.RejectWithAttachment(1, specialist, "thieu can cu", "uploads/2026/01/reject_ab.pdf")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, doc.Status)

	rows, err := svc.GetHistory(1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].AttachmentPath)
	assert.Equal(t, "uploads/2026/01/reject_ab.pdf", *rows[0].AttachmentPath)
}

func TestRejectFromTerminalStatus(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindOutgoing, models.StatusPublished)
	director := store.addUser(30, RoleCucTruong)

	_, err := svc.RejectWithAttachment(1, director, "", "uploads/reject.pdf")
	var invalid *InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)
}

func TestProvideFeedbackAttachmentGate(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindOutgoing, models.StatusLeaderReviewing)
	commissar := store.addUser(31, RoleChinhUy)

	// Plain feedback is open to the whole leadership tier.
	doc, err := svc.ProvideFeedback(1, commissar, "can bo sung", nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusLeaderCommented, doc.Status)

	// Attaching a file is director-tier only.
	store.addDocument(2, models.DocumentKindOutgoing, models.StatusLeaderReviewing)
	path := "uploads/feedback.pdf"
	_, err = svc.ProvideFeedback(2, commissar, "", &path)
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)

	director := store.addUser(30, RoleCucPho)
	doc, err = svc.ProvideFeedback(2, director, "", &path)
	require.NoError(t, err)
	assert.Equal(t, models.StatusLeaderCommented, doc.Status)
}

func TestHeaderDepartmentReviewCycle(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindInternal, models.StatusDistributed)
	commander := store.addUser(40, RolePhoCumTruong)

	doc, err := svc.StartHeaderDepartmentReviewing(1, commander, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusHeaderDepartmentReviewing, doc.Status)

	path := "uploads/gop_y.docx"
	doc, err = svc.CommentHeaderDepartment(1, commander, "gop y muc 2", &path)
	require.NoError(t, err)
	assert.Equal(t, models.StatusHeaderDepartmentCommented, doc.Status)

	doc, err = svc.ApproveHeaderDepartment(1, commander, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusHeaderDepartmentApproved, doc.Status)

	rows, err := svc.GetHistory(1)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ActionApproveHeaderDept, rows[0].Action)
	assert.Equal(t, ActionCommentHeaderDept, rows[1].Action)
	require.NotNil(t, rows[1].AttachmentPath)
	assert.Equal(t, path, *rows[1].AttachmentPath)
}

func TestFormatCorrectionRoundTrip(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindOutgoing, models.StatusApproved)
	clerk := store.addUser(10, RoleVanThu)
	specialist := store.addUser(20, RoleChuyenVien)

	doc, err := svc.RejectForFormatCorrection(1, clerk, "sai font", nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFormatCorrection, doc.Status)

	doc, err = svc.ResubmitAfterFormatCorrection(1, specialist, "da sua")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFormatCorrected, doc.Status)

	// Corrected documents publish directly without another leadership pass.
	doc, err = svc.PublishOutgoing(1, clerk, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, doc.Status)
}

func TestResubmitRecoversRejected(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindOutgoing, models.StatusRejected)
	specialist := store.addUser(20, RoleChuyenVien)

	doc, err := svc.ResubmitAfterFormatCorrection(1, specialist, "da chinh sua theo y kien")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFormatCorrected, doc.Status)
}

func TestResubmitFromIllegalStatus(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindOutgoing, models.StatusRegistered)
	specialist := store.addUser(20, RoleChuyenVien)

	_, err := svc.ResubmitAfterFormatCorrection(1, specialist, "")
	var invalid *InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)
}

func TestCanChangeStatus(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindIncoming, models.StatusRegistered)

	ok, err := svc.CanChangeStatus(1, models.StatusDistributed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanChangeStatus(1, models.StatusApproved)
	require.NoError(t, err)
	assert.False(t, ok)

	// Rejection is reachable from any non-terminal status.
	ok, err = svc.CanChangeStatus(1, models.StatusRejected)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.CanChangeStatus(1, models.DocumentStatus("BOGUS"))
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestChangeStatusFollowsEdges(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindIncoming, models.StatusRegistered)
	user := store.addUser(50, RoleChuyenVien)

	doc, err := svc.ChangeStatus(1, models.StatusDistributed, user, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDistributed, doc.Status)

	_, err = svc.ChangeStatus(1, models.StatusPublished, user, "")
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)

	_, err = svc.ChangeStatus(1, models.StatusSpecialistProcessing, nil, "")
	var forbidden *ForbiddenError
	assert.ErrorAs(t, err, &forbidden)
}

func TestVersionConflict(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindIncoming, models.StatusDraft)
	clerk := store.addUser(10, RoleVanThu)

	store.conflictOnSave = true
	_, err := svc.RegisterIncoming(1, clerk, "")
	require.ErrorIs(t, err, ErrVersionConflict)

	// The losing writer leaves no partial state behind.
	status, _ := svc.GetStatus(1)
	assert.Equal(t, models.StatusDraft, status)
	assert.Empty(t, store.history)
}

func TestHistoryFailureRollsBackStatus(t *testing.T) {
	svc, store := newTestService()
	store.addDocument(1, models.DocumentKindIncoming, models.StatusDraft)
	clerk := store.addUser(10, RoleVanThu)

	store.failAppendHistory = true
	_, err := svc.RegisterIncoming(1, clerk, "")
	require.Error(t, err)

	status, _ := svc.GetStatus(1)
	assert.Equal(t, models.StatusDraft, status)
	assert.Empty(t, store.history)
}

func TestFullIncomingScenario(t *testing.T) {
	svc, store := newTestService()
	clerk := store.addUser(10, RoleVanThu)
	head := store.addUser(11, RoleTruongPhong)
	specialist := store.addUser(20, RoleChuyenVien)
	director := store.addUser(30, RoleCucTruong)
	store.addDepartment(1, "Phòng Tham mưu")

	primary := 1
	doc, err := svc.CreateFullIncomingDocument(FullIncomingInput{
		DocumentInput: DocumentInput{
			DocumentNumber: "527/BTL",
			Title:          "Công văn chỉ đạo",
		},
		PrimaryDepartmentID: &primary,
		Comments:            "chuyen phong tham muu",
	}, clerk)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDistributed, doc.Status)

	_, err = svc.AssignToSpecialist(doc.DocumentID, specialist.UserID, head, "", nil)
	require.NoError(t, err)

	// Approval is not reachable while the specialist is still processing.
	_, err = svc.Approve(doc.DocumentID, director, "")
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)

	_, err = svc.SubmitToLeadership(doc.DocumentID, specialist, "trinh thu truong")
	require.NoError(t, err)

	approved, err := svc.Approve(doc.DocumentID, director, "nhat tri")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)

	rows, err := svc.GetHistory(doc.DocumentID)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, ActionApprove, rows[0].Action)
	assert.Equal(t, ActionSubmitToLeadership, rows[1].Action)
	assert.Equal(t, ActionAssignSpecialist, rows[2].Action)
	assert.Equal(t, ActionDistribute, rows[3].Action)
	assert.Equal(t, ActionRegisterIncoming, rows[4].Action)
}

func TestCreateFullIncomingWithoutDepartment(t *testing.T) {
	svc, store := newTestService()
	clerk := store.addUser(10, RoleVanThu)

	doc, err := svc.CreateFullIncomingDocument(FullIncomingInput{
		DocumentInput: DocumentInput{
			DocumentNumber: "12/UBND",
			Title:          "Thông báo",
		},
	}, clerk)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRegistered, doc.Status)

	rows, err := svc.GetHistory(doc.DocumentID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ActionRegisterIncoming, rows[0].Action)
}

func TestCreateFullIncomingDuplicateNumber(t *testing.T) {
	svc, store := newTestService()
	clerk := store.addUser(10, RoleVanThu)
	existing := store.addDocument(1, models.DocumentKindIncoming, models.StatusRegistered)
	existing.DocumentNumber = "527/BTL"

	_, err := svc.CreateFullIncomingDocument(FullIncomingInput{
		DocumentInput: DocumentInput{
			DocumentNumber: "527/BTL",
			Title:          "Trùng số",
		},
	}, clerk)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, store.docs, 1)
}

func TestCreateFullIncomingClerkOnly(t *testing.T) {
	svc, store := newTestService()
	specialist := store.addUser(20, RoleChuyenVien)

	_, err := svc.CreateFullIncomingDocument(FullIncomingInput{
		DocumentInput: DocumentInput{
			DocumentNumber: "1/CV",
			Title:          "Thử",
		},
	}, specialist)
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Empty(t, store.docs)
}

func TestCreateStandaloneOutgoing(t *testing.T) {
	svc, store := newTestService()
	specialist := store.addUser(20, RoleChuyenVien)

	doc, err := svc.CreateStandaloneOutgoingDocument(DocumentInput{
		DocumentNumber: "89/KH",
		Title:          "Kế hoạch công tác",
	}, specialist)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, doc.Status)
	assert.Equal(t, models.DocumentKindOutgoing, doc.DocumentKind)

	rows, err := svc.GetHistory(doc.DocumentID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ActionCreateDocument, rows[0].Action)
	assert.Nil(t, rows[0].PreviousStatus)

	_, err = svc.CreateStandaloneOutgoingDocument(DocumentInput{
		DocumentNumber: "89/KH",
		Title:          "Trùng số",
	}, specialist)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.CreateStandaloneOutgoingDocument(DocumentInput{Title: "Thiếu số"}, specialist)
	assert.ErrorAs(t, err, &vErr)
}
