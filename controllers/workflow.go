package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"document-flow-api/config"
	"document-flow-api/middleware"
	"document-flow-api/models"
	"document-flow-api/services"

	"github.com/gin-gonic/gin"
)

var (
	workflowService *services.WorkflowService
	fileStorage     services.FileStorage
)

// workflow returns the engine bound to the live database connection.
func workflow() *services.WorkflowService {
	if workflowService == nil {
		workflowService = services.NewWorkflowService(services.NewGormWorkflowStore(config.DB))
	}
	return workflowService
}

func files() services.FileStorage {
	if fileStorage == nil {
		fileStorage = services.NewLocalFileStorage("")
	}
	return fileStorage
}

func parseDocumentID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid document ID"})
		return 0, false
	}
	return id, true
}

func currentActor(c *gin.Context) (*models.User, bool) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "User context missing"})
		return nil, false
	}
	return actor, true
}

// respondWorkflowError maps engine errors onto the response envelope.
func respondWorkflowError(c *gin.Context, err error) {
	var forbidden *services.ForbiddenError
	var invalid *services.InvalidTransitionError
	var validation *services.ValidationError

	switch {
	case errors.Is(err, services.ErrDocumentNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrDepartmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error()})
	case errors.As(err, &invalid), errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, services.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}

func respondDocument(c *gin.Context, message string, doc *models.Document) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    doc,
	})
}

type commentsRequest struct {
	Comments string `json:"comments"`
}

func bindComments(c *gin.Context) (string, bool) {
	var req commentsRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return "", false
	}
	return req.Comments, true
}

// saveOptionalAttachment persists an uploaded file when present. A missing
// file is fine; a failing save aborts the caller, so no transition happens
// after a storage error.
func saveOptionalAttachment(c *gin.Context, prefix string) (*string, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, true // no file supplied
	}
	path, err := files().Save(file, prefix)
	if err != nil {
		var validation *services.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save attachment"})
		}
		return nil, false
	}
	return &path, true
}

// RegisterIncomingDocument records an incoming document into the register.
func RegisterIncomingDocument(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	comments, ok := bindComments(c)
	if !ok {
		return
	}

	doc, err := workflow().RegisterIncoming(docID, actor, comments)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	respondDocument(c, "Document registered", doc)
}

// PublishOutgoingDocument issues the document number and publishes it.
func PublishOutgoingDocument(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	comments, ok := bindComments(c)
	if !ok {
		return
	}

	doc, err := workflow().PublishOutgoing(docID, actor, comments)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	respondDocument(c, "Document published", doc)
}

// DistributeDocument routes a document to a primary department and optional
// collaborating departments. Without department fields it only marks the
// document distributed.
func DistributeDocument(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req struct {
		PrimaryDepartmentID        *int   `json:"primary_department_id"`
		CollaboratingDepartmentIDs []int  `json:"collaborating_department_ids"`
		Comments                   string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	doc, err := workflow().Distribute(docID, req.PrimaryDepartmentID, req.CollaboratingDepartmentIDs, actor, req.Comments)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	respondDocument(c, "Document distributed", doc)
}

// AssignDocument adds an assignee at the current stage.
func AssignDocument(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req struct {
		AssigneeID int    `json:"assignee_id" binding:"required"`
		Comments   string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	history, err := workflow().Assign(docID, req.AssigneeID, actor, req.Comments)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	history.FillStatusDisplays()
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Document assigned",
		"data":    history,
	})
}

// AssignToSpecialist hands the document to a specialist with an optional
// processing deadline (RFC 3339 or yyyy-mm-dd).
func AssignToSpecialist(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req struct {
		SpecialistID    int    `json:"specialist_id" binding:"required"`
		Comments        string `json:"comments"`
		ProcessDeadline string `json:"process_deadline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	var deadline *time.Time
	if req.ProcessDeadline != "" {
		parsed, err := parseDate(req.ProcessDeadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid process_deadline"})
			return
		}
		deadline = &parsed
	}

	history, err := workflow().AssignToSpecialist(docID, req.SpecialistID, actor, req.Comments, deadline)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	history.FillStatusDisplays()

	// Mail the specialist outside the transaction; failures only log.
	if doc, derr := workflow().GetDocument(docID); derr == nil && history.AssignedTo != nil {
		if assignee, uerr := getUser(*history.AssignedTo); uerr == nil {
			go services.NotifyAssignment(doc, assignee, actor, req.Comments)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Document assigned to specialist",
		"data":    history,
	})
}

// ForwardToLeadership routes the document up from the department tier.
func ForwardToLeadership(c *gin.Context) {
	transitionHandler(c, "Document forwarded to leadership", workflow().ForwardToLeadership)
}

// StartProcessingDocument marks the specialist as working on the document.
func StartProcessingDocument(c *gin.Context) {
	transitionHandler(c, "Processing started", workflow().StartProcessing)
}

// SubmitToLeadership is the specialist's upward hand-off.
func SubmitToLeadership(c *gin.Context) {
	transitionHandler(c, "Document submitted to leadership", workflow().SubmitToLeadership)
}

// StartReviewingDocument marks leadership review as begun.
func StartReviewingDocument(c *gin.Context) {
	transitionHandler(c, "Review started", workflow().StartReviewing)
}

// ApproveDocument is the director-tier approval.
func ApproveDocument(c *gin.Context) {
	transitionHandler(c, "Document approved", workflow().Approve)
}

// StartHeaderDepartmentReviewing begins the unit-commander review tier.
func StartHeaderDepartmentReviewing(c *gin.Context) {
	transitionHandler(c, "Header department review started", workflow().StartHeaderDepartmentReviewing)
}

// ApproveHeaderDepartment is the unit-commander approval.
func ApproveHeaderDepartment(c *gin.Context) {
	transitionHandler(c, "Document approved by header department", workflow().ApproveHeaderDepartment)
}

// ResubmitAfterFormatCorrection signals formatting was fixed.
func ResubmitAfterFormatCorrection(c *gin.Context) {
	transitionHandler(c, "Document resubmitted after format correction", workflow().ResubmitAfterFormatCorrection)
}

// transitionHandler shares the JSON-comments transition plumbing.
func transitionHandler(c *gin.Context, message string, op func(int, *models.User, string) (*models.Document, error)) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	comments, ok := bindComments(c)
	if !ok {
		return
	}

	doc, err := op(docID, actor, comments)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	respondDocument(c, message, doc)
}

// ProvideDocumentFeedback records leadership comments; a file may accompany
// them (multipart form, field "file").
func ProvideDocumentFeedback(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	comments := c.PostForm("comments")

	attachment, ok := saveOptionalAttachment(c, "feedback")
	if !ok {
		return
	}

	doc, err := workflow().ProvideFeedback(docID, actor, comments, attachment)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	respondDocument(c, "Feedback recorded", doc)
}

// RejectDocumentWithAttachment rejects the document; the rationale file is
// mandatory.
func RejectDocumentWithAttachment(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	comments := c.PostForm("comments")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Rejection requires an attachment"})
		return
	}
	path, err := files().Save(file, "rejection")
	if err != nil {
		var validation *services.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save attachment"})
		}
		return
	}

	doc, err := workflow().RejectWithAttachment(docID, actor, comments, path)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	respondDocument(c, "Document rejected", doc)
}

// CommentHeaderDepartment records unit-commander comments, optionally with a
// file.
func CommentHeaderDepartment(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	comments := c.PostForm("comments")

	attachment, ok := saveOptionalAttachment(c, "header-comment")
	if !ok {
		return
	}

	doc, err := workflow().CommentHeaderDepartment(docID, actor, comments, attachment)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	respondDocument(c, "Comment recorded", doc)
}

// RejectForFormatCorrection returns the document for formatting fixes; the
// guidance file is optional.
func RejectForFormatCorrection(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	comments := c.PostForm("comments")

	attachment, ok := saveOptionalAttachment(c, "format-correction")
	if !ok {
		return
	}

	doc, err := workflow().RejectForFormatCorrection(docID, actor, comments, attachment)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	respondDocument(c, "Document returned for format correction", doc)
}

// ChangeDocumentStatus is the generic escape hatch, pre-validated against the
// state machine (true from the predicate means allowed).
func ChangeDocumentStatus(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req struct {
		TargetStatus string `json:"target_status" binding:"required"`
		Comments     string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	target, err := models.ParseStatus(req.TargetStatus)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	doc, err := workflow().ChangeStatus(docID, target, actor, req.Comments)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	respondDocument(c, "Status changed", doc)
}

// CanChangeDocumentStatus pre-validates a status change without side effects.
func CanChangeDocumentStatus(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	target, err := models.ParseStatus(c.Query("target"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	allowed, err := workflow().CanChangeStatus(docID, target)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"allowed": allowed},
	})
}

// GetDocumentStatus returns the current workflow status.
func GetDocumentStatus(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	status, err := workflow().GetStatus(docID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"status":         status,
			"status_display": status.DisplayName(),
			"numeric_code":   status.NumericCode(),
		},
	})
}

// GetDocumentHistory returns the workflow ledger, newest first.
func GetDocumentHistory(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	history, err := workflow().GetHistory(docID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history,
		"total":   len(history),
	})
}

// GetDocumentAssignees returns the assignees, most recent first.
func GetDocumentAssignees(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	assignees, err := workflow().GetAssignees(docID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    assignees,
		"total":   len(assignees),
	})
}

// GetDocumentDepartments returns the primary and collaborating departments.
func GetDocumentDepartments(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	primary, err := workflow().GetPrimaryDepartment(docID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	collaborating, err := workflow().GetCollaboratingDepartments(docID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"primary_department":        primary,
			"collaborating_departments": collaborating,
		},
	})
}

func getUser(id int) (*models.User, error) {
	var user models.User
	if err := config.DB.Preload("Roles").
		Where("user_id = ? AND delete_at IS NULL", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
