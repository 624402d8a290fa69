package controllers

import (
	"net/http"
	"strconv"
	"time"

	"document-flow-api/config"
	"document-flow-api/models"
	"document-flow-api/services"

	"github.com/gin-gonic/gin"
)

// CreateStandaloneOutgoingDocument initializes the workflow for an outgoing
// document with no incoming origin.
func CreateStandaloneOutgoingDocument(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req struct {
		DocumentNumber  string  `json:"document_number" binding:"required"`
		Title           string  `json:"title" binding:"required"`
		Summary         *string `json:"summary"`
		DocumentTypeID  *int    `json:"document_type_id"`
		Urgency         *string `json:"urgency"`
		Confidentiality *string `json:"confidentiality"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	input := services.DocumentInput{
		DocumentNumber:  req.DocumentNumber,
		Title:           req.Title,
		Summary:         req.Summary,
		DocumentTypeID:  req.DocumentTypeID,
		Urgency:         req.Urgency,
		Confidentiality: req.Confidentiality,
	}

	doc, err := workflow().CreateStandaloneOutgoingDocument(input, actor)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Outgoing document created",
		"data":    doc,
	})
}

// attachmentResult reports one file of a multi-file upload.
type attachmentResult struct {
	Filename string `json:"filename"`
	Success  bool   `json:"success"`
	Path     string `json:"path,omitempty"`
	Error    string `json:"error,omitempty"`
}

// CreateFullIncomingDocument performs the full clerk intake in one request:
// duplicate-number check, creation, register entry and optional distribution
// commit together; attachment uploads run afterwards file by file, and a
// failed file never rolls the document back.
func CreateFullIncomingDocument(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	input := services.FullIncomingInput{
		DocumentInput: services.DocumentInput{
			DocumentNumber: c.PostForm("document_number"),
			Title:          c.PostForm("title"),
		},
		Comments: c.PostForm("comments"),
	}

	if v := c.PostForm("summary"); v != "" {
		input.Summary = &v
	}
	if v := c.PostForm("urgency"); v != "" {
		input.Urgency = &v
	}
	if v := c.PostForm("confidentiality"); v != "" {
		input.Confidentiality = &v
	}
	if v := c.PostForm("issuing_agency"); v != "" {
		input.IssuingAgency = &v
	}
	if v := c.PostForm("document_type_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid document_type_id"})
			return
		}
		input.DocumentTypeID = &id
	}
	if v := c.PostForm("issued_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid issued_date"})
			return
		}
		input.IssuedDate = &t
	}
	if v := c.PostForm("received_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid received_date"})
			return
		}
		input.ReceivedDate = &t
	}
	if v := c.PostForm("process_deadline"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid process_deadline"})
			return
		}
		input.ProcessDeadline = &t
	}
	if v := c.PostForm("primary_department_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid primary_department_id"})
			return
		}
		input.PrimaryDepartmentID = &id
	}
	for _, v := range c.PostFormArray("collaborating_department_ids") {
		id, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid collaborating_department_ids"})
			return
		}
		input.CollaboratingDepartmentIDs = append(input.CollaboratingDepartmentIDs, id)
	}

	doc, err := workflow().CreateFullIncomingDocument(input, actor)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	results := uploadDocumentAttachments(c, doc, actor)

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Incoming document created",
		"data":        doc,
		"attachments": results,
	})
}

// uploadDocumentAttachments saves the request's files sequentially. One
// file's failure does not abort its siblings.
func uploadDocumentAttachments(c *gin.Context, doc *models.Document, actor *models.User) []attachmentResult {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return []attachmentResult{}
	}

	uploads := form.File["files"]
	results := make([]attachmentResult, 0, len(uploads))
	for _, file := range uploads {
		path, err := files().Save(file, "doc")
		if err != nil {
			results = append(results, attachmentResult{
				Filename: file.Filename,
				Success:  false,
				Error:    err.Error(),
			})
			continue
		}

		attachment := models.DocumentAttachment{
			DocumentID:   doc.DocumentID,
			OriginalName: file.Filename,
			StoredPath:   path,
			FileSize:     file.Size,
			MimeType:     file.Header.Get("Content-Type"),
			UploadedBy:   actor.UserID,
			UploadedAt:   time.Now(),
		}
		if err := config.DB.Create(&attachment).Error; err != nil {
			results = append(results, attachmentResult{
				Filename: file.Filename,
				Success:  false,
				Error:    "failed to record attachment",
			})
			continue
		}

		results = append(results, attachmentResult{
			Filename: file.Filename,
			Success:  true,
			Path:     path,
		})
	}
	return results
}
