package controllers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"document-flow-api/config"
	"document-flow-api/models"
	"document-flow-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetDocuments lists documents with kind/status/search filters.
func GetDocuments(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := config.DB.Preload("DocumentType").Preload("Creator").Where("delete_at IS NULL")

	if kind := c.Query("kind"); kind != "" {
		switch kind {
		case models.DocumentKindIncoming, models.DocumentKindOutgoing, models.DocumentKindInternal:
			query = query.Where("document_kind = ?", kind)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid document kind"})
			return
		}
	}

	if statusParam := c.Query("status"); statusParam != "" {
		status, err := models.ParseStatus(statusParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		query = query.Where("status_code = ?", status)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		query = query.Where("document_number LIKE ? OR title LIKE ?", like, like)
	}

	var total int64
	if err := query.Model(&models.Document{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to count documents"})
		return
	}

	var documents []models.Document
	if err := query.Order("create_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch documents"})
		return
	}

	for i := range documents {
		documents[i].StatusDisplay = documents[i].Status.DisplayName()
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    documents,
		"total":   total,
		"page":    pagination.Page,
		"limit":   pagination.Limit,
	})
}

// GetDocument returns a single document with type and creator loaded.
func GetDocument(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	var doc models.Document
	if err := config.DB.Preload("DocumentType").Preload("Creator").
		Where("document_id = ? AND delete_at IS NULL", docID).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch document"})
		return
	}

	doc.StatusDisplay = doc.Status.DisplayName()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
}

// GetDocumentAttachments lists the stored files of a document.
func GetDocumentAttachments(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}

	var attachments []models.DocumentAttachment
	if err := config.DB.
		Where("document_id = ? AND delete_at IS NULL", docID).
		Order("uploaded_at DESC").
		Find(&attachments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch attachments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": attachments, "total": len(attachments)})
}

// DownloadAttachment streams a stored file.
func DownloadAttachment(c *gin.Context) {
	attachmentID, err := strconv.Atoi(c.Param("attachment_id"))
	if err != nil || attachmentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid attachment ID"})
		return
	}

	var attachment models.DocumentAttachment
	if err := config.DB.Where("attachment_id = ? AND delete_at IS NULL", attachmentID).
		First(&attachment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Attachment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch attachment"})
		return
	}

	c.FileAttachment(attachment.StoredPath, filepath.Base(attachment.OriginalName))
}

// UploadDocumentAttachment adds files to an existing document.
func UploadDocumentAttachment(c *gin.Context) {
	docID, ok := parseDocumentID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var doc models.Document
	if err := config.DB.Where("document_id = ? AND delete_at IS NULL", docID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch document"})
		return
	}

	results := uploadDocumentAttachments(c, &doc, actor)
	if len(results) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No files uploaded"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Attachments processed", "attachments": results})
}
