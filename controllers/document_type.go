package controllers

import (
	"net/http"
	"strconv"
	"time"

	"document-flow-api/config"
	"document-flow-api/models"

	"github.com/gin-gonic/gin"
)

// GetDocumentTypes lists document classifications.
func GetDocumentTypes(c *gin.Context) {
	var types []models.DocumentType
	if err := config.DB.Where("delete_at IS NULL").Order("code ASC").Find(&types).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch document types"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": types, "total": len(types)})
}

// CreateDocumentType adds a classification. Admin only.
func CreateDocumentType(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name and code are required"})
		return
	}

	var count int64
	config.DB.Model(&models.DocumentType{}).Where("code = ? AND delete_at IS NULL", req.Code).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Document type code already exists"})
		return
	}

	now := time.Now()
	docType := models.DocumentType{
		Name:     req.Name,
		Code:     req.Code,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if err := config.DB.Create(&docType).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create document type"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Document type created", "data": docType})
}

// DeleteDocumentType soft-deletes a classification. Admin only.
func DeleteDocumentType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid document type ID"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.DocumentType{}).
		Where("document_type_id = ? AND delete_at IS NULL", id).
		Update("delete_at", now)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete document type"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Document type not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Document type deleted"})
}
