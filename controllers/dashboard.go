package controllers

import (
	"net/http"

	"document-flow-api/config"
	"document-flow-api/middleware"
	"document-flow-api/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns document counts by kind and by workflow status.
func GetDashboardStats(c *gin.Context) {
	type kindCount struct {
		DocumentKind string `json:"document_kind"`
		Count        int64  `json:"count"`
	}
	type statusCount struct {
		StatusCode string `json:"status_code"`
		Count      int64  `json:"count"`
	}

	var byKind []kindCount
	if err := config.DB.Model(&models.Document{}).
		Select("document_kind, COUNT(*) AS count").
		Where("delete_at IS NULL").
		Group("document_kind").
		Scan(&byKind).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch statistics"})
		return
	}

	var byStatus []statusCount
	if err := config.DB.Model(&models.Document{}).
		Select("status_code, COUNT(*) AS count").
		Where("delete_at IS NULL").
		Group("status_code").
		Scan(&byStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch statistics"})
		return
	}

	statuses := make([]gin.H, 0, len(byStatus))
	for _, row := range byStatus {
		entry := gin.H{"status": row.StatusCode, "count": row.Count}
		if s, err := models.ParseStatus(row.StatusCode); err == nil {
			entry["status_display"] = s.DisplayName()
		}
		statuses = append(statuses, entry)
	}

	var pendingForMe int64
	if actor, ok := middleware.CurrentUser(c); ok {
		config.DB.Model(&models.DocumentAssignee{}).
			Joins("JOIN documents ON documents.document_id = document_assignees.document_id").
			Where("document_assignees.user_id = ? AND documents.status_code = ? AND documents.delete_at IS NULL",
				actor.UserID, models.StatusSpecialistProcessing).
			Count(&pendingForMe)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"by_kind":        byKind,
			"by_status":      statuses,
			"pending_for_me": pendingForMe,
		},
	})
}
