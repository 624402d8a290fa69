package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"document-flow-api/config"
	"document-flow-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetSchedules lists work schedules, optionally windowed by from/to dates.
func GetSchedules(c *gin.Context) {
	query := config.DB.Preload("Department").Preload("Creator").Where("delete_at IS NULL")

	if from := c.Query("from"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid from date"})
			return
		}
		query = query.Where("start_time >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := parseDate(to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid to date"})
			return
		}
		query = query.Where("start_time < ?", t.AddDate(0, 0, 1))
	}
	if deptParam := c.Query("department_id"); deptParam != "" {
		deptID, err := strconv.Atoi(deptParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid department_id"})
			return
		}
		query = query.Where("department_id = ?", deptID)
	}

	var schedules []models.WorkSchedule
	if err := query.Order("start_time ASC").Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch schedules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": schedules, "total": len(schedules)})
}

// CreateSchedule adds a work schedule entry.
func CreateSchedule(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req struct {
		Title        string  `json:"title" binding:"required"`
		Content      *string `json:"content"`
		Location     *string `json:"location"`
		StartTime    string  `json:"start_time" binding:"required"`
		EndTime      *string `json:"end_time"`
		DepartmentID *int    `json:"department_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	start, err := parseDate(req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid start_time"})
		return
	}

	now := time.Now()
	schedule := models.WorkSchedule{
		Title:        req.Title,
		Content:      req.Content,
		Location:     req.Location,
		StartTime:    start,
		DepartmentID: req.DepartmentID,
		CreatedBy:    actor.UserID,
		CreateAt:     &now,
		UpdateAt:     &now,
	}
	if req.EndTime != nil {
		end, err := parseDate(*req.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid end_time"})
			return
		}
		schedule.EndTime = &end
	}

	if err := config.DB.Create(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create schedule"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Schedule created", "data": schedule})
}

// UpdateSchedule edits a schedule the actor created (admins may edit any).
func UpdateSchedule(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid schedule ID"})
		return
	}

	var schedule models.WorkSchedule
	if err := config.DB.Where("schedule_id = ? AND delete_at IS NULL", id).First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Schedule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch schedule"})
		return
	}

	if schedule.CreatedBy != actor.UserID && !actor.HasRole("ROLE_ADMIN") {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not allowed to edit this schedule"})
		return
	}

	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		Location *string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}

	if err := config.DB.Model(&schedule).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update schedule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Schedule updated", "data": schedule})
}

// DeleteSchedule soft-deletes a schedule entry.
func DeleteSchedule(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid schedule ID"})
		return
	}

	var schedule models.WorkSchedule
	if err := config.DB.Where("schedule_id = ? AND delete_at IS NULL", id).First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Schedule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch schedule"})
		return
	}

	if schedule.CreatedBy != actor.UserID && !actor.HasRole("ROLE_ADMIN") {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not allowed to delete this schedule"})
		return
	}

	if err := config.DB.Model(&schedule).Update("delete_at", time.Now()).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete schedule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Schedule deleted"})
}
