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

// GetDepartments lists departments.
func GetDepartments(c *gin.Context) {
	var departments []models.Department
	if err := config.DB.Where("delete_at IS NULL").Order("code ASC").Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch departments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": departments, "total": len(departments)})
}

// GetDepartment returns a single department.
func GetDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid department ID"})
		return
	}

	var department models.Department
	if err := config.DB.Where("department_id = ? AND delete_at IS NULL", id).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Department not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch department"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": department})
}

// CreateDepartment adds a department. Admin only.
func CreateDepartment(c *gin.Context) {
	var req struct {
		Name     string  `json:"name" binding:"required"`
		Code     string  `json:"code" binding:"required"`
		ParentID *int    `json:"parent_id"`
		Phone    *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name and code are required"})
		return
	}

	var count int64
	config.DB.Model(&models.Department{}).Where("code = ? AND delete_at IS NULL", req.Code).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Department code already exists"})
		return
	}

	now := time.Now()
	department := models.Department{
		Name:     req.Name,
		Code:     req.Code,
		ParentID: req.ParentID,
		Phone:    req.Phone,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if err := config.DB.Create(&department).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create department"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Department created", "data": department})
}

// UpdateDepartment edits a department. Admin only.
func UpdateDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid department ID"})
		return
	}

	var department models.Department
	if err := config.DB.Where("department_id = ? AND delete_at IS NULL", id).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Department not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch department"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		ParentID *int    `json:"parent_id"`
		Phone    *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ParentID != nil {
		updates["parent_id"] = *req.ParentID
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if err := config.DB.Model(&department).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update department"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Department updated", "data": department})
}

// DeleteDepartment soft-deletes a department. Admin only.
func DeleteDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid department ID"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.Department{}).
		Where("department_id = ? AND delete_at IS NULL", id).
		Update("delete_at", now)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete department"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Department not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Department deleted"})
}
