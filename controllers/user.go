package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"document-flow-api/config"
	"document-flow-api/models"
	"document-flow-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetUsers lists users, optionally filtered by department or role name.
func GetUsers(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := config.DB.Preload("Roles").Preload("Department").Where("users.delete_at IS NULL")

	if deptParam := c.Query("department_id"); deptParam != "" {
		deptID, err := strconv.Atoi(deptParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid department_id"})
			return
		}
		query = query.Where("users.department_id = ?", deptID)
	}

	if role := c.Query("role"); role != "" {
		query = query.
			Joins("JOIN user_roles ON user_roles.user_id = users.user_id").
			Joins("JOIN roles ON roles.role_id = user_roles.role_id").
			Where("roles.name = ?", role)
	}

	var total int64
	if err := query.Model(&models.User{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to count users"})
		return
	}

	var users []models.User
	if err := query.Order("users.full_name ASC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
		"total":   total,
		"page":    pagination.Page,
		"limit":   pagination.Limit,
	})
}

// GetUser returns a single user.
func GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	user, err := getUser(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// CreateUser provisions a user account. Admin only.
func CreateUser(c *gin.Context) {
	var req struct {
		Username     string  `json:"username" binding:"required"`
		FullName     string  `json:"full_name" binding:"required"`
		Email        string  `json:"email" binding:"required"`
		Password     string  `json:"password" binding:"required"`
		Rank         *string `json:"rank"`
		PositionName *string `json:"position_name"`
		DepartmentID *int    `json:"department_id"`
		RoleIDs      []int   `json:"role_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid email"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	var count int64
	config.DB.Model(&models.User{}).
		Where("(username = ? OR email = ?) AND delete_at IS NULL", req.Username, req.Email).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username or email already exists"})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	var roles []models.Role
	if len(req.RoleIDs) > 0 {
		if err := config.DB.Where("role_id IN ?", req.RoleIDs).Find(&roles).Error; err != nil || len(roles) != len(req.RoleIDs) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role_ids"})
			return
		}
	}

	now := time.Now()
	user := models.User{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     hashed,
		Rank:         req.Rank,
		PositionName: req.PositionName,
		DepartmentID: req.DepartmentID,
		IsActive:     true,
		Roles:        roles,
		CreateAt:     &now,
		UpdateAt:     &now,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User created", "data": user})
}

// UpdateUser edits a user account. Admin only.
func UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch user"})
		return
	}

	var req struct {
		FullName     *string `json:"full_name"`
		Rank         *string `json:"rank"`
		PositionName *string `json:"position_name"`
		DepartmentID *int    `json:"department_id"`
		IsActive     *bool   `json:"is_active"`
		RoleIDs      []int   `json:"role_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Rank != nil {
		updates["rank"] = *req.Rank
	}
	if req.PositionName != nil {
		updates["position_name"] = *req.PositionName
	}
	if req.DepartmentID != nil {
		updates["department_id"] = *req.DepartmentID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user"})
		return
	}

	if req.RoleIDs != nil {
		var roles []models.Role
		if err := config.DB.Where("role_id IN ?", req.RoleIDs).Find(&roles).Error; err != nil || len(roles) != len(req.RoleIDs) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role_ids"})
			return
		}
		if err := config.DB.Model(&user).Association("Roles").Replace(roles); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update roles"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User updated", "data": user})
}

// DeleteUser soft-deletes a user account. Admin only.
func DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.User{}).
		Where("user_id = ? AND delete_at IS NULL", id).
		Update("delete_at", now)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}
