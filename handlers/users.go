package handlers

import (
	"net/http"

	"github.com/hermione06/cafeteria-management-system/config"
	"github.com/hermione06/cafeteria-management-system/middleware"
	"github.com/hermione06/cafeteria-management-system/models"
	"github.com/hermione06/cafeteria-management-system/pagination"

	"github.com/gin-gonic/gin"
)

// ListUsers returns all users with filtering — admin only
func ListUsers(c *gin.Context) {
	query := config.DB.Model(&models.User{})

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if isActive := c.Query("is_active"); isActive != "" {
		query = query.Where("is_active = ?", isActive == "true")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("username LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	query = query.Order("username")

	page, perPage := pagination.Params(c)
	var users []models.User
	meta, err := pagination.Apply(query, &users, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "pagination": meta})
}

// UserStats returns account totals and a per-role breakdown — admin only
func UserStats(c *gin.Context) {
	var total, active, verified int64
	if err := config.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	config.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&active)
	config.DB.Model(&models.User{}).Where("is_verified = ?", true).Count(&verified)

	var rows []struct {
		Role  models.UserRole
		Count int64
	}
	if err := config.DB.Model(&models.User{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	byRole := make(map[models.UserRole]int64, len(rows))
	for _, row := range rows {
		byRole[row.Role] = row.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":    total,
		"active_users":   active,
		"verified_users": verified,
		"users_by_role":  byRole,
	})
}

// GetUser returns one user — admin only
func GetUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateUserRequest struct {
	Role     *models.UserRole `json:"role"`
	IsActive *bool            `json:"is_active"`
}

// UpdateUser changes a user's role or active flag — admin only
func UpdateUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: user, staff, or admin"})
			return
		}
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

// DeleteUser removes an account — admin only, never your own
func DeleteUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.ID == middleware.GetUserID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
