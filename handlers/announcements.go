package handlers

import (
	"net/http"
	"time"

	"github.com/hermione06/cafeteria-management-system/config"
	"github.com/hermione06/cafeteria-management-system/middleware"
	"github.com/hermione06/cafeteria-management-system/models"

	"github.com/gin-gonic/gin"
)

// GetAnnouncements returns active, non-expired announcements (public).
// High priority first, newest first within a priority.
func GetAnnouncements(c *gin.Context) {
	now := time.Now().UTC()

	var announcements []models.Announcement
	config.DB.
		Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("CASE priority WHEN 'high' THEN 2 WHEN 'normal' THEN 1 ELSE 0 END DESC").
		Order("created_at desc").
		Find(&announcements)

	c.JSON(http.StatusOK, gin.H{"announcements": announcements})
}

// GetAllAnnouncements returns every announcement including inactive — admin only
func GetAllAnnouncements(c *gin.Context) {
	var announcements []models.Announcement
	config.DB.Order("created_at desc").Find(&announcements)
	c.JSON(http.StatusOK, gin.H{"count": len(announcements), "announcements": announcements})
}

// GetAnnouncement returns a single announcement (public)
func GetAnnouncement(c *gin.Context) {
	var announcement models.Announcement
	if err := config.DB.First(&announcement, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcement": announcement})
}

type CreateAnnouncementRequest struct {
	Title     string                      `json:"title" binding:"required"`
	Message   string                      `json:"message" binding:"required"`
	Priority  models.AnnouncementPriority `json:"priority"`
	IsActive  *bool                       `json:"is_active"`
	ExpiresAt *time.Time                  `json:"expires_at"`
}

// CreateAnnouncement posts a new board message — admin only
func CreateAnnouncement(c *gin.Context) {
	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	if !models.ValidPriority(priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority. Must be: low, normal, or high"})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	announcement := models.Announcement{
		Title:     req.Title,
		Message:   req.Message,
		Priority:  priority,
		IsActive:  active,
		CreatedBy: middleware.GetUserID(c),
		ExpiresAt: req.ExpiresAt,
	}
	if err := config.DB.Create(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Announcement created successfully",
		"announcement": announcement,
	})
}

type UpdateAnnouncementRequest struct {
	Title     *string                      `json:"title"`
	Message   *string                      `json:"message"`
	Priority  *models.AnnouncementPriority `json:"priority"`
	IsActive  *bool                        `json:"is_active"`
	ExpiresAt *time.Time                   `json:"expires_at"`
}

// UpdateAnnouncement edits a board message — admin only
func UpdateAnnouncement(c *gin.Context) {
	var announcement models.Announcement
	if err := config.DB.First(&announcement, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	var req UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Message != nil {
		updates["message"] = *req.Message
	}
	if req.Priority != nil {
		if !models.ValidPriority(*req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		updates["priority"] = *req.Priority
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.ExpiresAt != nil {
		updates["expires_at"] = req.ExpiresAt
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&announcement).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update announcement"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Announcement updated successfully",
		"announcement": announcement,
	})
}

// DeleteAnnouncement removes a board message — admin only
func DeleteAnnouncement(c *gin.Context) {
	var announcement models.Announcement
	if err := config.DB.First(&announcement, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}
	if err := config.DB.Delete(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete announcement"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted successfully"})
}
