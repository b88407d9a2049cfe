package handlers

import (
	"net/http"

	"github.com/hermione06/cafeteria-management-system/config"
	"github.com/hermione06/cafeteria-management-system/middleware"
	"github.com/hermione06/cafeteria-management-system/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetRatings returns all ratings for a menu item with the average score (public)
func GetRatings(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var ratings []models.Rating
	config.DB.Preload("User").Where("menu_item_id = ?", item.ID).
		Order("created_at desc").Find(&ratings)

	var average float64
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Score
		}
		average = float64(sum) / float64(len(ratings))
	}

	c.JSON(http.StatusOK, gin.H{
		"item":          item.Name,
		"count":         len(ratings),
		"average_score": average,
		"ratings":       ratings,
	})
}

type RateItemRequest struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// RateItem records or replaces the caller's rating for a menu item.
// One rating per user per item; posting again overwrites the previous one.
func RateItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req RateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var rating models.Rating
	err := config.DB.Where("menu_item_id = ? AND user_id = ?", item.ID, userID).First(&rating).Error
	switch err {
	case nil:
		config.DB.Model(&rating).Updates(map[string]interface{}{
			"score":   req.Score,
			"comment": req.Comment,
		})
		c.JSON(http.StatusOK, gin.H{"message": "Rating updated", "rating": rating})
	case gorm.ErrRecordNotFound:
		rating = models.Rating{
			MenuItemID: item.ID,
			UserID:     userID,
			Score:      req.Score,
			Comment:    req.Comment,
		}
		if err := config.DB.Create(&rating).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Rating recorded", "rating": rating})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
	}
}

// DeleteRating removes the caller's own rating for a menu item
func DeleteRating(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var rating models.Rating
	err := config.DB.Where("menu_item_id = ? AND user_id = ?", c.Param("id"), userID).First(&rating).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rating not found"})
		return
	}

	config.DB.Delete(&rating)
	c.JSON(http.StatusOK, gin.H{"message": "Rating deleted"})
}
