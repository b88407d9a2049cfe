package handlers

import (
	"net/http"

	"github.com/hermione06/cafeteria-management-system/config"
	"github.com/hermione06/cafeteria-management-system/models"
	"github.com/hermione06/cafeteria-management-system/pagination"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetMenu returns menu items with filtering and pagination (public)
func GetMenu(c *gin.Context) {
	query := config.DB.Model(&models.MenuItem{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	// Hide unavailable items unless explicitly asked for everything
	if c.DefaultQuery("available", "true") == "true" {
		query = query.Where("is_available = ?", true)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	query = query.Order("name")

	page, perPage := pagination.Params(c)
	var items []models.MenuItem
	meta, err := pagination.Apply(query, &items, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "pagination": meta})
}

// GetMenuItem returns a single menu item (public)
func GetMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// GetCategories returns the known menu categories (public)
func GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": []models.MenuCategory{
			models.CategoryBeverages,
			models.CategoryFood,
			models.CategorySnacks,
			models.CategoryDesserts,
		},
	})
}

type CreateMenuItemRequest struct {
	Name          string              `json:"name" binding:"required"`
	Description   string              `json:"description"`
	Price         decimal.Decimal     `json:"price"`
	Category      models.MenuCategory `json:"category" binding:"required"`
	ImageURL      string              `json:"image_url"`
	IsAvailable   *bool               `json:"is_available"`
	StockQuantity int                 `json:"stock_quantity"`
}

// CreateMenuItem adds a new catalog entry — admin only
func CreateMenuItem(c *gin.Context) {
	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be non-negative"})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category. Must be: beverages, food, snacks, or desserts"})
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	item := models.MenuItem{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		IsAvailable:   available,
		StockQuantity: req.StockQuantity,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created successfully", "item": item})
}

type UpdateMenuItemRequest struct {
	Name          *string              `json:"name"`
	Description   *string              `json:"description"`
	Price         *decimal.Decimal     `json:"price"`
	Category      *models.MenuCategory `json:"category"`
	ImageURL      *string              `json:"image_url"`
	IsAvailable   *bool                `json:"is_available"`
	StockQuantity *int                 `json:"stock_quantity"`
}

// UpdateMenuItem edits an existing catalog entry — staff or admin.
// A price change never touches unit prices frozen on existing orders.
func UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be non-negative"})
			return
		}
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category. Must be: beverages, food, snacks, or desserts"})
			return
		}
		updates["category"] = *req.Category
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = *req.StockQuantity
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&item).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated successfully", "item": item})
}

// DeleteMenuItem removes a catalog entry — admin only
func DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if err := config.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// ToggleAvailability flips the availability flag — staff or admin
func ToggleAvailability(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_available field is required"})
		return
	}

	if err := config.DB.Model(&item).Update("is_available", *req.IsAvailable).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update availability"})
		return
	}

	status := "available"
	if !*req.IsAvailable {
		status = "unavailable"
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item marked as " + status, "item": item})
}
