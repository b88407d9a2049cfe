package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuCategory groups menu items for browsing and filtering
type MenuCategory string

const (
	CategoryBeverages MenuCategory = "beverages"
	CategoryFood      MenuCategory = "food"
	CategorySnacks    MenuCategory = "snacks"
	CategoryDesserts  MenuCategory = "desserts"
)

// ValidCategory reports whether a category is one of the known categories
func ValidCategory(c MenuCategory) bool {
	switch c {
	case CategoryBeverages, CategoryFood, CategorySnacks, CategoryDesserts:
		return true
	}
	return false
}

type MenuItem struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"not null;index"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Category      MenuCategory    `json:"category" gorm:"not null;index"`
	ImageURL      string          `json:"image_url"`
	IsAvailable   bool            `json:"is_available" gorm:"default:true"`
	StockQuantity int             `json:"stock_quantity" gorm:"default:0"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
