package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of a cafeteria order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// ValidStatus reports whether a status is one of the known statuses
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether a status accepts no further transitions
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Order struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	UserID              uint            `json:"user_id" gorm:"not null;index"`
	User                User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status              OrderStatus     `json:"status" gorm:"not null;default:'pending';index"`
	IsPaid              bool            `json:"is_paid" gorm:"default:false"`
	PaymentMethod       string          `json:"payment_method"`
	TotalPrice          decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	SpecialInstructions string          `json:"special_instructions"`
	AdminNotes          string          `json:"admin_notes"`
	// Version guards concurrent status and item mutations on the same order.
	Version     int         `json:"version" gorm:"not null;default:0"`
	Items       []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time   `json:"updated_at"`
	CompletedAt *time.Time  `json:"completed_at"`
}

type OrderItem struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	OrderID    uint     `json:"order_id" gorm:"not null;index"`
	MenuItemID uint     `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int      `json:"quantity" gorm:"not null"`
	// UnitPrice is frozen at the time the item is added; later menu price
	// changes never touch existing orders.
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Name      string          `json:"name"` // snapshot name
}

// Subtotal returns unit price times quantity for this line item
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
