package models

import "time"

// Rating is one user's score for one menu item; at most one row per pair
type Rating struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	MenuItemID uint      `json:"menu_item_id" gorm:"not null;uniqueIndex:idx_rating_item_user"`
	MenuItem   MenuItem  `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_rating_item_user"`
	User       User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Score      int       `json:"score" gorm:"not null"` // 1..5
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
