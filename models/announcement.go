package models

import "time"

// AnnouncementPriority orders announcements on the board
type AnnouncementPriority string

const (
	PriorityLow    AnnouncementPriority = "low"
	PriorityNormal AnnouncementPriority = "normal"
	PriorityHigh   AnnouncementPriority = "high"
)

// ValidPriority reports whether a priority is one of the known priorities
func ValidPriority(p AnnouncementPriority) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

type Announcement struct {
	ID        uint                 `json:"id" gorm:"primaryKey"`
	Title     string               `json:"title" gorm:"not null"`
	Message   string               `json:"message" gorm:"not null"`
	Priority  AnnouncementPriority `json:"priority" gorm:"not null;default:'normal'"`
	IsActive  bool                 `json:"is_active" gorm:"default:true"`
	CreatedBy uint                 `json:"created_by"`
	Author    User                 `json:"author,omitempty" gorm:"foreignKey:CreatedBy"`
	ExpiresAt *time.Time           `json:"expires_at"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}
