package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleStaff UserRole = "staff"
	RoleAdmin UserRole = "admin"
)

// ValidRole reports whether a role is one of the known roles
func ValidRole(r UserRole) bool {
	switch r {
	case RoleUser, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	Username          string     `json:"username" gorm:"uniqueIndex;not null"`
	Email             string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash      string     `json:"-" gorm:"not null"`
	Role              UserRole   `json:"role" gorm:"not null;default:'user'"`
	IsActive          bool       `json:"is_active" gorm:"default:true"`
	IsVerified        bool       `json:"is_verified" gorm:"default:false"`
	VerificationToken string     `json:"-" gorm:"index"`
	ResetToken        string     `json:"-" gorm:"index"`
	ResetTokenExpiry  *time.Time `json:"-"`
	LastLogin         *time.Time `json:"last_login"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
