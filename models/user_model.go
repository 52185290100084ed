package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username  string `json:"username" gorm:"unique"`
	Password  string `json:"-"`
	Name      string `json:"name"`
	Email     string `json:"email" gorm:"unique"`
	Role      string `json:"role"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int
}

type UserSession struct {
	gorm.Model
	UserID         uint      `json:"user_id"`
	SessionID      string    `json:"session_id" gorm:"unique"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}
