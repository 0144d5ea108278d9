package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Login information
	Username string `gorm:"unique;not null;size:50" json:"username"`
	Email    string `gorm:"unique;not null;size:100" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Profile
	FullName string `gorm:"size:100" json:"full_name"`

	// Role & Status
	Role       string `gorm:"default:'user';size:20" json:"role"` // user, admin
	IsVerified bool   `gorm:"default:false" json:"is_verified"`

	// System Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}
