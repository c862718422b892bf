package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User is a back-office account. The public site has no user accounts.
type User struct {
	gorm.Model
	Email               string `gorm:"uniqueIndex;not null"`
	Password            string `gorm:"not null" json:"-"`
	Name                string `gorm:"not null"`
	Role                string `gorm:"default:'editor'"`
	Status              string `gorm:"default:'active'"`
	LastLoginAt         *time.Time
	LastLoginIP         string
	FailedLoginAttempts int `gorm:"default:0"`
	AccountLockoutUntil *time.Time
	TokenVersion        int `gorm:"default:1"`
}
