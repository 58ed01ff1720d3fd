// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account in Photogram. Accounts are never deleted in-app,
// and usernames never change, which is why posts, follows, and likes may
// reference users by username.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
