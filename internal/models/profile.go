package models

import (
	"time"
)

// DefaultAvatar is the placeholder avatar assigned to every new profile.
const DefaultAvatar = "/media/blank-profile-picture.png"

// Profile holds per-account metadata, one-to-one with a User. It is created
// immediately after signup and mutated only by its owner via settings.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"user"`
}
