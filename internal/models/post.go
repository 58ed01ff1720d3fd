package models

import (
	"time"
)

// Post is an image post. Author is the author's username, not a numeric
// foreign key; usernames are immutable so the reference stays valid.
// LikesCount is a denormalized counter kept in lockstep with the likes table
// inside the same transaction that mutates the edge (see repository.ToggleLike).
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Author     string    `gorm:"index;not null" json:"author"`
	Image      string    `gorm:"not null" json:"image"`
	Caption    string    `json:"caption"`
	LikesCount int       `gorm:"not null;default:0" json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}
