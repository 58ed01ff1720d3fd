package models

import "time"

// Like is a (post, username) edge. The combination of PostID and Username
// must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_username" json:"post_id"`
	Username  string    `gorm:"not null;uniqueIndex:idx_post_username" json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
