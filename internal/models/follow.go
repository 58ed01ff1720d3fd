package models

import "time"

// Follow is a directed edge meaning Follower receives Followee's posts in
// their feed. The pair is unique; the edge is created and destroyed as a
// unit. Nothing prevents follower == followee.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Follower  string    `gorm:"index;not null;uniqueIndex:idx_follower_followee" json:"follower"`
	Followee  string    `gorm:"index;not null;uniqueIndex:idx_follower_followee" json:"followee"`
	CreatedAt time.Time `json:"created_at"`
}
