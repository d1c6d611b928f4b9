package models

import "time"

// SongVote records a user's vote for one song of a post. A user holds at
// most one vote per post; voting for a different song of the same post
// overwrites the existing row instead of inserting a second one.
type SongVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_vote_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_vote_user_post" json:"post_id"`
	SongID    uint      `gorm:"not null;index" json:"song_id"`
	CreatedAt time.Time `json:"created_at"`
}
