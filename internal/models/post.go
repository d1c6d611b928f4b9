package models

import (
	"time"
)

// Post represents a published image with its description, category and an
// ordered song list. UserID is immutable after creation.
type Post struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	UserID      uint     `gorm:"not null;index" json:"user_id"`
	User        User     `gorm:"foreignKey:UserID" json:"user"`
	CategoryID  uint     `gorm:"not null;index" json:"category_id"`
	Category    Category `gorm:"foreignKey:CategoryID" json:"category"`
	Description string   `gorm:"type:text;not null" json:"description"`
	ImageURL    string   `gorm:"not null" json:"image_url"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked bool `gorm:"->" json:"liked"`
	// Songs is assembled from the link table in submission order (computed)
	Songs     []PostSong `gorm:"-" json:"songs,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PostSong is the read-side view of a song attached to a post.
type PostSong struct {
	SongID      uint   `json:"song_id"`
	Title       string `json:"title"`
	ExternalURL string `json:"external_url"`
	Position    int    `json:"position"`
	Votes       int64  `json:"votes"`
}
