package models

// Song is a track attached to a post. Songs are created only as part of a
// post's publication and are never addressable before that.
type Song struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	ExternalURL string `gorm:"not null" json:"external_url"`
}

// SongLink ties a song to a post at a 1-based ordinal position.
// Position is unique per post and matches submission order.
type SongLink struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	PostID   uint `gorm:"not null;uniqueIndex:idx_post_position" json:"post_id"`
	SongID   uint `gorm:"not null;index" json:"song_id"`
	Position int  `gorm:"not null;uniqueIndex:idx_post_position" json:"position"`
}
