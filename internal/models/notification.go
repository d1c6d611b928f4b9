package models

import "time"

// Notification types. These match the type tags the frontend filters on.
const (
	NotificationTypeLike         = "like"
	NotificationTypeComment      = "comment"
	NotificationTypeVote         = "vote"
	NotificationTypeAdminDelPost = "admin_delete_post"
	NotificationTypeAdminDelCmt  = "admin_delete_comment"
)

// Notification is created as a side effect of like/comment/vote/admin
// actions. PostID is nullable: an admin_delete_post notice outlives the post
// it refers to. Never created when sender and receiver are the same user.
type Notification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	SenderID   uint      `gorm:"not null" json:"sender_id"`
	Sender     User      `gorm:"foreignKey:SenderID" json:"sender"`
	PostID     *uint     `gorm:"index" json:"post_id,omitempty"`
	Type       string    `gorm:"size:30;not null" json:"type"`
	Snippet    string    `gorm:"size:100" json:"snippet,omitempty"`
	IsRead     bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}
