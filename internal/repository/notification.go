package repository

import (
	"context"

	"galeto/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByReceiver(ctx context.Context, receiverID uint, limit, offset int) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, receiverID uint) (int64, error)
	MarkRead(ctx context.Context, receiverID uint, ids []uint) (int64, error)
	Delete(ctx context.Context, receiverID, id uint) error
	DeleteLikeNotification(ctx context.Context, senderID, postID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ListByReceiver(ctx context.Context, receiverID uint, limit, offset int) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) UnreadCount(ctx context.Context, receiverID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips the read flag for the given ids, scoped to the receiver so
// a user cannot mark someone else's notifications.
func (r *notificationRepository) MarkRead(ctx context.Context, receiverID uint, ids []uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("receiver_id = ? AND id IN ?", receiverID, ids).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) Delete(ctx context.Context, receiverID, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND receiver_id = ?", id, receiverID).
		Delete(&models.Notification{}).Error
}

// DeleteLikeNotification removes the like notice a sender produced for a
// post, used when a like is toggled off.
func (r *notificationRepository) DeleteLikeNotification(ctx context.Context, senderID, postID uint) error {
	return r.db.WithContext(ctx).
		Where("sender_id = ? AND post_id = ? AND type = ?", senderID, postID, models.NotificationTypeLike).
		Delete(&models.Notification{}).Error
}
