package service

import (
	"context"

	"galeto/internal/models"
	"galeto/internal/repository"
)

// NotificationService exposes a user's notification feed.
type NotificationService struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// List returns the receiver's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, receiverID uint, limit, offset int) ([]*models.Notification, error) {
	return s.notifRepo.ListByReceiver(ctx, receiverID, limit, offset)
}

// UnreadCount returns the number of unread notifications for the receiver.
func (s *NotificationService) UnreadCount(ctx context.Context, receiverID uint) (int64, error) {
	return s.notifRepo.UnreadCount(ctx, receiverID)
}

// MarkRead flips the read flag on the receiver's listed notifications and
// returns how many rows changed.
func (s *NotificationService) MarkRead(ctx context.Context, receiverID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, models.NewValidationError("An array of notification IDs is required")
	}
	return s.notifRepo.MarkRead(ctx, receiverID, ids)
}

// Delete removes one of the receiver's notifications.
func (s *NotificationService) Delete(ctx context.Context, receiverID, id uint) error {
	return s.notifRepo.Delete(ctx, receiverID, id)
}
