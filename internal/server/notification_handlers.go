package server

import (
	"galeto/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications lists the authenticated user's notifications, newest first.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	notifications, err := s.notifService.List(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notifications)
}

// GetUnreadCount returns the number of unread notifications.
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.notifService.UnreadCount(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

type markReadRequest struct {
	IDs []uint `json:"ids"`
}

// MarkNotificationsRead marks the listed notifications as read.
func (s *Server) MarkNotificationsRead(c *fiber.Ctx) error {
	var req markReadRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.notifService.MarkRead(c.Context(), currentUserID(c), req.IDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}

// DeleteNotification removes one of the authenticated user's notifications.
func (s *Server) DeleteNotification(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notifService.Delete(c.Context(), currentUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification deleted"})
}
