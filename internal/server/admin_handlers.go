package server

import (
	"galeto/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Dashboard returns moderation counters and per-user activity rows.
func (s *Server) Dashboard(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	dashboard, err := s.adminService.Dashboard(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dashboard)
}

// AdminDeletePost retracts any user's post. The owner is notified after the
// cascade commits.
func (s *Server) AdminDeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.Retract(c.Context(), service.RetractInput{
		ActorID:      currentUserID(c),
		ActorIsAdmin: true,
		PostID:       postID,
	}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// AdminDeleteComment removes any user's comment, notifying the author.
func (s *Server) AdminDeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		ActorID:      currentUserID(c),
		ActorIsAdmin: true,
		CommentID:    commentID,
	}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
