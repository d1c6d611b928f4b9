package server

import (
	"galeto/internal/models"
	"galeto/internal/service"

	"github.com/gofiber/fiber/v2"
)

type voteRequest struct {
	SongID uint `json:"song_id"`
}

// CastVote records or moves the authenticated user's vote for one of the
// post's songs and returns the refreshed post with per-song counts.
func (s *Server) CastVote(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req voteRequest
	if err := c.BodyParser(&req); err != nil || req.SongID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("song_id is required"))
	}

	userID := currentUserID(c)
	changed, err := s.voteService.Vote(c.Context(), service.VoteInput{
		UserID: userID,
		PostID: postID,
		SongID: req.SongID,
	})
	if err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.GetPost(c.Context(), postID, userID)
	if err != nil {
		return respondError(c, err)
	}

	status := fiber.StatusCreated
	if changed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(post)
}
