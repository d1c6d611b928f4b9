package server

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"galeto/internal/models"
	"galeto/internal/service"
	"galeto/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetCategories lists the fixed category set.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// CreatePost handles the multipart publication request: image file plus
// description, category and an optional JSON song list. The image is staged
// on disk first; if publication fails the staged file is removed so no
// orphaned media survives a rolled-back transaction.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	description := c.FormValue("description")
	categoryName := c.FormValue("category")

	var songs []validation.SongInput
	if raw := c.FormValue("songs"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &songs); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid songs payload"))
		}
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image file is required"))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateUpload(description, categoryName, fileHeader.Filename,
		contentType, fileHeader.Size, s.config.UploadMaxSizeBytes()); err != nil {
		return respondError(c, err)
	}

	// Random stored name so uploads cannot collide or traverse paths.
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	storedName := uuid.New().String() + ext
	storedPath := filepath.Join(s.config.UploadDir, storedName)

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	if err := c.SaveFile(fileHeader, storedPath); err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	imageURL := s.config.PublicBaseURL + "/uploads/" + storedName

	post, err := s.postService.Publish(c.Context(), service.PublishInput{
		OwnerID:      userID,
		CategoryName: categoryName,
		Description:  description,
		ImageURL:     imageURL,
		Filename:     fileHeader.Filename,
		ContentType:  contentType,
		Size:         fileHeader.Size,
		Songs:        songs,
	})
	if err != nil {
		_ = os.Remove(storedPath)
		return respondError(c, err)
	}

	full, err := s.postService.GetPost(c.Context(), post.ID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(full)
}

// GetPost returns a post with its computed like and song data.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID, s.optionalUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// GetCategoryFeed returns a category's posts, newest first.
func (s *Server) GetCategoryFeed(c *fiber.Ctx) error {
	categoryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	posts, err := s.postService.ListByCategory(c.Context(), categoryID, p.Limit, p.Offset, s.optionalUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetUserPosts returns the given user's posts, newest first.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	posts, err := s.postService.ListByUser(c.Context(), userID, p.Limit, p.Offset, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

type updatePostRequest struct {
	Description string                 `json:"description"`
	Songs       []validation.SongInput `json:"songs"`
}

// UpdatePost edits a post's description and song list in place.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := currentUserID(c)
	if err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		ActorID:     userID,
		PostID:      postID,
		Description: req.Description,
		Songs:       req.Songs,
	}); err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.GetPost(c.Context(), postID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost retracts the authenticated user's own post.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.Retract(c.Context(), service.RetractInput{
		ActorID:      currentUserID(c),
		ActorIsAdmin: currentIsAdmin(c),
		PostID:       postID,
	}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// ToggleLike flips the liked state for the authenticated user on the post
// and returns the refreshed post.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.ToggleLike(c.Context(), currentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}
