// Package service contains the application's business logic, between the
// HTTP handlers and the repositories.
package service

import (
	"context"
	"log/slog"

	"galeto/internal/middleware"
	"galeto/internal/models"
	"galeto/internal/repository"
	"galeto/internal/validation"
)

// PostService orchestrates post publication, retraction, editing and likes.
type PostService struct {
	postRepo       repository.PostRepository
	notifRepo      repository.NotificationRepository
	maxUploadBytes int64
}

// PublishInput is the candidate publication payload. ImageURL points at the
// already-stored media file; the filename/content-type/size triple describes
// the uploaded binary for validation.
type PublishInput struct {
	OwnerID      uint
	CategoryName string
	Description  string
	ImageURL     string
	Filename     string
	ContentType  string
	Size         int64
	Songs        []validation.SongInput
}

// RetractInput identifies the post to retract and the acting user.
type RetractInput struct {
	ActorID      uint
	ActorIsAdmin bool
	PostID       uint
}

// UpdatePostInput carries an in-place edit of a published post.
type UpdatePostInput struct {
	ActorID     uint
	PostID      uint
	Description string
	Songs       []validation.SongInput
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, notifRepo repository.NotificationRepository, maxUploadBytes int64) *PostService {
	return &PostService{
		postRepo:       postRepo,
		notifRepo:      notifRepo,
		maxUploadBytes: maxUploadBytes,
	}
}

// Publish validates the payload and runs the publication transaction.
// Validation failures never touch storage; an unknown category aborts the
// transaction before any row is written.
func (s *PostService) Publish(ctx context.Context, in PublishInput) (*models.Post, error) {
	if err := validation.ValidateUpload(in.Description, in.CategoryName, in.Filename, in.ContentType, in.Size, s.maxUploadBytes); err != nil {
		return nil, err
	}

	songs := validation.FilterSongs(in.Songs)
	entries := make([]repository.SongEntry, 0, len(songs))
	for _, song := range songs {
		entries = append(entries, repository.SongEntry{Title: song.Title, Link: song.Link})
	}

	return s.postRepo.Publish(ctx, in.OwnerID, in.CategoryName, in.Description, in.ImageURL, entries)
}

// Retract checks authorization, runs the retraction cascade and, for an
// admin retracting another user's post, inserts a best-effort notification
// to the original owner after the cascade commits. The notification is
// deliberately outside the transaction: the post is gone either way, and a
// notification failure must not roll back a successful deletion.
func (s *PostService) Retract(ctx context.Context, in RetractInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return err
	}

	ownerID := post.UserID
	if ownerID != in.ActorID && !in.ActorIsAdmin {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if err := s.postRepo.Retract(ctx, in.PostID); err != nil {
		return err
	}

	if in.ActorIsAdmin && ownerID != in.ActorID {
		notice := &models.Notification{
			ReceiverID: ownerID,
			SenderID:   in.ActorID,
			Type:       models.NotificationTypeAdminDelPost,
			Snippet:    "An administrator removed your post for inappropriate content",
		}
		if err := s.notifRepo.Create(ctx, notice); err != nil {
			middleware.Logger.WarnContext(ctx, "admin retraction notice not delivered",
				slog.Any("post_id", in.PostID),
				slog.Any("owner_id", ownerID),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

// UpdatePost edits a published post in place: the description is updated
// and song rows are overwritten by position, never deleted and reinserted.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return err
	}
	if post.UserID != in.ActorID {
		return models.NewForbiddenError("You can only edit your own posts")
	}
	if in.Description == "" {
		return models.NewValidationError("Description is required")
	}

	if err := s.postRepo.UpdateDescription(ctx, in.PostID, in.Description); err != nil {
		return err
	}

	if songs := validation.FilterSongs(in.Songs); len(songs) > 0 {
		entries := make([]repository.SongEntry, 0, len(songs))
		for _, song := range songs {
			entries = append(entries, repository.SongEntry{Title: song.Title, Link: song.Link})
		}
		if err := s.postRepo.UpdateSongsInPlace(ctx, in.PostID, entries); err != nil {
			return err
		}
	}
	return nil
}

// GetPost returns a post with its computed like and song data.
func (s *PostService) GetPost(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

// ListByCategory returns the newest-first feed for a category.
func (s *PostService) ListByCategory(ctx context.Context, categoryID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.ListByCategory(ctx, categoryID, limit, offset, currentUserID)
}

// ListByUser returns a user's posts, newest first.
func (s *PostService) ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.ListByUser(ctx, userID, limit, offset, currentUserID)
}

// ToggleLike flips the liked state for (user, post). Liking notifies the
// post owner unless they are the actor; unliking removes the like notice.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
		if err := s.notifRepo.DeleteLikeNotification(ctx, userID, postID); err != nil {
			return nil, err
		}
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, err
		}
		if post.UserID != userID {
			pid := postID
			notice := &models.Notification{
				ReceiverID: post.UserID,
				SenderID:   userID,
				PostID:     &pid,
				Type:       models.NotificationTypeLike,
			}
			if err := s.notifRepo.Create(ctx, notice); err != nil {
				return nil, err
			}
		}
	}

	return s.postRepo.GetByID(ctx, postID, userID)
}
