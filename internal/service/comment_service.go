package service

import (
	"context"

	"galeto/internal/models"
	"galeto/internal/repository"
)

// CommentService handles comment creation, editing and deletion.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	notifRepo   repository.NotificationRepository
}

// CreateCommentInput carries a new comment.
type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

// UpdateCommentInput carries an edit of an existing comment.
type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

// DeleteCommentInput identifies the comment to delete and the acting user.
type DeleteCommentInput struct {
	ActorID      uint
	ActorIsAdmin bool
	CommentID    uint
}

const (
	maxCommentLen = 2000
	// snippetLen caps the comment excerpt copied into a notification,
	// measured in runes.
	snippetLen = 100
)

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, notifRepo repository.NotificationRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		notifRepo:   notifRepo,
	}
}

// CreateComment stores the comment and notifies the post owner with a
// capped excerpt, unless the commenter owns the post.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: in.Content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		// Truncate on a rune boundary so a multi-byte character is never
		// split mid-sequence.
		snippet := in.Content
		if runes := []rune(snippet); len(runes) > snippetLen {
			snippet = string(runes[:snippetLen])
		}
		pid := in.PostID
		notice := &models.Notification{
			ReceiverID: post.UserID,
			SenderID:   in.UserID,
			PostID:     &pid,
			Type:       models.NotificationTypeComment,
			Snippet:    snippet,
		}
		if err := s.notifRepo.Create(ctx, notice); err != nil {
			return nil, err
		}
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns a post's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// UpdateComment edits a comment. Only the author may edit.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes a comment. The author may delete their own; an
// administrator may delete anyone's, in which case the author receives an
// admin notice referencing the comment's post.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}

	if comment.UserID != in.ActorID && !in.ActorIsAdmin {
		return models.NewForbiddenError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return err
	}

	if in.ActorIsAdmin && comment.UserID != in.ActorID {
		pid := comment.PostID
		notice := &models.Notification{
			ReceiverID: comment.UserID,
			SenderID:   in.ActorID,
			PostID:     &pid,
			Type:       models.NotificationTypeAdminDelCmt,
			Snippet:    "An administrator removed your comment for inappropriate content",
		}
		if err := s.notifRepo.Create(ctx, notice); err != nil {
			return err
		}
	}
	return nil
}
