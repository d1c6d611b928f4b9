package service

import (
	"context"
	"errors"

	"galeto/internal/models"
	"galeto/internal/repository"
)

// VoteService handles song voting on posts.
type VoteService struct {
	voteRepo  repository.VoteRepository
	postRepo  repository.PostRepository
	notifRepo repository.NotificationRepository
}

// VoteInput carries a vote for one song of a post.
type VoteInput struct {
	UserID uint
	PostID uint
	SongID uint
}

// NewVoteService creates a new vote service.
func NewVoteService(voteRepo repository.VoteRepository, postRepo repository.PostRepository, notifRepo repository.NotificationRepository) *VoteService {
	return &VoteService{
		voteRepo:  voteRepo,
		postRepo:  postRepo,
		notifRepo: notifRepo,
	}
}

// Vote records or moves the user's vote under a post. A user holds a single
// vote per post; voting for the song they already chose is rejected, voting
// for a different one overwrites the previous choice. The post owner is
// notified unless they are the voter.
func (s *VoteService) Vote(ctx context.Context, in VoteInput) (changed bool, err error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return false, err
	}

	var belongs bool
	for _, song := range post.Songs {
		if song.SongID == in.SongID {
			belongs = true
			break
		}
	}
	if !belongs {
		return false, models.NewValidationError("Song does not belong to this post")
	}

	changed, err = s.voteRepo.Cast(ctx, in.UserID, in.PostID, in.SongID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateVote) {
			return false, models.NewValidationError("You have already voted for this song")
		}
		return false, err
	}

	if post.UserID != in.UserID {
		pid := in.PostID
		notice := &models.Notification{
			ReceiverID: post.UserID,
			SenderID:   in.UserID,
			PostID:     &pid,
			Type:       models.NotificationTypeVote,
		}
		if err := s.notifRepo.Create(ctx, notice); err != nil {
			return changed, err
		}
	}
	return changed, nil
}
