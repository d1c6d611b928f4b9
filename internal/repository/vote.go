package repository

import (
	"context"
	"errors"
	"time"

	"galeto/internal/cache"
	"galeto/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicateVote is returned when a user votes again for the song they
// already voted for under the same post.
var ErrDuplicateVote = errors.New("vote already cast for this song")

// VoteRepository defines the interface for song-vote data operations.
type VoteRepository interface {
	Cast(ctx context.Context, userID, postID, songID uint) (changed bool, err error)
	GetByUserAndPost(ctx context.Context, userID, postID uint) (*models.SongVote, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Cast records or moves the user's vote under a post. At most one row ever
// exists per (user, post): voting for a different song overwrites the
// existing row's song reference and timestamp instead of inserting a second
// row. Returns changed=true when an existing vote was moved.
func (r *voteRepository) Cast(ctx context.Context, userID, postID, songID uint) (bool, error) {
	var existing models.SongVote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&existing).Error

	switch {
	case err == nil:
		if existing.SongID == songID {
			return false, ErrDuplicateVote
		}
		err = r.db.WithContext(ctx).
			Model(&models.SongVote{}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Updates(map[string]interface{}{
				"song_id":    songID,
				"created_at": time.Now().UTC(),
			}).Error
		if err != nil {
			return false, err
		}
		cache.InvalidatePost(ctx, postID)
		return true, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		vote := models.SongVote{UserID: userID, PostID: postID, SongID: songID}
		if err := r.db.WithContext(ctx).Create(&vote).Error; err != nil {
			return false, err
		}
		cache.InvalidatePost(ctx, postID)
		return false, nil

	default:
		return false, err
	}
}

func (r *voteRepository) GetByUserAndPost(ctx context.Context, userID, postID uint) (*models.SongVote, error) {
	var vote models.SongVote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}
