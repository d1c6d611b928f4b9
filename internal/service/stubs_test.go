package service

import (
	"context"
	"errors"
	"testing"

	"galeto/internal/models"
	"galeto/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	publishFn           func(context.Context, uint, string, string, string, []repository.SongEntry) (*models.Post, error)
	retractFn           func(context.Context, uint) error
	getByIDFn           func(context.Context, uint, uint) (*models.Post, error)
	listByCategoryFn    func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	listByUserFn        func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	updateDescriptionFn func(context.Context, uint, string) error
	updateSongsFn       func(context.Context, uint, []repository.SongEntry) error
	isLikedFn           func(context.Context, uint, uint) (bool, error)
	likeFn              func(context.Context, uint, uint) error
	unlikeFn            func(context.Context, uint, uint) error
}

func (s *postRepoStub) Publish(ctx context.Context, ownerID uint, categoryName, description, imageURL string, songs []repository.SongEntry) (*models.Post, error) {
	return s.publishFn(ctx, ownerID, categoryName, description, imageURL, songs)
}
func (s *postRepoStub) Retract(ctx context.Context, postID uint) error {
	return s.retractFn(ctx, postID)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) ListByCategory(ctx context.Context, categoryID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listByCategoryFn(ctx, categoryID, limit, offset, currentUserID)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listByUserFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) UpdateDescription(ctx context.Context, postID uint, description string) error {
	return s.updateDescriptionFn(ctx, postID, description)
}
func (s *postRepoStub) UpdateSongsInPlace(ctx context.Context, postID uint, songs []repository.SongEntry) error {
	return s.updateSongsFn(ctx, postID, songs)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		publishFn: func(_ context.Context, _ uint, _, _, _ string, _ []repository.SongEntry) (*models.Post, error) {
			return &models.Post{}, nil
		},
		retractFn: func(_ context.Context, _ uint) error { return nil },
		getByIDFn: func(_ context.Context, _, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listByCategoryFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		listByUserFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		updateDescriptionFn: func(_ context.Context, _ uint, _ string) error { return nil },
		updateSongsFn:       func(_ context.Context, _ uint, _ []repository.SongEntry) error { return nil },
		isLikedFn:           func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:              func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:            func(_ context.Context, _, _ uint) error { return nil },
	}
}

// notifRepoStub is a stub for repository.NotificationRepository.
type notifRepoStub struct {
	createFn         func(context.Context, *models.Notification) error
	listByReceiverFn func(context.Context, uint, int, int) ([]*models.Notification, error)
	unreadCountFn    func(context.Context, uint) (int64, error)
	markReadFn       func(context.Context, uint, []uint) (int64, error)
	deleteFn         func(context.Context, uint, uint) error
	deleteLikeFn     func(context.Context, uint, uint) error
}

func (s *notifRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notifRepoStub) ListByReceiver(ctx context.Context, receiverID uint, limit, offset int) ([]*models.Notification, error) {
	return s.listByReceiverFn(ctx, receiverID, limit, offset)
}
func (s *notifRepoStub) UnreadCount(ctx context.Context, receiverID uint) (int64, error) {
	return s.unreadCountFn(ctx, receiverID)
}
func (s *notifRepoStub) MarkRead(ctx context.Context, receiverID uint, ids []uint) (int64, error) {
	return s.markReadFn(ctx, receiverID, ids)
}
func (s *notifRepoStub) Delete(ctx context.Context, receiverID, id uint) error {
	return s.deleteFn(ctx, receiverID, id)
}
func (s *notifRepoStub) DeleteLikeNotification(ctx context.Context, senderID, postID uint) error {
	return s.deleteLikeFn(ctx, senderID, postID)
}

func noopNotifRepo() *notifRepoStub {
	return &notifRepoStub{
		createFn: func(_ context.Context, _ *models.Notification) error { return nil },
		listByReceiverFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Notification, error) {
			return nil, nil
		},
		unreadCountFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		markReadFn:    func(_ context.Context, _ uint, _ []uint) (int64, error) { return 0, nil },
		deleteFn:      func(_ context.Context, _, _ uint) error { return nil },
		deleteLikeFn:  func(_ context.Context, _, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// voteRepoStub is a stub for repository.VoteRepository.
type voteRepoStub struct {
	castFn             func(context.Context, uint, uint, uint) (bool, error)
	getByUserAndPostFn func(context.Context, uint, uint) (*models.SongVote, error)
}

func (s *voteRepoStub) Cast(ctx context.Context, userID, postID, songID uint) (bool, error) {
	return s.castFn(ctx, userID, postID, songID)
}
func (s *voteRepoStub) GetByUserAndPost(ctx context.Context, userID, postID uint) (*models.SongVote, error) {
	return s.getByUserAndPostFn(ctx, userID, postID)
}

func noopVoteRepo() *voteRepoStub {
	return &voteRepoStub{
		castFn:             func(_ context.Context, _, _, _ uint) (bool, error) { return false, nil },
		getByUserAndPostFn: func(_ context.Context, _, _ uint) (*models.SongVote, error) { return nil, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	updateFn        func(context.Context, *models.User) error
	statsFn         func(context.Context) (*repository.DashboardStats, error)
	activityRowsFn  func(context.Context, int, int) ([]repository.UserActivityRow, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Stats(ctx context.Context) (*repository.DashboardStats, error) {
	return s.statsFn(ctx)
}
func (s *userRepoStub) ActivityRows(ctx context.Context, limit, offset int) ([]repository.UserActivityRow, error) {
	return s.activityRowsFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		statsFn:         func(_ context.Context) (*repository.DashboardStats, error) { return &repository.DashboardStats{}, nil },
		activityRowsFn: func(_ context.Context, _, _ int) ([]repository.UserActivityRow, error) {
			return nil, nil
		},
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertForbiddenError asserts that err is an AppError with code FORBIDDEN.
func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}
