package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"galeto/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentValidation(t *testing.T) {
	created := false
	commentRepo := noopCommentRepo()
	commentRepo.createFn = func(_ context.Context, _ *models.Comment) error {
		created = true
		return nil
	}
	svc := NewCommentService(commentRepo, noopPostRepo(), noopNotifRepo())

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 1, Content: ""})
	assertValidationError(t, err)

	_, err = svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: 1, PostID: 1, Content: strings.Repeat("x", maxCommentLen+1),
	})
	assertValidationError(t, err)

	assert.False(t, created)
}

func TestCreateCommentNotifiesWithCappedSnippet(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 42}, nil
	}

	var created []*models.Notification
	notifRepo := noopNotifRepo()
	notifRepo.createFn = func(_ context.Context, n *models.Notification) error {
		created = append(created, n)
		return nil
	}
	svc := NewCommentService(noopCommentRepo(), postRepo, notifRepo)

	long := strings.Repeat("y", 300)
	_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 7, PostID: 1, Content: long})
	require.NoError(t, err)

	require.Len(t, created, 1)
	n := created[0]
	assert.Equal(t, models.NotificationTypeComment, n.Type)
	assert.Equal(t, uint(42), n.ReceiverID)
	assert.Len(t, n.Snippet, snippetLen)

	// Multi-byte text must not be cut mid-character.
	accented := strings.Repeat("ñ", 300)
	_, err = svc.CreateComment(context.Background(), CreateCommentInput{UserID: 7, PostID: 1, Content: accented})
	require.NoError(t, err)

	require.Len(t, created, 2)
	n = created[1]
	assert.True(t, utf8.ValidString(n.Snippet))
	assert.Equal(t, snippetLen, utf8.RuneCountInString(n.Snippet))
}

func TestCreateCommentOwnPostNoNotice(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 7}, nil
	}

	var created int
	notifRepo := noopNotifRepo()
	notifRepo.createFn = func(_ context.Context, _ *models.Notification) error {
		created++
		return nil
	}
	svc := NewCommentService(noopCommentRepo(), postRepo, notifRepo)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 7, PostID: 1, Content: "mine"})
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestUpdateCommentAuthorOnly(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 42}, nil
	}
	svc := NewCommentService(commentRepo, noopPostRepo(), noopNotifRepo())

	_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 7, CommentID: 1, Content: "edit"})
	assertForbiddenError(t, err)
}

func TestDeleteCommentAuthorization(t *testing.T) {
	deleted := false
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 42, PostID: 9}, nil
	}
	commentRepo.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}
	svc := NewCommentService(commentRepo, noopPostRepo(), noopNotifRepo())

	err := svc.DeleteComment(context.Background(), DeleteCommentInput{ActorID: 7, ActorIsAdmin: false, CommentID: 1})
	assertForbiddenError(t, err)
	assert.False(t, deleted)
}

func TestAdminDeleteCommentNotifiesAuthor(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 42, PostID: 9}, nil
	}

	var created []*models.Notification
	notifRepo := noopNotifRepo()
	notifRepo.createFn = func(_ context.Context, n *models.Notification) error {
		created = append(created, n)
		return nil
	}
	svc := NewCommentService(commentRepo, noopPostRepo(), notifRepo)

	err := svc.DeleteComment(context.Background(), DeleteCommentInput{ActorID: 1, ActorIsAdmin: true, CommentID: 1})
	require.NoError(t, err)

	require.Len(t, created, 1)
	n := created[0]
	assert.Equal(t, models.NotificationTypeAdminDelCmt, n.Type)
	assert.Equal(t, uint(42), n.ReceiverID)
	require.NotNil(t, n.PostID)
	assert.Equal(t, uint(9), *n.PostID)
}

func TestAuthorDeleteOwnCommentNoNotice(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 7, PostID: 9}, nil
	}

	var created int
	notifRepo := noopNotifRepo()
	notifRepo.createFn = func(_ context.Context, _ *models.Notification) error {
		created++
		return nil
	}
	svc := NewCommentService(commentRepo, noopPostRepo(), notifRepo)

	err := svc.DeleteComment(context.Background(), DeleteCommentInput{ActorID: 7, ActorIsAdmin: false, CommentID: 1})
	require.NoError(t, err)
	assert.Zero(t, created)
}
