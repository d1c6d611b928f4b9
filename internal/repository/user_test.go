package repository

import (
	"context"
	"testing"

	"galeto/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryLookups(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "ana")

	t.Run("GetByUsername", func(t *testing.T) {
		found, err := repo.GetByUsername(ctx, "ana")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("missing user is nil not error", func(t *testing.T) {
		found, err := repo.GetByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, found)

		found, err = repo.GetByEmail(ctx, "nobody@galeto.test")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestDashboardStatsAndActivity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	seedCategory(t, db, "Naturaleza")

	admin := &models.User{Username: "admin", Email: "admin@galeto.test", Password: "x", IsAdmin: true}
	require.NoError(t, db.Create(admin).Error)
	poster := seedUser(t, db, "poster")
	fan := seedUser(t, db, "fan")

	post, err := postRepo.Publish(ctx, poster.ID, "Naturaleza", "desc", "/uploads/f.jpg", nil)
	require.NoError(t, err)
	require.NoError(t, postRepo.Like(ctx, fan.ID, post.ID))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers, "admins are not counted")
	assert.Equal(t, int64(1), stats.TotalPosts)
	assert.Equal(t, int64(1), stats.TotalLikes)

	rows, err := repo.ActivityRows(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byName := map[string]UserActivityRow{}
	for _, row := range rows {
		byName[row.Username] = row
	}
	assert.Equal(t, int64(1), byName["poster"].PostCount)
	assert.Equal(t, int64(1), byName["poster"].LikesReceived)
	assert.Equal(t, int64(0), byName["fan"].PostCount)
	assert.Equal(t, int64(0), byName["fan"].LikesReceived)
}
