package repository

import (
	"context"
	"testing"

	"galeto/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteCast(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	voter := seedUser(t, db, "voter")
	seedCategory(t, db, "Naturaleza")

	post, err := postRepo.Publish(ctx, owner.ID, "Naturaleza", "desc", "/uploads/f.jpg", []SongEntry{
		{Title: "A", Link: "http://a"},
		{Title: "B", Link: "http://b"},
	})
	require.NoError(t, err)

	var links []models.SongLink
	require.NoError(t, db.Where("post_id = ?", post.ID).Order("position ASC").Find(&links).Error)
	require.Len(t, links, 2)
	songA, songB := links[0].SongID, links[1].SongID

	t.Run("first vote inserts", func(t *testing.T) {
		changed, err := repo.Cast(ctx, voter.ID, post.ID, songA)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, int64(1), countRows(t, db, &models.SongVote{}))
	})

	t.Run("same song rejected", func(t *testing.T) {
		_, err := repo.Cast(ctx, voter.ID, post.ID, songA)
		assert.ErrorIs(t, err, ErrDuplicateVote)
		assert.Equal(t, int64(1), countRows(t, db, &models.SongVote{}))
	})

	t.Run("different song overwrites in place", func(t *testing.T) {
		changed, err := repo.Cast(ctx, voter.ID, post.ID, songB)
		require.NoError(t, err)
		assert.True(t, changed)

		assert.Equal(t, int64(1), countRows(t, db, &models.SongVote{}),
			"moving a vote must never leave a second row")

		vote, err := repo.GetByUserAndPost(ctx, voter.ID, post.ID)
		require.NoError(t, err)
		require.NotNil(t, vote)
		assert.Equal(t, songB, vote.SongID)
	})

	t.Run("vote counts follow the move", func(t *testing.T) {
		fetched, err := postRepo.GetByID(ctx, post.ID, 0)
		require.NoError(t, err)
		require.Len(t, fetched.Songs, 2)
		assert.Equal(t, int64(0), fetched.Songs[0].Votes)
		assert.Equal(t, int64(1), fetched.Songs[1].Votes)
	})
}

func TestVotesAreIndependentAcrossPosts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	voter := seedUser(t, db, "voter")
	seedCategory(t, db, "Naturaleza")

	entries := []SongEntry{{Title: "A", Link: "http://a"}}
	post1, err := postRepo.Publish(ctx, owner.ID, "Naturaleza", "p1", "/uploads/1.jpg", entries)
	require.NoError(t, err)
	post2, err := postRepo.Publish(ctx, owner.ID, "Naturaleza", "p2", "/uploads/2.jpg", entries)
	require.NoError(t, err)

	var link1, link2 models.SongLink
	require.NoError(t, db.Where("post_id = ?", post1.ID).First(&link1).Error)
	require.NoError(t, db.Where("post_id = ?", post2.ID).First(&link2).Error)

	_, err = repo.Cast(ctx, voter.ID, post1.ID, link1.SongID)
	require.NoError(t, err)
	_, err = repo.Cast(ctx, voter.ID, post2.ID, link2.SongID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), countRows(t, db, &models.SongVote{}),
		"one vote per post, not one vote globally")
}
