package repository

import (
	"context"
	"errors"

	"galeto/internal/cache"
	"galeto/internal/models"

	"gorm.io/gorm"
)

// SongEntry is one validated {title, link} pair handed to Publish in
// submission order. Entries reaching the repository are already filtered;
// positions are assigned here as dense 1-based indexes.
type SongEntry struct {
	Title string
	Link  string
}

// PostRepository defines the interface for post data operations, including
// the two compound transactional operations: Publish and Retract.
type PostRepository interface {
	Publish(ctx context.Context, ownerID uint, categoryName, description, imageURL string, songs []SongEntry) (*models.Post, error)
	Retract(ctx context.Context, postID uint) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	ListByCategory(ctx context.Context, categoryID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	UpdateDescription(ctx context.Context, postID uint, description string) error
	UpdateSongsInPlace(ctx context.Context, postID uint, songs []SongEntry) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Publish runs the whole publication as a single transaction:
//  1. resolve the category name to its identifier (first in-tx statement, so
//     a concurrent category rename cannot race the writes that depend on it),
//  2. insert the post row and obtain its generated identifier,
//  3. for each song in input order, insert the song row and then the link
//     row with position = 1-based index.
//
// Either all rows become visible together or none do; any failure rolls the
// entire set back, including the post row.
func (r *postRepository) Publish(ctx context.Context, ownerID uint, categoryName, description, imageURL string, songs []SongEntry) (*models.Post, error) {
	var post *models.Post

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("name = ?", categoryName).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Category", categoryName)
			}
			return err
		}

		post = &models.Post{
			UserID:      ownerID,
			CategoryID:  category.ID,
			Description: description,
			ImageURL:    imageURL,
		}
		if err := tx.Create(post).Error; err != nil {
			return err
		}

		for i, entry := range songs {
			song := models.Song{Title: entry.Title, ExternalURL: entry.Link}
			if err := tx.Create(&song).Error; err != nil {
				return err
			}
			link := models.SongLink{
				PostID:   post.ID,
				SongID:   song.ID,
				Position: i + 1,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewStorageError("failed to publish post", err)
	}

	cache.InvalidateCategoryFeed(ctx, post.CategoryID)
	return post, nil
}

// Retract deletes a post and every row referencing it as a single atomic
// unit, deepest dependents first: notifications, likes, comments, votes,
// song links, then the post row itself. Partial deletion never becomes
// visible; a failure at any step rolls back all prior deletes.
//
// The authorization check gating entry and the best-effort admin
// notification both live in the service layer; neither is part of this
// transaction.
func (r *postRepository) Retract(ctx context.Context, postID uint) error {
	var categoryID uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id", "category_id").First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return err
		}
		categoryID = post.CategoryID

		steps := []func() error{
			func() error {
				return tx.Where("post_id = ?", postID).Delete(&models.Notification{}).Error
			},
			func() error { return tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error },
			func() error { return tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error },
			func() error { return tx.Where("post_id = ?", postID).Delete(&models.SongVote{}).Error },
			func() error { return tx.Where("post_id = ?", postID).Delete(&models.SongLink{}).Error },
			func() error { return tx.Delete(&models.Post{}, postID).Error },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewStorageError("failed to retract post", err)
	}

	cache.InvalidatePost(ctx, postID)
	cache.InvalidateCategoryFeed(ctx, categoryID)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
			return r.fetchPost(ctx, id, 0, &post)
		})
	} else {
		err = r.fetchPost(ctx, id, currentUserID, &post)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) fetchPost(ctx context.Context, id, currentUserID uint, post *models.Post) error {
	if err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Category").
		First(post, id).Error; err != nil {
		return err
	}
	return r.loadSongs(ctx, post)
}

// categoryFeedCachedLimit bounds the page sizes served from the feed cache.
const categoryFeedCachedLimit = 20

// ListByCategory returns a category's posts, newest first. Only the anonymous
// first page is cached, under a single key per category, so invalidation on
// publish and retract stays a plain DEL.
func (r *postRepository) ListByCategory(ctx context.Context, categoryID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	if currentUserID == 0 && offset == 0 && limit <= categoryFeedCachedLimit {
		err := cache.Aside(ctx, cache.CategoryFeedKey(categoryID), &posts, cache.CategoryFeedTTL, func() error {
			return r.fetchCategoryFeed(ctx, categoryID, limit, 0, 0, &posts)
		})
		if err != nil {
			return nil, err
		}
		return posts, nil
	}
	if err := r.fetchCategoryFeed(ctx, categoryID, limit, offset, currentUserID, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) fetchCategoryFeed(ctx context.Context, categoryID uint, limit, offset int, currentUserID uint, posts *[]*models.Post) error {
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Category").
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(posts).Error
	if err != nil {
		return err
	}
	for _, p := range *posts {
		if err := r.loadSongs(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if err := r.loadSongs(ctx, p); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// applyPostDetails adds subqueries to fetch the likes count and liked status
// in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", currentUserID)
	}
	return db.Select(selectQuery + ", false as liked")
}

// loadSongs assembles the ordered song list with per-song vote counts.
func (r *postRepository) loadSongs(ctx context.Context, post *models.Post) error {
	var songs []models.PostSong
	err := r.db.WithContext(ctx).
		Table("song_links").
		Select("song_links.song_id, songs.title, songs.external_url, song_links.position, "+
			"(SELECT COUNT(*) FROM song_votes WHERE song_votes.post_id = song_links.post_id AND song_votes.song_id = song_links.song_id) as votes").
		Joins("JOIN songs ON songs.id = song_links.song_id").
		Where("song_links.post_id = ?", post.ID).
		Order("song_links.position ASC").
		Scan(&songs).Error
	if err != nil {
		return err
	}
	post.Songs = songs
	return nil
}

// UpdateDescription mutates the published row in place. Editing has no
// multi-table dependency ordering, so it is deliberately not transactional.
func (r *postRepository) UpdateDescription(ctx context.Context, postID uint, description string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		Update("description", description).Error
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

// UpdateSongsInPlace overwrites existing song rows position by position
// rather than delete/reinsert. Entries beyond the stored song count are
// ignored, matching the edit semantics of the upload flow.
func (r *postRepository) UpdateSongsInPlace(ctx context.Context, postID uint, songs []SongEntry) error {
	var links []models.SongLink
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("position ASC").
		Find(&links).Error; err != nil {
		return err
	}

	n := len(songs)
	if len(links) < n {
		n = len(links)
	}
	for i := 0; i < n; i++ {
		err := r.db.WithContext(ctx).
			Model(&models.Song{}).
			Where("id = ?", links[i].SongID).
			Updates(map[string]interface{}{
				"title":        songs[i].Title,
				"external_url": songs[i].Link,
			}).Error
		if err != nil {
			return err
		}
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Create(&models.Like{UserID: userID, PostID: postID}).Error
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}
