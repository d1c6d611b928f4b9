package repository

import (
	"context"
	"errors"

	"galeto/internal/models"

	"gorm.io/gorm"
)

// UserActivityRow aggregates per-user activity for the admin dashboard.
type UserActivityRow struct {
	UserID        uint   `json:"user_id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	PostCount     int64  `json:"post_count"`
	LikesReceived int64  `json:"likes_received"`
}

// DashboardStats holds the admin dashboard counters.
type DashboardStats struct {
	TotalUsers int64 `json:"total_users"`
	TotalPosts int64 `json:"total_posts"`
	TotalLikes int64 `json:"total_likes"`
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Stats(ctx context.Context) (*DashboardStats, error)
	ActivityRows(ctx context.Context, limit, offset int) ([]UserActivityRow, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Where("is_admin = ?", false).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Post{}).Count(&stats.TotalPosts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Like{}).Count(&stats.TotalLikes).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// ActivityRows lists non-admin users with their post and received-like
// counts, newest accounts first.
func (r *userRepository) ActivityRows(ctx context.Context, limit, offset int) ([]UserActivityRow, error) {
	var rows []UserActivityRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id as user_id, users.username, users.email, "+
			"(SELECT COUNT(*) FROM posts WHERE posts.user_id = users.id) as post_count, "+
			"(SELECT COUNT(*) FROM likes JOIN posts p ON p.id = likes.post_id WHERE p.user_id = users.id) as likes_received").
		Where("users.is_admin = ? AND users.deleted_at IS NULL", false).
		Order("users.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	return rows, err
}
