package service

import (
	"context"

	"galeto/internal/cache"
	"galeto/internal/models"
	"galeto/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles account registration, authentication and profiles.
type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

// RegisterInput carries a new account request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UpdateProfileInput carries a profile edit. Password change is optional and
// requires the current password.
type UpdateProfileInput struct {
	UserID          uint
	Username        string
	Email           string
	CurrentPassword string
	NewPassword     string
}

const minPasswordLen = 6

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo}
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Username, email and password are required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, models.NewValidationError("Password must be at least 6 characters")
	}

	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Username already taken")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the username/password pair. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// GetProfile returns the user together with their posts, newest first. The
// user row is served cache-aside; the cached copy never carries the password
// hash because the JSON encoding drops it.
func (s *UserService) GetProfile(ctx context.Context, userID, currentUserID uint) (*models.User, []*models.Post, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(userID), &user, cache.UserTTL, func() error {
		u, fetchErr := s.userRepo.GetByID(ctx, userID)
		if fetchErr != nil {
			return fetchErr
		}
		if u == nil {
			return models.NewNotFoundError("User", userID)
		}
		user = *u
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.postRepo.ListByUser(ctx, userID, 50, 0, currentUserID)
	if err != nil {
		return nil, nil, err
	}
	return &user, posts, nil
}

// UpdateProfile edits username/email and optionally rotates the password
// after verifying the current one.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" {
		return nil, models.NewValidationError("Username and email are required")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", in.UserID)
	}

	if in.Username != user.Username {
		if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, models.NewValidationError("Username already taken")
		}
	}
	if in.Email != user.Email {
		if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, models.NewValidationError("Email already registered")
		}
	}

	if in.NewPassword != "" {
		if len(in.NewPassword) < minPasswordLen {
			return nil, models.NewValidationError("Password must be at least 6 characters")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
			return nil, models.NewUnauthorizedError("Current password is incorrect")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hash)
	}

	user.Username = in.Username
	user.Email = in.Email
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	cache.InvalidateUser(ctx, user.ID)
	return user, nil
}
