package service

import (
	"context"

	"galeto/internal/repository"
)

// AdminService backs the moderation dashboard.
type AdminService struct {
	userRepo repository.UserRepository
}

// Dashboard bundles the dashboard counters with the per-user activity table.
type Dashboard struct {
	Stats *repository.DashboardStats   `json:"stats"`
	Users []repository.UserActivityRow `json:"users"`
}

// NewAdminService creates a new admin service.
func NewAdminService(userRepo repository.UserRepository) *AdminService {
	return &AdminService{userRepo: userRepo}
}

// Dashboard returns site-wide counters and per-user activity rows. The
// admin capability check happens at the HTTP layer.
func (s *AdminService) Dashboard(ctx context.Context, limit, offset int) (*Dashboard, error) {
	stats, err := s.userRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.userRepo.ActivityRows(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Stats: stats, Users: rows}, nil
}
