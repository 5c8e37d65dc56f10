package service

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/user/model"
	"storefront-backend/internal/domains/user/repository"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

type Service interface {
	ListUsers(ctx context.Context, req model.ListUsersRequest) ([]model.User, int, error)
	SetActive(ctx context.Context, id uuid.UUID, isActive bool) error
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req model.UpdateProfileRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo repository.Repository
}

func NewUserService(repo repository.Repository) Service {
	return &userService{repo: repo}
}

func (s *userService) ListUsers(ctx context.Context, req model.ListUsersRequest) ([]model.User, int, error) {
	if req.Page < 1 {
		req.Page = utils.DefaultPage
	}
	if req.Limit < 1 || req.Limit > utils.MaxLimit {
		req.Limit = utils.DefaultLimit
	}
	return s.repo.List(ctx, req)
}

// SetActive blocks or unblocks a shopper.
func (s *userService) SetActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	if err := s.repo.UpdateStatus(ctx, id, isActive); err != nil {
		return err
	}

	logger.Info("User status changed", map[string]interface{}{
		"user_id":   id,
		"is_active": isActive,
	})
	return nil
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req model.UpdateProfileRequest) (*model.User, error) {
	req.Normalize()
	u, err := s.repo.UpdateProfile(ctx, id, req)
	if err != nil {
		return nil, err
	}

	logger.Info("Profile updated", map[string]interface{}{"user_id": id})
	return u, nil
}

// DeleteUser is admin-only. Users with order history are kept for the
// ledger; block them instead.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("User deleted", map[string]interface{}{"user_id": id})
	return nil
}
