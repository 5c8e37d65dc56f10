package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/address/model"
	"storefront-backend/internal/domains/address/repository"
	"storefront-backend/pkg/logger"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req model.AddressRequest) (*model.Address, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
	GetDefault(ctx context.Context, userID uuid.UUID) (*model.Address, error)
	// GetForUser returns the address only when userID owns it.
	GetForUser(ctx context.Context, userID, id uuid.UUID) (*model.Address, error)
	Update(ctx context.Context, userID, id uuid.UUID, req model.AddressRequest) (*model.Address, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	SetDefault(ctx context.Context, userID, id uuid.UUID) (*model.Address, error)
}

type addressService struct {
	repo repository.Repository
}

func NewAddressService(repo repository.Repository) Service {
	return &addressService{repo: repo}
}

// Create makes the first address in a book the default.
func (s *addressService) Create(ctx context.Context, userID uuid.UUID, req model.AddressRequest) (*model.Address, error) {
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= model.MaxAddressesPerUser {
		return nil, model.NewAddressError(model.ErrCodeAddressLimit,
			fmt.Sprintf("An address book holds at most %d addresses", model.MaxAddressesPerUser), model.ErrAddressLimit)
	}

	a := &model.Address{
		ID:        uuid.New(),
		UserID:    userID,
		IsDefault: req.IsDefault || count == 0,
	}
	req.Apply(a)

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	logger.Info("Address added", map[string]interface{}{
		"user_id":    userID,
		"address_id": a.ID,
		"is_default": a.IsDefault,
	})
	return a, nil
}

func (s *addressService) List(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *addressService) GetDefault(ctx context.Context, userID uuid.UUID) (*model.Address, error) {
	a, err := s.repo.GetDefault(ctx, userID)
	if errors.Is(err, model.ErrNoDefault) {
		return nil, model.NewAddressError(model.ErrCodeNoDefault, "Default address not found", err)
	}
	return a, err
}

func (s *addressService) GetForUser(ctx context.Context, userID, id uuid.UUID) (*model.Address, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapAddressErr(err)
	}
	if a.UserID != userID {
		return nil, notFound()
	}
	return a, nil
}

func (s *addressService) Update(ctx context.Context, userID, id uuid.UUID, req model.AddressRequest) (*model.Address, error) {
	a := &model.Address{ID: id, UserID: userID}
	req.Apply(a)

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, mapAddressErr(err)
	}
	if req.IsDefault && !a.IsDefault {
		if err := s.repo.SetDefault(ctx, userID, id); err != nil {
			return nil, mapAddressErr(err)
		}
		a.IsDefault = true
	}
	return a, nil
}

func (s *addressService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return mapAddressErr(err)
	}

	logger.Info("Address deleted", map[string]interface{}{"user_id": userID, "address_id": id})
	return nil
}

func (s *addressService) SetDefault(ctx context.Context, userID, id uuid.UUID) (*model.Address, error) {
	if err := s.repo.SetDefault(ctx, userID, id); err != nil {
		return nil, mapAddressErr(err)
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapAddressErr(err)
	}
	return a, nil
}

func notFound() error {
	return model.NewAddressError(model.ErrCodeAddressNotFound, "Address not found", model.ErrAddressNotFound)
}

func mapAddressErr(err error) error {
	if errors.Is(err, model.ErrAddressNotFound) {
		return notFound()
	}
	return err
}
