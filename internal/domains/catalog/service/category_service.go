package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/catalog/repository"
	"storefront-backend/pkg/logger"
)

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req model.CategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)

	// Checked up front for a friendly error; the unique index is the real guard.
	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, model.NewCatalogError(model.ErrCodeCategoryExists, "Category already exists", model.ErrCategoryExists)
	} else if !errors.Is(err, model.ErrCategoryNotFound) {
		return nil, err
	}

	c := &model.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: req.Description,
		Offer:       req.Offer,
		Status:      req.Status,
		Visibility:  req.Visibility,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, mapCategoryErr(err)
	}

	logger.Info("Category created", map[string]interface{}{"category": c.Name})
	return c, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx, false)
}

func (s *categoryService) ListVisibleCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx, true)
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req model.CategoryRequest) (*model.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapCategoryErr(err)
	}

	name := strings.TrimSpace(req.Name)
	if !strings.EqualFold(name, c.Name) {
		if _, err := s.repo.GetByName(ctx, name); err == nil {
			return nil, model.NewCatalogError(model.ErrCodeCategoryExists, "Category already exists", model.ErrCategoryExists)
		}
	}

	c.Name = name
	c.Description = req.Description
	c.Offer = req.Offer
	c.Status = req.Status
	c.Visibility = req.Visibility

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, mapCategoryErr(err)
	}
	return c, nil
}

func (s *categoryService) ToggleStatus(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapCategoryErr(err)
	}

	c.Status = !c.Status
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, mapCategoryErr(err)
	}

	logger.Info("Category discount toggled", map[string]interface{}{
		"category": c.Name,
		"status":   c.Status,
	})
	return c, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return mapCategoryErr(s.repo.Delete(ctx, id))
}

func mapCategoryErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrCategoryNotFound):
		return model.NewCatalogError(model.ErrCodeCategoryNotFound, "Category not found", err)
	case errors.Is(err, model.ErrCategoryExists):
		return model.NewCatalogError(model.ErrCodeCategoryExists, "Category already exists", err)
	case errors.Is(err, model.ErrCategoryInUse):
		return model.NewCatalogError(model.ErrCodeCategoryInUse, "Category still has products", err)
	}
	return err
}
