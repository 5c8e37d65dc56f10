package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/coupon/model"
	"storefront-backend/internal/domains/coupon/repository"
	"storefront-backend/pkg/logger"
)

type Service interface {
	Create(ctx context.Context, req model.CreateCouponRequest) (*model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
	ListAvailable(ctx context.Context) ([]model.Coupon, error)
	ToggleVisibility(ctx context.Context, id uuid.UUID) (*model.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Quote validates code against amount and returns the discount.
	Quote(ctx context.Context, code string, amount decimal.Decimal) (*model.Quote, error)

	// HideExpired is run by the scheduler.
	HideExpired(ctx context.Context) (int64, error)
}

type couponService struct {
	repo       repository.Repository
	calculator *DiscountCalculator
	now        func() time.Time
}

func NewCouponService(repo repository.Repository) Service {
	return &couponService{repo: repo, calculator: NewDiscountCalculator(), now: time.Now}
}

func (s *couponService) Create(ctx context.Context, req model.CreateCouponRequest) (*model.Coupon, error) {
	c := &model.Coupon{
		ID:                uuid.New(),
		Name:              strings.TrimSpace(req.Name),
		Code:              model.NormalizeCode(req.Code),
		Discount:          req.Discount,
		MinPurchaseAmount: req.MinPurchaseAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		ValidFrom:         req.ValidFrom,
		ValidTo:           req.ValidTo,
		Visibility:        req.Status,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, mapCouponErr(err)
	}

	logger.Info("Coupon created", map[string]interface{}{"code": c.Code, "discount": c.Discount.String()})
	return c, nil
}

func (s *couponService) List(ctx context.Context) ([]model.Coupon, error) {
	return s.repo.List(ctx)
}

func (s *couponService) ListAvailable(ctx context.Context) ([]model.Coupon, error) {
	return s.repo.ListAvailable(ctx, s.now())
}

func (s *couponService) ToggleVisibility(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapCouponErr(err)
	}

	c.Visibility = !c.Visibility
	if err := s.repo.SetVisibility(ctx, id, c.Visibility); err != nil {
		return nil, mapCouponErr(err)
	}
	return c, nil
}

func (s *couponService) Delete(ctx context.Context, id uuid.UUID) error {
	return mapCouponErr(s.repo.Delete(ctx, id))
}

func (s *couponService) Quote(ctx context.Context, code string, amount decimal.Decimal) (*model.Quote, error) {
	c, err := s.repo.GetByCode(ctx, model.NormalizeCode(code))
	if err != nil {
		return nil, mapCouponErr(err)
	}

	now := s.now()
	switch {
	case !c.Visibility:
		return nil, model.NewCouponError(model.ErrCodeCouponInactive, "Coupon is not available", model.ErrCouponInactive)
	case now.Before(c.ValidFrom):
		return nil, model.NewCouponError(model.ErrCodeCouponNotStarted, "Coupon is not valid yet", model.ErrCouponNotStarted)
	case now.After(c.ValidTo):
		return nil, model.NewCouponError(model.ErrCodeCouponExpired, "Coupon has expired", model.ErrCouponExpired)
	case amount.LessThan(c.MinPurchaseAmount):
		return nil, model.NewCouponError(model.ErrCodeMinPurchaseNotMet,
			"Minimum purchase amount is "+c.MinPurchaseAmount.StringFixed(2), model.ErrMinPurchaseNotMet)
	}

	discount, capped := s.calculator.Calculate(c, amount)
	return &model.Quote{
		Code:          c.Code,
		Amount:        amount,
		Discount:      discount,
		PayableAmount: amount.Sub(discount),
		Capped:        capped,
	}, nil
}

func (s *couponService) HideExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.HideExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info("Expired coupons hidden", map[string]interface{}{"count": n})
	}
	return n, nil
}

func mapCouponErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrCouponNotFound):
		return model.NewCouponError(model.ErrCodeCouponNotFound, "Coupon not found", err)
	case errors.Is(err, model.ErrCouponExists):
		return model.NewCouponError(model.ErrCodeCouponExists, "Coupon code already exists", err)
	}
	return err
}
