package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/cart/repository"
	catalogModel "storefront-backend/internal/domains/catalog/model"
	userModel "storefront-backend/internal/domains/user/model"
	"storefront-backend/pkg/logger"
)

// ProductPricer is satisfied by the catalog product service.
type ProductPricer interface {
	GetPricedProduct(ctx context.Context, id uuid.UUID) (*catalogModel.PricedProduct, error)
}

type UserReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*userModel.User, error)
}

type Service interface {
	AddItem(ctx context.Context, userID uuid.UUID, req model.AddItemRequest) (*model.View, error)
	GetCart(ctx context.Context, userID uuid.UUID) (*model.View, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req model.EditQuantityRequest) (*model.View, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID, size string) (*model.View, error)
}

type cartService struct {
	repo     repository.Repository
	products ProductPricer
	users    UserReader
}

func NewCartService(repo repository.Repository, products ProductPricer, users UserReader) Service {
	return &cartService{repo: repo, products: products, users: users}
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req model.AddItemRequest) (*model.View, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	size := normalizeSize(req.Size)
	priced, err := s.loadProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	qty := req.Quantity
	if idx := cart.Find(req.ProductID, size); idx >= 0 {
		qty += cart.Items[idx].Quantity
	}
	if err := checkQuantity(priced.Product, size, qty); err != nil {
		return nil, err
	}

	if err := s.repo.SetItemQuantity(ctx, cart.ID, req.ProductID, size, qty); err != nil {
		return nil, err
	}

	logger.Debug(fmt.Sprintf("cart item added: user=%s product=%s size=%s qty=%d", userID, req.ProductID, size, qty))
	return s.refresh(ctx, userID)
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*model.View, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapCartErr(err)
	}
	return s.price(ctx, cart)
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req model.EditQuantityRequest) (*model.View, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapCartErr(err)
	}

	size := normalizeSize(req.Size)
	if cart.Find(req.ProductID, size) < 0 {
		return nil, model.NewCartError(model.ErrCodeItemNotFound, "Item not found in cart", model.ErrItemNotFound)
	}

	priced, err := s.loadProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if err := checkQuantity(priced.Product, size, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.repo.SetItemQuantity(ctx, cart.ID, req.ProductID, size, req.Quantity); err != nil {
		return nil, err
	}
	return s.refresh(ctx, userID)
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID, size string) (*model.View, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapCartErr(err)
	}

	if err := s.repo.RemoveItem(ctx, cart.ID, productID, normalizeSize(size)); err != nil {
		return nil, mapCartErr(err)
	}
	return s.refresh(ctx, userID)
}

// refresh reloads the cart, reprices it and stores the new total.
func (s *cartService) refresh(ctx context.Context, userID uuid.UUID) (*model.View, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapCartErr(err)
	}

	view, err := s.price(ctx, cart)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTotal(ctx, cart.ID, view.TotalAmount); err != nil {
		return nil, err
	}
	return view, nil
}

// price values every line at the current catalog price. Lines whose product
// has been removed are skipped.
func (s *cartService) price(ctx context.Context, cart *model.Cart) (*model.View, error) {
	view := &model.View{
		ID:            cart.ID,
		UserID:        cart.UserID,
		Items:         make([]model.Line, 0, len(cart.Items)),
		TotalAmount:   decimal.Zero,
		TotalDiscount: decimal.Zero,
	}

	for _, it := range cart.Items {
		priced, err := s.products.GetPricedProduct(ctx, it.ProductID)
		if errors.Is(err, catalogModel.ErrProductNotFound) {
			logger.Warn("Cart references missing product", map[string]interface{}{
				"cart_id":    cart.ID,
				"product_id": it.ProductID,
			})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("price cart item: %w", err)
		}

		qty := decimal.NewFromInt(int64(it.Quantity))
		line := model.Line{
			ProductID:   it.ProductID,
			ProductName: priced.Product.Name,
			Size:        it.Size,
			Quantity:    it.Quantity,
			SalePrice:   priced.Product.SalePrice,
			UnitPrice:   priced.UnitPrice,
			Subtotal:    priced.UnitPrice.Mul(qty),
		}
		if sz, ok := priced.Product.Size(it.Size); ok {
			line.StockForSize = sz.Stock
		}
		if len(priced.Product.Images) > 0 {
			line.ThumbnailURL = priced.Product.Images[0].ThumbnailURL
		}

		view.Items = append(view.Items, line)
		view.TotalAmount = view.TotalAmount.Add(line.Subtotal)
		view.TotalDiscount = view.TotalDiscount.Add(priced.Product.SalePrice.Sub(priced.UnitPrice).Mul(qty))
	}

	return view, nil
}

func (s *cartService) checkUser(ctx context.Context, userID uuid.UUID) error {
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, userModel.ErrUserNotFound) {
		return model.NewCartError(model.ErrCodeUserNotFound, "User not found", err)
	}
	if err != nil {
		return err
	}
	if !u.IsActive {
		return model.NewCartError(model.ErrCodeUserNotFound, "User not found", userModel.ErrUserInactive)
	}
	return nil
}

func (s *cartService) loadProduct(ctx context.Context, id uuid.UUID) (*catalogModel.PricedProduct, error) {
	priced, err := s.products.GetPricedProduct(ctx, id)
	if errors.Is(err, catalogModel.ErrProductNotFound) {
		return nil, model.NewCartError(model.ErrCodeProductNotFound, "Product not found", err)
	}
	if err != nil {
		return nil, err
	}
	if !priced.Product.IsActive {
		return nil, model.NewCartError(model.ErrCodeProductUnavailable, "Product is not available", catalogModel.ErrProductInactive)
	}
	return priced, nil
}

func checkQuantity(p *catalogModel.Product, size string, qty int) error {
	if qty < 1 || qty > model.MaxQuantityPerLine {
		return model.NewCartError(model.ErrCodeQuantityLimit,
			fmt.Sprintf("Quantity must be between 1 and %d", model.MaxQuantityPerLine), nil)
	}

	sz, ok := p.Size(size)
	if !ok {
		return model.NewCartError(model.ErrCodeSizeNotFound, "Size not available for product", catalogModel.ErrSizeNotFound)
	}
	if sz.Stock < qty {
		return model.NewCartError(model.ErrCodeInsufficientStock,
			fmt.Sprintf("Only %d left in size %s", sz.Stock, sz.Name), catalogModel.ErrInsufficientStock)
	}
	return nil
}

func normalizeSize(size string) string {
	return strings.ToUpper(strings.TrimSpace(size))
}

func mapCartErr(err error) error {
	switch {
	case errors.Is(err, model.ErrCartNotFound):
		return model.NewCartError(model.ErrCodeCartNotFound, "Cart not found", err)
	case errors.Is(err, model.ErrItemNotFound):
		return model.NewCartError(model.ErrCodeItemNotFound, "Item not found in cart", err)
	}
	return err
}
