package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	var cart model.Cart
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, total_amount, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`, userID).Scan(&cart.ID, &cart.UserID, &cart.TotalAmount, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	items, err := loadItems(ctx, r.pool, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return &cart, nil
}

func loadItems(ctx context.Context, q database.Querier, cartID uuid.UUID) ([]model.Item, error) {
	rows, err := q.Query(ctx, `
		SELECT product_id, size, quantity
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at, product_id, size
	`, cartID)
	if err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Item])
	if err != nil {
		return nil, fmt.Errorf("scan cart items: %w", err)
	}
	return items, nil
}

func (r *postgresRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO carts (id, user_id, total_amount)
		VALUES ($1, $2, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, uuid.New(), userID)
	if err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return r.GetByUserID(ctx, userID)
}

func (r *postgresRepository) SetItemQuantity(ctx context.Context, cartID, productID uuid.UUID, size string, qty int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cart_items (cart_id, product_id, size, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id, size) DO UPDATE
		SET quantity = EXCLUDED.quantity, updated_at = NOW()
	`, cartID, productID, size, qty)
	if err != nil {
		return fmt.Errorf("set cart item: %w", err)
	}
	return nil
}

func (r *postgresRepository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID, size string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND product_id = $2 AND size = $3
	`, cartID, productID, size)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}
	return nil
}

func (r *postgresRepository) UpdateTotal(ctx context.Context, cartID uuid.UUID, total decimal.Decimal) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE carts SET total_amount = $2, updated_at = NOW() WHERE id = $1`,
		cartID, total)
	if err != nil {
		return fmt.Errorf("update cart total: %w", err)
	}
	return nil
}

func (r *postgresRepository) ClearWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = (SELECT id FROM carts WHERE user_id = $1)
	`, userID)
	if err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE carts SET total_amount = 0, updated_at = NOW() WHERE user_id = $1`,
		userID)
	if err != nil {
		return fmt.Errorf("reset cart total: %w", err)
	}
	return nil
}
