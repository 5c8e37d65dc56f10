package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/coupon/model"
)

const couponColumns = `
	id, name, code, discount, min_purchase_amount, max_discount_amount,
	valid_from, valid_to, visibility, created_at, updated_at
`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanCoupon(row pgx.Row) (model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(
		&c.ID, &c.Name, &c.Code, &c.Discount, &c.MinPurchaseAmount, &c.MaxDiscountAmount,
		&c.ValidFrom, &c.ValidTo, &c.Visibility, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *postgresRepository) Create(ctx context.Context, c *model.Coupon) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO coupons (
			id, name, code, discount, min_purchase_amount, max_discount_amount,
			valid_from, valid_to, visibility
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`,
		c.ID, c.Name, c.Code, c.Discount, c.MinPurchaseAmount, c.MaxDiscountAmount,
		c.ValidFrom, c.ValidTo, c.Visibility,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return model.ErrCouponExists
	}
	if err != nil {
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

func (r *postgresRepository) getOne(ctx context.Context, where string, arg interface{}) (*model.Coupon, error) {
	c, err := scanCoupon(r.pool.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE `+where, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *postgresRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return r.getOne(ctx, "code = $1", code)
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Coupon, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}

	coupons, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Coupon, error) {
		return scanCoupon(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan coupons: %w", err)
	}
	return coupons, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Coupon, error) {
	return r.list(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
}

func (r *postgresRepository) ListAvailable(ctx context.Context, now time.Time) ([]model.Coupon, error) {
	return r.list(ctx, `
		SELECT `+couponColumns+`
		FROM coupons
		WHERE visibility AND valid_from <= $1 AND valid_to >= $1
		ORDER BY valid_to
	`, now)
}

func (r *postgresRepository) SetVisibility(ctx context.Context, id uuid.UUID, visible bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE coupons SET visibility = $2, updated_at = NOW() WHERE id = $1`, id, visible)
	if err != nil {
		return fmt.Errorf("update coupon visibility: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}
	return nil
}

func (r *postgresRepository) HideExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE coupons SET visibility = FALSE, updated_at = NOW() WHERE visibility AND valid_to < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("hide expired coupons: %w", err)
	}
	return tag.RowsAffected(), nil
}
