package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const orderColumns = `
	id, user_id, address, payment_method, payment_status, order_status,
	total_amount, discounted_amount, coupon_code, payment_ref, order_date, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.Address, &o.PaymentMethod, &o.PaymentStatus, &o.OrderStatus,
		&o.TotalAmount, &o.DiscountedAmount, &o.CouponCode, &o.PaymentRef, &o.OrderDate, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, o *model.Order) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO orders (
			id, user_id, address, payment_method, payment_status, order_status,
			total_amount, discounted_amount, coupon_code, payment_ref
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING order_date, updated_at
	`,
		o.ID, o.UserID, o.Address, o.PaymentMethod, o.PaymentStatus, o.OrderStatus,
		o.TotalAmount, o.DiscountedAmount, o.CouponCode, o.PaymentRef,
	).Scan(&o.OrderDate, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for i, l := range o.Lines {
		batch.Queue(`
			INSERT INTO order_lines (
				id, order_id, position, product_id, product_name, thumbnail_url, size,
				quantity, unit_price, price, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, l.ID, o.ID, i, l.ProductID, l.ProductName, l.ThumbnailURL, l.Size,
			l.Quantity, l.UnitPrice, l.Price, l.Status)
	}
	err = tx.SendBatch(ctx, batch).Close()
	if err != nil {
		return fmt.Errorf("insert order lines: %w", err)
	}
	return nil
}

// =====================================================
// READ
// =====================================================

func (r *postgresRepository) GetForUpdateWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error) {
	return r.get(ctx, tx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return r.get(ctx, r.pool, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *postgresRepository) get(ctx context.Context, q database.Querier, query string, id uuid.UUID) (*model.Order, error) {
	o, err := scanOrder(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	orders := []model.Order{*o}
	if err := loadLines(ctx, q, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListOrdersFilter) ([]model.Order, int, error) {
	var (
		conds []string
		args  []any
	)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("order_status = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, filter.Limit, utils.Offset(filter.Page, filter.Limit))
	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY order_date DESC, id LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Order, error) {
		o, err := scanOrder(row)
		if err != nil {
			return model.Order{}, err
		}
		return *o, nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan orders: %w", err)
	}

	if err := loadLines(ctx, r.pool, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// loadLines fills Lines for every order with a single query.
func loadLines(ctx context.Context, q database.Querier, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Lines = []model.Line{}
	}

	rows, err := q.Query(ctx, `
		SELECT order_id, id, product_id, product_name, thumbnail_url, size,
		       quantity, unit_price, price, status, return_reason
		FROM order_lines
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`, ids)
	if err != nil {
		return fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID uuid.UUID
			l       model.Line
		)
		if err := rows.Scan(&orderID, &l.ID, &l.ProductID, &l.ProductName, &l.ThumbnailURL, &l.Size,
			&l.Quantity, &l.UnitPrice, &l.Price, &l.Status, &l.ReturnReason); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		i := index[orderID]
		orders[i].Lines = append(orders[i].Lines, l)
	}
	return rows.Err()
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, o *model.Order) error {
	err := tx.QueryRow(ctx, `
		UPDATE orders
		SET payment_status = $2, order_status = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, o.ID, o.PaymentStatus, o.OrderStatus).Scan(&o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	batch := &pgx.Batch{}
	for _, l := range o.Lines {
		batch.Queue(`UPDATE order_lines SET status = $2, return_reason = $3 WHERE id = $1`,
			l.ID, l.Status, l.ReturnReason)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("update order lines: %w", err)
	}
	return nil
}
