package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"storefront-backend/internal/domains/user/model"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/database"
	"storefront-backend/pkg/logger"
)

const userCacheTTL = 10 * time.Minute

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

const userColumns = `id, email, full_name, phone, role, is_active, created_at, updated_at`

type postgresRepository struct {
	pool  database.Querier
	cache cache.Cache
}

func NewPostgresRepository(pool database.Querier, cache cache.Cache) Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

func userCacheKey(id uuid.UUID) string {
	return "user:" + id.String()
}

// FindByID reads through the cache. Cache failures degrade to a DB read.
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var cached model.User
	if found, err := r.cache.Get(ctx, userCacheKey(id), &cached); err == nil && found {
		return &cached, nil
	}

	query := `
		SELECT id, email, full_name, phone, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Phone, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := r.cache.Set(ctx, userCacheKey(id), u, userCacheTTL); err != nil {
		logger.Warn("Failed to cache user", map[string]interface{}{"user_id": id, "error": err.Error()})
	}

	return &u, nil
}

func (r *postgresRepository) List(ctx context.Context, req model.ListUsersRequest) ([]model.User, int, error) {
	var qb strings.Builder
	qb.WriteString(`
		SELECT id, email, full_name, phone, role, is_active, created_at, updated_at
		FROM users
		WHERE role <> 'admin'
	`)

	args := []interface{}{}
	argPos := 1

	if req.IsActive != nil {
		qb.WriteString(fmt.Sprintf(" AND is_active = $%d", argPos))
		args = append(args, *req.IsActive)
		argPos++
	}

	if req.Search != "" {
		qb.WriteString(fmt.Sprintf(" AND (email ILIKE $%d OR full_name ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS t", qb.String()), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	qb.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1))
	args = append(args, req.Limit, utils.Offset(req.Page, req.Limit))

	rows, err := r.pool.Query(ctx, qb.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0, req.Limit)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Phone, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, total, rows.Err()
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	result, err := r.pool.Exec(ctx, `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, isActive)
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	_ = r.cache.Delete(ctx, userCacheKey(id))
	return nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, id uuid.UUID, req model.UpdateProfileRequest) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, `
		UPDATE users
		SET full_name = $2, email = $3, phone = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, req.FullName, req.Email, req.Phone,
	).Scan(&u.ID, &u.Email, &u.FullName, &u.Phone, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if hasPgCode(err, uniqueViolation) {
		return nil, model.ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	_ = r.cache.Delete(ctx, userCacheKey(id))
	return &u, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1 AND role <> 'admin'`, id)
	if hasPgCode(err, foreignKeyViolation) {
		return model.ErrUserHasOrders
	}
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	_ = r.cache.Delete(ctx, userCacheKey(id))
	return nil
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
