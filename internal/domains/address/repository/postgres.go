package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/address/model"
	"storefront-backend/pkg/database"
)

type postgresRepository struct {
	pool database.Pool
}

func NewPostgresRepository(pool database.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const addressColumns = `
	id, user_id, name, phone, pincode, house_no, landmark, street, town, city, state,
	is_default, created_at, updated_at`

func scanAddress(row pgx.Row) (*model.Address, error) {
	var a model.Address
	err := row.Scan(
		&a.ID, &a.UserID, &a.Name, &a.Phone, &a.Pincode, &a.HouseNo, &a.Landmark, &a.Street,
		&a.Town, &a.City, &a.State, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// =====================================================
// WRITE OPERATIONS
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, a *model.Address) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if a.IsDefault {
			if err := clearDefault(ctx, tx, a.UserID); err != nil {
				return err
			}
		}

		err := tx.QueryRow(ctx, `
			INSERT INTO addresses (
				id, user_id, name, phone, pincode, house_no, landmark, street, town, city, state, is_default
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING created_at, updated_at
		`,
			a.ID, a.UserID, a.Name, a.Phone, a.Pincode, a.HouseNo, a.Landmark, a.Street,
			a.Town, a.City, a.State, a.IsDefault,
		).Scan(&a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert address: %w", err)
		}
		return nil
	})
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Address) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE addresses
		SET name = $3, phone = $4, pincode = $5, house_no = $6, landmark = $7,
		    street = $8, town = $9, city = $10, state = $11, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING is_default, created_at, updated_at
	`,
		a.ID, a.UserID, a.Name, a.Phone, a.Pincode, a.HouseNo, a.Landmark, a.Street,
		a.Town, a.City, a.State,
	).Scan(&a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrAddressNotFound
	}
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var wasDefault bool
		err := tx.QueryRow(ctx,
			`DELETE FROM addresses WHERE id = $1 AND user_id = $2 RETURNING is_default`,
			id, userID,
		).Scan(&wasDefault)
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrAddressNotFound
		}
		if err != nil {
			return fmt.Errorf("delete address: %w", err)
		}
		if !wasDefault {
			return nil
		}

		_, err = tx.Exec(ctx, `
			UPDATE addresses SET is_default = TRUE, updated_at = NOW()
			WHERE id = (
				SELECT id FROM addresses WHERE user_id = $1
				ORDER BY created_at DESC, id
				LIMIT 1
			)
		`, userID)
		if err != nil {
			return fmt.Errorf("promote default address: %w", err)
		}
		return nil
	})
}

// SetDefault clears the old default before setting the new one; the
// partial unique index allows one default per user.
func (r *postgresRepository) SetDefault(ctx context.Context, userID, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := clearDefault(ctx, tx, userID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			`UPDATE addresses SET is_default = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
			id, userID,
		)
		if err != nil {
			return fmt.Errorf("set default address: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrAddressNotFound
		}
		return nil
	})
}

func clearDefault(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`UPDATE addresses SET is_default = FALSE, updated_at = NOW() WHERE user_id = $1 AND is_default`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("clear default address: %w", err)
	}
	return nil
}

// =====================================================
// READ OPERATIONS
// =====================================================

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	a, err := scanAddress(r.pool.QueryRow(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrAddressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) GetDefault(ctx context.Context, userID uuid.UUID) (*model.Address, error) {
	a, err := scanAddress(r.pool.QueryRow(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 AND is_default`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNoDefault
	}
	if err != nil {
		return nil, fmt.Errorf("get default address: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+addressColumns+`
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	addresses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Address, error) {
		a, err := scanAddress(row)
		if err != nil {
			return model.Address{}, err
		}
		return *a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan addresses: %w", err)
	}
	return addresses, nil
}

func (r *postgresRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM addresses WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count addresses: %w", err)
	}
	return count, nil
}
