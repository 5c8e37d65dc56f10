package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/pkg/database"
)

type productRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

// =====================================================
// WRITE OPERATIONS
// =====================================================

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO products (
				id, name, description, category_name, brand_name,
				sale_price, offer_price, offer_status, is_active
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING created_at, updated_at
		`
		err := tx.QueryRow(ctx, query,
			p.ID, p.Name, p.Description, p.CategoryName, p.BrandName,
			p.SalePrice, p.OfferPrice, p.OfferStatus, p.IsActive,
		).Scan(&p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert product: %w", err)
		}

		return insertSizes(ctx, tx, p.ID, p.Sizes)
	})
}

func insertSizes(ctx context.Context, tx pgx.Tx, productID uuid.UUID, sizes []model.ProductSize) error {
	batch := &pgx.Batch{}
	for _, s := range sizes {
		batch.Queue(`INSERT INTO product_sizes (product_id, name, stock) VALUES ($1, $2, $3)`, productID, s.Name, s.Stock)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range sizes {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert product size: %w", err)
		}
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE products
			SET name = $2, description = $3, category_name = $4, brand_name = $5,
			    sale_price = $6, offer_price = $7, offer_status = $8, updated_at = NOW()
			WHERE id = $1
			RETURNING updated_at
		`
		err := tx.QueryRow(ctx, query,
			p.ID, p.Name, p.Description, p.CategoryName, p.BrandName,
			p.SalePrice, p.OfferPrice, p.OfferStatus,
		).Scan(&p.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrProductNotFound
		}
		if err != nil {
			return fmt.Errorf("update product: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM product_sizes WHERE product_id = $1`, p.ID); err != nil {
			return fmt.Errorf("clear product sizes: %w", err)
		}
		return insertSizes(ctx, tx, p.ID, p.Sizes)
	})
}

func (r *productRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.execOne(ctx, `UPDATE products SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
}

func (r *productRepository) SetOfferStatus(ctx context.Context, id uuid.UUID, status bool) error {
	return r.execOne(ctx, `UPDATE products SET offer_status = $2, updated_at = NOW() WHERE id = $1`, id, status)
}

func (r *productRepository) execOne(ctx context.Context, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) AddReview(ctx context.Context, productID uuid.UUID, review *model.Review) error {
	query := `
		INSERT INTO product_reviews (id, product_id, user_id, rating, comment)
		SELECT $1, p.id, $3, $4, $5 FROM products p WHERE p.id = $2
		RETURNING created_at
	`
	err := r.pool.QueryRow(ctx, query, review.ID, productID, review.UserID, review.Rating, review.Comment).
		Scan(&review.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *productRepository) AddImage(ctx context.Context, productID uuid.UUID, image model.ProductImage) error {
	query := `
		INSERT INTO product_images (product_id, large_url, medium_url, thumbnail_url)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.pool.Exec(ctx, query, productID, image.LargeURL, image.MediumURL, image.ThumbnailURL); err != nil {
		return fmt.Errorf("insert product image: %w", err)
	}
	return nil
}

// =====================================================
// STOCK (TRANSACTIONAL)
// =====================================================

func (r *productRepository) DecrementStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, size string, qty int) error {
	tag, err := tx.Exec(ctx, `
		UPDATE product_sizes
		SET stock = stock - $3
		WHERE product_id = $1 AND UPPER(name) = UPPER($2) AND stock >= $3
	`, productID, size, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// Nothing updated: either the size is unknown or stock is short.
	var stock int
	err = tx.QueryRow(ctx,
		`SELECT stock FROM product_sizes WHERE product_id = $1 AND UPPER(name) = UPPER($2)`,
		productID, size,
	).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrSizeNotFound
	}
	if err != nil {
		return fmt.Errorf("read stock: %w", err)
	}
	return model.ErrInsufficientStock
}

func (r *productRepository) IncrementStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, size string, qty int) error {
	tag, err := tx.Exec(ctx, `
		UPDATE product_sizes
		SET stock = stock + $3
		WHERE product_id = $1 AND UPPER(name) = UPPER($2)
	`, productID, size, qty)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSizeNotFound
	}
	return nil
}

// =====================================================
// READ OPERATIONS
// =====================================================

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `
		SELECT id, name, description, category_name, brand_name,
		       sale_price, offer_price, offer_status, is_active, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.CategoryName, &p.BrandName,
		&p.SalePrice, &p.OfferPrice, &p.OfferStatus, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	if p.Sizes, err = r.listSizes(ctx, id); err != nil {
		return nil, err
	}
	if p.Reviews, err = r.listReviews(ctx, id); err != nil {
		return nil, err
	}
	if p.Images, err = r.listImages(ctx, id); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *productRepository) listSizes(ctx context.Context, productID uuid.UUID) ([]model.ProductSize, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, stock FROM product_sizes WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	sizes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ProductSize, error) {
		var s model.ProductSize
		err := row.Scan(&s.Name, &s.Stock)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan sizes: %w", err)
	}
	return sizes, nil
}

func (r *productRepository) listReviews(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, rating, comment, created_at
		FROM product_reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	reviews, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Review, error) {
		var rv model.Review
		err := row.Scan(&rv.ID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
		return rv, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan reviews: %w", err)
	}
	return reviews, nil
}

func (r *productRepository) listImages(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT large_url, medium_url, thumbnail_url
		FROM product_images
		WHERE product_id = $1
		ORDER BY created_at
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	images, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ProductImage, error) {
		var img model.ProductImage
		err := row.Scan(&img.LargeURL, &img.MediumURL, &img.ThumbnailURL)
		return img, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan images: %w", err)
	}
	return images, nil
}
