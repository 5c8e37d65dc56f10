package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/wallet/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const walletColumns = `id, user_id, balance, created_at, updated_at`

func scanWallet(row pgx.Row) (*model.Wallet, error) {
	var w model.Wallet
	if err := row.Scan(&w.ID, &w.UserID, &w.Balance, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *postgresRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Wallet, error) {
	w, err := scanWallet(r.pool.QueryRow(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return w, nil
}

func (r *postgresRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Wallet, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO wallets (id, user_id, balance)
		VALUES ($1, $2, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, uuid.New(), userID)
	if err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}
	return r.GetByUserID(ctx, userID)
}

func (r *postgresRepository) RecentTransactions(ctx context.Context, walletID uuid.UUID, limit int) ([]model.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, wallet_id, type, amount, description, created_at
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`, walletID, limit)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}

	txs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Transaction, error) {
		var t model.Transaction
		err := row.Scan(&t.ID, &t.WalletID, &t.Type, &t.Amount, &t.Description, &t.CreatedAt)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan wallet transactions: %w", err)
	}
	return txs, nil
}

func (r *postgresRepository) DebitWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, amount decimal.Decimal, description string) (*model.Wallet, error) {
	w, err := scanWallet(tx.QueryRow(ctx, `
		UPDATE wallets
		SET balance = balance - $2, updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2
		RETURNING `+walletColumns, userID, amount))
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wallets WHERE user_id = $1)`, userID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check wallet: %w", err)
		}
		if !exists {
			return nil, model.ErrWalletNotFound
		}
		return nil, model.ErrInsufficientFunds
	}
	if err != nil {
		return nil, fmt.Errorf("debit wallet: %w", err)
	}

	if err := insertTransaction(ctx, tx, w.ID, model.TxDebit, amount, description); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *postgresRepository) CreditWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, txType string, amount decimal.Decimal, description string) (*model.Wallet, error) {
	w, err := scanWallet(tx.QueryRow(ctx, `
		INSERT INTO wallets (id, user_id, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = wallets.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING `+walletColumns, uuid.New(), userID, amount))
	if err != nil {
		return nil, fmt.Errorf("credit wallet: %w", err)
	}

	if err := insertTransaction(ctx, tx, w.ID, txType, amount, description); err != nil {
		return nil, err
	}
	return w, nil
}

func insertTransaction(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, txType string, amount decimal.Decimal, description string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO wallet_transactions (id, wallet_id, type, amount, description)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New(), walletID, txType, amount, description)
	if err != nil {
		return fmt.Errorf("append wallet transaction: %w", err)
	}
	return nil
}
