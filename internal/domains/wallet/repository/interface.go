package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/wallet/model"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Wallet, error)
	// GetOrCreate returns the user's wallet, creating an empty one if needed.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Wallet, error)
	RecentTransactions(ctx context.Context, walletID uuid.UUID, limit int) ([]model.Transaction, error)

	// DebitWithTx lowers the balance only if it covers amount and appends a
	// debit entry. Returns ErrWalletNotFound or ErrInsufficientFunds.
	DebitWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, amount decimal.Decimal, description string) (*model.Wallet, error)
	// CreditWithTx raises the balance, creating the wallet on first credit.
	CreditWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, txType string, amount decimal.Decimal, description string) (*model.Wallet, error)
}
