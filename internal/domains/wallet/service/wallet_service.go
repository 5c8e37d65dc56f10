package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/wallet/model"
	"storefront-backend/internal/domains/wallet/repository"
	"storefront-backend/pkg/database"
	"storefront-backend/pkg/logger"
)

type Service interface {
	GetDetails(ctx context.Context, userID uuid.UUID) (*model.WalletDetails, error)
	// Pay debits an existing wallet. A missing wallet is not created.
	Pay(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*model.Wallet, error)
}

type walletService struct {
	repo repository.Repository
	tx   database.TxManager
}

func NewWalletService(repo repository.Repository, tx database.TxManager) Service {
	return &walletService{repo: repo, tx: tx}
}

func (s *walletService) GetDetails(ctx context.Context, userID uuid.UUID) (*model.WalletDetails, error) {
	w, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	txs, err := s.repo.RecentTransactions(ctx, w.ID, model.RecentTransactionLimit)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []model.Transaction{}
	}

	return &model.WalletDetails{UserID: userID, Balance: w.Balance, Transactions: txs}, nil
}

func (s *walletService) Pay(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*model.Wallet, error) {
	if !amount.IsPositive() {
		return nil, model.NewWalletError(model.ErrCodeInvalidAmount, "Amount must be positive", model.ErrInvalidAmount)
	}

	var wallet *model.Wallet
	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		var err error
		wallet, err = s.repo.DebitWithTx(ctx, tx, userID, amount, "Payment for order")
		return err
	})
	switch {
	case errors.Is(err, model.ErrWalletNotFound):
		return nil, model.NewWalletError(model.ErrCodeWalletNotFound, "Wallet not found", err)
	case errors.Is(err, model.ErrInsufficientFunds):
		return nil, model.NewWalletError(model.ErrCodeInsufficientFunds, "Not enough balance in wallet", err)
	case err != nil:
		return nil, fmt.Errorf("wallet payment: %w", err)
	}

	logger.Info("Wallet payment completed", map[string]interface{}{
		"user_id": userID,
		"amount":  amount.String(),
		"balance": wallet.Balance.String(),
	})
	return wallet, nil
}
