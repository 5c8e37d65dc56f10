package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/wallet/model"
)

var walletCols = []string{"id", "user_id", "balance", "created_at", "updated_at"}

func TestDebitWithTx(t *testing.T) {
	userID := uuid.New()
	amount := decimal.NewFromInt(250)

	t.Run("debits and appends a ledger entry", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		walletID := uuid.New()
		now := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE wallets\s+SET balance = balance - \$2`).
			WithArgs(userID, amount).
			WillReturnRows(pgxmock.NewRows(walletCols).
				AddRow(walletID, userID, decimal.NewFromInt(750), now, now))
		mock.ExpectExec(`INSERT INTO wallet_transactions`).
			WithArgs(pgxmock.AnyArg(), walletID, model.TxDebit, amount, "Order payment").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		ctx := context.Background()
		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		w, err := (&postgresRepository{}).DebitWithTx(ctx, tx, userID, amount, "Order payment")
		require.NoError(t, err)
		assert.True(t, w.Balance.Equal(decimal.NewFromInt(750)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	tests := []struct {
		name    string
		exists  bool
		wantErr error
	}{
		{"no wallet", false, model.ErrWalletNotFound},
		{"balance too low", true, model.ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectBegin()
			mock.ExpectQuery(`UPDATE wallets\s+SET balance = balance - \$2`).
				WithArgs(userID, amount).
				WillReturnRows(pgxmock.NewRows(walletCols))
			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs(userID).
				WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			ctx := context.Background()
			tx, err := mock.Begin(ctx)
			require.NoError(t, err)

			_, err = (&postgresRepository{}).DebitWithTx(ctx, tx, userID, amount, "Order payment")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
