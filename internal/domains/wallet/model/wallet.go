package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger entry types.
const (
	TxCredit = "credit"
	TxDebit  = "debit"
	TxRefund = "refund"
)

// RecentTransactionLimit bounds the history returned with wallet details.
const RecentTransactionLimit = 10

type Wallet struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	WalletID    uuid.UUID       `json:"-"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"date"`
}

type WalletDetails struct {
	UserID       uuid.UUID       `json:"user_id"`
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
}

type PayRequest struct {
	UserID      string          `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func (r PayRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TotalAmount, validation.By(func(v interface{}) error {
			if !v.(decimal.Decimal).IsPositive() {
				return validation.NewError("validation_positive", "must be greater than zero")
			}
			return nil
		})),
	)
}

type PayResponse struct {
	Balance decimal.Decimal `json:"balance"`
}
