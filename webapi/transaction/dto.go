package transaction

import (
	"time"

	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest represents the request body for recording a
// transaction. Date accepts YYYY-MM-DD or RFC 3339 and defaults to now.
type CreateTransactionRequest struct {
	BankAccountID string           `json:"bank_account_id" validate:"required"`
	Description   string           `json:"description" validate:"required,max=500"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	Date          string           `json:"date"`
	CategoryID    string           `json:"category_id"`
	MerchantName  *string          `json:"merchant_name" validate:"omitempty,max=255"`
}

// ListTransactionsQuery filters the caller's transactions.
type ListTransactionsQuery struct {
	BankAccountID string `query:"bank_account_id"`
}

// TransactionResponse is the API representation of a transaction.
type TransactionResponse struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	BankAccountID uuid.UUID       `json:"bank_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    *uuid.UUID      `json:"category_id,omitempty"`
	MerchantName  *string         `json:"merchant_name,omitempty"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToTransactionResponse maps a dto.TransactionRead to a TransactionResponse.
func ToTransactionResponse(tx *dto.TransactionRead) *TransactionResponse {
	if tx == nil {
		return nil
	}
	return &TransactionResponse{
		ID:            tx.ID,
		UserID:        tx.UserID,
		BankAccountID: tx.BankAccountID,
		Amount:        tx.Amount,
		CategoryID:    tx.CategoryID,
		MerchantName:  tx.MerchantName,
		Date:          tx.Date,
		Description:   tx.Description,
		CreatedAt:     tx.CreatedAt,
	}
}
