package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/dinero-app/dinero/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyDescription = fmt.Errorf("%w: description cannot be empty", domain.ErrValidation)
	ErrMissingAccount   = fmt.Errorf("%w: bank account is required", domain.ErrValidation)
	ErrMissingOwner     = fmt.Errorf("%w: transaction owner is required", domain.ErrValidation)
)

// Transaction is a single money movement recorded against a bank account.
// Amount has at most two decimal places; negative values are outflows.
type Transaction struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	BankAccountID uuid.UUID
	Amount        decimal.Decimal
	CategoryID    *uuid.UUID
	MerchantName  *string
	Date          time.Time
	Description   string
	CreatedAt     time.Time
}

// Params holds the caller supplied fields of a new transaction.
type Params struct {
	BankAccountID uuid.UUID
	Description   string
	Amount        decimal.Decimal
	Date          *time.Time
	CategoryID    *uuid.UUID
	MerchantName  *string
}

// New creates a transaction. When p.Date is nil the transaction date is the
// creation instant.
func New(userID uuid.UUID, p Params) (*Transaction, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	if p.BankAccountID == uuid.Nil {
		return nil, ErrMissingAccount
	}
	description := strings.TrimSpace(p.Description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if err := domain.ValidateAmount(p.Amount); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	date := now
	if p.Date != nil && !p.Date.IsZero() {
		date = p.Date.UTC()
	}
	merchant := p.MerchantName
	if merchant != nil && strings.TrimSpace(*merchant) == "" {
		merchant = nil
	}
	return &Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		BankAccountID: p.BankAccountID,
		Amount:        p.Amount,
		CategoryID:    p.CategoryID,
		MerchantName:  merchant,
		Date:          date,
		Description:   description,
		CreatedAt:     now,
	}, nil
}
