package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRead is a read-optimized DTO for transaction queries.
type TransactionRead struct {
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

// TransactionCreate is a DTO for creating a new transaction.
type TransactionCreate struct {
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

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	UserID        uuid.UUID
	BankAccountID *uuid.UUID
}
