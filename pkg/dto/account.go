package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRead is a read-optimized DTO for bank account queries.
type AccountRead struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	InstitutionName   string
	AccountType       string
	AccountNumber     *string
	Balance           decimal.Decimal
	IsManual          bool
	AccessToken       string // provider access token, never rendered
	ItemID            string
	ProviderAccountID string
	CreatedAt         time.Time
	LastUpdatedAt     time.Time
	LastSyncedAt      *time.Time
}

// AccountCreate is a DTO for creating a new bank account.
type AccountCreate struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	InstitutionName   string
	AccountType       string
	AccountNumber     *string
	Balance           decimal.Decimal
	IsManual          bool
	AccessToken       string
	ItemID            string
	ProviderAccountID string
	CreatedAt         time.Time
	LastUpdatedAt     time.Time
	LastSyncedAt      *time.Time
}

// AccountUpdate is a DTO for updating one or more fields of an account.
type AccountUpdate struct {
	Balance       *decimal.Decimal
	LastUpdatedAt *time.Time
	LastSyncedAt  *time.Time
}
