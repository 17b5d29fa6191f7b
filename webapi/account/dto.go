package account

import (
	"time"

	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest represents the request body for creating a manual
// bank account.
type CreateAccountRequest struct {
	InstitutionName string          `json:"institution_name" validate:"required,max=255"`
	AccountType     string          `json:"account_type" validate:"required,max=64"`
	Balance         decimal.Decimal `json:"balance"`
	AccountNumber   *string         `json:"account_number" validate:"omitempty,max=64"`
}

// AccountResponse is the API representation of a bank account. Provider
// credentials are never included.
type AccountResponse struct {
	ID                uuid.UUID       `json:"id"`
	UserID            uuid.UUID       `json:"user_id"`
	InstitutionName   string          `json:"institution_name"`
	AccountType       string          `json:"account_type"`
	AccountNumber     *string         `json:"account_number,omitempty"`
	Balance           decimal.Decimal `json:"balance"`
	IsManual          bool            `json:"is_manual"`
	ProviderAccountID string          `json:"provider_account_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	LastUpdatedAt     time.Time       `json:"last_updated_at"`
	LastSyncedAt      *time.Time      `json:"last_synced_at,omitempty"`
}

// ToAccountResponse maps a dto.AccountRead to an AccountResponse.
func ToAccountResponse(a *dto.AccountRead) *AccountResponse {
	if a == nil {
		return nil
	}
	return &AccountResponse{
		ID:                a.ID,
		UserID:            a.UserID,
		InstitutionName:   a.InstitutionName,
		AccountType:       a.AccountType,
		AccountNumber:     a.AccountNumber,
		Balance:           a.Balance,
		IsManual:          a.IsManual,
		ProviderAccountID: a.ProviderAccountID,
		CreatedAt:         a.CreatedAt,
		LastUpdatedAt:     a.LastUpdatedAt,
		LastSyncedAt:      a.LastSyncedAt,
	}
}

// ToAccountResponses maps a list of accounts.
func ToAccountResponses(list []*dto.AccountRead) []*AccountResponse {
	out := make([]*AccountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToAccountResponse(a))
	}
	return out
}
