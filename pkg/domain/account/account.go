package account

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dinero-app/dinero/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when a bank account does not exist or
	// is not visible to the requesting user.
	ErrAccountNotFound      = errors.New("bank account not found")
	ErrEmptyInstitution     = fmt.Errorf("%w: institution name cannot be empty", domain.ErrValidation)
	ErrEmptyAccountType     = fmt.Errorf("%w: account type cannot be empty", domain.ErrValidation)
	ErrMissingAccessToken   = fmt.Errorf("%w: linked accounts require a provider access token", domain.ErrValidation)
	ErrAccountOwnerMissing  = fmt.Errorf("%w: account owner is required", domain.ErrValidation)
	ErrInstitutionTooLong   = fmt.Errorf("%w: institution name must be at most %d characters", domain.ErrValidation, MaxInstitutionLength)
	ErrAccountTypeTooLong   = fmt.Errorf("%w: account type must be at most %d characters", domain.ErrValidation, MaxAccountTypeLength)
	ErrAccountNumberTooLong = fmt.Errorf("%w: account number must be at most %d characters", domain.ErrValidation, MaxAccountNumberLength)
	ErrAccountNotLinked     = errors.New("bank account is not linked to a provider")
	ErrSyncTimeBeforeLast   = errors.New("sync time precedes last sync")
)

// Column widths of the bank_accounts table.
const (
	MaxInstitutionLength   = 255
	MaxAccountTypeLength   = 64
	MaxAccountNumberLength = 64
)

// LinkedAccountType is used for the placeholder record that keeps a
// provider access token when no provider accounts could be fetched.
const LinkedAccountType = "linked"

// BankAccount is a bank account owned by a user. Manual accounts are created
// through the API; linked accounts come from the aggregation provider and
// carry its access token.
type BankAccount struct {
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

// New creates a manual bank account.
func New(
	userID uuid.UUID,
	institutionName, accountType string,
	balance decimal.Decimal,
	accountNumber *string,
) (*BankAccount, error) {
	if userID == uuid.Nil {
		return nil, ErrAccountOwnerMissing
	}
	institutionName = strings.TrimSpace(institutionName)
	if institutionName == "" {
		return nil, ErrEmptyInstitution
	}
	if utf8.RuneCountInString(institutionName) > MaxInstitutionLength {
		return nil, ErrInstitutionTooLong
	}
	accountType = strings.TrimSpace(accountType)
	if accountType == "" {
		return nil, ErrEmptyAccountType
	}
	if utf8.RuneCountInString(accountType) > MaxAccountTypeLength {
		return nil, ErrAccountTypeTooLong
	}
	if accountNumber != nil && strings.TrimSpace(*accountNumber) == "" {
		accountNumber = nil
	}
	if accountNumber != nil && utf8.RuneCountInString(*accountNumber) > MaxAccountNumberLength {
		return nil, ErrAccountNumberTooLong
	}
	if err := domain.ValidateAmount(balance); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &BankAccount{
		ID:              uuid.New(),
		UserID:          userID,
		InstitutionName: institutionName,
		AccountType:     accountType,
		AccountNumber:   accountNumber,
		Balance:         balance,
		IsManual:        true,
		CreatedAt:       now,
		LastUpdatedAt:   now,
	}, nil
}

// LinkParams describes one provider account being attached to a user.
type LinkParams struct {
	AccessToken       string
	ItemID            string
	ProviderAccountID string
	InstitutionName   string
	AccountType       string
	Mask              string
	Balance           decimal.Decimal
	SyncedAt          time.Time
}

// NewLinked creates an account backed by the aggregation provider.
func NewLinked(userID uuid.UUID, p LinkParams) (*BankAccount, error) {
	if userID == uuid.Nil {
		return nil, ErrAccountOwnerMissing
	}
	if p.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}
	institution := strings.TrimSpace(p.InstitutionName)
	if institution == "" {
		institution = "Unknown institution"
	}
	accountType := strings.TrimSpace(p.AccountType)
	if accountType == "" {
		accountType = LinkedAccountType
	}
	var number *string
	if p.Mask != "" {
		mask := p.Mask
		number = &mask
	}
	synced := p.SyncedAt.UTC()
	if p.SyncedAt.IsZero() {
		synced = time.Now().UTC()
	}
	return &BankAccount{
		ID:                uuid.New(),
		UserID:            userID,
		InstitutionName:   institution,
		AccountType:       accountType,
		AccountNumber:     number,
		Balance:           p.Balance.Round(domain.AmountScale),
		IsManual:          false,
		AccessToken:       p.AccessToken,
		ItemID:            p.ItemID,
		ProviderAccountID: p.ProviderAccountID,
		CreatedAt:         synced,
		LastUpdatedAt:     synced,
		LastSyncedAt:      &synced,
	}, nil
}

// IsOwnedBy reports whether the account belongs to userID.
func (a *BankAccount) IsOwnedBy(userID uuid.UUID) bool {
	return a != nil && a.UserID == userID
}

// ApplySync records a balance observed at the provider.
func (a *BankAccount) ApplySync(balance decimal.Decimal, at time.Time) error {
	if a.IsManual || a.AccessToken == "" {
		return ErrAccountNotLinked
	}
	at = at.UTC()
	if a.LastSyncedAt != nil && at.Before(*a.LastSyncedAt) {
		return ErrSyncTimeBeforeLast
	}
	a.Balance = balance.Round(domain.AmountScale)
	a.LastUpdatedAt = at
	a.LastSyncedAt = &at
	return nil
}
