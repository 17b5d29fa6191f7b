package account

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/dinero-app/dinero/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	userID := uuid.New()
	number := "12345678"
	acc, err := New(userID, " Test Bank ", "Checking", decimal.NewFromFloat(100.0), &number)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, acc.ID)
	assert.Equal(t, userID, acc.UserID)
	assert.Equal(t, "Test Bank", acc.InstitutionName)
	assert.Equal(t, "Checking", acc.AccountType)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, acc.IsManual)
	assert.Equal(t, "12345678", *acc.AccountNumber)
	assert.Nil(t, acc.LastSyncedAt)
	assert.True(t, acc.IsOwnedBy(userID))
	assert.False(t, acc.IsOwnedBy(uuid.New()))
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(uuid.Nil, "Bank", "Checking", decimal.Zero, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = New(uuid.New(), "  ", "Checking", decimal.Zero, nil)
	assert.ErrorIs(t, err, ErrEmptyInstitution)

	_, err = New(uuid.New(), "Bank", "", decimal.Zero, nil)
	assert.ErrorIs(t, err, ErrEmptyAccountType)

	_, err = New(uuid.New(), strings.Repeat("b", MaxInstitutionLength+1), "Checking", decimal.Zero, nil)
	assert.ErrorIs(t, err, ErrInstitutionTooLong)

	_, err = New(uuid.New(), "Bank", strings.Repeat("a", 80), decimal.Zero, nil)
	assert.ErrorIs(t, err, ErrAccountTypeTooLong)

	long := strings.Repeat("9", MaxAccountNumberLength+1)
	_, err = New(uuid.New(), "Bank", "Checking", decimal.Zero, &long)
	assert.ErrorIs(t, err, ErrAccountNumberTooLong)

	_, err = New(uuid.New(), "Bank", "Checking", decimal.RequireFromString("12.345"), nil)
	assert.ErrorIs(t, err, domain.ErrAmountScale)

	_, err = New(uuid.New(), "Bank", "Checking", decimal.New(1, 18), nil)
	assert.ErrorIs(t, err, domain.ErrAmountOutOfRange)

	blank := " "
	acc, err := New(uuid.New(), "Bank", "Savings", decimal.Zero, &blank)
	require.NoError(t, err)
	assert.Nil(t, acc.AccountNumber)
}

func TestNew_LengthsCountCharacters(t *testing.T) {
	acc, err := New(uuid.New(), "Bank", strings.Repeat("é", MaxAccountTypeLength), decimal.Zero, nil)
	require.NoError(t, err)
	assert.Equal(t, MaxAccountTypeLength, utf8.RuneCountInString(acc.AccountType))
}

func TestNewLinked_RoundsProviderBalance(t *testing.T) {
	acc, err := NewLinked(uuid.New(), LinkParams{
		AccessToken: "access-sandbox-123",
		Balance:     decimal.RequireFromString("110.255"),
	})
	require.NoError(t, err)
	assert.Equal(t, "110.26", acc.Balance.StringFixed(2))
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("110.26")))

	require.NoError(t, acc.ApplySync(decimal.RequireFromString("5.004"), time.Now()))
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("5")))
}

func TestNewLinkedAndSync(t *testing.T) {
	userID := uuid.New()
	syncedAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	acc, err := NewLinked(userID, LinkParams{
		AccessToken:       "access-sandbox-123",
		ItemID:            "item-1",
		ProviderAccountID: "acc-1",
		InstitutionName:   "Plaid Bank",
		AccountType:       "depository/checking",
		Mask:              "0000",
		Balance:           decimal.NewFromInt(110),
		SyncedAt:          syncedAt,
	})
	require.NoError(t, err)
	assert.False(t, acc.IsManual)
	assert.Equal(t, "0000", *acc.AccountNumber)
	assert.Equal(t, syncedAt, *acc.LastSyncedAt)

	later := syncedAt.Add(time.Hour)
	require.NoError(t, acc.ApplySync(decimal.NewFromInt(90), later))
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, later, acc.LastUpdatedAt)

	assert.ErrorIs(t, acc.ApplySync(decimal.Zero, syncedAt), ErrSyncTimeBeforeLast)
}

func TestNewLinked_Placeholder(t *testing.T) {
	acc, err := NewLinked(uuid.New(), LinkParams{AccessToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, LinkedAccountType, acc.AccountType)
	assert.Equal(t, "Unknown institution", acc.InstitutionName)
	assert.Nil(t, acc.AccountNumber)
	assert.NotNil(t, acc.LastSyncedAt)

	_, err = NewLinked(uuid.New(), LinkParams{})
	assert.ErrorIs(t, err, ErrMissingAccessToken)
}

func TestApplySync_ManualAccount(t *testing.T) {
	acc, err := New(uuid.New(), "Bank", "Checking", decimal.Zero, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, acc.ApplySync(decimal.NewFromInt(1), time.Now()), ErrAccountNotLinked)
}
