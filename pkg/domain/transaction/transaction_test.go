package transaction

import (
	"testing"
	"time"

	"github.com/dinero-app/dinero/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsDateToCreation(t *testing.T) {
	tx, err := New(uuid.New(), Params{
		BankAccountID: uuid.New(),
		Description:   "Test",
		Amount:        decimal.NewFromFloat(50.0),
	})
	require.NoError(t, err)
	assert.Equal(t, tx.CreatedAt, tx.Date)
	assert.WithinDuration(t, time.Now(), tx.Date, time.Minute)
	assert.Nil(t, tx.CategoryID)
}

func TestNew_ExplicitDate(t *testing.T) {
	date := time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)
	merchant := "Coffee Shop"
	category := uuid.New()
	tx, err := New(uuid.New(), Params{
		BankAccountID: uuid.New(),
		Description:   "Latte",
		Amount:        decimal.NewFromFloat(-4.75),
		Date:          &date,
		CategoryID:    &category,
		MerchantName:  &merchant,
	})
	require.NoError(t, err)
	assert.Equal(t, date, tx.Date)
	assert.NotEqual(t, tx.CreatedAt, tx.Date)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("-4.75")))
	assert.Equal(t, "Coffee Shop", *tx.MerchantName)
	assert.Equal(t, category, *tx.CategoryID)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(uuid.Nil, Params{BankAccountID: uuid.New(), Description: "x"})
	assert.ErrorIs(t, err, ErrMissingOwner)

	_, err = New(uuid.New(), Params{Description: "x"})
	assert.ErrorIs(t, err, ErrMissingAccount)

	_, err = New(uuid.New(), Params{BankAccountID: uuid.New(), Description: "   "})
	assert.ErrorIs(t, err, ErrEmptyDescription)

	_, err = New(uuid.New(), Params{
		BankAccountID: uuid.New(),
		Description:   "x",
		Amount:        decimal.RequireFromString("12.345"),
	})
	assert.ErrorIs(t, err, domain.ErrAmountScale)

	_, err = New(uuid.New(), Params{
		BankAccountID: uuid.New(),
		Description:   "x",
		Amount:        decimal.RequireFromString("-1000000000000000000"),
	})
	assert.ErrorIs(t, err, domain.ErrAmountOutOfRange)
}
