package transaction_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dinero-app/dinero/internal/fixtures"
	"github.com/dinero-app/dinero/pkg/domain"
	"github.com/dinero-app/dinero/pkg/domain/account"
	"github.com/dinero-app/dinero/pkg/domain/transaction"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/pkg/repository"
	accountrepo "github.com/dinero-app/dinero/pkg/repository/account"
	transactionrepo "github.com/dinero-app/dinero/pkg/repository/transaction"
	transactionsvc "github.com/dinero-app/dinero/pkg/service/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*transactionsvc.Service, *fixtures.MockAccountRepository, *fixtures.MockTransactionRepository) {
	uow := fixtures.NewMockUnitOfWork(t)
	accountRepo := fixtures.NewMockAccountRepository(t)
	txRepo := fixtures.NewMockTransactionRepository(t)
	uow.EXPECT().Do(mock.Anything, mock.Anything).RunAndReturn(
		func(ctx context.Context, fn func(repository.UnitOfWork) error) error {
			return fn(uow)
		},
	).Maybe()
	uow.EXPECT().GetRepository((*accountrepo.Repository)(nil)).Return(accountRepo, nil).Maybe()
	uow.EXPECT().GetRepository((*transactionrepo.Repository)(nil)).Return(txRepo, nil).Maybe()
	return transactionsvc.New(uow, slog.Default()), accountRepo, txRepo
}

func TestCreateTransaction_DefaultsDateToCreation(t *testing.T) {
	svc, accountRepo, txRepo := setup(t)
	userID := uuid.New()
	acc := &dto.AccountRead{ID: uuid.New(), UserID: userID}
	var stored *dto.TransactionCreate
	accountRepo.EXPECT().Get(mock.Anything, acc.ID).Return(acc, nil).Once()
	txRepo.EXPECT().Create(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, c *dto.TransactionCreate) { stored = c }).
		Return(nil).Once()

	got, err := svc.CreateTransaction(context.Background(), userID, transaction.Params{
		BankAccountID: acc.ID,
		Description:   "Test",
		Amount:        decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, got.CreatedAt, got.Date)
	assert.Equal(t, acc.ID, got.BankAccountID)
	require.NotNil(t, stored)
	assert.Equal(t, stored.CreatedAt, stored.Date)
}

func TestCreateTransaction_KeepsGivenFields(t *testing.T) {
	svc, accountRepo, txRepo := setup(t)
	userID := uuid.New()
	acc := &dto.AccountRead{ID: uuid.New(), UserID: userID}
	date := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	category := uuid.New()
	merchant := "Coffee Shop"
	accountRepo.EXPECT().Get(mock.Anything, acc.ID).Return(acc, nil).Once()
	txRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

	got, err := svc.CreateTransaction(context.Background(), userID, transaction.Params{
		BankAccountID: acc.ID,
		Description:   "Latte",
		Amount:        decimal.RequireFromString("-4.50"),
		Date:          &date,
		CategoryID:    &category,
		MerchantName:  &merchant,
	})
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("-4.5")))
	assert.Equal(t, date, got.Date)
	assert.Equal(t, category, *got.CategoryID)
	assert.Equal(t, merchant, *got.MerchantName)
}

func TestCreateTransaction_UnknownAccount(t *testing.T) {
	svc, accountRepo, txRepo := setup(t)
	missing := uuid.New()
	accountRepo.EXPECT().Get(mock.Anything, missing).Return(nil, nil).Once()

	got, err := svc.CreateTransaction(context.Background(), uuid.New(), transaction.Params{
		BankAccountID: missing,
		Description:   "Test",
		Amount:        decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	assert.Nil(t, got)
	txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTransaction_AccountOfAnotherUser(t *testing.T) {
	svc, accountRepo, txRepo := setup(t)
	acc := &dto.AccountRead{ID: uuid.New(), UserID: uuid.New()}
	accountRepo.EXPECT().Get(mock.Anything, acc.ID).Return(acc, nil).Once()

	_, err := svc.CreateTransaction(context.Background(), uuid.New(), transaction.Params{
		BankAccountID: acc.ID,
		Description:   "Test",
		Amount:        decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTransaction_EmptyDescription(t *testing.T) {
	svc, accountRepo, _ := setup(t)
	userID := uuid.New()
	acc := &dto.AccountRead{ID: uuid.New(), UserID: userID}
	accountRepo.EXPECT().Get(mock.Anything, acc.ID).Return(acc, nil).Once()

	_, err := svc.CreateTransaction(context.Background(), userID, transaction.Params{
		BankAccountID: acc.ID,
		Description:   "   ",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListTransactions(t *testing.T) {
	svc, accountRepo, txRepo := setup(t)
	userID := uuid.New()
	acc := &dto.AccountRead{ID: uuid.New(), UserID: userID}
	list := []*dto.TransactionRead{{ID: uuid.New()}}

	txRepo.EXPECT().List(mock.Anything, dto.TransactionFilter{UserID: userID}).Return(list, nil).Once()
	got, err := svc.ListTransactions(context.Background(), userID, nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	accountRepo.EXPECT().Get(mock.Anything, acc.ID).Return(acc, nil).Once()
	txRepo.EXPECT().List(mock.Anything, dto.TransactionFilter{UserID: userID, BankAccountID: &acc.ID}).Return(nil, nil).Once()
	got, err = svc.ListTransactions(context.Background(), userID, &acc.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	foreign := &dto.AccountRead{ID: uuid.New(), UserID: uuid.New()}
	accountRepo.EXPECT().Get(mock.Anything, foreign.ID).Return(foreign, nil).Once()
	_, err = svc.ListTransactions(context.Background(), userID, &foreign.ID)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}
