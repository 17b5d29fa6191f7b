package link_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/dinero-app/dinero/internal/fixtures"
	"github.com/dinero-app/dinero/pkg/domain/user"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/pkg/provider"
	"github.com/dinero-app/dinero/pkg/repository"
	accountrepo "github.com/dinero-app/dinero/pkg/repository/account"
	userrepo "github.com/dinero-app/dinero/pkg/repository/user"
	accountsvc "github.com/dinero-app/dinero/pkg/service/account"
	linksvc "github.com/dinero-app/dinero/pkg/service/link"
	usersvc "github.com/dinero-app/dinero/pkg/service/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type env struct {
	svc         *linksvc.Service
	aggregator  *fixtures.MockAggregator
	userRepo    *fixtures.MockUserRepository
	accountRepo *fixtures.MockAccountRepository
}

func setup(t *testing.T) env {
	uow := fixtures.NewMockUnitOfWork(t)
	e := env{
		aggregator:  fixtures.NewMockAggregator(t),
		userRepo:    fixtures.NewMockUserRepository(t),
		accountRepo: fixtures.NewMockAccountRepository(t),
	}
	uow.EXPECT().Do(mock.Anything, mock.Anything).RunAndReturn(
		func(ctx context.Context, fn func(repository.UnitOfWork) error) error {
			return fn(uow)
		},
	).Maybe()
	uow.EXPECT().GetRepository((*userrepo.Repository)(nil)).Return(e.userRepo, nil).Maybe()
	uow.EXPECT().GetRepository((*accountrepo.Repository)(nil)).Return(e.accountRepo, nil).Maybe()

	logger := slog.Default()
	e.svc = linksvc.New(
		e.aggregator,
		accountsvc.New(uow, logger),
		usersvc.New(uow, logger),
		"My Dinero",
		logger,
	)
	return e
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateLinkToken_DefaultClientName(t *testing.T) {
	e := setup(t)
	userID := uuid.New()
	want := &provider.LinkToken{LinkToken: "link-1", Expiration: time.Now()}
	e.aggregator.EXPECT().CreateLinkToken(mock.Anything, userID.String(), "My Dinero").Return(want, nil).Once()
	e.aggregator.EXPECT().CreateLinkToken(mock.Anything, userID.String(), "Budget App").Return(want, nil).Once()

	got, err := e.svc.CreateLinkToken(context.Background(), userID, "")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = e.svc.CreateLinkToken(context.Background(), userID, "Budget App")
	require.NoError(t, err)
}

func TestExchangePublicToken_WithoutUser(t *testing.T) {
	e := setup(t)
	e.aggregator.EXPECT().ExchangePublicToken(mock.Anything, "public-1").
		Return(&provider.TokenExchange{AccessToken: "access-1", ItemID: "item-1"}, nil).Once()

	got, err := e.svc.ExchangePublicToken(context.Background(), "public-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "access-1", got.AccessToken)
	assert.Equal(t, "item-1", got.ItemID)
	assert.Nil(t, got.LinkedAccounts)
}

func TestExchangePublicToken_PersistsLinkedAccounts(t *testing.T) {
	e := setup(t)
	userID := uuid.New()
	e.userRepo.EXPECT().Get(mock.Anything, userID).Return(&dto.UserRead{ID: userID}, nil).Once()
	e.aggregator.EXPECT().ExchangePublicToken(mock.Anything, "public-1").
		Return(&provider.TokenExchange{AccessToken: "access-1", ItemID: "item-1"}, nil).Once()
	e.aggregator.EXPECT().GetAccountBalances(mock.Anything, "access-1").Return(&provider.Balances{
		Item: provider.Item{ItemID: "item-1", InstitutionName: "First Platypus Bank"},
		Accounts: []provider.Account{
			{AccountID: "acc-a", Type: "depository", Mask: "0000", Balances: provider.Balance{Current: dec("110.00")}},
			{AccountID: "acc-b", Type: "credit", Balances: provider.Balance{Available: dec("50.25")}},
		},
	}, nil).Once()

	var stored []*dto.AccountCreate
	e.accountRepo.EXPECT().Create(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, c *dto.AccountCreate) { stored = append(stored, c) }).
		Return(nil).Twice()

	got, err := e.svc.ExchangePublicToken(context.Background(), "public-1", &userID)
	require.NoError(t, err)
	require.Len(t, got.LinkedAccounts, 2)
	require.Len(t, stored, 2)

	assert.Equal(t, "access-1", stored[0].AccessToken)
	assert.Equal(t, "item-1", stored[0].ItemID)
	assert.Equal(t, "acc-a", stored[0].ProviderAccountID)
	assert.Equal(t, "First Platypus Bank", stored[0].InstitutionName)
	assert.Equal(t, "0000", *stored[0].AccountNumber)
	assert.False(t, stored[0].IsManual)
	assert.True(t, stored[0].Balance.Equal(decimal.NewFromInt(110)))
	assert.True(t, stored[1].Balance.Equal(decimal.RequireFromString("50.25")))
	assert.NotNil(t, stored[1].LastSyncedAt)
}

func TestExchangePublicToken_BalanceFailureKeepsToken(t *testing.T) {
	e := setup(t)
	userID := uuid.New()
	e.userRepo.EXPECT().Get(mock.Anything, userID).Return(&dto.UserRead{ID: userID}, nil).Once()
	e.aggregator.EXPECT().ExchangePublicToken(mock.Anything, "public-1").
		Return(&provider.TokenExchange{AccessToken: "access-1", ItemID: "item-1"}, nil).Once()
	e.aggregator.EXPECT().GetAccountBalances(mock.Anything, "access-1").
		Return(nil, provider.NewError(http.StatusBadGateway, "", "", "")).Once()
	e.accountRepo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(c *dto.AccountCreate) bool {
		return c.AccessToken == "access-1" && c.AccountType == "linked" && !c.IsManual
	})).Return(nil).Once()

	got, err := e.svc.ExchangePublicToken(context.Background(), "public-1", &userID)
	require.NoError(t, err)
	require.Len(t, got.LinkedAccounts, 1)
}

func TestExchangePublicToken_UnknownUserSkipsProvider(t *testing.T) {
	e := setup(t)
	userID := uuid.New()
	e.userRepo.EXPECT().Get(mock.Anything, userID).Return(nil, nil).Once()

	_, err := e.svc.ExchangePublicToken(context.Background(), "public-1", &userID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	e.aggregator.AssertNotCalled(t, "ExchangePublicToken", mock.Anything, mock.Anything)
}

func TestExchangePublicToken_ProviderError(t *testing.T) {
	e := setup(t)
	perr := provider.NewError(http.StatusBadRequest, "bad token", "INVALID_PUBLIC_TOKEN", "INVALID_INPUT")
	e.aggregator.EXPECT().ExchangePublicToken(mock.Anything, "bad").Return(nil, perr).Once()

	_, err := e.svc.ExchangePublicToken(context.Background(), "bad", nil)
	got, ok := provider.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, got.StatusCode)
}

func TestSyncBalances(t *testing.T) {
	e := setup(t)
	userID := uuid.New()
	last := time.Now().Add(-time.Hour).UTC()
	a := &dto.AccountRead{ID: uuid.New(), UserID: userID, AccessToken: "access-1", ProviderAccountID: "acc-a", LastSyncedAt: &last}
	b := &dto.AccountRead{ID: uuid.New(), UserID: userID, AccessToken: "access-1", ProviderAccountID: "acc-b", LastSyncedAt: &last}
	c := &dto.AccountRead{ID: uuid.New(), UserID: userID, AccessToken: "access-2", ProviderAccountID: "gone", LastSyncedAt: &last}

	e.accountRepo.EXPECT().ListLinkedByUser(mock.Anything, userID).Return([]*dto.AccountRead{a, b, c}, nil).Once()
	e.aggregator.EXPECT().GetAccountBalances(mock.Anything, "access-1").Return(&provider.Balances{
		Accounts: []provider.Account{
			{AccountID: "acc-a", Balances: provider.Balance{Current: dec("1.00")}},
			{AccountID: "acc-b", Balances: provider.Balance{Current: dec("2.00")}},
		},
	}, nil).Once()
	e.aggregator.EXPECT().GetAccountBalances(mock.Anything, "access-2").Return(&provider.Balances{}, nil).Once()
	e.accountRepo.EXPECT().Get(mock.Anything, a.ID).Return(a, nil).Once()
	e.accountRepo.EXPECT().Get(mock.Anything, b.ID).Return(b, nil).Once()
	e.accountRepo.EXPECT().Update(mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	got, err := e.svc.SyncBalances(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Balance.Equal(decimal.NewFromInt(1)))
	assert.True(t, got[1].Balance.Equal(decimal.NewFromInt(2)))
	assert.True(t, got[0].LastSyncedAt.After(last))
	assert.Equal(t, c, got[2])
}

func TestSyncBalances_ProviderError(t *testing.T) {
	e := setup(t)
	userID := uuid.New()
	a := &dto.AccountRead{ID: uuid.New(), UserID: userID, AccessToken: "access-1", ProviderAccountID: "acc-a"}
	e.accountRepo.EXPECT().ListLinkedByUser(mock.Anything, userID).Return([]*dto.AccountRead{a}, nil).Once()
	e.aggregator.EXPECT().GetAccountBalances(mock.Anything, "access-1").
		Return(nil, provider.NewError(http.StatusBadRequest, "", "ITEM_LOGIN_REQUIRED", "ITEM_ERROR")).Once()

	_, err := e.svc.SyncBalances(context.Background(), userID)
	_, ok := provider.AsError(err)
	assert.True(t, ok)
}

func TestProxyReads(t *testing.T) {
	e := setup(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e.aggregator.EXPECT().GetTransactions(mock.Anything, "access-1", &start, (*time.Time)(nil)).
		Return(&provider.Transactions{TotalTransactions: 3}, nil).Once()
	e.aggregator.EXPECT().GetAccountBalances(mock.Anything, "access-1").
		Return(&provider.Balances{Item: provider.Item{ItemID: "item-1"}}, nil).Once()

	txs, err := e.svc.GetTransactions(context.Background(), "access-1", &start, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, txs.TotalTransactions)

	balances, err := e.svc.GetAccountBalances(context.Background(), "access-1")
	require.NoError(t, err)
	assert.Equal(t, "item-1", balances.Item.ItemID)
}
