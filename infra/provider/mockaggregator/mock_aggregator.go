package mockaggregator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dinero-app/dinero/pkg/provider"
	"github.com/shopspring/decimal"
)

// Token prefixes understood by the fake.
const (
	PublicTokenPrefix = "public-mock-"
	AccessTokenPrefix = "access-mock-"
)

// MockAggregator simulates the aggregation provider for tests and local
// development. Every exchanged item has two accounts, a checking and a
// credit card, and a fixed set of transactions. Output depends only on the
// tokens and the clock.
//
// This is NOT for production use.
type MockAggregator struct {
	mu       sync.Mutex
	now      func() time.Time
	balances map[string]decimal.Decimal
}

var _ provider.Aggregator = (*MockAggregator)(nil)

// New creates a new MockAggregator.
func New() *MockAggregator {
	return &MockAggregator{
		now:      time.Now,
		balances: make(map[string]decimal.Decimal),
	}
}

// SetBalance overrides the current balance of a provider account.
func (m *MockAggregator) SetBalance(providerAccountID string, balance decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[providerAccountID] = balance
}

// CreateLinkToken implements provider.Aggregator.
func (m *MockAggregator) CreateLinkToken(
	ctx context.Context,
	userID string,
	clientName string,
) (*provider.LinkToken, error) {
	if userID == "" {
		return nil, provider.NewError(http.StatusBadRequest, "client_user_id is required", "INVALID_FIELD", "INVALID_REQUEST")
	}
	return &provider.LinkToken{
		LinkToken:  "link-mock-" + fingerprint(userID),
		Expiration: m.now().UTC().Add(4 * time.Hour),
	}, nil
}

// ExchangePublicToken implements provider.Aggregator.
func (m *MockAggregator) ExchangePublicToken(
	ctx context.Context,
	publicToken string,
) (*provider.TokenExchange, error) {
	if !strings.HasPrefix(publicToken, PublicTokenPrefix) {
		return nil, provider.NewError(
			http.StatusBadRequest,
			"provided public token is in an invalid format",
			"INVALID_PUBLIC_TOKEN",
			"INVALID_INPUT",
		)
	}
	id := strings.TrimPrefix(publicToken, PublicTokenPrefix)
	return &provider.TokenExchange{
		AccessToken: AccessTokenPrefix + id,
		ItemID:      "item-" + fingerprint(id),
	}, nil
}

// GetTransactions implements provider.Aggregator.
func (m *MockAggregator) GetTransactions(
	ctx context.Context,
	accessToken string,
	start, end *time.Time,
) (*provider.Transactions, error) {
	id, err := itemFromAccessToken(accessToken)
	if err != nil {
		return nil, err
	}
	from, to, err := provider.ResolveWindow(m.now(), start, end)
	if err != nil {
		return nil, err
	}
	accounts := m.accounts(id)

	var txs []provider.Transaction
	for i, seed := range seedTransactions {
		day := to.AddDate(0, 0, -seed.daysAgo)
		if day.Format(provider.DateLayout) < from.Format(provider.DateLayout) {
			continue
		}
		txs = append(txs, provider.Transaction{
			TransactionID: fmt.Sprintf("tx-%s-%d", fingerprint(id), i),
			AccountID:     accounts[seed.account].AccountID,
			Amount:        decimal.RequireFromString(seed.amount),
			CurrencyCode:  "USD",
			Date:          day.Format(provider.DateLayout),
			Name:          seed.name,
			MerchantName:  seed.merchant,
			Category:      seed.category,
		})
	}
	return &provider.Transactions{
		Accounts:          accounts,
		Transactions:      txs,
		TotalTransactions: len(txs),
		Item:              item(id),
	}, nil
}

// GetAccountBalances implements provider.Aggregator.
func (m *MockAggregator) GetAccountBalances(
	ctx context.Context,
	accessToken string,
) (*provider.Balances, error) {
	id, err := itemFromAccessToken(accessToken)
	if err != nil {
		return nil, err
	}
	return &provider.Balances{
		Accounts: m.accounts(id),
		Item:     item(id),
	}, nil
}

type seedTransaction struct {
	daysAgo  int
	account  int
	amount   string
	name     string
	merchant string
	category []string
}

var seedTransactions = []seedTransaction{
	{1, 0, "4.33", "Starbucks", "Starbucks", []string{"Food and Drink", "Coffee Shop"}},
	{3, 1, "89.40", "Sparkfun", "SparkFun", []string{"Shops", "Electronics"}},
	{7, 0, "-500.00", "Payroll", "", []string{"Transfer", "Payroll"}},
	{12, 1, "12.00", "McDonald's", "McDonald's", []string{"Food and Drink", "Restaurants"}},
	{45, 0, "25.00", "Gym", "Planet Fitness", []string{"Recreation", "Gyms"}},
}

func (m *MockAggregator) accounts(id string) []provider.Account {
	m.mu.Lock()
	defer m.mu.Unlock()

	fp := fingerprint(id)
	checkingID, creditID := "acc-"+fp+"-0", "acc-"+fp+"-1"
	checking := m.balanceOf(checkingID, "110.00")
	available := checking.Sub(decimal.NewFromInt(10))
	credit := m.balanceOf(creditID, "410.00")
	limit := decimal.NewFromInt(2000)

	return []provider.Account{
		{
			AccountID:    checkingID,
			Name:         "Mock Checking",
			OfficialName: "Mock Gold Standard 0% Interest Checking",
			Mask:         "0000",
			Type:         "depository",
			Subtype:      "checking",
			Balances: provider.Balance{
				Available:    &available,
				Current:      &checking,
				CurrencyCode: "USD",
			},
		},
		{
			AccountID:    creditID,
			Name:         "Mock Credit Card",
			OfficialName: "Mock Platinum Credit Card",
			Mask:         "3333",
			Type:         "credit",
			Subtype:      "credit card",
			Balances: provider.Balance{
				Current:      &credit,
				Limit:        &limit,
				CurrencyCode: "USD",
			},
		},
	}
}

func (m *MockAggregator) balanceOf(accountID, fallback string) decimal.Decimal {
	if b, ok := m.balances[accountID]; ok {
		return b
	}
	return decimal.RequireFromString(fallback)
}

func item(id string) provider.Item {
	return provider.Item{
		ItemID:          "item-" + fingerprint(id),
		InstitutionID:   "ins_mock",
		InstitutionName: "Mock Bank",
	}
}

func itemFromAccessToken(accessToken string) (string, error) {
	if !strings.HasPrefix(accessToken, AccessTokenPrefix) {
		return "", provider.NewError(
			http.StatusBadRequest,
			"provided access token is in an invalid format",
			"INVALID_ACCESS_TOKEN",
			"INVALID_INPUT",
		)
	}
	return strings.TrimPrefix(accessToken, AccessTokenPrefix), nil
}

func fingerprint(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}
