// Package link connects users to the aggregation provider: it issues link
// tokens, exchanges public tokens, proxies transaction and balance reads,
// and keeps linked bank accounts in sync with provider balances.
package link

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dinero-app/dinero/pkg/domain/account"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/pkg/provider"
	accountsvc "github.com/dinero-app/dinero/pkg/service/account"
	usersvc "github.com/dinero-app/dinero/pkg/service/user"
	"github.com/google/uuid"
)

// Exchange is the result of a public token exchange. LinkedAccounts is set
// only when the exchange was made on behalf of a user.
type Exchange struct {
	provider.TokenExchange
	LinkedAccounts []*dto.AccountRead `json:"linked_accounts,omitempty"`
}

// Service wraps a provider.Aggregator and persists linked accounts.
type Service struct {
	aggregator provider.Aggregator
	accounts   *accountsvc.Service
	users      *usersvc.Service
	clientName string
	logger     *slog.Logger
	now        func() time.Time
}

// New creates a link Service. clientName is used when a link token request
// does not name the client.
func New(
	aggregator provider.Aggregator,
	accounts *accountsvc.Service,
	users *usersvc.Service,
	clientName string,
	logger *slog.Logger,
) *Service {
	return &Service{
		aggregator: aggregator,
		accounts:   accounts,
		users:      users,
		clientName: clientName,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateLinkToken issues a Link token for userID.
func (s *Service) CreateLinkToken(
	ctx context.Context,
	userID uuid.UUID,
	clientName string,
) (*provider.LinkToken, error) {
	if clientName == "" {
		clientName = s.clientName
	}
	return s.aggregator.CreateLinkToken(ctx, userID.String(), clientName)
}

// ExchangePublicToken trades a public token for an access token. When
// userID is given the user must exist; the item's accounts are then stored
// as linked bank accounts so the access token is kept.
func (s *Service) ExchangePublicToken(
	ctx context.Context,
	publicToken string,
	userID *uuid.UUID,
) (*Exchange, error) {
	log := s.logger.With("context", "ExchangePublicToken")
	if userID != nil {
		if _, err := s.users.GetUser(ctx, *userID); err != nil {
			return nil, err
		}
	}

	exchange, err := s.aggregator.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return nil, err
	}
	result := &Exchange{TokenExchange: *exchange}
	if userID == nil {
		return result, nil
	}

	linked, err := s.accounts.LinkAccounts(ctx, *userID, s.linkParams(ctx, exchange))
	if err != nil {
		return nil, fmt.Errorf("failed to store linked accounts: %w", err)
	}
	result.LinkedAccounts = linked
	log.Info("Item linked", "userID", *userID, "itemID", exchange.ItemID, "accounts", len(linked))
	return result, nil
}

// linkParams describes the accounts of a freshly exchanged item. If the
// balances cannot be read, a single placeholder keeps the access token.
func (s *Service) linkParams(
	ctx context.Context,
	exchange *provider.TokenExchange,
) []account.LinkParams {
	syncedAt := s.now().UTC()
	balances, err := s.aggregator.GetAccountBalances(ctx, exchange.AccessToken)
	if err != nil || len(balances.Accounts) == 0 {
		s.logger.Warn("Storing placeholder linked account", "itemID", exchange.ItemID, "error", err)
		return []account.LinkParams{{
			AccessToken: exchange.AccessToken,
			ItemID:      exchange.ItemID,
			AccountType: account.LinkedAccountType,
			SyncedAt:    syncedAt,
		}}
	}

	params := make([]account.LinkParams, 0, len(balances.Accounts))
	for _, acc := range balances.Accounts {
		params = append(params, account.LinkParams{
			AccessToken:       exchange.AccessToken,
			ItemID:            exchange.ItemID,
			ProviderAccountID: acc.AccountID,
			InstitutionName:   institutionName(balances.Item, acc),
			AccountType:       acc.Type,
			Mask:              acc.Mask,
			Balance:           acc.Balances.Amount(),
			SyncedAt:          syncedAt,
		})
	}
	return params
}

// GetTransactions proxies a transactions read.
func (s *Service) GetTransactions(
	ctx context.Context,
	accessToken string,
	start, end *time.Time,
) (*provider.Transactions, error) {
	return s.aggregator.GetTransactions(ctx, accessToken, start, end)
}

// GetAccountBalances proxies a balances read.
func (s *Service) GetAccountBalances(
	ctx context.Context,
	accessToken string,
) (*provider.Balances, error) {
	return s.aggregator.GetAccountBalances(ctx, accessToken)
}

// SyncBalances refreshes the balances of every linked account of userID,
// one provider call per distinct access token.
func (s *Service) SyncBalances(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.AccountRead, error) {
	log := s.logger.With("context", "SyncBalances", "userID", userID)
	linked, err := s.accounts.ListLinkedAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	byToken := make(map[string][]*dto.AccountRead)
	var tokens []string
	for _, acc := range linked {
		if _, seen := byToken[acc.AccessToken]; !seen {
			tokens = append(tokens, acc.AccessToken)
		}
		byToken[acc.AccessToken] = append(byToken[acc.AccessToken], acc)
	}

	refreshed := make([]*dto.AccountRead, 0, len(linked))
	for _, token := range tokens {
		balances, err := s.aggregator.GetAccountBalances(ctx, token)
		if err != nil {
			return nil, err
		}
		syncedAt := s.now().UTC()
		amounts := make(map[string]provider.Balance, len(balances.Accounts))
		for _, acc := range balances.Accounts {
			amounts[acc.AccountID] = acc.Balances
		}
		for _, acc := range byToken[token] {
			balance, ok := amounts[acc.ProviderAccountID]
			if !ok {
				refreshed = append(refreshed, acc)
				continue
			}
			updated, err := s.accounts.UpdateSyncedBalance(ctx, acc.ID, balance.Amount(), syncedAt)
			if err != nil {
				return nil, err
			}
			refreshed = append(refreshed, updated)
		}
	}
	log.Info("Balances synced", "accounts", len(refreshed), "items", len(tokens))
	return refreshed, nil
}

func institutionName(item provider.Item, acc provider.Account) string {
	switch {
	case item.InstitutionName != "":
		return item.InstitutionName
	case item.InstitutionID != "":
		return item.InstitutionID
	default:
		return acc.Name
	}
}
