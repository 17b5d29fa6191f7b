package provider

import (
	"context"
	"time"
)

// Aggregator is the bank-data aggregation gateway (Plaid or a fake).
// Failures are returned as *Error.
type Aggregator interface {
	// CreateLinkToken starts a Link session for the given user.
	CreateLinkToken(
		ctx context.Context,
		userID string,
		clientName string,
	) (*LinkToken, error)

	// ExchangePublicToken trades the public token returned by Link for a
	// long-lived access token.
	ExchangePublicToken(
		ctx context.Context,
		publicToken string,
	) (*TokenExchange, error)

	// GetTransactions fetches transactions between start and end inclusive.
	// Nil bounds default to the trailing 30 days ending today.
	GetTransactions(
		ctx context.Context,
		accessToken string,
		start, end *time.Time,
	) (*Transactions, error)

	// GetAccountBalances fetches the accounts of an item with their balances.
	GetAccountBalances(
		ctx context.Context,
		accessToken string,
	) (*Balances, error)
}

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// DefaultWindow is the transaction window used when no start date is given.
const DefaultWindow = 30 * 24 * time.Hour

// ResolveWindow fills missing transaction window bounds relative to now.
func ResolveWindow(now time.Time, start, end *time.Time) (time.Time, time.Time, error) {
	to := now
	if end != nil {
		to = *end
	}
	from := now.Add(-DefaultWindow)
	if start != nil {
		from = *start
	}
	if from.Format(DateLayout) > to.Format(DateLayout) {
		return time.Time{}, time.Time{}, ErrInvalidWindow
	}
	return from, to, nil
}
