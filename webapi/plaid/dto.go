package plaid

import (
	"time"

	accountweb "github.com/dinero-app/dinero/webapi/account"
)

// LinkTokenRequest carries the parameters of a link token request. Every
// field may be sent in the query string or the JSON body.
type LinkTokenRequest struct {
	UserID     string `query:"user_id" json:"user_id" validate:"required"`
	ClientName string `query:"client_name" json:"client_name" validate:"max=30"`
}

// ExchangeRequest carries a public token to exchange. When UserID is set the
// item's accounts are stored for that user.
type ExchangeRequest struct {
	PublicToken string `query:"public_token" json:"public_token" validate:"required"`
	UserID      string `query:"user_id" json:"user_id"`
}

// TransactionsRequest selects an item and an optional date window.
type TransactionsRequest struct {
	AccessToken string `query:"access_token" json:"access_token" validate:"required"`
	StartDate   string `query:"start_date" json:"start_date"`
	EndDate     string `query:"end_date" json:"end_date"`
}

// BalancesRequest selects an item.
type BalancesRequest struct {
	AccessToken string `query:"access_token" json:"access_token" validate:"required"`
}

// ExchangeResponse is returned by the public token exchange.
type ExchangeResponse struct {
	AccessToken    string                        `json:"access_token"`
	ItemID         string                        `json:"item_id"`
	LinkedAccounts []*accountweb.AccountResponse `json:"linked_accounts,omitempty"`
}

// LinkTokenResponse is returned by link token creation.
type LinkTokenResponse struct {
	LinkToken  string    `json:"link_token"`
	Expiration time.Time `json:"expiration"`
}
