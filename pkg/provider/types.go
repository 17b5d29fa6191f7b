package provider

import (
	"time"

	"github.com/shopspring/decimal"
)

// LinkToken is a short-lived token used to open the provider's Link flow.
type LinkToken struct {
	LinkToken  string    `json:"link_token"`
	Expiration time.Time `json:"expiration"`
}

// TokenExchange holds the permanent credentials of a linked item.
type TokenExchange struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

// Balance of a provider account. Nil amounts are unknown to the provider.
type Balance struct {
	Available    *decimal.Decimal `json:"available"`
	Current      *decimal.Decimal `json:"current"`
	Limit        *decimal.Decimal `json:"limit"`
	CurrencyCode string           `json:"iso_currency_code,omitempty"`
}

// Amount returns the current balance, falling back to the available one.
func (b Balance) Amount() decimal.Decimal {
	switch {
	case b.Current != nil:
		return *b.Current
	case b.Available != nil:
		return *b.Available
	default:
		return decimal.Zero
	}
}

// Account is an account held at the linked institution.
type Account struct {
	AccountID    string  `json:"account_id"`
	Name         string  `json:"name"`
	OfficialName string  `json:"official_name,omitempty"`
	Mask         string  `json:"mask,omitempty"`
	Type         string  `json:"type"`
	Subtype      string  `json:"subtype,omitempty"`
	Balances     Balance `json:"balances"`
}

// Item is a login at one institution.
type Item struct {
	ItemID          string `json:"item_id"`
	InstitutionID   string `json:"institution_id,omitempty"`
	InstitutionName string `json:"institution_name,omitempty"`
}

// Transaction as reported by the provider. Positive amounts are outflows,
// following the provider's convention.
type Transaction struct {
	TransactionID string          `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"iso_currency_code,omitempty"`
	Date          string          `json:"date"`
	Name          string          `json:"name"`
	MerchantName  string          `json:"merchant_name,omitempty"`
	Pending       bool            `json:"pending"`
	Category      []string        `json:"category,omitempty"`
}

// Transactions is one page of the transactions of an item.
type Transactions struct {
	Accounts          []Account     `json:"accounts"`
	Transactions      []Transaction `json:"transactions"`
	TotalTransactions int           `json:"total_transactions"`
	Item              Item          `json:"item"`
}

// Balances lists the accounts of an item with their balances.
type Balances struct {
	Accounts []Account `json:"accounts"`
	Item     Item      `json:"item"`
}
