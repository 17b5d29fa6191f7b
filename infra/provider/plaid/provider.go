// Package plaid implements the aggregation gateway on the Plaid API.
package plaid

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dinero-app/dinero/pkg/config"
	"github.com/dinero-app/dinero/pkg/provider"
	"github.com/plaid/plaid-go/v29/plaid"
	"github.com/shopspring/decimal"
)

// Plaid API hosts by environment name.
var environments = map[string]string{
	"sandbox":     "https://sandbox.plaid.com",
	"development": "https://development.plaid.com",
	"production":  "https://production.plaid.com",
}

// EnvironmentURL returns the API host for env; unknown names select sandbox.
func EnvironmentURL(env string) string {
	if u, ok := environments[strings.ToLower(strings.TrimSpace(env))]; ok {
		return u
	}
	return environments["sandbox"]
}

// Provider implements provider.Aggregator using plaid-go.
type Provider struct {
	client *plaid.APIClient
	cfg    *config.Plaid
	logger *slog.Logger
	now    func() time.Time
}

var _ provider.Aggregator = (*Provider)(nil)

// New creates a Plaid provider for the configured environment.
func New(cfg *config.Plaid, logger *slog.Logger) *Provider {
	return NewWithBaseURL(cfg, EnvironmentURL(cfg.Env), logger)
}

// NewWithBaseURL creates a Plaid provider talking to baseURL.
func NewWithBaseURL(cfg *config.Plaid, baseURL string, logger *slog.Logger) *Provider {
	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)
	configuration.UseEnvironment(plaid.Environment(baseURL))
	configuration.HTTPClient = &http.Client{Timeout: cfg.HTTPTimeout}

	return &Provider{
		client: plaid.NewAPIClient(configuration),
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// CreateLinkToken implements provider.Aggregator.
func (p *Provider) CreateLinkToken(
	ctx context.Context,
	userID string,
	clientName string,
) (*provider.LinkToken, error) {
	log := p.logger.With("handler", "CreateLinkToken", "userID", userID)
	if clientName == "" {
		clientName = p.cfg.ClientName
	}

	countryCodes := make([]plaid.CountryCode, 0, len(p.cfg.CountryCodes))
	for _, code := range p.cfg.CountryCodes {
		countryCodes = append(countryCodes, plaid.CountryCode(strings.ToUpper(code)))
	}
	products := make([]plaid.Products, 0, len(p.cfg.Products))
	for _, product := range p.cfg.Products {
		products = append(products, plaid.Products(strings.ToLower(product)))
	}

	request := plaid.NewLinkTokenCreateRequest(
		clientName,
		p.cfg.Language,
		countryCodes,
		plaid.LinkTokenCreateRequestUser{ClientUserId: userID},
	)
	request.SetProducts(products)

	resp, httpResp, err := p.client.PlaidApi.LinkTokenCreate(ctx).
		LinkTokenCreateRequest(*request).
		Execute()
	if err != nil {
		log.Error("Link token request failed", "error", err)
		return nil, normalizeError(err, httpResp)
	}
	log.Info("Link token created")
	return &provider.LinkToken{
		LinkToken:  resp.GetLinkToken(),
		Expiration: resp.GetExpiration(),
	}, nil
}

// ExchangePublicToken implements provider.Aggregator.
func (p *Provider) ExchangePublicToken(
	ctx context.Context,
	publicToken string,
) (*provider.TokenExchange, error) {
	log := p.logger.With("handler", "ExchangePublicToken")
	request := plaid.NewItemPublicTokenExchangeRequest(publicToken)
	resp, httpResp, err := p.client.PlaidApi.ItemPublicTokenExchange(ctx).
		ItemPublicTokenExchangeRequest(*request).
		Execute()
	if err != nil {
		log.Error("Public token exchange failed", "error", err)
		return nil, normalizeError(err, httpResp)
	}
	log.Info("Public token exchanged", "itemID", resp.GetItemId())
	return &provider.TokenExchange{
		AccessToken: resp.GetAccessToken(),
		ItemID:      resp.GetItemId(),
	}, nil
}

// GetTransactions implements provider.Aggregator.
func (p *Provider) GetTransactions(
	ctx context.Context,
	accessToken string,
	start, end *time.Time,
) (*provider.Transactions, error) {
	log := p.logger.With("handler", "GetTransactions")
	from, to, err := provider.ResolveWindow(p.now(), start, end)
	if err != nil {
		return nil, err
	}
	request := plaid.NewTransactionsGetRequest(
		accessToken,
		from.Format(provider.DateLayout),
		to.Format(provider.DateLayout),
	)
	resp, httpResp, err := p.client.PlaidApi.TransactionsGet(ctx).
		TransactionsGetRequest(*request).
		Execute()
	if err != nil {
		log.Error("Transactions request failed", "error", err)
		return nil, normalizeError(err, httpResp)
	}

	txs := make([]provider.Transaction, 0, len(resp.GetTransactions()))
	for _, tx := range resp.GetTransactions() {
		txs = append(txs, mapTransaction(tx))
	}
	log.Info("Transactions fetched", "count", len(txs), "total", resp.GetTotalTransactions())
	return &provider.Transactions{
		Accounts:          mapAccounts(resp.GetAccounts()),
		Transactions:      txs,
		TotalTransactions: int(resp.GetTotalTransactions()),
		Item:              mapItem(resp.GetItem()),
	}, nil
}

// GetAccountBalances implements provider.Aggregator.
func (p *Provider) GetAccountBalances(
	ctx context.Context,
	accessToken string,
) (*provider.Balances, error) {
	log := p.logger.With("handler", "GetAccountBalances")
	request := plaid.NewAccountsGetRequest(accessToken)
	resp, httpResp, err := p.client.PlaidApi.AccountsGet(ctx).
		AccountsGetRequest(*request).
		Execute()
	if err != nil {
		log.Error("Accounts request failed", "error", err)
		return nil, normalizeError(err, httpResp)
	}
	log.Info("Account balances fetched", "count", len(resp.GetAccounts()))
	return &provider.Balances{
		Accounts: mapAccounts(resp.GetAccounts()),
		Item:     mapItem(resp.GetItem()),
	}, nil
}

// normalizeError converts an SDK failure into a *provider.Error.
func normalizeError(err error, resp *http.Response) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	perr, convErr := plaid.ToPlaidError(err)
	if convErr != nil {
		return provider.NewError(status, "", "", "")
	}
	return provider.NewError(
		status,
		perr.GetErrorMessage(),
		perr.GetErrorCode(),
		string(perr.GetErrorType()),
	)
}

func mapItem(item plaid.Item) provider.Item {
	return provider.Item{
		ItemID:        item.GetItemId(),
		InstitutionID: item.GetInstitutionId(),
	}
}

func mapAccounts(accounts []plaid.AccountBase) []provider.Account {
	out := make([]provider.Account, 0, len(accounts))
	for _, acc := range accounts {
		balances := acc.GetBalances()
		out = append(out, provider.Account{
			AccountID:    acc.GetAccountId(),
			Name:         acc.GetName(),
			OfficialName: acc.GetOfficialName(),
			Mask:         acc.GetMask(),
			Type:         string(acc.GetType()),
			Subtype:      string(acc.GetSubtype()),
			Balances: provider.Balance{
				Available:    optionalDecimal(balances.GetAvailableOk()),
				Current:      optionalDecimal(balances.GetCurrentOk()),
				Limit:        optionalDecimal(balances.GetLimitOk()),
				CurrencyCode: balances.GetIsoCurrencyCode(),
			},
		})
	}
	return out
}

func mapTransaction(tx plaid.Transaction) provider.Transaction {
	return provider.Transaction{
		TransactionID: tx.GetTransactionId(),
		AccountID:     tx.GetAccountId(),
		Amount:        decimal.NewFromFloat(tx.GetAmount()),
		CurrencyCode:  tx.GetIsoCurrencyCode(),
		Date:          tx.GetDate(),
		Name:          tx.GetName(),
		MerchantName:  tx.GetMerchantName(),
		Pending:       tx.GetPending(),
		Category:      tx.GetCategory(),
	}
}

func optionalDecimal(v *float64, ok bool) *decimal.Decimal {
	if !ok || v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}
