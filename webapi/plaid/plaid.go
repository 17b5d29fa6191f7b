package plaid

import (
	"github.com/dinero-app/dinero/pkg/middleware"
	authsvc "github.com/dinero-app/dinero/pkg/service/auth"
	linksvc "github.com/dinero-app/dinero/pkg/service/link"
	accountweb "github.com/dinero-app/dinero/webapi/account"
	"github.com/dinero-app/dinero/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the aggregation endpoints.
//
// Routes:
//   - POST /plaid/create_link_token    : Issue a Link token for a user.
//   - POST /plaid/exchange_public_token : Exchange a public token, optionally storing the accounts.
//   - GET  /plaid/transactions          : Read transactions of an item.
//   - GET  /plaid/account_balances      : Read balances of an item.
//   - POST /plaid/sync                  : Refresh the caller's linked account balances.
func Routes(app *fiber.App, linkSvc *linksvc.Service, authSvc *authsvc.Service) {
	app.Post("/plaid/create_link_token", CreateLinkToken(linkSvc))
	app.Post("/plaid/exchange_public_token", ExchangePublicToken(linkSvc))
	app.Get("/plaid/transactions", GetTransactions(linkSvc))
	app.Get("/plaid/account_balances", GetAccountBalances(linkSvc))
	app.Post("/plaid/sync", middleware.JwtProtected(authSvc), SyncBalances(linkSvc, authSvc))
}

// CreateLinkToken issues a Link token.
// @Summary Create a Link token
// @Tags plaid
// @Accept json
// @Produce json
// @Param user_id query string true "User ID"
// @Param client_name query string false "Client name shown in Link"
// @Success 200 {object} common.Response{data=LinkTokenResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails "Provider error"
// @Router /plaid/create_link_token [post]
func CreateLinkToken(linkSvc *linksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindQueryAndValidate[LinkTokenRequest](c)
		if input == nil {
			return err // error response already written
		}
		userID, err := uuid.Parse(input.UserID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err, "User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		token, err := linkSvc.CreateLinkToken(c.Context(), userID, input.ClientName)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Link token created", LinkTokenResponse{
			LinkToken:  token.LinkToken,
			Expiration: token.Expiration,
		})
	}
}

// ExchangePublicToken trades a public token for an access token.
// @Summary Exchange a public token
// @Description When user_id is given the user must exist and the item's accounts are stored as linked bank accounts.
// @Tags plaid
// @Accept json
// @Produce json
// @Param public_token query string false "Public token (or JSON body)"
// @Param user_id query string false "User to attach the item to"
// @Success 200 {object} common.Response{data=ExchangeResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails "User not found"
// @Failure 500 {object} common.ProblemDetails "Provider error"
// @Router /plaid/exchange_public_token [post]
func ExchangePublicToken(linkSvc *linksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindQueryAndValidate[ExchangeRequest](c)
		if input == nil {
			return err // error response already written
		}
		var userID *uuid.UUID
		if input.UserID != "" {
			id, err := uuid.Parse(input.UserID)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid user ID", err, "User ID must be a valid UUID", fiber.StatusBadRequest)
			}
			userID = &id
		}
		exchange, err := linkSvc.ExchangePublicToken(c.Context(), input.PublicToken, userID)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		resp := ExchangeResponse{
			AccessToken: exchange.AccessToken,
			ItemID:      exchange.ItemID,
		}
		if exchange.LinkedAccounts != nil {
			resp.LinkedAccounts = accountweb.ToAccountResponses(exchange.LinkedAccounts)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Public token exchanged", resp)
	}
}

// GetTransactions reads transactions of an item. The window defaults to the
// trailing 30 days.
// @Summary Get provider transactions
// @Tags plaid
// @Produce json
// @Param access_token query string true "Access token"
// @Param start_date query string false "Start date (YYYY-MM-DD or RFC 3339)"
// @Param end_date query string false "End date (YYYY-MM-DD or RFC 3339)"
// @Success 200 {object} common.Response{data=provider.Transactions}
// @Failure 400 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails "Provider error"
// @Router /plaid/transactions [get]
func GetTransactions(linkSvc *linksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindQueryAndValidate[TransactionsRequest](c)
		if input == nil {
			return err // error response already written
		}
		start, err := common.ParseDate("start_date", input.StartDate)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
		}
		end, err := common.ParseDate("end_date", input.EndDate)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
		}
		txs, err := linkSvc.GetTransactions(c.Context(), input.AccessToken, start, end)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", txs)
	}
}

// GetAccountBalances reads balances of an item.
// @Summary Get provider balances
// @Tags plaid
// @Produce json
// @Param access_token query string true "Access token"
// @Success 200 {object} common.Response{data=provider.Balances}
// @Failure 400 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails "Provider error"
// @Router /plaid/account_balances [get]
func GetAccountBalances(linkSvc *linksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindQueryAndValidate[BalancesRequest](c)
		if input == nil {
			return err // error response already written
		}
		balances, err := linkSvc.GetAccountBalances(c.Context(), input.AccessToken)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balances fetched", balances)
	}
}

// SyncBalances refreshes the balances of the caller's linked accounts.
// @Summary Sync linked balances
// @Tags plaid
// @Produce json
// @Success 200 {object} common.Response{data=[]accountweb.AccountResponse}
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails "Provider error"
// @Router /plaid/sync [post]
// @Security Bearer
func SyncBalances(linkSvc *linksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		accounts, err := linkSvc.SyncBalances(c.Context(), userID)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balances synced", accountweb.ToAccountResponses(accounts))
	}
}
