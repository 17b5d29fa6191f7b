package account

import (
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/pkg/middleware"
	accountsvc "github.com/dinero-app/dinero/pkg/service/account"
	authsvc "github.com/dinero-app/dinero/pkg/service/auth"
	"github.com/dinero-app/dinero/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the bank account endpoints.
//
// Routes:
//   - POST /accounts?user_id=<uuid> : Create a manual account for a user.
//   - GET  /accounts                : List the caller's accounts.
//   - GET  /accounts/:id            : Get one of the caller's accounts.
func Routes(app *fiber.App, accountSvc *accountsvc.Service, authSvc *authsvc.Service) {
	app.Post("/accounts", CreateAccount(accountSvc))
	app.Get("/accounts", middleware.JwtProtected(authSvc), ListAccounts(accountSvc, authSvc))
	app.Get("/accounts/:id", middleware.JwtProtected(authSvc), GetAccount(accountSvc, authSvc))
}

// CreateAccount creates a manual bank account for the user named in the
// query string.
// @Summary Create a bank account
// @Description Create a manual bank account. The user must exist.
// @Tags accounts
// @Accept json
// @Produce json
// @Param user_id query string true "Owner user ID"
// @Param request body CreateAccountRequest true "Account details"
// @Success 200 {object} common.Response{data=AccountResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails "User not found"
// @Failure 500 {object} common.ProblemDetails
// @Router /accounts [post]
func CreateAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.ParseUUIDQuery(c, "user_id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err // error response already written
		}
		a, err := accountSvc.CreateAccount(c.Context(), dto.AccountCreate{
			UserID:          userID,
			InstitutionName: input.InstitutionName,
			AccountType:     input.AccountType,
			Balance:         input.Balance,
			AccountNumber:   input.AccountNumber,
		})
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account created", ToAccountResponse(a))
	}
}

// ListAccounts lists the caller's bank accounts.
// @Summary List bank accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response{data=[]AccountResponse}
// @Failure 401 {object} common.ProblemDetails
// @Router /accounts [get]
// @Security Bearer
func ListAccounts(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		list, err := accountSvc.ListAccounts(c.Context(), userID)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", ToAccountResponses(list))
	}
}

// GetAccount returns one of the caller's bank accounts.
// @Summary Get a bank account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response{data=AccountResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails "Bank account not found"
// @Router /accounts/{id} [get]
// @Security Bearer
func GetAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, "Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		a, err := accountSvc.GetAccount(c.Context(), userID, accountID)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account found", ToAccountResponse(a))
	}
}
