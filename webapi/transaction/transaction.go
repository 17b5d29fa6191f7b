package transaction

import (
	"github.com/dinero-app/dinero/pkg/domain/transaction"
	"github.com/dinero-app/dinero/pkg/middleware"
	authsvc "github.com/dinero-app/dinero/pkg/service/auth"
	transactionsvc "github.com/dinero-app/dinero/pkg/service/transaction"
	"github.com/dinero-app/dinero/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(app *fiber.App, txSvc *transactionsvc.Service, authSvc *authsvc.Service) {
	app.Post("/transactions", CreateTransaction(txSvc))
	app.Get("/transactions", middleware.JwtProtected(authSvc), ListTransactions(txSvc, authSvc))
}

// CreateTransaction records a transaction against one of the user's accounts.
// @Summary Create a transaction
// @Description Record a transaction. The bank account must exist and belong to the user.
// @Tags transactions
// @Accept json
// @Produce json
// @Param user_id query string true "Owner user ID"
// @Param request body CreateTransactionRequest true "Transaction details"
// @Success 200 {object} common.Response{data=TransactionResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails "Bank account not found"
// @Failure 500 {object} common.ProblemDetails
// @Router /transactions [post]
func CreateTransaction(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.ParseUUIDQuery(c, "user_id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[CreateTransactionRequest](c)
		if input == nil {
			return err // error response already written
		}
		params, err := input.params()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
		}
		tx, err := txSvc.CreateTransaction(c.Context(), userID, params)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction created", ToTransactionResponse(tx))
	}
}

// ListTransactions lists the caller's transactions, newest first.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param bank_account_id query string false "Restrict to one bank account"
// @Success 200 {object} common.Response{data=[]TransactionResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions [get]
// @Security Bearer
func ListTransactions(txSvc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		query, err := common.BindQueryAndValidate[ListTransactionsQuery](c)
		if query == nil {
			return err // error response already written
		}
		bankAccountID, err := optionalUUID("bank_account_id", query.BankAccountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
		}
		list, err := txSvc.ListTransactions(c.Context(), userID, bankAccountID)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		out := make([]*TransactionResponse, 0, len(list))
		for _, tx := range list {
			out = append(out, ToTransactionResponse(tx))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", out)
	}
}

func (r *CreateTransactionRequest) params() (transaction.Params, error) {
	date, err := common.ParseDate("date", r.Date)
	if err != nil {
		return transaction.Params{}, err
	}
	bankAccountID, err := optionalUUID("bank_account_id", r.BankAccountID)
	if err != nil {
		return transaction.Params{}, err
	}
	categoryID, err := optionalUUID("category_id", r.CategoryID)
	if err != nil {
		return transaction.Params{}, err
	}
	return transaction.Params{
		BankAccountID: *bankAccountID,
		Description:   r.Description,
		Amount:        *r.Amount,
		Date:          date,
		CategoryID:    categoryID,
		MerchantName:  r.MerchantName,
	}, nil
}

func optionalUUID(field, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, common.ValidationErrors{{Field: field, Message: "must be a valid UUID"}}
	}
	return &id, nil
}
