package auth

import (
	"errors"

	"github.com/dinero-app/dinero/pkg/domain/user"
	authsvc "github.com/dinero-app/dinero/pkg/service/auth"
	"github.com/dinero-app/dinero/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// invalidCredentials is shared by every login failure caused by the
// credentials themselves.
const invalidCredentials = "Incorrect username or password"

func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/auth/login", Login(authSvc))
}

// Login handles user authentication and returns a bearer token. The token is
// rendered at the top level, as OAuth2 password-flow clients expect, rather
// than inside the response envelope.
// @Summary User login
// @Description Authenticate with email and password, sent as JSON or as a form
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} authsvc.Token
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err // error response already written
		}
		u, err := authSvc.Login(c.Context(), input.Username, input.Password)
		if err != nil {
			if errors.Is(err, user.ErrUserUnauthorized) {
				c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
				return common.ProblemDetailsJSON(c, "Unauthorized", err, invalidCredentials, fiber.StatusUnauthorized)
			}
			return common.ErrorResponse(c, err)
		}
		token, err := authSvc.GenerateToken(c.Context(), u)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(token)
	}
}
