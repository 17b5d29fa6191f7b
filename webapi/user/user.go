package user

import (
	"github.com/dinero-app/dinero/pkg/middleware"
	authsvc "github.com/dinero-app/dinero/pkg/service/auth"
	usersvc "github.com/dinero-app/dinero/pkg/service/user"
	"github.com/dinero-app/dinero/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service) {
	app.Post("/users/register", Register(userSvc))
	app.Get("/users/me", middleware.JwtProtected(authSvc), Me(userSvc, authSvc))
}

// Register creates a new user.
// @Summary Register a user
// @Description Create a user with email and password. The email is stored trimmed and lower-cased.
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterInput true "User registration data"
// @Success 200 {object} common.Response{data=dto.UserRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /users/register [post]
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err // error response already written
		}
		u, err := userSvc.Register(c.Context(), input.Email, input.Password, input.Name, input.Currency)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User registered", u)
	}
}

// Me returns the authenticated user.
// @Summary Current user
// @Description Return the user the bearer token was issued to
// @Tags users
// @Produce json
// @Success 200 {object} common.Response{data=dto.UserRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/me [get]
// @Security Bearer
func Me(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, "Invalid token", fiber.StatusUnauthorized)
		}
		u, err := userSvc.GetUser(c.Context(), userID)
		if err != nil {
			return common.ErrorResponse(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", u)
	}
}
