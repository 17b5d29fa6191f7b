// Package webapi provides the HTTP API of the dinero backend.
// It is organized into sub-packages per resource:
// - auth: login
// - user: registration and the current user
// - account: bank accounts
// - transaction: transaction records
// - plaid: bank-data aggregation
package webapi

import (
	"errors"
	"strings"

	"github.com/dinero-app/dinero/pkg/app"
	accountweb "github.com/dinero-app/dinero/webapi/account"
	authweb "github.com/dinero-app/dinero/webapi/auth"
	"github.com/dinero-app/dinero/webapi/common"
	plaidweb "github.com/dinero-app/dinero/webapi/plaid"
	transactionweb "github.com/dinero-app/dinero/webapi/transaction"
	userweb "github.com/dinero-app/dinero/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	_ "github.com/dinero-app/dinero/docs"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName: "dinero",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, common.ErrorTitle(err), err)
		},
	})

	fiberApp.Use(recover.New())
	fiberApp.Use(limiter.New(limiter.Config{
		Max:          a.Config.RateLimit.MaxRequests,
		Expiration:   a.Config.RateLimit.Window,
		KeyGenerator: clientIP,
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(logger.New())

	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Dinero API is running")
	})

	authweb.Routes(fiberApp, a.AuthService)
	userweb.Routes(fiberApp, a.UserService, a.AuthService)
	accountweb.Routes(fiberApp, a.AccountService, a.AuthService)
	transactionweb.Routes(fiberApp, a.TransactionService, a.AuthService)
	plaidweb.Routes(fiberApp, a.LinkService, a.AuthService)
	return fiberApp
}

// clientIP keys the limiter by the first X-Forwarded-For hop when behind a
// proxy, then X-Real-IP, then the socket address.
func clientIP(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		return strings.TrimSpace(first)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}
