package middleware

import (
	authsvc "github.com/dinero-app/dinero/pkg/service/auth"
	"github.com/dinero-app/dinero/webapi/common"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JwtProtected requires a valid bearer token. The parsed token is stored in
// c.Locals("user").
func JwtProtected(authSvc *authsvc.Service) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc:      authSvc.Keyfunc(),
		ErrorHandler: jwtError,
	})
}

// jwtError renders every bearer failure the same way so callers cannot tell
// a missing token from an expired or forged one.
func jwtError(c *fiber.Ctx, err error) error {
	return common.ProblemDetailsJSON(
		c,
		"Unauthorized",
		authsvc.ErrInvalidToken,
		"Invalid token",
		fiber.StatusUnauthorized,
	)
}
