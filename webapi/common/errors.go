package common

import (
	"errors"

	"github.com/dinero-app/dinero/pkg/domain"
	"github.com/dinero-app/dinero/pkg/domain/account"
	"github.com/dinero-app/dinero/pkg/domain/user"
	"github.com/dinero-app/dinero/pkg/provider"
	"github.com/dinero-app/dinero/pkg/service/auth"
	"github.com/gofiber/fiber/v2"
)

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var perr *provider.Error
	var ferr *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.As(err, &perr):
		return perr.StatusCode
	case errors.As(err, &ferr):
		return ferr.Code
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, account.ErrAccountNotFound),
		errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, user.ErrEmailAlreadyRegistered),
		errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, provider.ErrInvalidWindow),
		errors.As(err, new(ValidationErrors)):
		return fiber.StatusBadRequest
	case errors.Is(err, user.ErrUserUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// fixedMessage returns the client-facing text for errors whose wording is
// part of the API.
func fixedMessage(err error) string {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, account.ErrAccountNotFound):
		return "Bank account not found"
	case errors.Is(err, user.ErrEmailAlreadyRegistered):
		return "Email already registered"
	case errors.Is(err, user.ErrUserUnauthorized):
		return "Incorrect username or password"
	case errors.Is(err, auth.ErrInvalidToken):
		return "Invalid token"
	}
	return ""
}

// ErrorTitle returns the problem title for err.
func ErrorTitle(err error) string {
	if _, ok := provider.AsError(err); ok {
		return "Provider error"
	}
	switch ErrorToStatusCode(err) {
	case fiber.StatusBadRequest:
		return "Bad Request"
	case fiber.StatusUnauthorized:
		return "Unauthorized"
	case fiber.StatusNotFound:
		return "Not Found"
	default:
		return "Internal Server Error"
	}
}

// ErrorResponse writes the problem document for a service error. Internal
// failures get a generic detail.
func ErrorResponse(c *fiber.Ctx, err error) error {
	title := ErrorTitle(err)
	if msg := fixedMessage(err); msg != "" {
		return ProblemDetailsJSON(c, title, err, msg)
	}
	if _, ok := provider.AsError(err); ok {
		return ProblemDetailsJSON(c, title, err)
	}
	if ErrorToStatusCode(err) == fiber.StatusInternalServerError {
		return ProblemDetailsJSON(c, title, err, "An unexpected error occurred")
	}
	return ProblemDetailsJSON(c, title, err)
}
