// Package common holds the response envelope, problem documents, request
// binding and error mapping shared by all route packages.
package common

import (
	"errors"

	"github.com/dinero-app/dinero/pkg/provider"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func init() {
	// Money is rendered as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes data inside the standard envelope.
func SuccessResponseJSON(
	c *fiber.Ctx,
	status int,
	message string,
	data any,
) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 problem document.
//
// The optional args are a string detail and an int status, in any order.
// Without an explicit status it is derived from err. Without a detail the
// error text is used. Provider errors keep their own status and are copied
// into the errors member.
func ProblemDetailsJSON(
	c *fiber.Ctx,
	title string,
	err error,
	args ...any,
) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   ErrorToStatusCode(err),
		Instance: c.OriginalURL(),
	}
	if err != nil {
		pd.Detail = err.Error()
	}
	if perr, ok := provider.AsError(err); ok {
		pd.Detail = perr.Message
		pd.Errors = perr
	}
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		pd.Errors = verrs
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			pd.Detail = v
		case int:
			pd.Status = v
		}
	}
	if pd.Status < fiber.StatusBadRequest {
		pd.Status = fiber.StatusInternalServerError
	}

	return c.Status(pd.Status).JSON(pd, "application/problem+json")
}
