package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// Defaults applied when the provider omits error details.
const (
	DefaultErrorMessage = "An unknown error occurred"
	DefaultErrorCode    = "UNKNOWN_ERROR"
	DefaultErrorType    = "API_ERROR"
)

// ErrInvalidWindow is returned when a transaction window ends before it starts.
var ErrInvalidWindow = errors.New("start date must not be after end date")

// Error is a normalized provider failure.
type Error struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	ErrorCode  string `json:"error_code"`
	ErrorType  string `json:"error_type"`
}

// NewError builds an Error, filling any empty field with its default.
func NewError(statusCode int, message, code, errType string) *Error {
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if message == "" {
		message = DefaultErrorMessage
	}
	if code == "" {
		code = DefaultErrorCode
	}
	if errType == "" {
		errType = DefaultErrorType
	}
	return &Error{
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  code,
		ErrorType:  errType,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider error %d %s/%s: %s", e.StatusCode, e.ErrorType, e.ErrorCode, e.Message)
}

// AsError extracts a provider error from err.
func AsError(err error) (*Error, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
