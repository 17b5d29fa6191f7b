package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dinero-app/dinero/pkg/domain"
	"github.com/dinero-app/dinero/pkg/utils"
	"github.com/google/uuid"
)

// DefaultCurrency is assigned to users who register without a currency.
const DefaultCurrency = "CAD"

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserUnauthorized is returned for both unknown emails and wrong
	// passwords.
	ErrUserUnauthorized = errors.New("user unauthorized")
	// ErrEmailAlreadyRegistered is returned when registering an email that
	// is already taken.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidEmail           = fmt.Errorf("%w: invalid email", domain.ErrValidation)
	ErrInvalidCurrency        = fmt.Errorf("%w: currency must be a 3-letter ISO 4217 code", domain.ErrValidation)
	ErrEmptyPassword          = fmt.Errorf("%w: password cannot be empty", domain.ErrValidation)
	ErrPasswordTooLong        = fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, MaxPasswordBytes)
)

// MaxPasswordBytes is the longest password bcrypt hashes without truncation.
const MaxPasswordBytes = 72

// User represents a registered user. Password holds the bcrypt hash.
type User struct {
	ID        uuid.UUID
	Email     string
	Password  string
	Name      string
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail trims and lower-cases an email so lookups and the unique
// index agree on a single spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeCurrency upper-cases code and falls back to DefaultCurrency.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}
	if len(code) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return code, nil
}

// New creates a User with a hashed password and current timestamps.
func New(email, password, name, currency string) (*User, error) {
	email = NormalizeEmail(email)
	if !utils.IsEmail(email) {
		return nil, ErrInvalidEmail
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}
	code, err := NormalizeCurrency(currency)
	if err != nil {
		return nil, err
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Email:     email,
		Password:  hashedPassword,
		Name:      strings.TrimSpace(name),
		Currency:  code,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
