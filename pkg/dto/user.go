package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate represents the data needed to persist a new user. Password is
// the bcrypt hash, never the plain text.
type UserCreate struct {
	ID        uuid.UUID
	Email     string
	Password  string
	Name      string
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRead represents a read-optimized view of a user.
type UserRead struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Name           string    `json:"name,omitempty"`
	Currency       string    `json:"currency"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
