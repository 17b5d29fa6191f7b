package account

import (
	"context"

	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for bank account data access operations.
type Repository interface {
	// Create inserts a new account record from a DTO.
	Create(ctx context.Context, create *dto.AccountCreate) error

	// Update updates the non-nil fields of an existing account.
	Update(ctx context.Context, id uuid.UUID, update *dto.AccountUpdate) error

	// Get retrieves an account by its ID; (nil, nil) when absent.
	Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)

	// ListByUser lists all accounts of a user, oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error)

	// ListLinkedByUser lists the provider-linked accounts of a user.
	ListLinkedByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error)
}
