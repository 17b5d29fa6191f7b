package transaction

import (
	"context"

	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for transaction data access operations.
type Repository interface {
	// Create inserts a new transaction record from a DTO.
	Create(ctx context.Context, create *dto.TransactionCreate) error

	// Get retrieves a transaction by its ID; (nil, nil) when absent.
	Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error)

	// List returns the transactions matching filter, newest first.
	List(ctx context.Context, filter dto.TransactionFilter) ([]*dto.TransactionRead, error)
}
