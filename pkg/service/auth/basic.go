package auth

import (
	"context"
	"log/slog"

	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/pkg/repository"
	"github.com/google/uuid"
)

// BasicAuthStrategy implements Strategy for the CLI (no JWT, just password check)
type BasicAuthStrategy struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func NewBasicAuthStrategy(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *BasicAuthStrategy {
	return &BasicAuthStrategy{uow: uow, logger: logger}
}

func (s *BasicAuthStrategy) Login(
	ctx context.Context,
	identity, password string,
) (*dto.UserRead, error) {
	u, err := lookupUser(ctx, s.uow, identity, password)
	if err != nil {
		s.logger.Info("BasicAuth login rejected", "error", err)
		return nil, err
	}
	return u, nil
}

func (s *BasicAuthStrategy) GetCurrentUserID(ctx context.Context) (uuid.UUID, error) {
	return uuid.Nil, ErrInvalidToken
}

func (s *BasicAuthStrategy) GenerateToken(ctx context.Context, u *dto.UserRead) (*Token, error) {
	return &Token{TokenType: TokenType}, nil // No token for basic auth
}

func (s *BasicAuthStrategy) VerifyToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	return uuid.Nil, ErrInvalidToken
}
