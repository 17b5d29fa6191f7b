package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dinero-app/dinero/pkg/config"
	"github.com/dinero-app/dinero/pkg/domain/user"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/pkg/repository"
	repouser "github.com/dinero-app/dinero/pkg/repository/user"
	"github.com/dinero-app/dinero/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid token")

// TokenType is the scheme clients use to present access tokens.
const TokenType = "bearer"

type contextKey string

const userContextKey contextKey = "user"

// Token is an issued access token.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type Strategy interface {
	Login(ctx context.Context, identity, password string) (*dto.UserRead, error)
	GetCurrentUserID(ctx context.Context) (uuid.UUID, error)
	GenerateToken(ctx context.Context, u *dto.UserRead) (*Token, error)
	VerifyToken(ctx context.Context, tokenString string) (uuid.UUID, error)
}

type Service struct {
	uow      repository.UnitOfWork
	strategy Strategy
	logger   *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	strategy Strategy,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, strategy: strategy, logger: logger}
}

// NewWithBasic checks passwords only and issues no tokens. Used by the CLI.
func NewWithBasic(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return New(uow, NewBasicAuthStrategy(uow, logger), logger)
}

func NewWithJWT(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) (*Service, error) {
	strategy, err := NewJWTStrategy(uow, cfg, logger)
	if err != nil {
		return nil, err
	}
	return New(uow, strategy, logger), nil
}

func (s *Service) CheckPasswordHash(
	password, hash string,
) bool {
	return utils.CheckPasswordHash(password, hash)
}

// Keyfunc returns the verification key lookup used by the bearer middleware.
// Strategies without tokens reject everything.
func (s *Service) Keyfunc() jwt.Keyfunc {
	if k, ok := s.strategy.(interface{ Keyfunc(*jwt.Token) (any, error) }); ok {
		return k.Keyfunc
	}
	return func(*jwt.Token) (any, error) { return nil, ErrInvalidToken }
}

func (s *Service) GetCurrentUserId(
	token *jwt.Token,
) (userID uuid.UUID, err error) {
	log := s.logger.With("context", "GetCurrentUserId")
	userID, err = s.strategy.GetCurrentUserID(
		context.WithValue(
			context.Background(),
			userContextKey,
			token,
		),
	)
	if err != nil {
		log.Error("GetCurrentUserId failed", "error", err)
		return
	}
	log.Debug("GetCurrentUserId successful", "userID", userID)
	return
}

func (s *Service) Login(
	ctx context.Context,
	identity, password string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "Login")
	u, err = s.strategy.Login(ctx, identity, password)
	if err != nil {
		log.Error("Login failed", "error", err)
		return nil, err
	}
	if u == nil {
		log.Error("Login failed", "error", user.ErrUserUnauthorized)
		return nil, user.ErrUserUnauthorized
	}
	log.Info("Login successful", "userID", u.ID)
	return
}

func (s *Service) GenerateToken(
	ctx context.Context,
	u *dto.UserRead,
) (*Token, error) {
	log := s.logger.With("userID", u.ID)
	token, err := s.strategy.GenerateToken(ctx, u)
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return nil, err
	}
	log.Info("GenerateToken successful", "expiresAt", token.ExpiresAt)
	return token, nil
}

func (s *Service) VerifyToken(
	ctx context.Context,
	tokenString string,
) (uuid.UUID, error) {
	userID, err := s.strategy.VerifyToken(ctx, tokenString)
	if err != nil {
		s.logger.Warn("VerifyToken failed", "error", err)
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

// lookupUser fetches a user by normalized email and verifies password.
// A miss still pays for one bcrypt comparison.
func lookupUser(
	ctx context.Context,
	uow repository.UnitOfWork,
	identity, password string,
) (u *dto.UserRead, err error) {
	err = uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repoAny, err := uow.GetRepository((*repouser.Repository)(nil))
		if err != nil {
			return fmt.Errorf("failed to get user repository: %w", err)
		}
		repo, ok := repoAny.(repouser.Repository)
		if !ok {
			return fmt.Errorf("invalid user repository type")
		}
		u, err = repo.GetByEmail(ctx, user.NormalizeEmail(identity))
		return err
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		_ = utils.CheckPasswordHash(password, dummyHash())
		return nil, user.ErrUserUnauthorized
	}
	if !utils.CheckPasswordHash(password, u.HashedPassword) {
		return nil, user.ErrUserUnauthorized
	}
	return u, nil
}
