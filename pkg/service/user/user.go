// Package user provides business logic for user registration and lookup.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dinero-app/dinero/pkg/domain"
	"github.com/dinero-app/dinero/pkg/domain/user"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/pkg/mapper"
	"github.com/dinero-app/dinero/pkg/repository"
	userrepo "github.com/dinero-app/dinero/pkg/repository/user"
	"github.com/google/uuid"
)

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		logger: logger,
	}
}

// Register creates a new user in a transaction. The email is normalized
// before the uniqueness check; a taken email yields
// user.ErrEmailAlreadyRegistered.
func (s *Service) Register(
	ctx context.Context,
	email, password, name, currency string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "Register")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := userRepository(uow)
		if err != nil {
			return err
		}
		taken, err := repo.ExistsByEmail(ctx, user.NormalizeEmail(email))
		if err != nil {
			return err
		}
		if taken {
			return user.ErrEmailAlreadyRegistered
		}
		created, err := user.New(email, password, name, currency)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, mapper.UserToCreate(created)); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return user.ErrEmailAlreadyRegistered
			}
			return err
		}
		u = mapper.UserToRead(created)
		return nil
	})
	if err != nil {
		log.Warn("Register failed", "error", err)
		return nil, err
	}
	log.Info("User registered", "userID", u.ID)
	return u, nil
}

// GetUser retrieves a user by ID in a transaction.
func (s *Service) GetUser(
	ctx context.Context,
	userID uuid.UUID,
) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := userRepository(uow)
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return user.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		u = nil
	}
	return
}

func userRepository(uow repository.UnitOfWork) (userrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*userrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(userrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected repository type")
	}
	return repo, nil
}
