// Package account provides business logic for bank account records.
//
// Manual accounts are created through the API for an existing user. Linked
// accounts are created by the link service from provider data and later
// refreshed with synced balances. Every operation runs in its own unit of
// work.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dinero-app/dinero/pkg/domain"
	"github.com/dinero-app/dinero/pkg/domain/account"
	"github.com/dinero-app/dinero/pkg/domain/user"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/pkg/mapper"
	"github.com/dinero-app/dinero/pkg/repository"
	accountrepo "github.com/dinero-app/dinero/pkg/repository/account"
	userrepo "github.com/dinero-app/dinero/pkg/repository/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides business logic for bank account operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateAccount creates a manual account for an existing user. Only
// UserID, InstitutionName, AccountType, Balance and AccountNumber of create
// are used; identifiers and timestamps are assigned here.
//
// Returns user.ErrUserNotFound when the owner does not exist; nothing is
// written in that case.
func (s *Service) CreateAccount(
	ctx context.Context,
	create dto.AccountCreate,
) (a *dto.AccountRead, err error) {
	log := s.logger.With("context", "CreateAccount", "userID", create.UserID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := userRepository(uow)
		if err != nil {
			return err
		}
		exists, err := users.Exists(ctx, create.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return user.ErrUserNotFound
		}

		repo, err := accountRepository(uow)
		if err != nil {
			return err
		}
		acc, err := account.New(
			create.UserID,
			create.InstitutionName,
			create.AccountType,
			create.Balance,
			create.AccountNumber,
		)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, mapper.AccountToCreate(acc)); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return user.ErrUserNotFound
			}
			return err
		}
		a = mapper.AccountToRead(acc)
		return nil
	})
	if err != nil {
		log.Warn("CreateAccount failed", "error", err)
		return nil, err
	}
	log.Info("CreateAccount successful", "accountID", a.ID)
	return a, nil
}

// GetAccount returns an account owned by userID. Accounts of other users are
// reported as account.ErrAccountNotFound.
func (s *Service) GetAccount(
	ctx context.Context,
	userID, accountID uuid.UUID,
) (a *dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := accountRepository(uow)
		if err != nil {
			return err
		}
		a, err = ownedAccount(ctx, repo, userID, accountID)
		return err
	})
	if err != nil {
		a = nil
	}
	return
}

// ListAccounts lists the accounts of userID, oldest first.
func (s *Service) ListAccounts(
	ctx context.Context,
	userID uuid.UUID,
) (accounts []*dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := accountRepository(uow)
		if err != nil {
			return err
		}
		accounts, err = repo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		accounts = nil
	}
	return
}

// ListLinkedAccounts lists the provider-linked accounts of userID.
func (s *Service) ListLinkedAccounts(
	ctx context.Context,
	userID uuid.UUID,
) (accounts []*dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := accountRepository(uow)
		if err != nil {
			return err
		}
		accounts, err = repo.ListLinkedByUser(ctx, userID)
		return err
	})
	if err != nil {
		accounts = nil
	}
	return
}

// LinkAccounts stores one linked account per entry of links, all or none.
func (s *Service) LinkAccounts(
	ctx context.Context,
	userID uuid.UUID,
	links []account.LinkParams,
) (accounts []*dto.AccountRead, err error) {
	log := s.logger.With("context", "LinkAccounts", "userID", userID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := accountRepository(uow)
		if err != nil {
			return err
		}
		accounts = make([]*dto.AccountRead, 0, len(links))
		for _, link := range links {
			acc, err := account.NewLinked(userID, link)
			if err != nil {
				return err
			}
			if err := repo.Create(ctx, mapper.AccountToCreate(acc)); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return user.ErrUserNotFound
				}
				return fmt.Errorf("failed to store linked account: %w", err)
			}
			accounts = append(accounts, mapper.AccountToRead(acc))
		}
		return nil
	})
	if err != nil {
		log.Error("LinkAccounts failed", "error", err)
		return nil, err
	}
	log.Info("LinkAccounts successful", "count", len(accounts))
	return accounts, nil
}

// UpdateSyncedBalance records a provider balance observed at syncedAt.
func (s *Service) UpdateSyncedBalance(
	ctx context.Context,
	accountID uuid.UUID,
	balance decimal.Decimal,
	syncedAt time.Time,
) (a *dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := accountRepository(uow)
		if err != nil {
			return err
		}
		current, err := repo.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if current == nil {
			return account.ErrAccountNotFound
		}
		acc := mapper.AccountReadToDomain(current)
		if err := acc.ApplySync(balance, syncedAt); err != nil {
			return err
		}
		if err := repo.Update(ctx, accountID, &dto.AccountUpdate{
			Balance:       &acc.Balance,
			LastUpdatedAt: &acc.LastUpdatedAt,
			LastSyncedAt:  acc.LastSyncedAt,
		}); err != nil {
			return err
		}
		a = mapper.AccountToRead(acc)
		return nil
	})
	if err != nil {
		a = nil
	}
	return
}

// ownedAccount loads accountID and checks it belongs to userID.
func ownedAccount(
	ctx context.Context,
	repo accountrepo.Repository,
	userID, accountID uuid.UUID,
) (*dto.AccountRead, error) {
	a, err := repo.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if a == nil || a.UserID != userID {
		return nil, account.ErrAccountNotFound
	}
	return a, nil
}

func accountRepository(uow repository.UnitOfWork) (accountrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*accountrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(accountrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected repository type")
	}
	return repo, nil
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
