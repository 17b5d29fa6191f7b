// Package transaction provides business logic for transaction records.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dinero-app/dinero/pkg/domain"
	"github.com/dinero-app/dinero/pkg/domain/account"
	"github.com/dinero-app/dinero/pkg/domain/transaction"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/pkg/mapper"
	"github.com/dinero-app/dinero/pkg/repository"
	accountrepo "github.com/dinero-app/dinero/pkg/repository/account"
	transactionrepo "github.com/dinero-app/dinero/pkg/repository/transaction"
	"github.com/google/uuid"
)

// Service provides business logic for transaction operations.
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

// CreateTransaction records a transaction against a bank account owned by
// userID. A missing account, or one owned by another user, yields
// account.ErrAccountNotFound and nothing is written.
func (s *Service) CreateTransaction(
	ctx context.Context,
	userID uuid.UUID,
	params transaction.Params,
) (tx *dto.TransactionRead, err error) {
	log := s.logger.With("context", "CreateTransaction", "userID", userID, "bankAccountID", params.BankAccountID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := accountRepository(uow)
		if err != nil {
			return err
		}
		acc, err := accounts.Get(ctx, params.BankAccountID)
		if err != nil {
			return err
		}
		if acc == nil || acc.UserID != userID {
			return account.ErrAccountNotFound
		}

		repo, err := transactionRepository(uow)
		if err != nil {
			return err
		}
		created, err := transaction.New(userID, params)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, mapper.TransactionToCreate(created)); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return account.ErrAccountNotFound
			}
			return err
		}
		tx = mapper.TransactionToRead(created)
		return nil
	})
	if err != nil {
		log.Warn("CreateTransaction failed", "error", err)
		return nil, err
	}
	log.Info("CreateTransaction successful", "transactionID", tx.ID)
	return tx, nil
}

// ListTransactions lists the transactions of userID, newest first,
// optionally restricted to one of the user's accounts.
func (s *Service) ListTransactions(
	ctx context.Context,
	userID uuid.UUID,
	bankAccountID *uuid.UUID,
) (txs []*dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if bankAccountID != nil {
			accounts, err := accountRepository(uow)
			if err != nil {
				return err
			}
			acc, err := accounts.Get(ctx, *bankAccountID)
			if err != nil {
				return err
			}
			if acc == nil || acc.UserID != userID {
				return account.ErrAccountNotFound
			}
		}
		repo, err := transactionRepository(uow)
		if err != nil {
			return err
		}
		txs, err = repo.List(ctx, dto.TransactionFilter{
			UserID:        userID,
			BankAccountID: bankAccountID,
		})
		return err
	})
	if err != nil {
		txs = nil
	}
	return
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

func transactionRepository(uow repository.UnitOfWork) (transactionrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*transactionrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(transactionrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected repository type")
	}
	return repo, nil
}
