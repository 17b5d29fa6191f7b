package repository

import (
	"context"
	"fmt"
	"reflect"

	accountinfra "github.com/dinero-app/dinero/infra/repository/account"
	transactioninfra "github.com/dinero-app/dinero/infra/repository/transaction"
	userinfra "github.com/dinero-app/dinero/infra/repository/user"
	"github.com/dinero-app/dinero/pkg/repository"
	accountrepo "github.com/dinero-app/dinero/pkg/repository/account"
	transactionrepo "github.com/dinero-app/dinero/pkg/repository/transaction"
	userrepo "github.com/dinero-app/dinero/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do share the transaction.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*userrepo.Repository)(nil)):        func(db *gorm.DB) any { return userinfra.New(db) },
			reflect.TypeOf((*accountrepo.Repository)(nil)):     func(db *gorm.DB) any { return accountinfra.New(db) },
			reflect.TypeOf((*transactionrepo.Repository)(nil)): func(db *gorm.DB) any { return transactioninfra.New(db) },
		},
	}
}

// Do runs fn in a transaction. The transaction commits when fn returns nil
// and rolls back otherwise.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry})
	})
}

// GetRepository returns the repository registered for repoType, a typed nil
// pointer to a repository interface. Outside Do the repository runs on the
// plain connection pool.
func (u *UoW) GetRepository(repoType any) (any, error) {
	constructor, ok := u.repoRegistry[reflect.TypeOf(repoType)]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %T", repoType)
	}
	session := u.tx
	if session == nil {
		session = u.db
	}
	return constructor(session), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
