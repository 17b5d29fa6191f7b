package repository

import (
	"context"
)

// UnitOfWork defines the contract for transactional work and type-safe
// repository access.
//
// Do runs fn inside one database transaction; returning an error rolls it
// back. GetRepository returns a repository bound to that transaction. The
// requested repository is identified by a typed nil pointer to its
// interface:
//
//	repoAny, err := uow.GetRepository((*user.Repository)(nil))
//	repo := repoAny.(user.Repository)
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
	GetRepository(repoType any) (any, error)
}
