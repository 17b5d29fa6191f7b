package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dinero-app/dinero/pkg/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts gorm errors into domain errors, keeping the
// driver message for logs. Requires gorm.Config.TranslateError so that
// unique and foreign key violations surface as gorm sentinels.
//
//	gorm.ErrDuplicatedKey      -> domain.ErrAlreadyExists
//	gorm.ErrRecordNotFound     -> domain.ErrNotFound
//	gorm.ErrForeignKeyViolated -> domain.ErrNotFound (referenced row vanished)
//	SQLSTATE class 22          -> domain.ErrValidation (value too long, numeric overflow)
func MapGormErrorToDomain(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrAlreadyExists, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	case errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "22"):
		return fmt.Errorf("%w: %s", domain.ErrValidation, pgErr.Message)
	default:
		return err
	}
}

// WrapError runs a gorm operation and maps its error.
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(model).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
