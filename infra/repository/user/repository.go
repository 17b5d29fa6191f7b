package user

import (
	"context"
	"errors"

	repocommon "github.com/dinero-app/dinero/infra/repository/common"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a gorm backed user repository.
func New(db *gorm.DB) user.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.UserCreate,
) error {
	model := &User{
		ID:           create.ID,
		Email:        create.Email,
		PasswordHash: create.Password,
		Name:         create.Name,
		Currency:     create.Currency,
		CreatedAt:    create.CreatedAt,
		UpdatedAt:    create.UpdatedAt,
	}
	return repocommon.WrapError(func() error {
		return r.db.WithContext(ctx).Create(model).Error
	})
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.UserRead, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*dto.UserRead, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *repository) Exists(
	ctx context.Context,
	id uuid.UUID,
) (bool, error) {
	return r.exists(ctx, "id = ?", id)
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *repository) first(ctx context.Context, query string, arg any) (*dto.UserRead, error) {
	var model User
	err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, repocommon.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&model), nil
}

func (r *repository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Where(query, arg).Count(&count).Error
	if err != nil {
		return false, repocommon.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func mapModelToDTO(model *User) *dto.UserRead {
	return &dto.UserRead{
		ID:             model.ID,
		Email:          model.Email,
		HashedPassword: model.PasswordHash,
		Name:           model.Name,
		Currency:       model.Currency,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

var _ user.Repository = (*repository)(nil)
