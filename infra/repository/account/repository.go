package account

import (
	"context"
	"errors"

	repocommon "github.com/dinero-app/dinero/infra/repository/common"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/pkg/repository/account"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a gorm backed bank account repository.
func New(db *gorm.DB) account.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.AccountCreate,
) error {
	model := &BankAccount{
		ID:                create.ID,
		UserID:            create.UserID,
		InstitutionName:   create.InstitutionName,
		AccountType:       create.AccountType,
		AccountNumber:     create.AccountNumber,
		Balance:           create.Balance,
		IsManual:          create.IsManual,
		AccessToken:       create.AccessToken,
		ItemID:            create.ItemID,
		ProviderAccountID: create.ProviderAccountID,
		CreatedAt:         create.CreatedAt,
		LastUpdatedAt:     create.LastUpdatedAt,
		LastSyncedAt:      create.LastSyncedAt,
	}
	return repocommon.WrapError(func() error {
		return r.db.WithContext(ctx).Create(model).Error
	})
}

func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	update *dto.AccountUpdate,
) error {
	updates := make(map[string]any)
	if update.Balance != nil {
		updates["balance"] = *update.Balance
	}
	if update.LastUpdatedAt != nil {
		updates["last_updated_at"] = *update.LastUpdatedAt
	}
	if update.LastSyncedAt != nil {
		updates["last_synced_at"] = *update.LastSyncedAt
	}
	if len(updates) == 0 {
		return nil
	}
	return repocommon.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&BankAccount{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.AccountRead, error) {
	var model BankAccount
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, repocommon.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&model), nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.AccountRead, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *repository) ListLinkedByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.AccountRead, error) {
	return r.list(r.db.WithContext(ctx).
		Where("user_id = ? AND is_manual = ?", userID, false))
}

func (r *repository) list(query *gorm.DB) ([]*dto.AccountRead, error) {
	var models []BankAccount
	if err := query.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, repocommon.MapGormErrorToDomain(err)
	}
	result := make([]*dto.AccountRead, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDTO(&models[i]))
	}
	return result, nil
}

func mapModelToDTO(model *BankAccount) *dto.AccountRead {
	return &dto.AccountRead{
		ID:                model.ID,
		UserID:            model.UserID,
		InstitutionName:   model.InstitutionName,
		AccountType:       model.AccountType,
		AccountNumber:     model.AccountNumber,
		Balance:           model.Balance,
		IsManual:          model.IsManual,
		AccessToken:       model.AccessToken,
		ItemID:            model.ItemID,
		ProviderAccountID: model.ProviderAccountID,
		CreatedAt:         model.CreatedAt,
		LastUpdatedAt:     model.LastUpdatedAt,
		LastSyncedAt:      model.LastSyncedAt,
	}
}

var _ account.Repository = (*repository)(nil)
