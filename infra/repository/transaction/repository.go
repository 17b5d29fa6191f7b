package transaction

import (
	"context"
	"errors"

	repocommon "github.com/dinero-app/dinero/infra/repository/common"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/pkg/repository/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a gorm backed transaction repository.
func New(db *gorm.DB) transaction.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.TransactionCreate,
) error {
	model := &Transaction{
		ID:            create.ID,
		UserID:        create.UserID,
		BankAccountID: create.BankAccountID,
		Amount:        create.Amount,
		CategoryID:    create.CategoryID,
		MerchantName:  create.MerchantName,
		Date:          create.Date,
		Description:   create.Description,
		CreatedAt:     create.CreatedAt,
	}
	return repocommon.WrapError(func() error {
		return r.db.WithContext(ctx).Create(model).Error
	})
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.TransactionRead, error) {
	var model Transaction
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, repocommon.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&model), nil
}

func (r *repository) List(
	ctx context.Context,
	filter dto.TransactionFilter,
) ([]*dto.TransactionRead, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)
	if filter.BankAccountID != nil {
		query = query.Where("bank_account_id = ?", *filter.BankAccountID)
	}
	var models []Transaction
	if err := query.Order("date DESC").Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, repocommon.MapGormErrorToDomain(err)
	}
	result := make([]*dto.TransactionRead, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDTO(&models[i]))
	}
	return result, nil
}

func mapModelToDTO(model *Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:            model.ID,
		UserID:        model.UserID,
		BankAccountID: model.BankAccountID,
		Amount:        model.Amount,
		CategoryID:    model.CategoryID,
		MerchantName:  model.MerchantName,
		Date:          model.Date,
		Description:   model.Description,
		CreatedAt:     model.CreatedAt,
	}
}

var _ transaction.Repository = (*repository)(nil)
