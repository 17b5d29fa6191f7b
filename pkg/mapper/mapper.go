package mapper

import (
	"github.com/dinero-app/dinero/pkg/domain/account"
	"github.com/dinero-app/dinero/pkg/domain/transaction"
	"github.com/dinero-app/dinero/pkg/domain/user"
	"github.com/dinero-app/dinero/pkg/dto"
)

// UserToCreate maps a domain User to its persistence DTO.
func UserToCreate(u *user.User) *dto.UserCreate {
	return &dto.UserCreate{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Currency:  u.Currency,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserToRead maps a domain User to a dto.UserRead.
func UserToRead(u *user.User) *dto.UserRead {
	return &dto.UserRead{
		ID:             u.ID,
		Email:          u.Email,
		HashedPassword: u.Password,
		Name:           u.Name,
		Currency:       u.Currency,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// AccountToCreate maps a domain BankAccount to its persistence DTO.
func AccountToCreate(a *account.BankAccount) *dto.AccountCreate {
	return &dto.AccountCreate{
		ID:                a.ID,
		UserID:            a.UserID,
		InstitutionName:   a.InstitutionName,
		AccountType:       a.AccountType,
		AccountNumber:     a.AccountNumber,
		Balance:           a.Balance,
		IsManual:          a.IsManual,
		AccessToken:       a.AccessToken,
		ItemID:            a.ItemID,
		ProviderAccountID: a.ProviderAccountID,
		CreatedAt:         a.CreatedAt,
		LastUpdatedAt:     a.LastUpdatedAt,
		LastSyncedAt:      a.LastSyncedAt,
	}
}

// AccountToRead maps a domain BankAccount to a dto.AccountRead.
func AccountToRead(a *account.BankAccount) *dto.AccountRead {
	return &dto.AccountRead{
		ID:                a.ID,
		UserID:            a.UserID,
		InstitutionName:   a.InstitutionName,
		AccountType:       a.AccountType,
		AccountNumber:     a.AccountNumber,
		Balance:           a.Balance,
		IsManual:          a.IsManual,
		AccessToken:       a.AccessToken,
		ItemID:            a.ItemID,
		ProviderAccountID: a.ProviderAccountID,
		CreatedAt:         a.CreatedAt,
		LastUpdatedAt:     a.LastUpdatedAt,
		LastSyncedAt:      a.LastSyncedAt,
	}
}

// AccountReadToDomain rebuilds a domain BankAccount from a dto.AccountRead.
func AccountReadToDomain(r *dto.AccountRead) *account.BankAccount {
	return &account.BankAccount{
		ID:                r.ID,
		UserID:            r.UserID,
		InstitutionName:   r.InstitutionName,
		AccountType:       r.AccountType,
		AccountNumber:     r.AccountNumber,
		Balance:           r.Balance,
		IsManual:          r.IsManual,
		AccessToken:       r.AccessToken,
		ItemID:            r.ItemID,
		ProviderAccountID: r.ProviderAccountID,
		CreatedAt:         r.CreatedAt,
		LastUpdatedAt:     r.LastUpdatedAt,
		LastSyncedAt:      r.LastSyncedAt,
	}
}

// TransactionToCreate maps a domain Transaction to its persistence DTO.
func TransactionToCreate(t *transaction.Transaction) *dto.TransactionCreate {
	return &dto.TransactionCreate{
		ID:            t.ID,
		UserID:        t.UserID,
		BankAccountID: t.BankAccountID,
		Amount:        t.Amount,
		CategoryID:    t.CategoryID,
		MerchantName:  t.MerchantName,
		Date:          t.Date,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}

// TransactionToRead maps a domain Transaction to a dto.TransactionRead.
func TransactionToRead(t *transaction.Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:            t.ID,
		UserID:        t.UserID,
		BankAccountID: t.BankAccountID,
		Amount:        t.Amount,
		CategoryID:    t.CategoryID,
		MerchantName:  t.MerchantName,
		Date:          t.Date,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}
