package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccount represents a bank account record in the database.
type BankAccount struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	InstitutionName   string          `gorm:"size:255;not null"`
	AccountType       string          `gorm:"size:64;not null"`
	AccountNumber     *string         `gorm:"size:64"`
	Balance           decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	IsManual          bool            `gorm:"not null"`
	AccessToken       string          `gorm:"column:provider_access_token;size:255"`
	ItemID            string          `gorm:"column:provider_item_id;size:255"`
	ProviderAccountID string          `gorm:"column:provider_account_id;size:255"`
	CreatedAt         time.Time
	LastUpdatedAt     time.Time
	LastSyncedAt      *time.Time
}

// TableName specifies the table name for the BankAccount model.
func (BankAccount) TableName() string {
	return "bank_accounts"
}
