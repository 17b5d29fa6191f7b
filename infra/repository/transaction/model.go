package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a transaction record in the database.
type Transaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	BankAccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid"`
	MerchantName  *string         `gorm:"size:255"`
	Date          time.Time       `gorm:"not null"`
	Description   string          `gorm:"not null"`
	CreatedAt     time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
