package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var transactionColumns = []string{
	"id", "user_id", "bank_account_id", "amount", "category_id",
	"merchant_name", "date", "description", "created_at",
}

func newRepo(t *testing.T) (*repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return &repository{db: db}, mock
}

func TestRepository_Create(t *testing.T) {
	require := require.New(t)
	repo, mock := newRepo(t)
	now := time.Now().UTC()
	create := &dto.TransactionCreate{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		BankAccountID: uuid.New(),
		Amount:        decimal.NewFromFloat(50.0),
		Date:          now,
		Description:   "Test",
		CreatedAt:     now,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	require.NoError(repo.Create(context.Background(), create))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnError(errors.New("create error"))
	mock.ExpectRollback()
	require.Error(repo.Create(context.Background(), create))

	require.NoError(mock.ExpectationsWereMet())
}

func TestRepository_Get(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows(transactionColumns).
		AddRow(id, uuid.New(), uuid.New(), "-12.30", nil, "Coffee", now, "Latte", now)
	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE id = \$1 ORDER BY "transactions"\."id" LIMIT \$2`).
		WithArgs(id, 1).
		WillReturnRows(rows)

	tx, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("-12.3")))
	assert.Equal(t, "Coffee", *tx.MerchantName)
	assert.Nil(t, tx.CategoryID)
}

func TestRepository_List(t *testing.T) {
	require := require.New(t)
	repo, mock := newRepo(t)
	userID, accountID := uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE user_id = \$1 AND bank_account_id = \$2 ORDER BY date DESC,created_at DESC`).
		WithArgs(userID, accountID).
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow(uuid.New(), userID, accountID, "50.00", nil, nil, now, "Test", now))

	txs, err := repo.List(context.Background(), dto.TransactionFilter{UserID: userID, BankAccountID: &accountID})
	require.NoError(err)
	require.Len(txs, 1)
	require.Equal(accountID, txs[0].BankAccountID)

	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE user_id = \$1 ORDER BY`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(transactionColumns))
	txs, err = repo.List(context.Background(), dto.TransactionFilter{UserID: userID})
	require.NoError(err)
	require.Empty(txs)

	require.NoError(mock.ExpectationsWereMet())
}
