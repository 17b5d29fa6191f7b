package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dinero-app/dinero/pkg/repository"
	accountrepo "github.com/dinero-app/dinero/pkg/repository/account"
	transactionrepo "github.com/dinero-app/dinero/pkg/repository/transaction"
	userrepo "github.com/dinero-app/dinero/pkg/repository/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestUoW_DoAndGetRepository(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		repoAny, err := txUow.GetRepository((*userrepo.Repository)(nil))
		require.NoError(err)
		_, ok := repoAny.(userrepo.Repository)
		assert.True(ok)

		repoAny, err = txUow.GetRepository((*accountrepo.Repository)(nil))
		require.NoError(err)
		_, ok = repoAny.(accountrepo.Repository)
		assert.True(ok)

		repoAny, err = txUow.GetRepository((*transactionrepo.Repository)(nil))
		require.NoError(err)
		_, ok = repoAny.(transactionrepo.Repository)
		assert.True(ok)
		return nil
	})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_UnsupportedRepository(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	type other interface{ Nothing() }
	_, err := uow.GetRepository((*other)(nil))
	assert.Error(t, err)

	repoAny, err := uow.GetRepository((*userrepo.Repository)(nil))
	require.NoError(t, err)
	assert.NotNil(t, repoAny)
}
