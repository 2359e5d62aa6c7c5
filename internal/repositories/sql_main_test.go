package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerhub/go-bank-ledger/internal/config"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
)

func newAtomicTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewSQLRepository(db, db, config.Config{}), mock, db
}

func TestRepository_Atomic_Commit(t *testing.T) {
	repo, mock, db := newAtomicTestRepo(t)
	defer db.Close()

	entry := models.LedgerEntry{
		TransactionID: "trx-1",
		AccountName:   "alice",
		Delta:         decimal.NewFromInt(100),
	}

	mock.ExpectBegin()
	mock.
		ExpectExec(regexp.QuoteMeta(queryInsertLedgerEntry)).
		WithArgs(entry.TransactionID, entry.AccountName, entry.Delta).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Atomic(context.TODO(), func(ctx context.Context, r SQLRepository) error {
		return r.GetLedgerEntryRepository().Insert(ctx, entry)
	})
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Atomic_RollbackOnError(t *testing.T) {
	repo, mock, db := newAtomicTestRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.
		ExpectExec(regexp.QuoteMeta(queryInsertLedgerEntry)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Atomic(context.TODO(), func(ctx context.Context, r SQLRepository) error {
		return r.GetLedgerEntryRepository().Insert(ctx, models.LedgerEntry{
			TransactionID: "trx-1",
			AccountName:   "alice",
			Delta:         decimal.NewFromInt(100),
		})
	})
	assert.ErrorIs(t, err, assert.AnError)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Atomic_RollbackOnPanic(t *testing.T) {
	repo, mock, db := newAtomicTestRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.Atomic(context.TODO(), func(ctx context.Context, r SQLRepository) error {
		panic("boom")
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "panic happened")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Atomic_BeginError(t *testing.T) {
	repo, mock, db := newAtomicTestRepo(t)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(assert.AnError)

	err := repo.Atomic(context.TODO(), func(ctx context.Context, r SQLRepository) error {
		t.Fatal("steps must not run when begin fails")
		return nil
	})
	assert.ErrorIs(t, err, assert.AnError)

	assert.NoError(t, mock.ExpectationsWereMet())
}
