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
	"github.com/stretchr/testify/suite"

	"github.com/ledgerhub/go-bank-ledger/internal/common"
	"github.com/ledgerhub/go-bank-ledger/internal/config"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
)

func TestLedgerEntryRepositoryTestSuite(t *testing.T) {
	t.Helper()
	suite.Run(t, new(LedgerEntryTestSuite))
}

type LedgerEntryTestSuite struct {
	suite.Suite
	t       *testing.T
	writeDB *sql.DB
	mock    sqlmock.Sqlmock
	repo    LedgerEntryRepository
}

func (suite *LedgerEntryTestSuite) SetupTest() {
	var err error
	var cfg config.Config

	suite.writeDB, suite.mock, err = sqlmock.New()
	require.NoError(suite.T(), err)

	suite.t = suite.T()

	suite.repo = NewSQLRepository(suite.writeDB, suite.writeDB, cfg).GetLedgerEntryRepository()
}

func (suite *LedgerEntryTestSuite) TearDownTest() {
	defer suite.writeDB.Close()
}

func (suite *LedgerEntryTestSuite) TestRepository_Insert() {
	entry := models.LedgerEntry{
		TransactionID: "trx-1",
		AccountName:   "alice",
		Delta:         decimal.NewFromInt(100),
	}

	testCases := []struct {
		name       string
		setupMocks func()
		wantErr    error
	}{
		{
			name: "test success",
			setupMocks: func() {
				suite.mock.
					ExpectExec(regexp.QuoteMeta(queryInsertLedgerEntry)).
					WithArgs(entry.TransactionID, entry.AccountName, entry.Delta).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "test already applied",
			setupMocks: func() {
				suite.mock.
					ExpectExec(regexp.QuoteMeta(queryInsertLedgerEntry)).
					WithArgs(entry.TransactionID, entry.AccountName, entry.Delta).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: common.ErrTransactionAlreadyApplied,
		},
		{
			name: "test error exec",
			setupMocks: func() {
				suite.mock.
					ExpectExec(regexp.QuoteMeta(queryInsertLedgerEntry)).
					WithArgs(entry.TransactionID, entry.AccountName, entry.Delta).
					WillReturnError(assert.AnError)
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range testCases {
		suite.t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()

			err := suite.repo.Insert(context.TODO(), entry)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			if err = suite.mock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}
