package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerhub/go-bank-ledger/internal/common"
	"github.com/ledgerhub/go-bank-ledger/internal/config"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
)

func TestAccountRepositoryTestSuite(t *testing.T) {
	t.Helper()
	suite.Run(t, new(AccountTestSuite))
}

type AccountTestSuite struct {
	suite.Suite
	t       *testing.T
	writeDB *sql.DB
	readDB  *sql.DB
	mock    sqlmock.Sqlmock
	repo    AccountRepository
}

func (suite *AccountTestSuite) SetupTest() {
	var err error
	var cfg config.Config

	suite.writeDB, suite.mock, err = sqlmock.New()
	require.NoError(suite.T(), err)

	suite.readDB = suite.writeDB
	suite.t = suite.T()

	suite.repo = NewSQLRepository(suite.writeDB, suite.readDB, cfg).GetAccountRepository()
}

func (suite *AccountTestSuite) TearDownTest() {
	defer suite.writeDB.Close()
}

func (suite *AccountTestSuite) TestRepository_GetByName() {
	ct := time.Now()

	testCases := []struct {
		name       string
		setupMocks func()
		wantErr    error
		expected   models.Account
	}{
		{
			name: "test success",
			setupMocks: func() {
				suite.mock.
					ExpectQuery(regexp.QuoteMeta(queryGetAccountByName)).
					WithArgs("alice").
					WillReturnRows(sqlmock.
						NewRows([]string{"id", "accountName", "balance", "createdAt", "updatedAt"}).
						AddRow("acc-1", "alice", "100", ct, ct))
			},
			expected: models.Account{
				ID:          "acc-1",
				AccountName: "alice",
				Balance:     decimal.NewFromInt(100),
				CreatedAt:   ct,
				UpdatedAt:   ct,
			},
		},
		{
			name: "test account not exists",
			setupMocks: func() {
				suite.mock.
					ExpectQuery(regexp.QuoteMeta(queryGetAccountByName)).
					WithArgs("alice").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: common.ErrAccountNotExists,
		},
		{
			name: "test error query",
			setupMocks: func() {
				suite.mock.
					ExpectQuery(regexp.QuoteMeta(queryGetAccountByName)).
					WithArgs("alice").
					WillReturnError(assert.AnError)
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range testCases {
		suite.t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()

			got, err := suite.repo.GetByName(context.TODO(), "alice")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected.ID, got.ID)
				assert.Equal(t, tt.expected.AccountName, got.AccountName)
				assert.True(t, tt.expected.Balance.Equal(got.Balance))
			}

			if err = suite.mock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func (suite *AccountTestSuite) TestRepository_ApplyDelta() {
	delta := decimal.NewFromInt(100)

	testCases := []struct {
		name       string
		setupMocks func()
		wantErr    error
	}{
		{
			name: "test success",
			setupMocks: func() {
				suite.mock.
					ExpectExec(regexp.QuoteMeta(queryUpsertAccountBalance)).
					WithArgs("acc-1", "alice", delta).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "test error exec",
			setupMocks: func() {
				suite.mock.
					ExpectExec(regexp.QuoteMeta(queryUpsertAccountBalance)).
					WithArgs("acc-1", "alice", delta).
					WillReturnError(assert.AnError)
			},
			wantErr: assert.AnError,
		},
		{
			name: "test no rows affected",
			setupMocks: func() {
				suite.mock.
					ExpectExec(regexp.QuoteMeta(queryUpsertAccountBalance)).
					WithArgs("acc-1", "alice", delta).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: common.ErrNoRowsAffected,
		},
	}

	for _, tt := range testCases {
		suite.t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()

			err := suite.repo.ApplyDelta(context.TODO(), "acc-1", "alice", delta)
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
