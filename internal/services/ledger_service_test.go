package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ledgerhub/go-bank-ledger/internal/common"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
	"github.com/ledgerhub/go-bank-ledger/internal/repositories"
)

func TestLedgerService_Apply(t *testing.T) {
	testHelper := serviceTestHelper(t)

	creditMsg := models.TransactionMessage{
		IDTransaction:   "trx-1",
		TransactionType: "credit",
		CountName:       "alice",
		Value:           decimal.NewFromInt(100),
	}
	debitMsg := models.TransactionMessage{
		IDTransaction:   "trx-2",
		TransactionType: "debit",
		CountName:       "alice",
		Value:           decimal.NewFromInt(40),
	}

	atomicPassthrough := func(ctx context.Context, steps func(ctx context.Context, r repositories.SQLRepository) error) error {
		return steps(ctx, testHelper.mockSQLRepository)
	}

	tests := []struct {
		name    string
		msg     models.TransactionMessage
		doMock  func()
		wantErr error
	}{
		{
			name: "happy path credit",
			msg:  creditMsg,
			doMock: func() {
				testHelper.mockSQLRepository.
					EXPECT().
					Atomic(gomock.Any(), gomock.Any()).
					DoAndReturn(atomicPassthrough)
				testHelper.mockLedgerEntryRepository.
					EXPECT().
					Insert(gomock.Any(), models.LedgerEntry{
						TransactionID: "trx-1",
						AccountName:   "alice",
						Delta:         decimal.NewFromInt(100),
					}).
					Return(nil)
				testHelper.mockIDGenerator.
					EXPECT().
					Generate("acc").
					Return("acc-1")
				testHelper.mockAccRepository.
					EXPECT().
					ApplyDelta(gomock.Any(), "acc-1", "alice", decimal.NewFromInt(100)).
					Return(nil)
				testHelper.mockAccountCache.
					EXPECT().
					Del(gomock.Any(), models.AccountCacheKey("alice")).
					Return(nil)
			},
		},
		{
			name: "happy path debit applies negative delta",
			msg:  debitMsg,
			doMock: func() {
				testHelper.mockSQLRepository.
					EXPECT().
					Atomic(gomock.Any(), gomock.Any()).
					DoAndReturn(atomicPassthrough)
				testHelper.mockLedgerEntryRepository.
					EXPECT().
					Insert(gomock.Any(), models.LedgerEntry{
						TransactionID: "trx-2",
						AccountName:   "alice",
						Delta:         decimal.NewFromInt(-40),
					}).
					Return(nil)
				testHelper.mockIDGenerator.
					EXPECT().
					Generate("acc").
					Return("acc-1")
				testHelper.mockAccRepository.
					EXPECT().
					ApplyDelta(gomock.Any(), "acc-1", "alice", decimal.NewFromInt(-40)).
					Return(nil)
				testHelper.mockAccountCache.
					EXPECT().
					Del(gomock.Any(), models.AccountCacheKey("alice")).
					Return(nil)
			},
		},
		{
			name: "invalid message",
			msg: models.TransactionMessage{
				TransactionType: "credit",
				CountName:       "alice",
				Value:           decimal.NewFromInt(100),
			},
			wantErr: common.ErrValidation,
		},
		{
			name: "transaction already applied",
			msg:  creditMsg,
			doMock: func() {
				testHelper.mockSQLRepository.
					EXPECT().
					Atomic(gomock.Any(), gomock.Any()).
					DoAndReturn(atomicPassthrough)
				testHelper.mockLedgerEntryRepository.
					EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(common.ErrTransactionAlreadyApplied)
			},
			wantErr: common.ErrTransactionAlreadyApplied,
		},
		{
			name: "error applying delta rolls up",
			msg:  creditMsg,
			doMock: func() {
				testHelper.mockSQLRepository.
					EXPECT().
					Atomic(gomock.Any(), gomock.Any()).
					DoAndReturn(atomicPassthrough)
				testHelper.mockLedgerEntryRepository.
					EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
				testHelper.mockIDGenerator.
					EXPECT().
					Generate("acc").
					Return("acc-1")
				testHelper.mockAccRepository.
					EXPECT().
					ApplyDelta(gomock.Any(), "acc-1", "alice", decimal.NewFromInt(100)).
					Return(assert.AnError)
			},
			wantErr: assert.AnError,
		},
		{
			name: "cache invalidation failure is swallowed",
			msg:  creditMsg,
			doMock: func() {
				testHelper.mockSQLRepository.
					EXPECT().
					Atomic(gomock.Any(), gomock.Any()).
					DoAndReturn(atomicPassthrough)
				testHelper.mockLedgerEntryRepository.
					EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
				testHelper.mockIDGenerator.
					EXPECT().
					Generate("acc").
					Return("acc-1")
				testHelper.mockAccRepository.
					EXPECT().
					ApplyDelta(gomock.Any(), "acc-1", "alice", decimal.NewFromInt(100)).
					Return(nil)
				testHelper.mockAccountCache.
					EXPECT().
					Del(gomock.Any(), models.AccountCacheKey("alice")).
					Return(assert.AnError)
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.doMock != nil {
				tc.doMock()
			}

			err := testHelper.ledgerService.Apply(context.TODO(), tc.msg)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}
