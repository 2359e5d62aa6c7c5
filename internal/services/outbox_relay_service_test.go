package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ledgerhub/go-bank-ledger/internal/models"
	"github.com/ledgerhub/go-bank-ledger/internal/repositories"
	"github.com/ledgerhub/go-bank-ledger/internal/services"
)

func TestOutboxRelayService_RelayPending(t *testing.T) {
	testHelper := serviceTestHelper(t)

	batch := []models.Transaction{
		{ID: "trx-1", AccountName: "alice", Type: models.TransactionTypeCredit, Amount: decimal.NewFromInt(100), Status: models.TransactionStatusPending},
		{ID: "trx-2", AccountName: "bob", Type: models.TransactionTypeDebit, Amount: decimal.NewFromInt(50), Status: models.TransactionStatusPending},
	}

	atomicPassthrough := func(ctx context.Context, steps func(ctx context.Context, r repositories.SQLRepository) error) error {
		return steps(ctx, testHelper.mockSQLRepository)
	}

	tests := []struct {
		name    string
		doMock  func()
		want    services.RelayResult
		wantErr bool
	}{
		{
			name: "happy path",
			doMock: func() {
				testHelper.mockSQLRepository.
					EXPECT().
					Atomic(gomock.Any(), gomock.Any()).
					DoAndReturn(atomicPassthrough)
				testHelper.mockTrxRepository.
					EXPECT().
					FetchPendingBatch(gomock.Any(), 100).
					Return(batch, nil)
				testHelper.mockTransactionPub.
					EXPECT().
					Publish(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)
				testHelper.mockTrxRepository.
					EXPECT().
					MarkPublished(gomock.Any(), "trx-1").
					Return(nil)
				testHelper.mockTrxRepository.
					EXPECT().
					MarkPublished(gomock.Any(), "trx-2").
					Return(nil)
			},
			want: services.RelayResult{Published: 2},
		},
		{
			name: "empty batch",
			doMock: func() {
				testHelper.mockSQLRepository.
					EXPECT().
					Atomic(gomock.Any(), gomock.Any()).
					DoAndReturn(atomicPassthrough)
				testHelper.mockTrxRepository.
					EXPECT().
					FetchPendingBatch(gomock.Any(), 100).
					Return(nil, nil)
			},
			want: services.RelayResult{},
		},
		{
			name: "error fetching batch",
			doMock: func() {
				testHelper.mockSQLRepository.
					EXPECT().
					Atomic(gomock.Any(), gomock.Any()).
					DoAndReturn(atomicPassthrough)
				testHelper.mockTrxRepository.
					EXPECT().
					FetchPendingBatch(gomock.Any(), 100).
					Return(nil, assert.AnError)
			},
			wantErr: true,
		},
		{
			name: "publish failure keeps row pending",
			doMock: func() {
				testHelper.mockSQLRepository.
					EXPECT().
					Atomic(gomock.Any(), gomock.Any()).
					DoAndReturn(atomicPassthrough)
				testHelper.mockTrxRepository.
					EXPECT().
					FetchPendingBatch(gomock.Any(), 100).
					Return(batch, nil)
				testHelper.mockTransactionPub.
					EXPECT().
					Publish(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, message any, _ ...any) error {
						msg := message.(models.TransactionMessage)
						if msg.IDTransaction == "trx-2" {
							return assert.AnError
						}
						return nil
					}).
					Times(2)
				testHelper.mockTrxRepository.
					EXPECT().
					MarkPublished(gomock.Any(), "trx-1").
					Return(nil)
			},
			want:    services.RelayResult{Published: 1, Failed: 1},
			wantErr: true,
		},
		{
			name: "mark failure counts as failed",
			doMock: func() {
				testHelper.mockSQLRepository.
					EXPECT().
					Atomic(gomock.Any(), gomock.Any()).
					DoAndReturn(atomicPassthrough)
				testHelper.mockTrxRepository.
					EXPECT().
					FetchPendingBatch(gomock.Any(), 100).
					Return(batch, nil)
				testHelper.mockTransactionPub.
					EXPECT().
					Publish(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)
				testHelper.mockTrxRepository.
					EXPECT().
					MarkPublished(gomock.Any(), "trx-1").
					Return(nil)
				testHelper.mockTrxRepository.
					EXPECT().
					MarkPublished(gomock.Any(), "trx-2").
					Return(assert.AnError)
			},
			want:    services.RelayResult{Published: 1, Failed: 1},
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.doMock()

			res, err := testHelper.outboxRelayService.RelayPending(context.TODO())
			assert.Equal(t, tc.wantErr, err != nil, err)
			assert.Equal(t, tc.want, res)
		})
	}
}
