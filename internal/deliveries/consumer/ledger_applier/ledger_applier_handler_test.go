package ledgerapplier

import (
	"context"
	"testing"
	"time"

	"github.com/Shopify/sarama"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ledgerhub/go-bank-ledger/internal/common"
	mockdlq "github.com/ledgerhub/go-bank-ledger/internal/common/dlq_publisher/mock"
	kafkacommon "github.com/ledgerhub/go-bank-ledger/internal/common/kafka"
	"github.com/ledgerhub/go-bank-ledger/internal/common/retry"
	"github.com/ledgerhub/go-bank-ledger/internal/config"
	mocksarama "github.com/ledgerhub/go-bank-ledger/internal/deliveries/consumer/mock"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
	mockservices "github.com/ledgerhub/go-bank-ledger/internal/services/mock"
)

type ledgerApplierHandlerHelper struct {
	mockCtrl *gomock.Controller
	ls       *mockservices.MockLedgerService
	dlq      *mockdlq.MockPublisher
	ebRetry  retry.Retryer

	payload []byte
}

func newLedgerApplierHandlerHelper(t *testing.T) ledgerApplierHandlerHelper {
	t.Helper()
	t.Parallel()

	mockCtrl := gomock.NewController(t)

	return ledgerApplierHandlerHelper{
		mockCtrl: mockCtrl,
		ls:       mockservices.NewMockLedgerService(mockCtrl),
		dlq:      mockdlq.NewMockPublisher(mockCtrl),
		ebRetry: retry.NewExponentialBackOff(&config.ExponentialBackOffConfig{
			MaxRetries:        1,
			MaxBackoffTime:    10 * time.Millisecond,
			BackoffMultiplier: 1.1,
		}),
		payload: []byte(`{
			"idTransaction": "trx-1",
			"transactionType": "credit",
			"countName": "alice",
			"value": "2500"
		}`),
	}
}

func TestNewLedgerApplierHandler(t *testing.T) {
	th := newLedgerApplierHandlerHelper(t)
	defer th.mockCtrl.Finish()

	want := &LedgerApplierHandler{
		BaseHandler: kafkacommon.BaseHandler{
			DLQ:       th.dlq,
			LogPrefix: logMessage,
		},
		ls:      th.ls,
		ebRetry: th.ebRetry,
	}

	assert.Equal(t, want, NewLedgerApplierHandler("", th.ls, th.dlq, th.ebRetry, nil))
}

func TestLedgerApplierHandler_Setup(t *testing.T) {
	th := newLedgerApplierHandlerHelper(t)
	defer th.mockCtrl.Finish()

	h := LedgerApplierHandler{ls: th.ls}
	assert.NoError(t, h.Setup(nil))
}

func TestLedgerApplierHandler_Cleanup(t *testing.T) {
	th := newLedgerApplierHandlerHelper(t)
	defer th.mockCtrl.Finish()

	h := LedgerApplierHandler{ls: th.ls}
	assert.NoError(t, h.Cleanup(nil))
}

func TestLedgerApplierHandler_parseMessage(t *testing.T) {
	th := newLedgerApplierHandlerHelper(t)
	defer th.mockCtrl.Finish()

	tests := []struct {
		name    string
		message *sarama.ConsumerMessage
		want    *models.TransactionMessage
		wantErr error
	}{
		{
			name:    "happy path",
			message: &sarama.ConsumerMessage{Value: th.payload},
			want: &models.TransactionMessage{
				IDTransaction:   "trx-1",
				TransactionType: "credit",
				CountName:       "alice",
				Value:           decimal.RequireFromString("2500"),
			},
		},
		{
			name:    "empty payload",
			message: &sarama.ConsumerMessage{},
			wantErr: common.ErrEmptyMessagePayload,
		},
		{
			name:    "invalid json",
			message: &sarama.ConsumerMessage{Value: []byte("{__INVALID_JSON_HERE")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := LedgerApplierHandler{ls: th.ls}

			got, err := h.parseMessage(context.Background(), tt.message)
			if tt.want == nil {
				assert.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLedgerApplierHandler_processMessage(t *testing.T) {
	th := newLedgerApplierHandlerHelper(t)
	defer th.mockCtrl.Finish()

	msg := models.TransactionMessage{
		IDTransaction:   "trx-1",
		TransactionType: "credit",
		CountName:       "alice",
		Value:           decimal.RequireFromString("2500"),
	}

	tests := []struct {
		name    string
		doMock  func()
		wantErr error
	}{
		{
			name: "happy path",
			doMock: func() {
				th.ls.EXPECT().Apply(gomock.AssignableToTypeOf(context.Background()), msg).Return(nil)
			},
		},
		{
			name: "transaction already applied",
			doMock: func() {
				th.ls.EXPECT().Apply(gomock.AssignableToTypeOf(context.Background()), msg).Return(common.ErrTransactionAlreadyApplied)
			},
			wantErr: common.ErrTransactionAlreadyApplied,
		},
		{
			name: "err apply",
			doMock: func() {
				th.ls.EXPECT().Apply(gomock.AssignableToTypeOf(context.Background()), msg).Return(assert.AnError)
			},
			wantErr: assert.AnError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.doMock()

			h := LedgerApplierHandler{ls: th.ls}

			err := h.processMessage(context.Background(), &sarama.ConsumerMessage{Value: th.payload}, &msg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLedgerApplierHandler_ConsumeClaim(t *testing.T) {
	th := newLedgerApplierHandlerHelper(t)
	defer th.mockCtrl.Finish()

	type fields struct {
		ls        *mockservices.MockLedgerService
		dlq       *mockdlq.MockPublisher
		ctx       context.Context
		ctxCancel context.CancelFunc
		msg       chan *sarama.ConsumerMessage
	}

	type args struct {
		session *mocksarama.MockConsumerGroupSession
		claim   *mocksarama.MockConsumerGroupClaim
	}
	tests := []struct {
		name    string
		fields  fields
		args    args
		doMock  func(a args, f fields)
		wantErr bool
	}{
		{
			name: "success consume message",
			fields: fields{
				ls:  mockservices.NewMockLedgerService(th.mockCtrl),
				dlq: mockdlq.NewMockPublisher(th.mockCtrl),
				msg: make(chan *sarama.ConsumerMessage, 1),
			},
			args: args{
				session: mocksarama.NewMockConsumerGroupSession(th.mockCtrl),
				claim:   mocksarama.NewMockConsumerGroupClaim(th.mockCtrl),
			},
			doMock: func(a args, f fields) {
				f.msg <- &sarama.ConsumerMessage{Value: th.payload}

				a.claim.EXPECT().Messages().Return(f.msg).AnyTimes()
				a.session.EXPECT().Context().Return(f.ctx).AnyTimes()
				a.session.EXPECT().MarkMessage(gomock.Any(), gomock.Any()).AnyTimes()
				f.ls.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "already applied message is marked without dlq",
			fields: fields{
				ls:  mockservices.NewMockLedgerService(th.mockCtrl),
				dlq: mockdlq.NewMockPublisher(th.mockCtrl),
				msg: make(chan *sarama.ConsumerMessage, 1),
			},
			args: args{
				session: mocksarama.NewMockConsumerGroupSession(th.mockCtrl),
				claim:   mocksarama.NewMockConsumerGroupClaim(th.mockCtrl),
			},
			doMock: func(a args, f fields) {
				f.msg <- &sarama.ConsumerMessage{Value: th.payload}

				a.claim.EXPECT().Messages().Return(f.msg).AnyTimes()
				a.session.EXPECT().Context().Return(f.ctx).AnyTimes()
				a.session.EXPECT().MarkMessage(gomock.Any(), gomock.Any()).AnyTimes()
				f.ls.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(common.ErrTransactionAlreadyApplied).AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "failed consume message goes to dlq",
			fields: fields{
				ls:  mockservices.NewMockLedgerService(th.mockCtrl),
				dlq: mockdlq.NewMockPublisher(th.mockCtrl),
				msg: make(chan *sarama.ConsumerMessage, 1),
			},
			args: args{
				session: mocksarama.NewMockConsumerGroupSession(th.mockCtrl),
				claim:   mocksarama.NewMockConsumerGroupClaim(th.mockCtrl),
			},
			doMock: func(a args, f fields) {
				f.msg <- &sarama.ConsumerMessage{Value: th.payload}

				a.claim.EXPECT().Messages().Return(f.msg).AnyTimes()
				a.session.EXPECT().Context().Return(f.ctx).AnyTimes()
				a.session.EXPECT().MarkMessage(gomock.Any(), gomock.Any()).AnyTimes()
				f.ls.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(assert.AnError).AnyTimes()
				f.dlq.EXPECT().Publish(gomock.Any()).Return(nil).AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "failed dlq publish leaves message unmarked",
			fields: fields{
				ls:  mockservices.NewMockLedgerService(th.mockCtrl),
				dlq: mockdlq.NewMockPublisher(th.mockCtrl),
				msg: make(chan *sarama.ConsumerMessage, 1),
			},
			args: args{
				session: mocksarama.NewMockConsumerGroupSession(th.mockCtrl),
				claim:   mocksarama.NewMockConsumerGroupClaim(th.mockCtrl),
			},
			doMock: func(a args, f fields) {
				f.msg <- &sarama.ConsumerMessage{Value: th.payload}

				// no MarkMessage expectation, the message must stay unmarked
				a.claim.EXPECT().Messages().Return(f.msg).AnyTimes()
				a.session.EXPECT().Context().Return(f.ctx).AnyTimes()
				f.ls.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(assert.AnError).AnyTimes()
				f.dlq.EXPECT().Publish(gomock.Any()).Return(assert.AnError).AnyTimes()
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fields.ctx, tt.fields.ctxCancel = context.WithTimeout(context.Background(), 1*time.Second)
			defer tt.fields.ctxCancel()

			tt.doMock(tt.args, tt.fields)

			h := LedgerApplierHandler{
				BaseHandler: kafkacommon.BaseHandler{
					DLQ:       tt.fields.dlq,
					LogPrefix: logMessage,
				},
				ls:      tt.fields.ls,
				ebRetry: th.ebRetry,
			}

			err := h.ConsumeClaim(tt.args.session, tt.args.claim)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}
