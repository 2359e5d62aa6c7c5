package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerhub/go-bank-ledger/internal/models"
)

func TestValidateStruct(t *testing.T) {
	type args struct {
		toValidate interface{}
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			name: "success CreateTransactionRequest",
			args: args{
				toValidate: models.CreateTransactionRequest{
					AccountName: "alice",
					Type:        "credit",
					Amount:      decimal.NewFromInt(100),
				},
			},
			wantErr: false,
		},
		{
			name: "failed CreateTransactionRequest missing account name",
			args: args{
				toValidate: models.CreateTransactionRequest{
					Type:   "credit",
					Amount: decimal.NewFromInt(100),
				},
			},
			wantErr: true,
		},
		{
			name: "failed CreateTransactionRequest account name with surrounding spaces",
			args: args{
				toValidate: models.CreateTransactionRequest{
					AccountName: " alice ",
					Type:        "debit",
					Amount:      decimal.NewFromInt(100),
				},
			},
			wantErr: true,
		},
		{
			name: "failed CreateTransactionRequest unknown type",
			args: args{
				toValidate: models.CreateTransactionRequest{
					AccountName: "alice",
					Type:        "transfer",
					Amount:      decimal.NewFromInt(100),
				},
			},
			wantErr: true,
		},
		{
			name: "failed CreateTransactionRequest zero amount",
			args: args{
				toValidate: models.CreateTransactionRequest{
					AccountName: "alice",
					Type:        "credit",
					Amount:      decimal.Zero,
				},
			},
			wantErr: true,
		},
		{
			name: "failed CreateTransactionRequest negative amount",
			args: args{
				toValidate: models.CreateTransactionRequest{
					AccountName: "alice",
					Type:        "credit",
					Amount:      decimal.NewFromInt(-5),
				},
			},
			wantErr: true,
		},
		{
			name: "success TransactionMessage",
			args: args{
				toValidate: models.TransactionMessage{
					IDTransaction:   "trx-1",
					TransactionType: "debit",
					CountName:       "bob",
					Value:           decimal.NewFromInt(50),
				},
			},
			wantErr: false,
		},
		{
			name: "failed TransactionMessage missing transaction id",
			args: args{
				toValidate: models.TransactionMessage{
					TransactionType: "debit",
					CountName:       "bob",
					Value:           decimal.NewFromInt(50),
				},
			},
			wantErr: true,
		},
		{
			name: "failed TransactionMessage unknown type",
			args: args{
				toValidate: models.TransactionMessage{
					IDTransaction:   "trx-1",
					TransactionType: "withdraw",
					CountName:       "bob",
					Value:           decimal.NewFromInt(50),
				},
			},
			wantErr: true,
		},
		{
			name: "failed TransactionMessage zero value",
			args: args{
				toValidate: models.TransactionMessage{
					IDTransaction:   "trx-1",
					TransactionType: "credit",
					CountName:       "bob",
				},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.args.toValidate)
			assert.Equal(t, tt.wantErr, err != nil, err)
		})
	}
}

func TestCollectFieldErrors(t *testing.T) {
	t.Run("collects field entries from a validation error", func(t *testing.T) {
		err := ValidateStruct(models.CreateTransactionRequest{
			Type:   "transfer",
			Amount: decimal.Zero,
		})
		assert.Error(t, err)

		fieldErrs := CollectFieldErrors(err)
		assert.Len(t, fieldErrs, 3)

		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field)
		}
		assert.Contains(t, fields, "accountName")
		assert.Contains(t, fields, "type")
		assert.Contains(t, fields, "amount")
	})

	t.Run("returns nil for non validation errors", func(t *testing.T) {
		assert.Nil(t, CollectFieldErrors(assert.AnError))
	})
}
