package models

import (
	"github.com/shopspring/decimal"
)

// TransactionMessage is the wire contract between the outbox relay and the
// ledger applier. Field names are part of the contract; do not rename.
type TransactionMessage struct {
	IDTransaction   string          `json:"idTransaction" validate:"required"`
	TransactionType string          `json:"transactionType" validate:"required,oneof=credit debit"`
	CountName       string          `json:"countName" validate:"required"`
	Value           decimal.Decimal `json:"value" validate:"decimalGreaterThanZero"`
}

func NewTransactionMessage(t Transaction) TransactionMessage {
	return TransactionMessage{
		IDTransaction:   t.ID,
		TransactionType: string(t.Type),
		CountName:       t.AccountName,
		Value:           t.Amount,
	}
}

// Delta is the signed balance mutation carried by the message, negative
// for debits.
func (m TransactionMessage) Delta() decimal.Decimal {
	if TransactionType(m.TransactionType) == TransactionTypeDebit {
		return m.Value.Neg()
	}
	return m.Value
}
