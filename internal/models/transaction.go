package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var kindTransaction = "transaction"

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// Outbox status of a recorded transaction. Business fields never change
// after creation; only the relay flips the status.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusPublished = "published"
)

type Transaction struct {
	ID          string
	AccountName string
	Type        TransactionType
	Amount      decimal.Decimal
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type (
	CreateTransactionRequest struct {
		AccountName string          `json:"accountName" validate:"required,noStartEndSpaces" example:"alice"`
		Type        string          `json:"type" validate:"required,oneof=credit debit" example:"credit"`
		Amount      decimal.Decimal `json:"amount" validate:"decimalGreaterThanZero" example:"100"`
	}

	CreateTransactionResponse struct {
		Kind        string          `json:"kind" example:"transaction"`
		ID          string          `json:"id" example:"trx-1756500000000-aWQtZXhhbXBsZQ"`
		AccountName string          `json:"accountName" example:"alice"`
		Type        string          `json:"type" example:"credit"`
		Amount      decimal.Decimal `json:"amount" example:"100"`
		Status      string          `json:"status" example:"created"`
	}

	TransactionResponse struct {
		Kind        string          `json:"kind" example:"transaction"`
		ID          string          `json:"id" example:"trx-1756500000000-aWQtZXhhbXBsZQ"`
		AccountName string          `json:"accountName" example:"alice"`
		Type        string          `json:"type" example:"credit"`
		Amount      decimal.Decimal `json:"amount" example:"100"`
		Status      string          `json:"status" example:"pending"`
		CreatedAt   time.Time       `json:"createdAt"`
	}
)

func (r CreateTransactionRequest) ToTransaction(id string, now time.Time) Transaction {
	return Transaction{
		ID:          id,
		AccountName: r.AccountName,
		Type:        TransactionType(r.Type),
		Amount:      r.Amount,
		Status:      TransactionStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (t Transaction) ToResponse() TransactionResponse {
	return TransactionResponse{
		Kind:        kindTransaction,
		ID:          t.ID,
		AccountName: t.AccountName,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
	}
}

func (t Transaction) ToCreateResponse() CreateTransactionResponse {
	return CreateTransactionResponse{
		Kind:        kindTransaction,
		ID:          t.ID,
		AccountName: t.AccountName,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Status:      "created",
	}
}
