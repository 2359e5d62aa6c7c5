package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var kindAccount = "account"

type Account struct {
	ID          string
	AccountName string
	Balance     decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type AccountResponse struct {
	Kind        string          `json:"kind" example:"account"`
	ID          string          `json:"id" example:"acc-1756500000000-aWQtZXhhbXBsZQ"`
	AccountName string          `json:"accountName" example:"alice"`
	Balance     decimal.Decimal `json:"balance" example:"100"`
}

func (a Account) ToResponse() AccountResponse {
	return AccountResponse{
		Kind:        kindAccount,
		ID:          a.ID,
		AccountName: a.AccountName,
		Balance:     a.Balance,
	}
}
