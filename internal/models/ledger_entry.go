package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the audit record of an applied transaction. Its primary
// key on TransactionID doubles as the processed-id set that keeps the
// applier idempotent under redelivery.
type LedgerEntry struct {
	TransactionID string
	AccountName   string
	Delta         decimal.Decimal
	AppliedAt     time.Time
}
