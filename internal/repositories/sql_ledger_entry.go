package repositories

import (
	"context"

	"github.com/ledgerhub/go-bank-ledger/internal/common"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
	"github.com/ledgerhub/go-bank-ledger/internal/monitoring"
)

type LedgerEntryRepository interface {
	Insert(ctx context.Context, entry models.LedgerEntry) error
}

type ledgerEntryRepository sqlRepo

var _ LedgerEntryRepository = (*ledgerEntryRepository)(nil)

// Insert records the applied delta for a transaction. The primary key on
// "transactionId" makes this the dedupe gate: a redelivered message hits
// the conflict clause, affects zero rows, and surfaces
// ErrTransactionAlreadyApplied so the caller can skip the mutation.
func (l ledgerEntryRepository) Insert(ctx context.Context, entry models.LedgerEntry) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := l.r.extractTxWrite(ctx)

	res, err := db.ExecContext(ctx, queryInsertLedgerEntry,
		entry.TransactionID,
		entry.AccountName,
		entry.Delta,
	)
	if err != nil {
		return
	}

	affectedRows, err := res.RowsAffected()
	if err != nil {
		return
	}

	if affectedRows == 0 {
		return common.ErrTransactionAlreadyApplied
	}

	return nil
}
