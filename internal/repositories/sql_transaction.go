package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ledgerhub/go-bank-ledger/internal/common"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
	"github.com/ledgerhub/go-bank-ledger/internal/monitoring"
)

type TransactionRepository interface {
	Create(ctx context.Context, trx models.Transaction) error
	GetByID(ctx context.Context, id string) (models.Transaction, error)
	FetchPendingBatch(ctx context.Context, limit int) ([]models.Transaction, error)
	MarkPublished(ctx context.Context, id string) error
}

type transactionRepository sqlRepo

var _ TransactionRepository = (*transactionRepository)(nil)

func (t transactionRepository) Create(ctx context.Context, trx models.Transaction) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := t.r.extractTxWrite(ctx)

	res, err := db.ExecContext(ctx, queryInsertTransaction,
		trx.ID,
		trx.AccountName,
		trx.Type,
		trx.Amount,
		trx.Status,
		trx.CreatedAt,
		trx.UpdatedAt,
	)
	if err != nil {
		return
	}

	affectedRows, err := res.RowsAffected()
	if err != nil {
		return
	}

	if affectedRows == 0 {
		return common.ErrTransactionAlreadyExists
	}

	return nil
}

func (t transactionRepository) GetByID(ctx context.Context, id string) (res models.Transaction, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := t.r.extractTxRead(ctx)

	err = db.
		QueryRowContext(ctx, queryGetTransactionByID, id).
		Scan(
			&res.ID,
			&res.AccountName,
			&res.Type,
			&res.Amount,
			&res.Status,
			&res.CreatedAt,
			&res.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, common.ErrTransactionNotFound
		}
		return res, err
	}

	return res, nil
}

// FetchPendingBatch claims up to limit unpublished transactions. Rows are
// locked with SKIP LOCKED so concurrent relay runs never pick the same
// row; call it inside Atomic together with MarkPublished.
func (t transactionRepository) FetchPendingBatch(ctx context.Context, limit int) (res []models.Transaction, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := t.r.extractTxWrite(ctx)

	query, args, err := buildFetchPendingTransactionsQuery(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	for rows.Next() {
		var trx models.Transaction
		err = rows.Scan(
			&trx.ID,
			&trx.AccountName,
			&trx.Type,
			&trx.Amount,
			&trx.Status,
			&trx.CreatedAt,
			&trx.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		res = append(res, trx)
	}

	return res, rows.Err()
}

func (t transactionRepository) MarkPublished(ctx context.Context, id string) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := t.r.extractTxWrite(ctx)

	res, err := db.ExecContext(ctx, queryMarkTransactionPublished, models.TransactionStatusPublished, id)
	if err != nil {
		return
	}

	affectedRows, err := res.RowsAffected()
	if err != nil {
		return
	}

	if affectedRows == 0 {
		return common.ErrNoRowsAffected
	}

	return nil
}
