package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ledgerhub/go-bank-ledger/internal/common"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
	"github.com/ledgerhub/go-bank-ledger/internal/monitoring"

	"github.com/shopspring/decimal"
)

type AccountRepository interface {
	GetByName(ctx context.Context, accountName string) (models.Account, error)
	ApplyDelta(ctx context.Context, id, accountName string, delta decimal.Decimal) error
}

type accountRepository sqlRepo

var _ AccountRepository = (*accountRepository)(nil)

func (a accountRepository) GetByName(ctx context.Context, accountName string) (res models.Account, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := a.r.extractTxRead(ctx)

	err = db.
		QueryRowContext(ctx, queryGetAccountByName, accountName).
		Scan(
			&res.ID,
			&res.AccountName,
			&res.Balance,
			&res.CreatedAt,
			&res.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, common.ErrAccountNotExists
		}
		return res, err
	}

	return res, nil
}

// ApplyDelta moves the account balance by delta in one statement. The
// upsert creates the account on first sight and the increment happens
// inside the database, so concurrent applies for the same name cannot
// lose an update. The supplied id is only used when the row is created.
func (a accountRepository) ApplyDelta(ctx context.Context, id, accountName string, delta decimal.Decimal) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := a.r.extractTxWrite(ctx)

	res, err := db.ExecContext(ctx, queryUpsertAccountBalance, id, accountName, delta)
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
