package services

import (
	"context"
	"fmt"

	"github.com/ledgerhub/go-bank-ledger/internal/common"
	"github.com/ledgerhub/go-bank-ledger/internal/common/logger"
	"github.com/ledgerhub/go-bank-ledger/internal/common/validation"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
	"github.com/ledgerhub/go-bank-ledger/internal/monitoring"
	"github.com/ledgerhub/go-bank-ledger/internal/repositories"
)

const accountIDPrefix = "acc"

type LedgerService interface {
	// Apply mutates the target account balance by the message delta.
	// Applying the same transaction id twice returns
	// common.ErrTransactionAlreadyApplied and leaves the balance
	// untouched. Every other failure propagates to the caller so the
	// broker redelivery and DLQ machinery stay in charge.
	Apply(ctx context.Context, msg models.TransactionMessage) error
}

type ledger service

var _ LedgerService = (*ledger)(nil)

func (l ledger) Apply(ctx context.Context, msg models.TransactionMessage) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	if err = validation.ValidateStruct(msg); err != nil {
		err = fmt.Errorf("%w: %w", common.ErrValidation, err)
		return
	}

	delta := msg.Delta()

	err = l.srv.sqlRepo.Atomic(ctx, func(ctx context.Context, r repositories.SQLRepository) error {
		if err := r.GetLedgerEntryRepository().Insert(ctx, models.LedgerEntry{
			TransactionID: msg.IDTransaction,
			AccountName:   msg.CountName,
			Delta:         delta,
		}); err != nil {
			return err
		}

		return r.GetAccountRepository().ApplyDelta(ctx, l.srv.idgenerator.Generate(accountIDPrefix), msg.CountName, delta)
	})
	if err != nil {
		return
	}

	// Stale reads are bounded by the cache TTL anyway, so a failed
	// invalidation is not worth failing the apply for.
	if delErr := l.srv.accountCache.Del(ctx, models.AccountCacheKey(msg.CountName)); delErr != nil {
		logger.Warn(ctx, "[LEDGER-APPLY]",
			logger.String("status", "failed to invalidate account cache"),
			logger.String("accountName", msg.CountName),
			logger.Err(delErr))
	}

	logger.Info(ctx, "[LEDGER-APPLY]",
		logger.String("idTransaction", msg.IDTransaction),
		logger.String("accountName", msg.CountName),
		logger.String("transactionType", msg.TransactionType),
		logger.String("delta", delta.String()))

	return nil
}
