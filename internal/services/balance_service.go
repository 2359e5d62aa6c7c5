package services

import (
	"context"

	"github.com/ledgerhub/go-bank-ledger/internal/common/cache"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
	"github.com/ledgerhub/go-bank-ledger/internal/monitoring"
)

type BalanceService interface {
	// Get returns the account identified by accountName, or
	// common.ErrAccountNotExists when no such account was ever mutated.
	Get(ctx context.Context, accountName string) (models.Account, error)
}

type balance service

var _ BalanceService = (*balance)(nil)

func (b balance) Get(ctx context.Context, accountName string) (res models.Account, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	repoAccount := b.srv.sqlRepo.GetAccountRepository()

	res, err = b.srv.accountCache.GetOrSet(ctx, cache.GetOrSetOpts[models.Account]{
		Key: models.AccountCacheKey(accountName),
		TTL: b.srv.conf.Ledger.BalanceTTL,
		Callback: func() (models.Account, error) {
			return repoAccount.GetByName(ctx, accountName)
		},
	})
	if err != nil {
		return
	}

	return res, nil
}
