package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/ledgerhub/go-bank-ledger/internal/common/publisher"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
	"github.com/ledgerhub/go-bank-ledger/internal/monitoring"
	"github.com/ledgerhub/go-bank-ledger/internal/repositories"
)

type RelayResult struct {
	Published int
	Failed    int
}

type OutboxRelayService interface {
	// RelayPending claims one batch of pending transactions, publishes
	// each to the broker and marks the published ones. Every item is
	// attempted; the returned error aggregates the per-item failures,
	// whose rows stay pending for the next run.
	RelayPending(ctx context.Context) (RelayResult, error)
}

type outboxRelay service

var _ OutboxRelayService = (*outboxRelay)(nil)

func (o outboxRelay) RelayPending(ctx context.Context) (res RelayResult, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	startTime := time.Now()
	defer func() {
		if o.srv.metrics != nil {
			o.srv.metrics.GetRelayPrometheus().GenerateMetrics(startTime, res.Published, res.Failed, err)
		}
	}()

	var itemErrs *multierror.Error

	err = o.srv.sqlRepo.Atomic(ctx, func(ctx context.Context, r repositories.SQLRepository) error {
		repoTransaction := r.GetTransactionRepository()

		batch, err := repoTransaction.FetchPendingBatch(ctx, o.srv.conf.OutboxRelay.BatchSize)
		if err != nil {
			return err
		}

		if len(batch) == 0 {
			return nil
		}

		// Publishes run concurrently; the shared database transaction
		// is touched only after Wait, from this goroutine.
		publishErrs := make([]error, len(batch))

		eg := errgroup.Group{}
		eg.SetLimit(o.relayConcurrency())
		for i, trx := range batch {
			eg.Go(func() error {
				publishErrs[i] = o.srv.transactionPub.Publish(ctx,
					models.NewTransactionMessage(trx),
					publisher.WithKey(trx.AccountName))
				return nil
			})
		}
		_ = eg.Wait()

		for i, trx := range batch {
			if publishErrs[i] != nil {
				itemErrs = multierror.Append(itemErrs, fmt.Errorf("publish transaction %s: %w", trx.ID, publishErrs[i]))
				res.Failed++
				continue
			}

			if markErr := repoTransaction.MarkPublished(ctx, trx.ID); markErr != nil {
				itemErrs = multierror.Append(itemErrs, fmt.Errorf("mark transaction %s: %w", trx.ID, markErr))
				res.Failed++
				continue
			}

			res.Published++
		}

		// Commit even on partial failure so the published marks stick;
		// failed rows stay pending and the applier dedupes any message
		// republished after a crash between publish and mark.
		return nil
	})
	if err != nil {
		return
	}

	err = itemErrs.ErrorOrNil()
	return
}

func (o outboxRelay) relayConcurrency() int {
	if c := o.srv.conf.OutboxRelay.Concurrency; c > 0 {
		return c
	}
	return 1
}
