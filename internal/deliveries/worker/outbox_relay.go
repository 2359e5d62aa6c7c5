package worker

import (
	"context"
	"time"

	"github.com/ledgerhub/go-bank-ledger/internal/common/graceful"
	"github.com/ledgerhub/go-bank-ledger/internal/common/logger"
	"github.com/ledgerhub/go-bank-ledger/internal/config"
	"github.com/ledgerhub/go-bank-ledger/internal/services"
)

const logMessage = "[OUTBOX-RELAY-WORKER] "

const defaultPollInterval = 5 * time.Second

// OutboxRelayWorker polls the transaction outbox on a fixed interval and
// pushes every pending row to the broker. Rows that fail to publish stay
// pending and are retried on the next tick.
type OutboxRelayWorker struct {
	ctx      context.Context
	interval time.Duration
	relay    services.OutboxRelayService
	done     chan struct{}
}

var _ graceful.ProcessStartStopper = (*OutboxRelayWorker)(nil)

func New(ctx context.Context, cfg config.Config, relay services.OutboxRelayService) *OutboxRelayWorker {
	interval := cfg.OutboxRelay.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	return &OutboxRelayWorker{
		ctx:      ctx,
		interval: interval,
		relay:    relay,
		done:     make(chan struct{}),
	}
}

func (w *OutboxRelayWorker) Start() graceful.ProcessStarter {
	return func() error {
		logger.Info(w.ctx, logMessage, logger.String("status", "starting"), logger.Duration("poll-interval", w.interval))

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			w.relayOnce(w.ctx)

			select {
			case <-ticker.C:
			case <-w.done:
				return nil
			case <-w.ctx.Done():
				return w.ctx.Err()
			}
		}
	}
}

func (w *OutboxRelayWorker) Stop() graceful.ProcessStopper {
	return func(ctx context.Context) error {
		close(w.done)
		logger.Info(ctx, logMessage, logger.String("status", "stopped"))
		return nil
	}
}

func (w *OutboxRelayWorker) relayOnce(ctx context.Context) {
	start := time.Now()

	res, err := w.relay.RelayPending(ctx)
	logField := []logger.Field{
		logger.Int("published", res.Published),
		logger.Int("failed", res.Failed),
		logger.Duration("response-time", time.Since(start)),
	}

	if err != nil {
		logField = append(logField, logger.Err(err))
		logger.Warn(ctx, logMessage, logField...)
		return
	}

	if res.Published > 0 || res.Failed > 0 {
		logger.Info(ctx, logMessage, logField...)
	}
}
