package main

import (
	"context"
	"sync"
	"time"

	"github.com/ledgerhub/go-bank-ledger/cmd/setup"
	"github.com/ledgerhub/go-bank-ledger/internal/common/graceful"
	"github.com/ledgerhub/go-bank-ledger/internal/common/logger"
	kafkaconsumer "github.com/ledgerhub/go-bank-ledger/internal/deliveries/consumer/kafka"
	"github.com/ledgerhub/go-bank-ledger/internal/deliveries/worker"
)

func main() {
	var (
		ctx      = context.Background()
		starters []graceful.ProcessStarter
		stoppers []graceful.ProcessStopper
	)

	s, stopperContract, err := setup.Init("relay")
	if err != nil {
		timeout := 5 * time.Second
		if s != nil && s.Config.App.GracefulTimeout != 0 {
			timeout = s.Config.App.GracefulTimeout
		}

		graceful.StopProcess(timeout, stopperContract...)

		logger.Fatal(ctx, "failed to setup app", logger.Err(err))
	}

	relayWorker := worker.New(ctx, s.Config, s.Service.OutboxRelay)
	healthCheckProcess := kafkaconsumer.NewHTTPServer(ctx, s.Config, s.Metrics)

	starters = append(starters, relayWorker.Start(), healthCheckProcess.Start())
	stoppers = append(stoppers, stopperContract...)
	stoppers = append(stoppers, relayWorker.Stop())
	stoppers = append(stoppers, healthCheckProcess.Stop())

	wg := new(sync.WaitGroup)
	wg.Add(1)
	go func() {
		graceful.StartProcessAtBackground(starters...)
		graceful.StopProcessAtBackground(s.Config.App.GracefulTimeout, stoppers...)
		wg.Done()
	}()
	wg.Wait()
	logger.Info(ctx, "outbox relay stopped!")
}
