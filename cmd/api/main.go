package main

import (
	"context"
	"sync"
	"time"

	"github.com/ledgerhub/go-bank-ledger/cmd/setup"
	"github.com/ledgerhub/go-bank-ledger/internal/common/graceful"
	"github.com/ledgerhub/go-bank-ledger/internal/common/logger"
	"github.com/ledgerhub/go-bank-ledger/internal/deliveries/http"
)

func main() {
	var (
		ctx      = context.Background()
		starters []graceful.ProcessStarter
		stoppers []graceful.ProcessStopper
	)

	s, stopperContract, err := setup.Init("api")
	if err != nil {
		timeout := 5 * time.Second
		if s != nil && s.Config.App.GracefulTimeout != 0 {
			timeout = s.Config.App.GracefulTimeout
		}

		graceful.StopProcess(timeout, stopperContract...)

		logger.Fatal(ctx, "failed to setup app", logger.Err(err))
	}

	httpServer := http.NewHTTPServer(ctx, s.Config, s.NewRelic,
		s.Service.Transaction,
		s.Service.Balance,
	)

	starters = append(starters, httpServer.Start())
	stoppers = append(stoppers, httpServer.Stop())
	stoppers = append(stoppers, stopperContract...)

	wg := new(sync.WaitGroup)
	wg.Add(1)
	go func() {
		graceful.StartProcessAtBackground(starters...)
		graceful.StopProcessAtBackground(s.Config.App.GracefulTimeout, stoppers...)
		wg.Done()
	}()
	wg.Wait()
	logger.Info(ctx, "http server stopped!")
}
