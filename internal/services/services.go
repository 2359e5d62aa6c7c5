package services

import (
	"github.com/ledgerhub/go-bank-ledger/internal/common/cache"
	"github.com/ledgerhub/go-bank-ledger/internal/common/idgenerator"
	"github.com/ledgerhub/go-bank-ledger/internal/common/metrics"
	"github.com/ledgerhub/go-bank-ledger/internal/common/publisher"
	"github.com/ledgerhub/go-bank-ledger/internal/config"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
	"github.com/ledgerhub/go-bank-ledger/internal/repositories"
)

type service struct {
	srv *Services
}

type Services struct {
	conf config.Config

	sqlRepo      repositories.SQLRepository
	accountCache cache.Client[models.Account]

	transactionPub publisher.Publisher

	idgenerator idgenerator.Generator
	metrics     metrics.Metrics

	common service

	Transaction *transaction
	Balance     *balance
	Ledger      *ledger
	OutboxRelay *outboxRelay
}

func New(
	conf config.Config,
	sqlRepo repositories.SQLRepository,
	accountCache cache.Client[models.Account],
	transactionPub publisher.Publisher,
	idgenerator idgenerator.Generator,
	metrics metrics.Metrics,
) *Services {
	srv := &Services{
		conf:           conf,
		sqlRepo:        sqlRepo,
		accountCache:   accountCache,
		transactionPub: transactionPub,
		idgenerator:    idgenerator,
		metrics:        metrics,
	}
	srv.common.srv = srv
	srv.Transaction = (*transaction)(&srv.common)
	srv.Balance = (*balance)(&srv.common)
	srv.Ledger = (*ledger)(&srv.common)
	srv.OutboxRelay = (*outboxRelay)(&srv.common)

	return srv
}
