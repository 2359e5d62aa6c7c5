package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgerhub/go-bank-ledger/internal/common"
	"github.com/ledgerhub/go-bank-ledger/internal/common/validation"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
	"github.com/ledgerhub/go-bank-ledger/internal/monitoring"
)

const transactionIDPrefix = "trx"

type TransactionService interface {
	// Create validates the request, assigns an id and records the
	// transaction in pending state for the outbox relay to pick up.
	Create(ctx context.Context, req models.CreateTransactionRequest) (models.Transaction, error)
	GetByID(ctx context.Context, id string) (models.Transaction, error)
}

type transaction service

var _ TransactionService = (*transaction)(nil)

func (t transaction) Create(ctx context.Context, req models.CreateTransactionRequest) (res models.Transaction, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	if err = validation.ValidateStruct(req); err != nil {
		err = fmt.Errorf("%w: %w", common.ErrValidation, err)
		return
	}

	trx := req.ToTransaction(t.srv.idgenerator.Generate(transactionIDPrefix), time.Now().UTC())

	repoTransaction := t.srv.sqlRepo.GetTransactionRepository()
	if err = repoTransaction.Create(ctx, trx); err != nil {
		return
	}

	return trx, nil
}

func (t transaction) GetByID(ctx context.Context, id string) (res models.Transaction, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	repoTransaction := t.srv.sqlRepo.GetTransactionRepository()

	res, err = repoTransaction.GetByID(ctx, id)
	if err != nil {
		return
	}

	return res, nil
}
