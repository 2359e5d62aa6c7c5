package consumer

import (
	"context"
	"fmt"

	"github.com/ledgerhub/go-bank-ledger/cmd/setup"
	"github.com/ledgerhub/go-bank-ledger/internal/common/graceful"
	"github.com/ledgerhub/go-bank-ledger/internal/common/publisher"
	"github.com/ledgerhub/go-bank-ledger/internal/config"
	"github.com/ledgerhub/go-bank-ledger/internal/services"

	dlqpublisher "github.com/ledgerhub/go-bank-ledger/internal/common/dlq_publisher"
	dlqretrier "github.com/ledgerhub/go-bank-ledger/internal/deliveries/consumer/dlq_retrier"
	ledgerapplier "github.com/ledgerhub/go-bank-ledger/internal/deliveries/consumer/ledger_applier"
)

func NewKafkaConsumer(
	ctx context.Context,
	consumerName string,
	conf config.Config,
	svc *services.Services,
	contract *setup.Setup,
) (consumerProcess graceful.ProcessStartStopper, stoppers []graceful.ProcessStopper, err error) {
	switch consumerName {
	case "ledger_applier":
		producer, errProducer := publisher.NewKafkaSyncProducer(conf.MessageBroker.KafkaConsumer.Brokers)
		if errProducer != nil {
			err = fmt.Errorf("failed setup kafka dlq publisher : %w", errProducer)
			return
		}

		stoppers = append(stoppers, func(ctx context.Context) error { return producer.Close() })

		transactionDlq := dlqpublisher.New(producer, conf.MessageBroker.KafkaConsumer.TopicTransactionDLQ, contract.Metrics)
		consumerProcess, err = ledgerapplier.New(ctx, conf, svc.Ledger, transactionDlq, contract.Metrics)
	case "dlq_retrier":
		consumerProcess, err = dlqretrier.New(ctx, conf, svc.Ledger, contract.Metrics)
	default:
		err = fmt.Errorf("consumer type name for %s not found", consumerName)
	}

	return
}
