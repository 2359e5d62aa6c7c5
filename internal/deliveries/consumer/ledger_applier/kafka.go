package ledgerapplier

import (
	"context"

	"github.com/Shopify/sarama"

	dlqpublisher "github.com/ledgerhub/go-bank-ledger/internal/common/dlq_publisher"
	kafkacommon "github.com/ledgerhub/go-bank-ledger/internal/common/kafka"
	"github.com/ledgerhub/go-bank-ledger/internal/common/logger"
	"github.com/ledgerhub/go-bank-ledger/internal/common/metrics"
	"github.com/ledgerhub/go-bank-ledger/internal/common/retry"
	"github.com/ledgerhub/go-bank-ledger/internal/config"
	"github.com/ledgerhub/go-bank-ledger/internal/services"
)

const logMessage = "[KAFKA-CONSUMER] [LEDGER-APPLIER] "

type Consumer struct {
	*kafkacommon.BaseConsumer
}

func New(ctx context.Context, cfg config.Config, ls services.LedgerService, dlq dlqpublisher.Publisher, mtc metrics.Metrics) (*Consumer, error) {
	ebRetryer := retry.NewExponentialBackOff(&cfg.ExponentialBackoff)

	baseConsumer, err := kafkacommon.NewBaseConsumer(kafkacommon.BaseConsumerConfig{
		Ctx:     ctx,
		Config:  cfg,
		Metrics: mtc,
		NewHandler: func(clientID string, consumerMetrics *metrics.ConsumerMetrics) sarama.ConsumerGroupHandler {
			return NewLedgerApplierHandler(clientID, ls, dlq, ebRetryer, consumerMetrics)
		},
		LogPrefix:     logMessage,
		Topic:         cfg.MessageBroker.KafkaConsumer.TopicTransaction,
		ConsumerGroup: cfg.MessageBroker.KafkaConsumer.ConsumerGroupLedger,
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, logMessage, logger.String("status", "success init kafka consumer"))

	return &Consumer{BaseConsumer: baseConsumer}, nil
}
