package dlqretrier

import (
	"context"

	"github.com/Shopify/sarama"

	kafkacommon "github.com/ledgerhub/go-bank-ledger/internal/common/kafka"
	"github.com/ledgerhub/go-bank-ledger/internal/common/logger"
	"github.com/ledgerhub/go-bank-ledger/internal/common/metrics"
	"github.com/ledgerhub/go-bank-ledger/internal/config"
	"github.com/ledgerhub/go-bank-ledger/internal/services"
)

const logMessage = "[KAFKA-CONSUMER] [DLQ-RETRIER] "

type Consumer struct {
	*kafkacommon.BaseConsumer
}

func New(ctx context.Context, cfg config.Config, ls services.LedgerService, mtc metrics.Metrics) (*Consumer, error) {
	baseConsumer, err := kafkacommon.NewBaseConsumer(kafkacommon.BaseConsumerConfig{
		Ctx:     ctx,
		Config:  cfg,
		Metrics: mtc,
		NewHandler: func(clientID string, consumerMetrics *metrics.ConsumerMetrics) sarama.ConsumerGroupHandler {
			return NewRetrierHandler(clientID, ls, consumerMetrics)
		},
		LogPrefix:     logMessage,
		Topic:         cfg.MessageBroker.KafkaConsumer.TopicTransactionDLQ,
		ConsumerGroup: cfg.MessageBroker.KafkaConsumer.ConsumerGroupDLQRetrier,
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, logMessage, logger.String("status", "success init kafka consumer"))

	return &Consumer{BaseConsumer: baseConsumer}, nil
}
