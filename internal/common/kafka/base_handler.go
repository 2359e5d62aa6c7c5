package kafka

import (
	"context"
	"time"

	dlqpublisher "github.com/ledgerhub/go-bank-ledger/internal/common/dlq_publisher"
	"github.com/ledgerhub/go-bank-ledger/internal/common/logger"
	"github.com/ledgerhub/go-bank-ledger/internal/common/metrics"
	"github.com/ledgerhub/go-bank-ledger/internal/models"

	"github.com/Shopify/sarama"
)

type BaseHandler struct {
	ClientID        string
	ConsumerMetrics *metrics.ConsumerMetrics
	DLQ             dlqpublisher.Publisher
	LogPrefix       string
}

func (b *BaseHandler) CreateLogField(msg *sarama.ConsumerMessage) []logger.Field {
	return []logger.Field{
		logger.Time("timestamp", msg.Timestamp),
		logger.String("topic", msg.Topic),
		logger.String("key", string(msg.Key)),
		logger.Int32("partition", msg.Partition),
		logger.Int64("offset", msg.Offset),
		logger.String("message-claimed", string(msg.Value)),
	}
}

func (b *BaseHandler) Ack(session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) {
	session.MarkMessage(message, "")
	logger.Debug(
		context.Background(),
		b.LogPrefix+"[ACK]",
		logger.String("topic", message.Topic),
		logger.Int32("partition", message.Partition),
		logger.Int64("offset", message.Offset),
	)
}

// Nack publishes the failed message to the DLQ and marks it consumed so
// the partition keeps moving. When the DLQ publish itself fails the
// message stays unmarked and the broker delivers it again.
func (b *BaseHandler) Nack(ctx context.Context, session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage, causeErr error) {
	logField := b.CreateLogField(message)
	logField = append(logField, logger.Err(causeErr))

	if err := b.DLQ.Publish(models.NewFailedMessage(message.Value, message.Timestamp, causeErr)); err != nil {
		logField = append(logField, logger.String("dlq_status", "failed"))
		logger.Error(ctx, b.LogPrefix+"[NACK-DLQ-FAILED]", logField...)
		return
	}

	logField = append(logField, logger.String("dlq_status", "success"))
	logger.Info(ctx, b.LogPrefix+"[NACK-DLQ-SUCCESS]", logField...)

	session.MarkMessage(message, "")
	logger.Warn(ctx, b.LogPrefix+"[NACK]", logField...)
}

func (b *BaseHandler) RecordMetrics(startTime time.Time, message *sarama.ConsumerMessage, err error) {
	if b.ConsumerMetrics != nil {
		b.ConsumerMetrics.GenerateMetrics(startTime, message, err)
	}
}
