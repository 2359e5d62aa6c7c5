package dlqpublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ledgerhub/go-bank-ledger/internal/common/logger"
	"github.com/ledgerhub/go-bank-ledger/internal/common/metrics"
	"github.com/ledgerhub/go-bank-ledger/internal/models"

	"github.com/Shopify/sarama"
)

const prefixLogMessage = "[DLQ]"

type Publisher interface {
	Publish(message models.FailedMessage) error
}

type kafkaDlq struct {
	producer sarama.SyncProducer
	topic    string
	metrics  metrics.Metrics
}

func New(p sarama.SyncProducer, topic string, metrics metrics.Metrics) Publisher {
	return kafkaDlq{p, topic, metrics}
}

func (d kafkaDlq) Publish(message models.FailedMessage) (err error) {
	startTime := time.Now()
	defer func() {
		if d.metrics != nil {
			d.metrics.GetPublisherPrometheus().GenerateMetrics(startTime, d.topic, err)
		}
	}()

	msg, err := d.prepareMessage(message)
	if err != nil {
		logger.Error(
			context.Background(),
			prefixLogMessage,
			logger.String("status", "prepare kafkaDlq message failed"),
			logger.Err(err))
		return err
	}

	_, _, err = d.producer.SendMessage(msg)
	if err != nil {
		logger.Error(
			context.Background(),
			prefixLogMessage,
			logger.String("status", "publish kafkaDlq failed"),
			logger.Err(err))
		return err
	}

	logger.Info(context.Background(),
		prefixLogMessage,
		logger.String("status", "success publish kafkaDlq message"),
		logger.Time("timestamp", message.Timestamp),
		logger.String("topic", d.topic),
	)

	return nil
}

func (d kafkaDlq) prepareMessage(message models.FailedMessage) (*sarama.ProducerMessage, error) {
	if message.CauseError != nil && message.Error == "" {
		message.Error = message.CauseError.Error()
	}

	msgByte, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return &sarama.ProducerMessage{
		Topic: d.topic,
		Value: sarama.ByteEncoder(msgByte),
	}, nil
}
