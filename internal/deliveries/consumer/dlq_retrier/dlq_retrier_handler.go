package dlqretrier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/google/uuid"

	"github.com/ledgerhub/go-bank-ledger/internal/common"
	kafkacommon "github.com/ledgerhub/go-bank-ledger/internal/common/kafka"
	"github.com/ledgerhub/go-bank-ledger/internal/common/logger"
	"github.com/ledgerhub/go-bank-ledger/internal/common/metrics"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
	"github.com/ledgerhub/go-bank-ledger/internal/services"
)

type DLQRetrierHandler struct {
	kafkacommon.BaseHandler
	ls services.LedgerService
}

func NewRetrierHandler(clientID string, ls services.LedgerService, consumerMetrics *metrics.ConsumerMetrics) sarama.ConsumerGroupHandler {
	return &DLQRetrierHandler{
		BaseHandler: kafkacommon.BaseHandler{
			ClientID:        clientID,
			ConsumerMetrics: consumerMetrics,
			LogPrefix:       logMessage,
		},
		ls: ls,
	}
}

// Setup is run at the beginning of a new session, before ConsumeClaim
func (dt DLQRetrierHandler) Setup(_ sarama.ConsumerGroupSession) error {
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited
func (dt DLQRetrierHandler) Cleanup(_ sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim must start a consumer loop of ConsumerGroupClaim's Messages().
// A message that still fails is left unmarked so the broker delivers it
// again on the next session.
func (dt DLQRetrierHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			ctx := logger.WithCorrelationID(session.Context(), uuid.New().String())
			ctx = logger.WithHost(ctx, dt.ClientID)
			start := time.Now()
			logField := dt.CreateLogField(message)

			err := dt.handler(ctx, message)
			if err != nil {
				logField = append(logField, logger.Duration("response-time", time.Since(start)), logger.Err(err))
				logger.Warn(ctx, logMessage, logField...)
				continue
			}
			logField = append(logField, logger.Duration("response-time", time.Since(start)))
			logger.Info(ctx, logMessage, logField...)
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (dt DLQRetrierHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var (
		payload models.FailedMessage
		logMsg  = "[PROCESS-MESSAGE]"
	)

	logField := dt.CreateLogField(message)

	if err := json.Unmarshal(message.Value, &payload); err != nil {
		logField = append(logField, logger.Err(err))
		logger.Warn(ctx, logMsg, logField...)
		return fmt.Errorf("error unmarshal json: %w", err)
	}

	var trxMsg models.TransactionMessage
	if err := json.Unmarshal(payload.Payload, &trxMsg); err != nil {
		logField = append(logField, logger.Err(err))
		logger.Warn(ctx, logMsg, logField...)
		return fmt.Errorf("error unmarshal dlq payload: %w", err)
	}

	if err := dt.ls.Apply(ctx, trxMsg); err != nil {
		if errors.Is(err, common.ErrTransactionAlreadyApplied) {
			logField = append(logField, logger.String("status", "transaction already applied, skipping"))
			logger.Info(ctx, logMsg, logField...)
			return nil
		}

		logField = append(logField, logger.Err(err))
		logger.Warn(ctx, logMsg, logField...)
		return fmt.Errorf("err process dlq message: %w", err)
	}

	logger.Info(ctx, logMsg, logField...)
	return nil
}

func (dt DLQRetrierHandler) handler(ctx context.Context, message *sarama.ConsumerMessage) (err error) {
	startTime := time.Now()
	err = dt.processMessage(ctx, message)
	dt.RecordMetrics(startTime, message, err)
	return
}
