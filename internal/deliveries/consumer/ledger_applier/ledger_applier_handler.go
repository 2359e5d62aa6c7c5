package ledgerapplier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/google/uuid"

	"github.com/ledgerhub/go-bank-ledger/internal/common"
	dlqpublisher "github.com/ledgerhub/go-bank-ledger/internal/common/dlq_publisher"
	kafkacommon "github.com/ledgerhub/go-bank-ledger/internal/common/kafka"
	"github.com/ledgerhub/go-bank-ledger/internal/common/logger"
	"github.com/ledgerhub/go-bank-ledger/internal/common/metrics"
	"github.com/ledgerhub/go-bank-ledger/internal/common/retry"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
	"github.com/ledgerhub/go-bank-ledger/internal/services"
)

type LedgerApplierHandler struct {
	kafkacommon.BaseHandler
	ls      services.LedgerService
	ebRetry retry.Retryer
}

func NewLedgerApplierHandler(
	clientID string,
	ls services.LedgerService,
	dlq dlqpublisher.Publisher,
	ebr retry.Retryer,
	consumerMetrics *metrics.ConsumerMetrics,
) sarama.ConsumerGroupHandler {
	return &LedgerApplierHandler{
		BaseHandler: kafkacommon.BaseHandler{
			ClientID:        clientID,
			ConsumerMetrics: consumerMetrics,
			DLQ:             dlq,
			LogPrefix:       logMessage,
		},
		ls:      ls,
		ebRetry: ebr,
	}
}

// Setup is run at the beginning of a new session, before ConsumeClaim
func (lh LedgerApplierHandler) Setup(_ sarama.ConsumerGroupSession) error {
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited
func (lh LedgerApplierHandler) Cleanup(_ sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim must start a consumer loop of ConsumerGroupClaim's Messages().
func (lh LedgerApplierHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			ctx := logger.WithCorrelationID(session.Context(), uuid.New().String())
			ctx = logger.WithHost(ctx, lh.ClientID)
			start := time.Now()
			logField := lh.CreateLogField(message)

			msg, err := lh.parseMessage(ctx, message)
			if err != nil {
				logField = append(logField, logger.Duration("response-time", time.Since(start)), logger.Err(err))
				logger.Warn(ctx, logMessage, logField...)
				lh.Nack(ctx, session, message, err)
				continue
			}

			var operationErr error
			operation := func() error {
				operationErr = lh.handler(ctx, message, msg)
				if operationErr != nil {
					logField = append(logField, logger.Duration("response-time", time.Since(start)), logger.Err(operationErr))
					logger.Warn(ctx, logMessage, logField...)

					if errors.Is(operationErr, common.ErrTransactionAlreadyApplied) {
						return lh.ebRetry.StopRetryWithErr(operationErr)
					}

					return operationErr
				}
				return nil
			}
			dlqCallback := func() error {
				lh.Nack(ctx, session, message, operationErr)
				return operationErr
			}

			if err = lh.ebRetry.Retry(ctx, operation, dlqCallback); err != nil {
				logField = append(logField, logger.Duration("response-time", time.Since(start)), logger.Err(err))
				logger.Warn(ctx, logMessage, logField...)
				continue
			}

			logField = append(logField, logger.Duration("response-time", time.Since(start)))
			logger.Info(ctx, logMessage, logField...)
			lh.Ack(session, message)
		case <-session.Context().Done():
			return nil
		}
	}
}

func (lh LedgerApplierHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage, msg *models.TransactionMessage) error {
	const logMsg = "[PROCESS-MESSAGE]"

	logField := append(
		lh.CreateLogField(message),
		logger.Any("request", msg),
	)

	if err := lh.ls.Apply(ctx, *msg); err != nil {
		if errors.Is(err, common.ErrTransactionAlreadyApplied) {
			return err
		}

		logField = append(logField, logger.Err(err))
		logger.Warn(ctx, logMsg, logField...)
		return fmt.Errorf("error when applying transaction: %w", err)
	}
	logger.Info(ctx, logMsg, logField...)

	return nil
}

func (lh LedgerApplierHandler) handler(ctx context.Context, message *sarama.ConsumerMessage, msg *models.TransactionMessage) (err error) {
	startTime := time.Now()
	err = lh.processMessage(ctx, message, msg)
	lh.RecordMetrics(startTime, message, err)
	return
}

func (lh LedgerApplierHandler) parseMessage(ctx context.Context, msg *sarama.ConsumerMessage) (*models.TransactionMessage, error) {
	var (
		payload models.TransactionMessage
		logMsg  = "[PROCESS-MESSAGE]"
	)

	logField := lh.CreateLogField(msg)

	if len(msg.Value) == 0 {
		return nil, common.ErrEmptyMessagePayload
	}

	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		logField = append(logField, logger.Err(err))
		logger.Warn(ctx, logMsg, logField...)
		return nil, fmt.Errorf("error unmarshal json: %w", err)
	}

	return &payload, nil
}

// Nack skips the DLQ for transactions that were already applied; the
// message is simply marked so the offset can advance. Everything else
// goes through the base DLQ path.
func (lh LedgerApplierHandler) Nack(ctx context.Context, session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage, causeErr error) {
	if errors.Is(causeErr, common.ErrTransactionAlreadyApplied) {
		session.MarkMessage(message, "")
		return
	}

	lh.BaseHandler.Nack(ctx, session, message, causeErr)
}
