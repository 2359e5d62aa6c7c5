package setup

import (
	dlqpublisher "github.com/ledgerhub/go-bank-ledger/internal/common/dlq_publisher"
	"github.com/ledgerhub/go-bank-ledger/internal/common/publisher"
)

type PublisherClient struct {
	Transaction    publisher.Publisher
	TransactionDLQ dlqpublisher.Publisher
}
