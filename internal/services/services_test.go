package services_test

import (
	"os"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	mockCache "github.com/ledgerhub/go-bank-ledger/internal/common/cache/mock"
	mockIDGenerator "github.com/ledgerhub/go-bank-ledger/internal/common/idgenerator/mock"
	"github.com/ledgerhub/go-bank-ledger/internal/common/logger"
	mockPublisher "github.com/ledgerhub/go-bank-ledger/internal/common/publisher/mock"
	"github.com/ledgerhub/go-bank-ledger/internal/config"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
	"github.com/ledgerhub/go-bank-ledger/internal/repositories/mock"
	"github.com/ledgerhub/go-bank-ledger/internal/services"
)

func TestMain(m *testing.M) {
	logger.InitForTest()
	os.Exit(m.Run())
}

type testServiceHelper struct {
	mockCtrl                  *gomock.Controller
	config                    config.Config
	mockSQLRepository         *mock.MockSQLRepository
	mockAccRepository         *mock.MockAccountRepository
	mockTrxRepository         *mock.MockTransactionRepository
	mockLedgerEntryRepository *mock.MockLedgerEntryRepository
	mockAccountCache          *mockCache.MockClient[models.Account]
	mockIDGenerator           *mockIDGenerator.MockGenerator
	mockTransactionPub        *mockPublisher.MockPublisher

	transactionService services.TransactionService
	balanceService     services.BalanceService
	ledgerService      services.LedgerService
	outboxRelayService services.OutboxRelayService
}

func serviceTestHelper(t *testing.T) testServiceHelper {
	t.Helper()
	t.Parallel()

	mockCtrl := gomock.NewController(t)

	mockSQLRepository := mock.NewMockSQLRepository(mockCtrl)
	mockAccountRepository := mock.NewMockAccountRepository(mockCtrl)
	mockTransactionRepository := mock.NewMockTransactionRepository(mockCtrl)
	mockLedgerEntryRepository := mock.NewMockLedgerEntryRepository(mockCtrl)

	mockAccountCache := mockCache.NewMockClient[models.Account](mockCtrl)
	mockIDGen := mockIDGenerator.NewMockGenerator(mockCtrl)
	mockTransactionPub := mockPublisher.NewMockPublisher(mockCtrl)

	mockSQLRepository.EXPECT().GetAccountRepository().Return(mockAccountRepository).AnyTimes()
	mockSQLRepository.EXPECT().GetTransactionRepository().Return(mockTransactionRepository).AnyTimes()
	mockSQLRepository.EXPECT().GetLedgerEntryRepository().Return(mockLedgerEntryRepository).AnyTimes()

	conf := config.Config{
		Ledger: config.LedgerConfig{
			BalanceTTL: 1 * time.Minute,
		},
		OutboxRelay: config.OutboxRelayConfig{
			BatchSize:   100,
			Concurrency: 2,
		},
	}

	serv := services.New(
		conf,
		mockSQLRepository,
		mockAccountCache,
		mockTransactionPub,
		mockIDGen,
		nil,
	)

	return testServiceHelper{
		mockCtrl:                  mockCtrl,
		config:                    conf,
		mockSQLRepository:         mockSQLRepository,
		mockAccRepository:         mockAccountRepository,
		mockTrxRepository:         mockTransactionRepository,
		mockLedgerEntryRepository: mockLedgerEntryRepository,
		mockAccountCache:          mockAccountCache,
		mockIDGenerator:           mockIDGen,
		mockTransactionPub:        mockTransactionPub,

		transactionService: serv.Transaction,
		balanceService:     serv.Balance,
		ledgerService:      serv.Ledger,
		outboxRelayService: serv.OutboxRelay,
	}
}
