package config

import (
	"time"
)

type (
	Config struct {
		App                App      `json:"app" mapstructure:"app"`
		Postgres           Postgres `json:"postgres" mapstructure:"postgres"`
		Redis              Redis    `json:"redis" mapstructure:"redis"`
		NewRelicLicenseKey string   `json:"new_relic_license_key" mapstructure:"new_relic_license_key"`

		MessageBroker      MessageBroker            `json:"message_broker" mapstructure:"message_broker"`
		Ledger             LedgerConfig             `json:"ledger" mapstructure:"ledger"`
		OutboxRelay        OutboxRelayConfig        `json:"outbox_relay" mapstructure:"outbox_relay"`
		ExponentialBackoff ExponentialBackOffConfig `json:"exponential_backoff" mapstructure:"exponential_backoff"`
	}

	App struct {
		Env             string        `json:"env" mapstructure:"env"`
		HTTPPort        int           `json:"http_port" mapstructure:"http_port"`
		HTTPTimeout     time.Duration `json:"http_timeout" mapstructure:"http_timeout"`
		GracefulTimeout time.Duration `json:"graceful_timeout" mapstructure:"graceful_timeout"`
		Name            string        `json:"name" mapstructure:"name"`
		LogLevel        string        `json:"log_level" mapstructure:"log_level"`
	}

	Postgres struct {
		Write Database `json:"write" mapstructure:"write"`
		Read  Database `json:"read" mapstructure:"read"`
	}

	Database struct {
		DbHost            string `json:"db_host" mapstructure:"db_host"`
		DbPort            string `json:"db_port" mapstructure:"db_port"`
		DbUser            string `json:"db_user" mapstructure:"db_user"`
		DbPass            string `json:"db_pass" mapstructure:"db_pass"`
		DbName            string `json:"db_name" mapstructure:"db_name"`
		DbSchema          string `json:"db_schema" mapstructure:"db_schema"`
		MaxOpenConnection int    `json:"max_open_connections" mapstructure:"max_open_connections"`
		MaxIdleConnection int    `json:"max_idle_connections" mapstructure:"max_idle_connections"`
		ConnMaxLifetime   int    `json:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
	}

	Redis struct {
		Host     string `json:"host" mapstructure:"host"`
		Port     string `json:"port" mapstructure:"port"`
		Password string `json:"password" mapstructure:"password"`
		Db       int    `json:"db" mapstructure:"db"`
	}

	MessageBroker struct {
		HTTPPort      int            `json:"http_port" mapstructure:"http_port"`
		KafkaConsumer ConsumerConfig `json:"kafka_consumer" mapstructure:"kafka_consumer"`
	}

	ConsumerConfig struct {
		Brokers                 []string `json:"brokers" mapstructure:"brokers"`
		ConsumerGroupLedger     string   `json:"consumer_group_ledger" mapstructure:"consumer_group_ledger"`
		ConsumerGroupDLQRetrier string   `json:"consumer_group_dlq_retrier" mapstructure:"consumer_group_dlq_retrier"`
		TopicTransaction        string   `json:"topic_transaction" mapstructure:"topic_transaction"`
		TopicTransactionDLQ     string   `json:"topic_transaction_dlq" mapstructure:"topic_transaction_dlq"`
		Assignor                string   `json:"assignor" mapstructure:"assignor"`
		IsOldest                bool     `json:"is_oldest" mapstructure:"is_oldest"`
		IsVerbose               bool     `json:"is_verbose" mapstructure:"is_verbose"`
	}

	// LedgerConfig holds read-side tunables.
	LedgerConfig struct {
		BalanceTTL time.Duration `json:"balance_ttl" mapstructure:"balance_ttl"`
	}

	// OutboxRelayConfig controls the pending-transaction poller.
	OutboxRelayConfig struct {
		PollInterval time.Duration `json:"poll_interval" mapstructure:"poll_interval"`
		BatchSize    int           `json:"batch_size" mapstructure:"batch_size"`
		Concurrency  int           `json:"concurrency" mapstructure:"concurrency"`
	}

	ExponentialBackOffConfig struct {
		MaxRetries        uint64        `json:"max_retries" mapstructure:"max_retries"`
		MaxBackoffTime    time.Duration `json:"max_backoff_time" mapstructure:"max_backoff_time"`
		BackoffMultiplier float64       `json:"backoff_multiplier" mapstructure:"backoff_multiplier"`
	}
)
