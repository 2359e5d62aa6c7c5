package setup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	genericCache "github.com/ledgerhub/go-bank-ledger/internal/common/cache"
	dlqpublisher "github.com/ledgerhub/go-bank-ledger/internal/common/dlq_publisher"
	"github.com/ledgerhub/go-bank-ledger/internal/common/graceful"
	"github.com/ledgerhub/go-bank-ledger/internal/common/idgenerator"
	"github.com/ledgerhub/go-bank-ledger/internal/common/logger"
	cMetrics "github.com/ledgerhub/go-bank-ledger/internal/common/metrics"
	"github.com/ledgerhub/go-bank-ledger/internal/common/publisher"
	"github.com/ledgerhub/go-bank-ledger/internal/config"
	"github.com/ledgerhub/go-bank-ledger/internal/models"
	"github.com/ledgerhub/go-bank-ledger/internal/repositories"
	"github.com/ledgerhub/go-bank-ledger/internal/services"

	_ "github.com/newrelic/go-agent/v3/integrations/nrpgx"
)

type Setup struct {
	Config          config.Config
	NewRelic        *newrelic.Application
	WriteDB         *sql.DB
	ReadDB          *sql.DB
	Cache           *redis.Client
	Service         *services.Services
	PublisherClient *PublisherClient
	Metrics         cMetrics.Metrics
}

func Init(command string) (setup *Setup, stopper []graceful.ProcessStopper, err error) {
	ctx := context.Background()

	env := os.Getenv("LEDGER_ENV")
	if env == "" {
		env = "local"
	}

	configPath := os.Getenv("LEDGER_CONFIG_PATH")
	if configPath == "" {
		configPath = "./config"
	}

	cfg, err := config.Load(configPath, env)
	if err != nil {
		err = fmt.Errorf("failed to load config: %w", err)
		return
	}

	setup = &Setup{
		Config: *cfg,
	}

	err = logger.Init(logger.Options{
		ServiceName: cfg.App.Name,
		Level:       cfg.App.LogLevel,
		Development: config.StringToEnvironment(cfg.App.Env) == config.LOCAL_ENV,
	})
	if err != nil {
		err = fmt.Errorf("failed to init logger: %w", err)
		return
	}

	stopper = append(stopper, func(ctx context.Context) error {
		logger.Sync()
		return nil
	})

	newRelic := setupNR(ctx, *cfg)

	// metrics
	mtc := cMetrics.New()

	// connect to db master
	writeDB, readDB, err := setupPostgres(*cfg)
	if err != nil {
		err = fmt.Errorf("failed connect to database: %w", err)
		return
	}
	stopper = append(stopper, func(ctx context.Context) error {
		var errs error

		if writeDB != nil {
			if err := writeDB.Close(); err != nil {
				errs = errors.Join(errs, fmt.Errorf("failed to close writeDB: %w", err))
			}
		}

		if readDB != nil {
			if err := readDB.Close(); err != nil {
				errs = errors.Join(errs, fmt.Errorf("failed to close readDB: %w", err))
			}
		}

		return errs
	})

	// connect to redis, falling back to an in-process cache when no
	// redis host is configured
	var cache *redis.Client
	var accountCache genericCache.Client[models.Account]
	if cfg.Redis.Host != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Db,
		})
		_, err = cache.Ping(ctx).Result()
		if err != nil {
			return
		}
		stopper = append(stopper, func(ctx context.Context) error { return cache.Close() })

		accountCache = genericCache.NewRedisClient[models.Account](cache)
	} else {
		inMemory := genericCache.NewInMemoryClient[models.Account]()
		stopper = append(stopper, func(ctx context.Context) error {
			inMemory.Close()
			return nil
		})

		accountCache = inMemory
	}

	if mtc != nil {
		// register DB write stat prometheus metrics
		err = mtc.RegisterDB(writeDB, cfg.App.Name+"-"+command+"-write", cfg.Postgres.Write.DbName)
		if err != nil {
			err = fmt.Errorf("failed register DB stat prometheus: %w", err)
			return
		}
		// register DB read stat prometheus metrics
		err = mtc.RegisterDB(readDB, cfg.App.Name+"-"+command+"-read", cfg.Postgres.Read.DbName)
		if err != nil {
			err = fmt.Errorf("failed register DB stat prometheus: %w", err)
			return
		}

		if cache != nil {
			// register redis prometheus metrics
			err = mtc.RegisterRedis(cache, cfg.App.Name, command)
			if err != nil {
				err = fmt.Errorf("failed register redis prometheus: %w", err)
				return
			}
		}
	}

	// register repository
	sqlRepo := repositories.NewSQLRepository(writeDB, readDB, *cfg)

	idGenerator := idgenerator.New()

	producerOpts := []publisher.Option{
		publisher.WithClientID(cfg.App.Name + "-" + command),
	}
	if mtc != nil {
		producerOpts = append(producerOpts, publisher.WithMetricRegistry(
			mtc.SaramaRegistry(cfg.App.Name+"_producer", time.Second),
		))
	}

	producer, err := publisher.NewKafkaSyncProducer(
		cfg.MessageBroker.KafkaConsumer.Brokers,
		producerOpts...,
	)
	if err != nil {
		err = fmt.Errorf("unable to create client kafka sync producer: %w", err)
		return
	}
	stopper = append(stopper, func(ctx context.Context) error { return producer.Close() })

	publisherClient := PublisherClient{
		Transaction:    publisher.NewPublisher(producer, cfg.MessageBroker.KafkaConsumer.TopicTransaction, mtc),
		TransactionDLQ: dlqpublisher.New(producer, cfg.MessageBroker.KafkaConsumer.TopicTransactionDLQ, mtc),
	}

	// register service
	srv := services.New(
		*cfg,
		sqlRepo,
		accountCache,
		publisherClient.Transaction,
		idGenerator,
		mtc,
	)

	return &Setup{
		Config:          *cfg,
		NewRelic:        newRelic,
		WriteDB:         writeDB,
		ReadDB:          readDB,
		Cache:           cache,
		Service:         srv,
		PublisherClient: &publisherClient,
		Metrics:         mtc,
	}, stopper, nil
}

func setupPostgres(conf config.Config) (*sql.DB, *sql.DB, error) {
	writeDB, err := initDB(conf.Postgres.Write)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init write DB: %w", err)
	}

	readDB, err := initDB(conf.Postgres.Read)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init read DB: %w", err)
	}

	return writeDB, readDB, nil
}

func initDB(pgConf config.Database) (*sql.DB, error) {
	const (
		DefaultMaxOpen     = 10
		DefaultMaxIdle     = 10
		DefaultMaxLifetime = 3 // minutes
	)

	dsName := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s search_path=%s sslmode=disable",
		pgConf.DbHost, pgConf.DbPort, pgConf.DbUser, pgConf.DbPass, pgConf.DbName, pgConf.DbSchema,
	)

	db, err := sql.Open("nrpgx", dsName)
	if err != nil {
		return nil, err
	}

	if pgConf.MaxOpenConnection > 0 {
		db.SetMaxOpenConns(pgConf.MaxOpenConnection)
	} else {
		db.SetMaxOpenConns(DefaultMaxOpen)
	}

	if pgConf.MaxIdleConnection > 0 {
		db.SetMaxIdleConns(pgConf.MaxIdleConnection)
	} else {
		db.SetMaxIdleConns(DefaultMaxIdle)
	}

	if pgConf.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(pgConf.ConnMaxLifetime) * time.Minute)
	} else {
		db.SetConnMaxLifetime(time.Duration(DefaultMaxLifetime) * time.Minute)
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func setupNR(ctx context.Context, cfg config.Config) *newrelic.Application {
	if env := config.StringToEnvironment(cfg.App.Env); env == config.PROD_ENV {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.App.Name),
			newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			logger.Error(ctx, "setupNR.NewApplication", logger.Err(err))
			return nil
		}
		if err = app.WaitForConnection(15 * time.Second); err != nil {
			logger.Error(ctx, "setupNR.WaitForConnection", logger.Err(err))
		}
		return app
	}
	return nil
}
