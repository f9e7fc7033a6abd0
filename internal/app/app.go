// Package app assembles the ledger's storage, cache, event and service
// layers from configuration. Both the API server and the scheduler start here.
package app

import (
	"context"
	"fmt"

	"github.com/segyhp/lease-ledger/internal/cache"
	"github.com/segyhp/lease-ledger/internal/config"
	"github.com/segyhp/lease-ledger/internal/events"
	"github.com/segyhp/lease-ledger/internal/repository"
	"github.com/segyhp/lease-ledger/internal/repository/memory"
	"github.com/segyhp/lease-ledger/internal/service"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the wired services and the connections behind them
type App struct {
	DB    *sqlx.DB      // nil on the memory driver
	Redis *redis.Client // nil when Redis is not configured

	ContractService *service.ContractService
	LedgerService   *service.LedgerService
	ReportService   *service.ReportService

	publisher events.Publisher
	logger    *zap.Logger
}

// New connects the configured backends and builds the services
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	var (
		contractRepo repository.ContractRepository
		paymentRepo  repository.PaymentRepository
		tx           repository.Transactor
	)
	switch cfg.Database.Driver {
	case config.StorageDriverPostgres:
		db, err := initDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.DB = db
		contractRepo = repository.NewContractRepository(db)
		paymentRepo = repository.NewPaymentRepository(db)
		tx = repository.NewTransactor(db)
	case config.StorageDriverMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		contractRepo = store.Contracts()
		paymentRepo = store.Payments()
		tx = store
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Database.Driver)
	}

	var reportCache cache.ReportCache = cache.NopReportCache{}
	if cfg.Redis.Enabled() {
		a.Redis = initRedis(cfg)
		reportCache = cache.NewRedisReportCache(a.Redis, cfg.Redis.ReportTTL)
	}

	a.publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		a.publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.PaymentTopic)
	}

	a.ContractService = service.NewContractService(contractRepo, tx, logger)
	a.LedgerService = service.NewLedgerService(contractRepo, paymentRepo, tx, reportCache, a.publisher, cfg, logger)
	a.ReportService = service.NewReportService(contractRepo, paymentRepo, reportCache, logger)

	logger.Info("ledger initialised",
		zap.String("storage", cfg.Database.Driver),
		zap.Bool("redis", a.Redis != nil),
		zap.Bool("kafka", cfg.Kafka.Enabled()),
	)
	return a, nil
}

// Close releases every connection opened by New
func (a *App) Close() {
	if err := a.publisher.Close(); err != nil {
		a.logger.Warn("closing event publisher", zap.Error(err))
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.logger.Warn("closing redis", zap.Error(err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.logger.Warn("closing database", zap.Error(err))
		}
	}
}

func initDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}
	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
