package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/lease-ledger/internal/app"
	"github.com/segyhp/lease-ledger/internal/config"
	"github.com/segyhp/lease-ledger/internal/logger"
	"github.com/segyhp/lease-ledger/internal/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const refreshTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	if cfg.Database.Driver == config.StorageDriverMemory {
		zapLogger.Warn("scheduler on in-memory storage only sees its own empty store")
	}

	ledger, err := app.New(context.Background(), cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize ledger", zap.Error(err))
	}
	defer ledger.Close()

	c := cron.New(cron.WithLocation(cfg.GetSchedulerLocation()))
	if err := setupCronJobs(c, cfg, ledger.ReportService, zapLogger); err != nil {
		zapLogger.Fatal("failed to schedule jobs", zap.Error(err))
	}

	c.Start()
	zapLogger.Info("scheduler started", zap.String("interval", cfg.Scheduler.Interval))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down scheduler")
	<-c.Stop().Done()
	zapLogger.Info("scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, reports *service.ReportService, logger *zap.Logger) error {
	_, err := c.AddFunc("@every "+cfg.GetSchedulerInterval().String(), func() {
		refreshReports(reports, logger)
	})
	return err
}

// refreshReports rebuilds the cached report views and logs the arrears position
func refreshReports(reports *service.ReportService, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	summary, arrears, err := reports.Refresh(ctx)
	if err != nil {
		logger.Error("report refresh failed", zap.Error(err))
		return
	}

	logger.Info("report refresh completed",
		zap.Int("payment_count", summary.PaymentCount),
		zap.String("total_outstanding", summary.TotalOutstanding.String()),
		zap.Int("contracts_in_arrears", summary.ContractsInArrears),
	)
	for _, entry := range arrears.Entries {
		logger.Info("contract in arrears",
			zap.String("contract_id", entry.ContractID),
			zap.String("tenant_id", entry.TenantID),
			zap.String("remaining_balance", entry.RemainingBalance.String()),
			zap.Time("last_payment_date", entry.LastPaymentDate),
		)
	}
}
