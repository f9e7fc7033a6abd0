package main

import (
	"testing"

	"github.com/segyhp/lease-ledger/internal/cache"
	"github.com/segyhp/lease-ledger/internal/config"
	"github.com/segyhp/lease-ledger/internal/repository/memory"
	"github.com/segyhp/lease-ledger/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetupCronJobs(t *testing.T) {
	store := memory.NewStore()
	reports := service.NewReportService(store.Contracts(), store.Payments(), cache.NopReportCache{}, zap.NewNop())
	cfg := &config.Config{Scheduler: config.SchedulerConfig{Interval: "1h", Timezone: "UTC"}}

	c := cron.New(cron.WithLocation(cfg.GetSchedulerLocation()))
	require.NoError(t, setupCronJobs(c, cfg, reports, zap.NewNop()))
	assert.Len(t, c.Entries(), 1)
}

func TestRefreshReports_EmptyLedger(t *testing.T) {
	store := memory.NewStore()
	reports := service.NewReportService(store.Contracts(), store.Payments(), cache.NopReportCache{}, zap.NewNop())

	assert.NotPanics(t, func() { refreshReports(reports, zap.NewNop()) })
}
