package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/segyhp/lease-ledger/internal/cache"
	"github.com/segyhp/lease-ledger/internal/domain"
	"github.com/segyhp/lease-ledger/internal/repository"
	customError "github.com/segyhp/lease-ledger/pkg/errors"
	"github.com/segyhp/lease-ledger/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportService aggregates the remaining_balance and penalty snapshots stored
// on payments. It never recomputes balances from contract terms.
type ReportService struct {
	ContractRepo repository.ContractRepository
	PaymentRepo  repository.PaymentRepository
	cache        cache.ReportCache
	logger       *zap.Logger
}

func NewReportService(
	contractRepo repository.ContractRepository,
	paymentRepo repository.PaymentRepository,
	reportCache cache.ReportCache,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		ContractRepo: contractRepo,
		PaymentRepo:  paymentRepo,
		cache:        reportCache,
		logger:       logger,
	}
}

// Summary totals collections and penalties for payments dated in [from, to] and
// outstanding balances from each contract's latest snapshot as of to.
func (s *ReportService) Summary(ctx context.Context, from, to *time.Time) (*domain.ReportSummary, error) {
	from, to = truncatePtr(from), truncatePtr(to)
	key, cacheable := s.cacheKey(ctx, "summary:"+dateKey(from)+":"+dateKey(to))

	var cached domain.ReportSummary
	if cacheable && s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	payments, err := s.PaymentRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	latest, err := s.PaymentRepo.GetLatestPerContract(ctx, to)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	summary := &domain.ReportSummary{
		From:             from,
		To:               to,
		PaymentCount:     len(payments),
		TotalCollected:   decimal.Zero,
		TotalPenalties:   decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}
	for _, p := range payments {
		summary.TotalCollected = summary.TotalCollected.Add(p.Amount)
		summary.TotalPenalties = summary.TotalPenalties.Add(p.Penalty)
	}
	for _, p := range latest {
		summary.TotalOutstanding = summary.TotalOutstanding.Add(p.RemainingBalance)
		if p.RemainingBalance.IsPositive() {
			summary.ContractsInArrears++
		}
	}

	if cacheable {
		s.toCache(ctx, key, summary)
	}
	return summary, nil
}

// Arrears lists contracts whose latest snapshot as of asOf still owes money,
// largest balance first
func (s *ReportService) Arrears(ctx context.Context, asOf *time.Time) (*domain.ArrearsResponse, error) {
	asOf = truncatePtr(asOf)
	key, cacheable := s.cacheKey(ctx, "arrears:"+dateKey(asOf))

	var cached domain.ArrearsResponse
	if cacheable && s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	latest, err := s.PaymentRepo.GetLatestPerContract(ctx, asOf)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	contracts, err := s.ContractRepo.List(ctx, "")
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	byID := make(map[string]*domain.LeaseContract, len(contracts))
	for _, c := range contracts {
		byID[c.ID] = c
	}

	resp := &domain.ArrearsResponse{
		AsOf:    asOf,
		Entries: []*domain.ArrearsEntry{},
		Total:   decimal.Zero,
	}
	for _, p := range latest {
		if !p.RemainingBalance.IsPositive() {
			continue
		}
		entry := &domain.ArrearsEntry{
			ContractID:       p.ContractID,
			RemainingBalance: p.RemainingBalance,
			LastPaymentDate:  p.PaymentDate,
			LastSequence:     p.Sequence,
		}
		if c, ok := byID[p.ContractID]; ok {
			entry.TenantID = c.TenantID
			entry.PropertyID = c.PropertyID
		}
		resp.Entries = append(resp.Entries, entry)
		resp.Total = resp.Total.Add(p.RemainingBalance)
	}
	sort.Slice(resp.Entries, func(i, j int) bool {
		a, b := resp.Entries[i], resp.Entries[j]
		if cmp := a.RemainingBalance.Cmp(b.RemainingBalance); cmp != 0 {
			return cmp > 0
		}
		return a.ContractID < b.ContractID
	})

	if cacheable {
		s.toCache(ctx, key, resp)
	}
	return resp, nil
}

// Statement returns a contract with its ordered payment history and the
// figures of its latest snapshot
func (s *ReportService) Statement(ctx context.Context, contractID string) (*domain.ContractStatement, error) {
	contract, err := s.ContractRepo.GetByID(ctx, contractID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapContractNotFound(contractID)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	payments, err := s.PaymentRepo.GetByContractID(ctx, contractID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	statement := &domain.ContractStatement{
		Contract:         contract,
		Payments:         []*domain.LeasePayment{},
		RemainingBalance: decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalPenalties:   decimal.Zero,
	}
	var latest *domain.LeasePayment
	for _, p := range payments {
		statement.Payments = append(statement.Payments, p)
		statement.TotalPaid = statement.TotalPaid.Add(p.Amount)
		statement.TotalPenalties = statement.TotalPenalties.Add(p.Penalty)
		if latest == nil || p.Sequence > latest.Sequence {
			latest = p
		}
	}
	if latest != nil {
		statement.RemainingBalance = latest.RemainingBalance
	}

	return statement, nil
}

// Refresh drops cached reports and rebuilds the unbounded summary and arrears views
func (s *ReportService) Refresh(ctx context.Context) (*domain.ReportSummary, *domain.ArrearsResponse, error) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("report cache invalidation failed", zap.Error(customError.WrapCacheError(err)))
	}

	summary, err := s.Summary(ctx, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	arrears, err := s.Arrears(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	return summary, arrears, nil
}

// cacheKey prefixes name with the generation read before the report is
// computed, so a result that races an invalidation is written under a key no
// later reader asks for. ok is false when the generation is unavailable and
// the cache must be bypassed.
func (s *ReportService) cacheKey(ctx context.Context, name string) (key string, ok bool) {
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.Warn("report cache generation read failed", zap.Error(customError.WrapCacheError(err)))
		return "", false
	}
	return strconv.FormatInt(gen, 10) + ":" + name, true
}

// A cache failure degrades to a direct read.
func (s *ReportService) fromCache(ctx context.Context, key string, dest any) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(customError.WrapCacheError(err)))
		return false
	}
	return found
}

func (s *ReportService) toCache(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(customError.WrapCacheError(err)))
	}
}

func truncatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := utils.TruncateToDate(*t)
	return &d
}

func dateKey(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return utils.FormatDate(*t)
}
