// Package reports renders dashboard and tax summaries from the ledger data.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gigflow.io/ledger/expense"
	"gigflow.io/ledger/gig"
	"gigflow.io/ledger/mileage"
	"gigflow.io/ledger/models"
	"gigflow.io/ledger/taxes"
	"gigflow.io/ledger/user"
)

const (
	// DefaultMileageRate is the IRS standard mileage deduction in $/mile.
	DefaultMileageRate = 0.67

	defaultCacheTTL = 5 * time.Minute

	// logPageSize bounds how many mileage logs a single summary walks.
	logPageSize = 500
)

type Service interface {
	DashboardSummary(ctx context.Context, userID uint64, from, to time.Time) (*models.DashboardSummary, error)
	TaxEstimate(ctx context.Context, userID uint64, from, to time.Time) (*taxes.Estimate, error)
}

type Config struct {
	MileageRate float64
	CacheTTL    time.Duration
}

type service struct {
	users       user.Service
	gigs        gig.Service
	expenses    expense.Service
	mileageLogs mileage.Service
	cache       *redis.Client
	mileageRate decimal.Decimal
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewService builds the report service. cache may be nil, which disables
// caching entirely.
func NewService(
	users user.Service,
	gigs gig.Service,
	expenses expense.Service,
	mileageLogs mileage.Service,
	cache *redis.Client,
	cfg Config,
	logger *zap.Logger,
) Service {

	if cfg.MileageRate <= 0 {
		cfg.MileageRate = DefaultMileageRate
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	return &service{
		users:       users,
		gigs:        gigs,
		expenses:    expenses,
		mileageLogs: mileageLogs,
		cache:       cache,
		mileageRate: decimal.NewFromFloat(cfg.MileageRate),
		cacheTTL:    cfg.CacheTTL,
		logger:      logger,
	}
}

func (s *service) DashboardSummary(ctx context.Context, userID uint64, from, to time.Time) (*models.DashboardSummary, error) {

	cacheKey := fmt.Sprintf("dashboard:%d:%s:%s", userID, from.Format(time.DateOnly), to.Format(time.DateOnly))

	if cached := s.cachedSummary(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	summary, err := s.buildSummary(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	s.storeSummary(ctx, cacheKey, summary)
	return summary, nil
}

func (s *service) TaxEstimate(ctx context.Context, userID uint64, from, to time.Time) (*taxes.Estimate, error) {

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	gigs, err := s.gigs.ListByRange(ctx, userID, from.Format(time.DateOnly), to.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to load gigs: %w", err)
	}

	income := decimal.Zero
	tax := decimal.Zero
	for _, g := range gigs {
		est := taxes.CalculateGigTax(g, u)
		income = income.Add(est.Income)
		tax = tax.Add(est.TaxAmount)
	}

	rate := taxes.DefaultTaxPercentage
	if u.DefaultTaxPercentage != nil {
		rate = *u.DefaultTaxPercentage
	}

	return &taxes.Estimate{Income: income, TaxRate: rate, TaxAmount: tax}, nil
}

func (s *service) buildSummary(ctx context.Context, userID uint64, from, to time.Time) (*models.DashboardSummary, error) {

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	fromStr, toStr := from.Format(time.DateOnly), to.Format(time.DateOnly)

	gigs, err := s.gigs.ListByRange(ctx, userID, fromStr, toStr)
	if err != nil {
		return nil, fmt.Errorf("failed to load gigs: %w", err)
	}

	expenses, err := s.expenses.ListByRange(ctx, userID, fromStr, toStr)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	totalIncome := decimal.Zero
	totalTips := decimal.Zero
	for _, g := range gigs {
		est := taxes.CalculateGigTax(g, u)
		totalIncome = totalIncome.Add(est.Income)
		if g.Tips != nil {
			if tips, tipErr := decimal.NewFromString(*g.Tips); tipErr == nil {
				totalTips = totalTips.Add(tips)
			}
		}
	}

	totalExpenses := decimal.Zero
	for _, e := range expenses {
		if amount, amtErr := decimal.NewFromString(e.Amount); amtErr == nil {
			totalExpenses = totalExpenses.Add(amount)
		}
	}

	totalMiles, err := s.sumMiles(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	estimatedTax := taxes.CalculateTotalTaxEstimate(gigs, u)
	mileageDeduction := decimal.NewFromFloat(totalMiles).Mul(s.mileageRate)
	netIncome := totalIncome.Sub(totalExpenses).Sub(estimatedTax)

	return &models.DashboardSummary{
		UserID:           int64(userID),
		From:             from,
		To:               to,
		GigCount:         len(gigs),
		TotalIncome:      totalIncome.StringFixed(2),
		TotalTips:        totalTips.StringFixed(2),
		TotalExpenses:    totalExpenses.StringFixed(2),
		TotalMiles:       totalMiles,
		MileageDeduction: mileageDeduction.StringFixed(2),
		EstimatedTax:     estimatedTax.StringFixed(2),
		NetIncome:        netIncome.StringFixed(2),
		GeneratedAt:      time.Now(),
	}, nil
}

func (s *service) sumMiles(ctx context.Context, userID uint64, from, to time.Time) (float64, error) {

	var total float64
	for offset := uint64(0); ; offset += logPageSize {
		logs, err := s.mileageLogs.ListLogs(ctx, userID, logPageSize, offset)
		if err != nil {
			return 0, fmt.Errorf("failed to load mileage logs: %w", err)
		}

		for _, log := range logs {
			if log.LogDate.Before(from) || log.LogDate.After(to) {
				continue
			}
			total += log.Miles
		}

		if len(logs) < logPageSize {
			return total, nil
		}
	}
}

func (s *service) cachedSummary(ctx context.Context, key string) *models.DashboardSummary {

	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("report cache read failed", zap.Error(err))
		}
		return nil
	}

	var summary models.DashboardSummary
	if err = json.Unmarshal(raw, &summary); err != nil {
		s.logger.Warn("report cache entry corrupt", zap.Error(err))
		return nil
	}

	return &summary
}

func (s *service) storeSummary(ctx context.Context, key string, summary *models.DashboardSummary) {

	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}

	if err = s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("report cache write failed", zap.Error(err))
	}
}
