package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gigflow.io/ledger/mileage"
	"gigflow.io/ledger/models"
)

func strPtr(s string) *string { return &s }
func i32Ptr(v int32) *int32   { return &v }

func decimalFromInt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type fakeUsers struct{ user *models.User }

func (f *fakeUsers) Create(ctx context.Context, u *models.User) error { return nil }
func (f *fakeUsers) GetByID(ctx context.Context, id uint64) (*models.User, error) {
	return f.user, nil
}
func (f *fakeUsers) Update(ctx context.Context, u *models.PartialUser) error { return nil }

type fakeGigs struct{ gigs []*models.Gig }

func (f *fakeGigs) Create(ctx context.Context, g *models.Gig) error              { return nil }
func (f *fakeGigs) GetByID(ctx context.Context, id uint64) (*models.Gig, error)  { return nil, nil }
func (f *fakeGigs) Update(ctx context.Context, g *models.PartialGig) error       { return nil }
func (f *fakeGigs) Delete(ctx context.Context, id uint64) error                  { return nil }
func (f *fakeGigs) List(ctx context.Context, userID, limit, offset uint64) ([]*models.Gig, error) {
	return f.gigs, nil
}
func (f *fakeGigs) ListByRange(ctx context.Context, userID uint64, from, to string) ([]*models.Gig, error) {
	return f.gigs, nil
}

type fakeExpenses struct{ expenses []*models.Expense }

func (f *fakeExpenses) Create(ctx context.Context, e *models.Expense) error             { return nil }
func (f *fakeExpenses) GetByID(ctx context.Context, id uint64) (*models.Expense, error) { return nil, nil }
func (f *fakeExpenses) Update(ctx context.Context, e *models.PartialExpense) error      { return nil }
func (f *fakeExpenses) Delete(ctx context.Context, id uint64) error                     { return nil }
func (f *fakeExpenses) List(ctx context.Context, userID, limit, offset uint64) ([]*models.Expense, error) {
	return f.expenses, nil
}
func (f *fakeExpenses) ListByRange(ctx context.Context, userID uint64, from, to string) ([]*models.Expense, error) {
	return f.expenses, nil
}

type fakeMileage struct{ logs []*models.MileageLog }

func (f *fakeMileage) CalculateDistance(ctx context.Context, origin, destination string) mileage.Result {
	return mileage.Result{}
}
func (f *fakeMileage) CreateLog(ctx context.Context, log *models.MileageLog) error { return nil }
func (f *fakeMileage) GetLog(ctx context.Context, id uint64) (*models.MileageLog, error) {
	return nil, nil
}
func (f *fakeMileage) ListLogs(ctx context.Context, userID, limit, offset uint64) ([]*models.MileageLog, error) {
	if offset > 0 {
		return nil, nil
	}
	return f.logs, nil
}
func (f *fakeMileage) DeleteLog(ctx context.Context, id uint64) error { return nil }

func TestDashboardSummary(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	svc := NewService(
		&fakeUsers{user: &models.User{ID: 1, DefaultTaxPercentage: i32Ptr(20)}},
		&fakeGigs{gigs: []*models.Gig{
			{ActualPay: strPtr("100"), Tips: strPtr("0"), TaxPercentage: i32Ptr(10)},
			{ActualPay: strPtr("50"), Tips: strPtr("5")},
		}},
		&fakeExpenses{expenses: []*models.Expense{
			{Amount: "30"},
			{Amount: "not a number"}, // ignored, not fatal
		}},
		&fakeMileage{logs: []*models.MileageLog{
			{Miles: 100, LogDate: from.AddDate(0, 0, 5)},
			{Miles: 40, LogDate: from.AddDate(0, 0, -5)}, // outside range
		}},
		nil, // no cache
		Config{MileageRate: 0.67},
		zap.NewNop(),
	)

	summary, err := svc.DashboardSummary(context.Background(), 1, from, to)
	if err != nil {
		t.Fatalf("DashboardSummary: %v", err)
	}

	if summary.GigCount != 2 {
		t.Errorf("expected 2 gigs, got %d", summary.GigCount)
	}
	if summary.TotalIncome != "155.00" {
		t.Errorf("expected income 155.00, got %s", summary.TotalIncome)
	}
	if summary.TotalTips != "5.00" {
		t.Errorf("expected tips 5.00, got %s", summary.TotalTips)
	}
	if summary.TotalExpenses != "30.00" {
		t.Errorf("expected expenses 30.00, got %s", summary.TotalExpenses)
	}
	if summary.TotalMiles != 100 {
		t.Errorf("expected 100 miles, got %f", summary.TotalMiles)
	}
	if summary.MileageDeduction != "67.00" {
		t.Errorf("expected deduction 67.00, got %s", summary.MileageDeduction)
	}
	// 100*0.10 + 55*0.20 = 21
	if summary.EstimatedTax != "21.00" {
		t.Errorf("expected tax 21.00, got %s", summary.EstimatedTax)
	}
	// 155 - 30 - 21 = 104
	if summary.NetIncome != "104.00" {
		t.Errorf("expected net 104.00, got %s", summary.NetIncome)
	}
}

func TestTaxEstimate(t *testing.T) {
	svc := NewService(
		&fakeUsers{user: &models.User{ID: 1, DefaultTaxPercentage: i32Ptr(20)}},
		&fakeGigs{gigs: []*models.Gig{
			{ActualPay: strPtr("100"), TaxPercentage: i32Ptr(0)}, // cash gig, stays 0
			{ActualPay: strPtr("200")},
		}},
		&fakeExpenses{},
		&fakeMileage{},
		nil,
		Config{},
		zap.NewNop(),
	)

	est, err := svc.TaxEstimate(context.Background(), 1, time.Now().AddDate(0, -1, 0), time.Now())
	if err != nil {
		t.Fatalf("TaxEstimate: %v", err)
	}

	if !est.Income.Equal(decimalFromInt(300)) {
		t.Errorf("expected income 300, got %s", est.Income)
	}
	// 100*0 + 200*0.20 = 40
	if !est.TaxAmount.Equal(decimalFromInt(40)) {
		t.Errorf("expected tax 40, got %s", est.TaxAmount)
	}
}
