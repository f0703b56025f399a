package ledger

import (
	"context"
	"time"

	"gigflow.io/ledger/backup"
	"gigflow.io/ledger/mileage"
	"gigflow.io/ledger/models"
	"gigflow.io/ledger/taxes"
)

// Ledger is the application facade the HTTP layer talks to. It fronts the
// entity services, the distance estimator, reporting and the backup job, and
// owns the background machinery (event bus, worker pool, schedulers).
type Ledger interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uint64) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.PartialUser) error

	CreateGig(ctx context.Context, gig *models.Gig) error
	GetGig(ctx context.Context, id uint64) (*models.Gig, error)
	UpdateGig(ctx context.Context, gig *models.PartialGig) error
	DeleteGig(ctx context.Context, id uint64) error
	ListGigs(ctx context.Context, userID uint64, limit, offset uint64) ([]*models.Gig, error)

	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, id uint64) (*models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.PartialExpense) error
	DeleteExpense(ctx context.Context, id uint64) error
	ListExpenses(ctx context.Context, userID uint64, limit, offset uint64) ([]*models.Expense, error)

	CalculateDistance(ctx context.Context, origin, destination string) mileage.Result
	CreateMileageLog(ctx context.Context, log *models.MileageLog) error
	ListMileageLogs(ctx context.Context, userID uint64, limit, offset uint64) ([]*models.MileageLog, error)
	DeleteMileageLog(ctx context.Context, id uint64) error

	UploadReceipt(ctx context.Context, userID uint64, fileName, contentType, base64Data string) (*models.Receipt, error)
	GetReceipt(ctx context.Context, id uint64) (*models.Receipt, error)
	DeleteReceipt(ctx context.Context, id uint64) error

	DashboardSummary(ctx context.Context, userID uint64, from, to time.Time) (*models.DashboardSummary, error)
	TaxEstimate(ctx context.Context, userID uint64, from, to time.Time) (*taxes.Estimate, error)

	RunBackup(ctx context.Context) (*backup.Result, error)

	Close()
}
