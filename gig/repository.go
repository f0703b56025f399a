package gig

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gigflow.io/ledger/driver"
	"gigflow.io/ledger/models"
)

var _ Repository = (*repository)(nil)

type Repository interface {
	Create(ctx context.Context, tx pgx.Tx, gig *models.Gig) error
	GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.Gig, error)
	Update(ctx context.Context, tx pgx.Tx, gig *models.PartialGig) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
	ListByUser(ctx context.Context, tx pgx.Tx, userID uint64, limit, offset uint64) ([]*models.Gig, error)
	ListByUserAndRange(ctx context.Context, tx pgx.Tx, userID uint64, from, to string) ([]*models.Gig, error)
}

type repository struct {
	conn   driver.PostgresPool
	logger *zap.Logger
}

func NewRepository(conn driver.PostgresPool, logger *zap.Logger) Repository {
	return &repository{
		conn:   conn,
		logger: logger,
	}
}

const gigColumns = `id, user_id, platform, description, gig_date, actual_pay, tips,
tax_percentage, status, origin_address, destination_address, miles, created_at, updated_at`

func (r *repository) Create(ctx context.Context, tx pgx.Tx, gig *models.Gig) error {
	const query = `
    INSERT INTO gigs (user_id, platform, description, gig_date, actual_pay, tips,
        tax_percentage, status, origin_address, destination_address, miles, created_at, updated_at)
    VALUES (@user_id, @platform, @description, @gig_date, @actual_pay, @tips,
        @tax_percentage, @status, @origin_address, @destination_address, @miles, NOW(), NOW())
    RETURNING id, created_at, updated_at
    `

	args := pgx.NamedArgs{
		"user_id":             gig.UserID,
		"platform":            gig.Platform,
		"description":         gig.Description,
		"gig_date":            gig.GigDate,
		"actual_pay":          gig.ActualPay,
		"tips":                gig.Tips,
		"tax_percentage":      gig.TaxPercentage,
		"status":              gig.Status,
		"origin_address":      gig.OriginAddress,
		"destination_address": gig.DestinationAddress,
		"miles":               gig.Miles,
	}

	if err := tx.QueryRow(ctx, query, args).Scan(&gig.ID, &gig.CreatedAt, &gig.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create gig: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.Gig, error) {
	query := `SELECT ` + gigColumns + ` FROM gigs WHERE id = @id`

	gig := models.NewGig()
	if err := scanGig(tx.QueryRow(ctx, query, pgx.NamedArgs{"id": id}), gig); err != nil {
		r.logger.Error("error getting gig", zap.Error(err))
		return nil, err
	}

	return gig, nil
}

// Update patches only the fields present on the partial. A non-nil
// TaxPercentage of zero must land as zero, which COALESCE preserves since
// the bound parameter is 0, not NULL.
func (r *repository) Update(ctx context.Context, tx pgx.Tx, gig *models.PartialGig) error {
	const query = `
    UPDATE gigs SET
        platform = COALESCE(@platform, gigs.platform),
        description = COALESCE(@description, gigs.description),
        gig_date = COALESCE(@gig_date, gigs.gig_date),
        actual_pay = COALESCE(@actual_pay, gigs.actual_pay),
        tips = COALESCE(@tips, gigs.tips),
        tax_percentage = COALESCE(@tax_percentage, gigs.tax_percentage),
        status = COALESCE(@status, gigs.status),
        origin_address = COALESCE(@origin_address, gigs.origin_address),
        destination_address = COALESCE(@destination_address, gigs.destination_address),
        miles = COALESCE(@miles, gigs.miles),
        updated_at = NOW()
    WHERE id = @id
    `

	args := pgx.NamedArgs{
		"id":                  gig.ID,
		"platform":            gig.Platform,
		"description":         gig.Description,
		"gig_date":            gig.GigDate,
		"actual_pay":          gig.ActualPay,
		"tips":                gig.Tips,
		"tax_percentage":      gig.TaxPercentage,
		"status":              gig.Status,
		"origin_address":      gig.OriginAddress,
		"destination_address": gig.DestinationAddress,
		"miles":               gig.Miles,
	}

	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("failed to update gig: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM gigs WHERE id = @id`, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("failed to delete gig: %w", err)
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, tx pgx.Tx, userID uint64, limit, offset uint64) ([]*models.Gig, error) {
	query := `SELECT ` + gigColumns + ` FROM gigs WHERE user_id = @user_id
    ORDER BY gig_date DESC LIMIT @limit OFFSET @offset`

	rows, err := tx.Query(ctx, query, pgx.NamedArgs{"user_id": userID, "limit": limit, "offset": offset})
	if err != nil {
		r.logger.Error("error listing gigs", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectGigs(rows)
}

func (r *repository) ListByUserAndRange(ctx context.Context, tx pgx.Tx, userID uint64, from, to string) ([]*models.Gig, error) {
	query := `SELECT ` + gigColumns + ` FROM gigs
    WHERE user_id = @user_id AND gig_date >= @from AND gig_date <= @to
    ORDER BY gig_date DESC`

	rows, err := tx.Query(ctx, query, pgx.NamedArgs{"user_id": userID, "from": from, "to": to})
	if err != nil {
		r.logger.Error("error listing gigs by range", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectGigs(rows)
}

func scanGig(row pgx.Row, gig *models.Gig) error {
	return row.Scan(
		&gig.ID, &gig.UserID, &gig.Platform, &gig.Description, &gig.GigDate,
		&gig.ActualPay, &gig.Tips, &gig.TaxPercentage, &gig.Status,
		&gig.OriginAddress, &gig.DestinationAddress, &gig.Miles,
		&gig.CreatedAt, &gig.UpdatedAt,
	)
}

func collectGigs(rows pgx.Rows) ([]*models.Gig, error) {
	var gigs []*models.Gig
	for rows.Next() {
		gig := models.NewGig()
		if err := scanGig(rows, gig); err != nil {
			return nil, err
		}
		gigs = append(gigs, gig)
	}
	return gigs, rows.Err()
}
