package mileage

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
	Create(ctx context.Context, tx pgx.Tx, log *models.MileageLog) error
	GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.MileageLog, error)
	ListByUser(ctx context.Context, tx pgx.Tx, userID uint64, limit, offset uint64) ([]*models.MileageLog, error)
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
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

func (r *repository) Create(ctx context.Context, tx pgx.Tx, log *models.MileageLog) error {
	const query = `
    INSERT INTO mileage_logs (user_id, gig_id, origin, destination, miles, estimated, log_date, created_at)
    VALUES (@user_id, @gig_id, @origin, @destination, @miles, @estimated, @log_date, NOW())
    RETURNING id
    `

	args := pgx.NamedArgs{
		"user_id":     log.UserID,
		"gig_id":      log.GigID,
		"origin":      log.Origin,
		"destination": log.Destination,
		"miles":       log.Miles,
		"estimated":   log.Estimated,
		"log_date":    log.LogDate,
	}

	if err := tx.QueryRow(ctx, query, args).Scan(&log.ID); err != nil {
		return fmt.Errorf("failed to create mileage log: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.MileageLog, error) {
	const query = `
    SELECT id, user_id, gig_id, origin, destination, miles, estimated, log_date, created_at
    FROM mileage_logs WHERE id = @id
    `

	log := models.NewMileageLog()
	err := tx.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).Scan(
		&log.ID, &log.UserID, &log.GigID, &log.Origin, &log.Destination,
		&log.Miles, &log.Estimated, &log.LogDate, &log.CreatedAt,
	)
	if err != nil {
		r.logger.Error("error getting mileage log", zap.Error(err))
		return nil, err
	}

	return log, nil
}

func (r *repository) ListByUser(ctx context.Context, tx pgx.Tx, userID uint64, limit, offset uint64) ([]*models.MileageLog, error) {
	const query = `
    SELECT id, user_id, gig_id, origin, destination, miles, estimated, log_date, created_at
    FROM mileage_logs WHERE user_id = @user_id
    ORDER BY log_date DESC
    LIMIT @limit OFFSET @offset
    `

	rows, err := tx.Query(ctx, query, pgx.NamedArgs{"user_id": userID, "limit": limit, "offset": offset})
	if err != nil {
		r.logger.Error("error listing mileage logs", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var logs []*models.MileageLog
	for rows.Next() {
		log := models.NewMileageLog()
		if err = rows.Scan(
			&log.ID, &log.UserID, &log.GigID, &log.Origin, &log.Destination,
			&log.Miles, &log.Estimated, &log.LogDate, &log.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func (r *repository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM mileage_logs WHERE id = @id`, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("failed to delete mileage log: %w", err)
	}
	return nil
}
