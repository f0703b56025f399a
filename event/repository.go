package event

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
	Create(ctx context.Context, tx pgx.Tx, event *models.Event) error
	ListRecent(ctx context.Context, tx pgx.Tx, limit uint64) ([]*models.Event, error)
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

func (r *repository) Create(ctx context.Context, tx pgx.Tx, event *models.Event) error {
	const query = `
    INSERT INTO events (type, user_id, payload, processed_at, created_at)
    VALUES (@type, @user_id, @payload, @processed_at, NOW())
    RETURNING id
    `

	args := pgx.NamedArgs{
		"type":         event.Type,
		"user_id":      event.UserID,
		"payload":      event.Payload,
		"processed_at": event.ProcessedAt,
	}

	if err := tx.QueryRow(ctx, query, args).Scan(&event.ID); err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}

	return nil
}

func (r *repository) ListRecent(ctx context.Context, tx pgx.Tx, limit uint64) ([]*models.Event, error) {
	const query = `
    SELECT id, type, user_id, payload, processed_at, created_at
    FROM events ORDER BY created_at DESC LIMIT @limit
    `

	rows, err := tx.Query(ctx, query, pgx.NamedArgs{"limit": limit})
	if err != nil {
		r.logger.Error("error listing events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var event models.Event
		if err = rows.Scan(&event.ID, &event.Type, &event.UserID, &event.Payload,
			&event.ProcessedAt, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	return events, rows.Err()
}
