package receipt

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
	Create(ctx context.Context, tx pgx.Tx, receipt *models.Receipt) error
	GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.Receipt, error)
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

func (r *repository) Create(ctx context.Context, tx pgx.Tx, receipt *models.Receipt) error {
	const query = `
    INSERT INTO receipts (user_id, file_name, content_type, storage_key, storage_provider, url, size_bytes, created_at)
    VALUES (@user_id, @file_name, @content_type, @storage_key, @storage_provider, @url, @size_bytes, NOW())
    RETURNING id, created_at
    `

	args := pgx.NamedArgs{
		"user_id":          receipt.UserID,
		"file_name":        receipt.FileName,
		"content_type":     receipt.ContentType,
		"storage_key":      receipt.StorageKey,
		"storage_provider": receipt.StorageProvider,
		"url":              receipt.URL,
		"size_bytes":       receipt.SizeBytes,
	}

	if err := tx.QueryRow(ctx, query, args).Scan(&receipt.ID, &receipt.CreatedAt); err != nil {
		return fmt.Errorf("failed to create receipt: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.Receipt, error) {
	const query = `
    SELECT id, user_id, file_name, content_type, storage_key, storage_provider, url, size_bytes, created_at
    FROM receipts WHERE id = @id
    `

	receipt := models.NewReceipt()
	err := tx.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).Scan(
		&receipt.ID, &receipt.UserID, &receipt.FileName, &receipt.ContentType,
		&receipt.StorageKey, &receipt.StorageProvider, &receipt.URL,
		&receipt.SizeBytes, &receipt.CreatedAt,
	)
	if err != nil {
		r.logger.Error("error getting receipt", zap.Error(err))
		return nil, err
	}

	return receipt, nil
}

func (r *repository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM receipts WHERE id = @id`, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	return nil
}
