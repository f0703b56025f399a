package driver

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TransactionManager struct {
	conn   PostgresPool
	logger *zap.Logger
}

func NewTransactionManager(conn PostgresPool, logger *zap.Logger) *TransactionManager {
	return &TransactionManager{
		conn:   conn,
		logger: logger,
	}
}

// ExecuteTransaction runs fn inside a transaction, rolling back on error.
func (tm *TransactionManager) ExecuteTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return tm.executeTx(ctx, pgx.TxOptions{}, fn)
}

// ExecuteSerializableTransaction runs fn at serializable isolation, for
// read-modify-write sequences that must not interleave.
func (tm *TransactionManager) ExecuteSerializableTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return tm.executeTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
}

func (tm *TransactionManager) executeTx(ctx context.Context, opts pgx.TxOptions, fn func(tx pgx.Tx) error) error {

	tx, err := tm.conn.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			tm.logger.Error("failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
