package expense

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
	Create(ctx context.Context, tx pgx.Tx, expense *models.Expense) error
	GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.Expense, error)
	Update(ctx context.Context, tx pgx.Tx, expense *models.PartialExpense) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
	ListByUser(ctx context.Context, tx pgx.Tx, userID uint64, limit, offset uint64) ([]*models.Expense, error)
	ListByUserAndRange(ctx context.Context, tx pgx.Tx, userID uint64, from, to string) ([]*models.Expense, error)
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

const expenseColumns = `id, user_id, gig_id, category, amount, description, expense_date,
receipt_id, created_at, updated_at`

func (r *repository) Create(ctx context.Context, tx pgx.Tx, expense *models.Expense) error {
	const query = `
    INSERT INTO expenses (user_id, gig_id, category, amount, description, expense_date, receipt_id, created_at, updated_at)
    VALUES (@user_id, @gig_id, @category, @amount, @description, @expense_date, @receipt_id, NOW(), NOW())
    RETURNING id, created_at, updated_at
    `

	args := pgx.NamedArgs{
		"user_id":      expense.UserID,
		"gig_id":       expense.GigID,
		"category":     expense.Category,
		"amount":       expense.Amount,
		"description":  expense.Description,
		"expense_date": expense.ExpenseDate,
		"receipt_id":   expense.ReceiptID,
	}

	if err := tx.QueryRow(ctx, query, args).Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = @id`

	expense := models.NewExpense()
	if err := scanExpense(tx.QueryRow(ctx, query, pgx.NamedArgs{"id": id}), expense); err != nil {
		r.logger.Error("error getting expense", zap.Error(err))
		return nil, err
	}

	return expense, nil
}

func (r *repository) Update(ctx context.Context, tx pgx.Tx, expense *models.PartialExpense) error {
	const query = `
    UPDATE expenses SET
        gig_id = COALESCE(@gig_id, expenses.gig_id),
        category = COALESCE(@category, expenses.category),
        amount = COALESCE(@amount, expenses.amount),
        description = COALESCE(@description, expenses.description),
        expense_date = COALESCE(@expense_date, expenses.expense_date),
        receipt_id = COALESCE(@receipt_id, expenses.receipt_id),
        updated_at = NOW()
    WHERE id = @id
    `

	args := pgx.NamedArgs{
		"id":           expense.ID,
		"gig_id":       expense.GigID,
		"category":     expense.Category,
		"amount":       expense.Amount,
		"description":  expense.Description,
		"expense_date": expense.ExpenseDate,
		"receipt_id":   expense.ReceiptID,
	}

	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM expenses WHERE id = @id`, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, tx pgx.Tx, userID uint64, limit, offset uint64) ([]*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = @user_id
    ORDER BY expense_date DESC LIMIT @limit OFFSET @offset`

	rows, err := tx.Query(ctx, query, pgx.NamedArgs{"user_id": userID, "limit": limit, "offset": offset})
	if err != nil {
		r.logger.Error("error listing expenses", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectExpenses(rows)
}

func (r *repository) ListByUserAndRange(ctx context.Context, tx pgx.Tx, userID uint64, from, to string) ([]*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses
    WHERE user_id = @user_id AND expense_date >= @from AND expense_date <= @to
    ORDER BY expense_date DESC`

	rows, err := tx.Query(ctx, query, pgx.NamedArgs{"user_id": userID, "from": from, "to": to})
	if err != nil {
		r.logger.Error("error listing expenses by range", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectExpenses(rows)
}

func scanExpense(row pgx.Row, expense *models.Expense) error {
	return row.Scan(
		&expense.ID, &expense.UserID, &expense.GigID, &expense.Category,
		&expense.Amount, &expense.Description, &expense.ExpenseDate,
		&expense.ReceiptID, &expense.CreatedAt, &expense.UpdatedAt,
	)
}

func collectExpenses(rows pgx.Rows) ([]*models.Expense, error) {
	var expenses []*models.Expense
	for rows.Next() {
		expense := models.NewExpense()
		if err := scanExpense(rows, expense); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}
