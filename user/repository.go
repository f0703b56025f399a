package user

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
	Create(ctx context.Context, tx pgx.Tx, user *models.User) error
	GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.User, error)
	Update(ctx context.Context, tx pgx.Tx, user *models.PartialUser) error
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

func (r *repository) Create(ctx context.Context, tx pgx.Tx, user *models.User) error {
	const query = `
    INSERT INTO users (email, name, default_tax_percentage, created_at, updated_at)
    VALUES (@email, @name, @default_tax_percentage, NOW(), NOW())
    RETURNING id, created_at, updated_at
    `

	args := pgx.NamedArgs{
		"email":                  user.Email,
		"name":                   user.Name,
		"default_tax_percentage": user.DefaultTaxPercentage,
	}

	if err := tx.QueryRow(ctx, query, args).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, tx pgx.Tx, id uint64) (*models.User, error) {
	const query = `
    SELECT id, email, name, default_tax_percentage, created_at, updated_at
    FROM users WHERE id = @id
    `

	user := models.NewUser()
	err := tx.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).Scan(
		&user.ID, &user.Email, &user.Name, &user.DefaultTaxPercentage,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("error getting user", zap.Error(err))
		return nil, err
	}

	return user, nil
}

func (r *repository) Update(ctx context.Context, tx pgx.Tx, user *models.PartialUser) error {
	const query = `
    UPDATE users SET
        email = COALESCE(@email, users.email),
        name = COALESCE(@name, users.name),
        default_tax_percentage = COALESCE(@default_tax_percentage, users.default_tax_percentage),
        updated_at = NOW()
    WHERE id = @id
    `

	args := pgx.NamedArgs{
		"id":                     user.ID,
		"email":                  user.Email,
		"name":                   user.Name,
		"default_tax_percentage": user.DefaultTaxPercentage,
	}

	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}
