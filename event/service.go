package event

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gigflow.io/ledger/driver"
	"gigflow.io/ledger/models"
)

type Service interface {
	Record(ctx context.Context, event *models.Event) error
	ListRecent(ctx context.Context, limit uint64) ([]*models.Event, error)
}

type service struct {
	repo               Repository
	transactionManager *driver.TransactionManager
	logger             *zap.Logger
}

func NewService(repo Repository, tm *driver.TransactionManager, logger *zap.Logger) Service {
	return &service{
		repo:               repo,
		transactionManager: tm,
		logger:             logger,
	}
}

func (s *service) Record(ctx context.Context, event *models.Event) error {
	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Create(ctx, tx, event)
	})
}

func (s *service) ListRecent(ctx context.Context, limit uint64) ([]*models.Event, error) {
	var events []*models.Event
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		events, err = s.repo.ListRecent(ctx, tx, limit)
		return err
	})
	return events, err
}
