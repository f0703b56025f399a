package mileage

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gigflow.io/ledger/driver"
	"gigflow.io/ledger/models"
)

type Service interface {
	CalculateDistance(ctx context.Context, origin, destination string) Result
	CreateLog(ctx context.Context, log *models.MileageLog) error
	GetLog(ctx context.Context, id uint64) (*models.MileageLog, error)
	ListLogs(ctx context.Context, userID uint64, limit, offset uint64) ([]*models.MileageLog, error)
	DeleteLog(ctx context.Context, id uint64) error
}

type service struct {
	repo               Repository
	estimator          *Estimator
	transactionManager *driver.TransactionManager
	logger             *zap.Logger
}

func NewService(repo Repository, estimator *Estimator, tm *driver.TransactionManager, logger *zap.Logger) Service {
	return &service{
		repo:               repo,
		estimator:          estimator,
		transactionManager: tm,
		logger:             logger,
	}
}

func (s *service) CalculateDistance(ctx context.Context, origin, destination string) Result {
	return s.estimator.CalculateDistance(ctx, origin, destination)
}

// CreateLog persists a mileage log, resolving the distance first when the
// caller did not supply one.
func (s *service) CreateLog(ctx context.Context, log *models.MileageLog) error {

	if log.Miles == 0 && log.Origin != "" && log.Destination != "" {
		res := s.estimator.CalculateDistance(ctx, log.Origin, log.Destination)
		if res.Success {
			log.Miles = res.Distance
			log.Estimated = res.Estimated
		}
	}

	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Create(ctx, tx, log)
	})
}

func (s *service) GetLog(ctx context.Context, id uint64) (*models.MileageLog, error) {
	var log *models.MileageLog
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		log, err = s.repo.GetByID(ctx, tx, id)
		return err
	})
	return log, err
}

func (s *service) ListLogs(ctx context.Context, userID uint64, limit, offset uint64) ([]*models.MileageLog, error) {
	var logs []*models.MileageLog
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		logs, err = s.repo.ListByUser(ctx, tx, userID, limit, offset)
		return err
	})
	return logs, err
}

func (s *service) DeleteLog(ctx context.Context, id uint64) error {
	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Delete(ctx, tx, id)
	})
}
