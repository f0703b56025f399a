package gig

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gigflow.io/ledger/driver"
	"gigflow.io/ledger/models"
)

type Service interface {
	Create(ctx context.Context, gig *models.Gig) error
	GetByID(ctx context.Context, id uint64) (*models.Gig, error)
	Update(ctx context.Context, gig *models.PartialGig) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, userID uint64, limit, offset uint64) ([]*models.Gig, error)
	ListByRange(ctx context.Context, userID uint64, from, to string) ([]*models.Gig, error)
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

func (s *service) Create(ctx context.Context, gig *models.Gig) error {
	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Create(ctx, tx, gig)
	})
}

func (s *service) GetByID(ctx context.Context, id uint64) (*models.Gig, error) {
	var gig *models.Gig
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		gig, err = s.repo.GetByID(ctx, tx, id)
		return err
	})
	return gig, err
}

func (s *service) Update(ctx context.Context, gig *models.PartialGig) error {
	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Update(ctx, tx, gig)
	})
}

func (s *service) Delete(ctx context.Context, id uint64) error {
	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Delete(ctx, tx, id)
	})
}

func (s *service) List(ctx context.Context, userID uint64, limit, offset uint64) ([]*models.Gig, error) {
	var gigs []*models.Gig
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		gigs, err = s.repo.ListByUser(ctx, tx, userID, limit, offset)
		return err
	})
	return gigs, err
}

func (s *service) ListByRange(ctx context.Context, userID uint64, from, to string) ([]*models.Gig, error) {
	var gigs []*models.Gig
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		gigs, err = s.repo.ListByUserAndRange(ctx, tx, userID, from, to)
		return err
	})
	return gigs, err
}
