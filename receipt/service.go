package receipt

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gigflow.io/ledger/driver"
	"gigflow.io/ledger/models"
	"gigflow.io/ledger/storage"
)

type Service interface {
	Upload(ctx context.Context, userID uint64, fileName, contentType, base64Data string) (*models.Receipt, error)
	GetByID(ctx context.Context, id uint64) (*models.Receipt, error)
	Delete(ctx context.Context, id uint64) error
}

type service struct {
	repo               Repository
	stores             []storage.ObjectStore
	transactionManager *driver.TransactionManager
	logger             *zap.Logger
}

// NewService takes the store chain in preference order; Upload walks it until
// one backend accepts the file.
func NewService(repo Repository, stores []storage.ObjectStore, tm *driver.TransactionManager, logger *zap.Logger) Service {
	return &service{
		repo:               repo,
		stores:             stores,
		transactionManager: tm,
		logger:             logger,
	}
}

func (s *service) Upload(ctx context.Context, userID uint64, fileName, contentType, base64Data string) (*models.Receipt, error) {

	// Clients sometimes send full data URLs; keep only the payload.
	if idx := strings.Index(base64Data, ","); idx >= 0 && strings.HasPrefix(base64Data, "data:") {
		base64Data = base64Data[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty receipt payload")
	}

	key := fmt.Sprintf("%d/%d-%s", userID, time.Now().UnixNano(), fileName)

	var (
		location string
		provider string
	)
	for _, store := range s.stores {
		location, err = store.Put(ctx, key, data, contentType)
		if err == nil {
			provider = store.Name()
			break
		}
		s.logger.Warn("receipt store rejected upload, trying next",
			zap.String("store", store.Name()),
			zap.Error(err))
	}
	if provider == "" {
		return nil, fmt.Errorf("all receipt stores failed: %w", err)
	}

	receipt := &models.Receipt{
		UserID:          int64(userID),
		FileName:        fileName,
		ContentType:     contentType,
		StorageKey:      key,
		StorageProvider: provider,
		URL:             location,
		SizeBytes:       int64(len(data)),
	}

	err = s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Create(ctx, tx, receipt)
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

func (s *service) GetByID(ctx context.Context, id uint64) (*models.Receipt, error) {
	var receipt *models.Receipt
	err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		receipt, err = s.repo.GetByID(ctx, tx, id)
		return err
	})
	return receipt, err
}

func (s *service) Delete(ctx context.Context, id uint64) error {

	receipt, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Best effort: the metadata row is the source of truth, a stale blob is
	// only wasted space.
	for _, store := range s.stores {
		if store.Name() != receipt.StorageProvider {
			continue
		}
		if err = store.Delete(ctx, receipt.StorageKey); err != nil {
			s.logger.Warn("failed to delete receipt blob",
				zap.String("store", store.Name()),
				zap.String("key", receipt.StorageKey),
				zap.Error(err))
		}
	}

	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Delete(ctx, tx, id)
	})
}
