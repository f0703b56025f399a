package config

import (
	"context"

	"go.uber.org/zap"

	"gigflow.io/ledger/backup"
	"gigflow.io/ledger/driver"
	"gigflow.io/ledger/mileage"
	"gigflow.io/ledger/notification"
	"gigflow.io/ledger/reports"
	"gigflow.io/ledger/storage"
)

func ProvideEstimator(appConfig *Config, logger *zap.Logger) *mileage.Estimator {
	return mileage.NewEstimator(mileage.EstimatorConfig{
		APIKey:        appConfig.Maps.APIKey,
		BaseURL:       appConfig.Maps.BaseURL,
		CacheTTL:      appConfig.Maps.CacheTTL,
		SweepInterval: appConfig.Maps.SweepInterval,
	}, logger)
}

// ProvideObjectStores builds the receipt store chain in preference order.
// S3 is skipped when unconfigured or unreachable; the filesystem store is
// always present so uploads keep working offline.
func ProvideObjectStores(appConfig *Config, logger *zap.Logger) ([]storage.ObjectStore, error) {

	var stores []storage.ObjectStore

	if appConfig.Receipts.S3Bucket != "" {
		s3Store, err := storage.NewS3Store(context.Background(), appConfig.Receipts.S3Bucket, appConfig.Receipts.S3Region)
		if err != nil {
			logger.Warn("s3 receipt store unavailable, falling back to filesystem", zap.Error(err))
		} else {
			stores = append(stores, s3Store)
		}
	}

	dir := appConfig.Receipts.LocalDir
	if dir == "" {
		dir = "./receipts"
	}

	fsStore, err := storage.NewFilesystemStore(dir)
	if err != nil {
		return nil, err
	}

	return append(stores, fsStore), nil
}

func ProvideBackupJob(appConfig *Config, conn driver.PostgresPool, logger *zap.Logger) *backup.Job {

	dir := appConfig.Backup.Dir
	if dir == "" {
		dir = "./backups"
	}

	return backup.NewJob(conn, dir, appConfig.Backup.RetentionDays, logger)
}

func ProvideBackupScheduler(job *backup.Job, appConfig *Config, logger *zap.Logger) *backup.Scheduler {
	return backup.NewScheduler(job, appConfig.Backup.Interval, logger)
}

func ProvideReportsConfig(appConfig *Config) reports.Config {
	return reports.Config{
		MileageRate: appConfig.Reports.MileageRate,
		CacheTTL:    appConfig.Reports.CacheTTL,
	}
}

func ProvideSender(logger *zap.Logger) notification.Sender {
	return notification.NewLogSender(logger)
}
