//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"gigflow.io/ledger"
	"gigflow.io/ledger/config"
	"gigflow.io/ledger/driver"
	"gigflow.io/ledger/event"
	"gigflow.io/ledger/expense"
	"gigflow.io/ledger/gig"
	"gigflow.io/ledger/handlers"
	"gigflow.io/ledger/mileage"
	"gigflow.io/ledger/receipt"
	"gigflow.io/ledger/reports"
	"gigflow.io/ledger/server"
	"gigflow.io/ledger/user"
)

func InitializeLedgerService() (*server.Server, error) {

	wire.Build(
		config.ProvideApplicationConfig,
		config.NewLogger,
		config.ProvidePostgresPool,
		config.ProvideRedisClient,
		config.ProvideNATSConn,
		config.ProvideEstimator,
		config.ProvideObjectStores,
		config.ProvideBackupJob,
		config.ProvideBackupScheduler,
		config.ProvideReportsConfig,
		config.ProvideSender,
		driver.NewTransactionManager,
		user.NewRepository,
		user.NewService,
		gig.NewRepository,
		gig.NewService,
		expense.NewRepository,
		expense.NewService,
		mileage.NewRepository,
		mileage.NewService,
		receipt.NewRepository,
		receipt.NewService,
		event.NewRepository,
		event.NewService,
		reports.NewService,
		ledger.NewGigLedger,
		handlers.NewUserHandler,
		handlers.NewGigHandler,
		handlers.NewExpenseHandler,
		handlers.NewMileageHandler,
		handlers.NewReceiptHandler,
		handlers.NewReportHandler,
		server.NewServer,
	)

	return &server.Server{}, nil
}
