package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gigflow.io/ledger/handlers"
)

type Server struct {
	echo    *echo.Echo
	User    handlers.UserHandler
	Gig     handlers.GigHandler
	Expense handlers.ExpenseHandler
	Mileage handlers.MileageHandler
	Receipt handlers.ReceiptHandler
	Report  handlers.ReportHandler
}

func NewServer(
	User handlers.UserHandler,
	Gig handlers.GigHandler,
	Expense handlers.ExpenseHandler,
	Mileage handlers.MileageHandler,
	Receipt handlers.ReceiptHandler,
	Report handlers.ReportHandler,
) *Server {
	return &Server{
		echo:    echo.New(),
		User:    User,
		Gig:     Gig,
		Expense: Expense,
		Mileage: Mileage,
		Receipt: Receipt,
		Report:  Report,
	}
}

// Start initializes the server by registering middlewares and routes, and starts listening for connections on the provided address.
// It returns an error if there is an issue starting the server.
func (s *Server) Start(address string) error {
	s.registerMiddlewares()
	s.registerRoutes()
	return s.echo.Start(address)
}

// Run starts the server in a goroutine and blocks until an interrupt or
// SIGTERM arrives, then shuts the server down with a five second grace
// period.
func (s *Server) Run(address string) error {

	go func() {
		if err := s.Start(address); err != nil {
			s.echo.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

func (s *Server) registerMiddlewares() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
}

func (s *Server) registerRoutes() {

	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	s.echo.POST("/user", s.User.CreateUser)
	s.echo.GET("/user/:id", s.User.GetUser)
	s.echo.PUT("/user/:id", s.User.UpdateUser)

	s.echo.POST("/gig", s.Gig.CreateGig)
	s.echo.GET("/gig/:id", s.Gig.GetGig)
	s.echo.PUT("/gig/:id", s.Gig.UpdateGig)
	s.echo.DELETE("/gig/:id", s.Gig.DeleteGig)
	s.echo.GET("/gig", s.Gig.ListGigs)

	s.echo.POST("/expense", s.Expense.CreateExpense)
	s.echo.GET("/expense/:id", s.Expense.GetExpense)
	s.echo.PUT("/expense/:id", s.Expense.UpdateExpense)
	s.echo.DELETE("/expense/:id", s.Expense.DeleteExpense)
	s.echo.GET("/expense", s.Expense.ListExpenses)

	s.echo.POST("/mileage/distance", s.Mileage.CalculateDistance)
	s.echo.POST("/mileage", s.Mileage.CreateMileageLog)
	s.echo.GET("/mileage", s.Mileage.ListMileageLogs)
	s.echo.DELETE("/mileage/:id", s.Mileage.DeleteMileageLog)

	s.echo.POST("/receipt", s.Receipt.UploadReceipt)
	s.echo.GET("/receipt/:id", s.Receipt.GetReceipt)
	s.echo.DELETE("/receipt/:id", s.Receipt.DeleteReceipt)

	s.echo.GET("/report/dashboard", s.Report.GetDashboard)
	s.echo.GET("/report/tax", s.Report.GetTaxEstimate)
	s.echo.POST("/backup/run", s.Report.RunBackup)
}
