package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"gigflow.io/ledger"
)

type ReportHandler interface {
	GetDashboard(c echo.Context) error
	GetTaxEstimate(c echo.Context) error
	RunBackup(c echo.Context) error
}

type reportHandler struct {
	Ledger ledger.Ledger
}

func NewReportHandler(
	Ledger ledger.Ledger,
) ReportHandler {
	return &reportHandler{
		Ledger: Ledger,
	}
}

// reportRange parses user_id/from/to query params. Missing dates default to
// the current month.
func reportRange(c echo.Context) (userID uint64, from, to time.Time, err error) {

	userID, err = strconv.ParseUint(c.QueryParam("user_id"), 10, 64)
	if err != nil {
		return 0, from, to, err
	}

	now := time.Now()
	from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, -1)

	if raw := c.QueryParam("from"); raw != "" {
		if from, err = time.Parse(time.DateOnly, raw); err != nil {
			return 0, from, to, err
		}
	}
	if raw := c.QueryParam("to"); raw != "" {
		if to, err = time.Parse(time.DateOnly, raw); err != nil {
			return 0, from, to, err
		}
	}

	return userID, from, to, nil
}

// GetDashboard handles GET /report/dashboard
func (rh *reportHandler) GetDashboard(c echo.Context) error {
	userID, from, to, err := reportRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid report parameters"})
	}

	summary, err := rh.Ledger.DashboardSummary(c.Request().Context(), userID, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to build dashboard"})
	}

	return c.JSON(http.StatusOK, summary)
}

// GetTaxEstimate handles GET /report/tax
func (rh *reportHandler) GetTaxEstimate(c echo.Context) error {
	userID, from, to, err := reportRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid report parameters"})
	}

	estimate, err := rh.Ledger.TaxEstimate(c.Request().Context(), userID, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to estimate taxes"})
	}

	return c.JSON(http.StatusOK, estimate)
}

// RunBackup handles POST /backup/run
func (rh *reportHandler) RunBackup(c echo.Context) error {
	result, err := rh.Ledger.RunBackup(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Backup failed"})
	}

	return c.JSON(http.StatusOK, result)
}
