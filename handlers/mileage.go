package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"gigflow.io/ledger"
	"gigflow.io/ledger/models"
)

type MileageHandler interface {
	CalculateDistance(c echo.Context) error
	CreateMileageLog(c echo.Context) error
	ListMileageLogs(c echo.Context) error
	DeleteMileageLog(c echo.Context) error
}

type mileageHandler struct {
	Ledger ledger.Ledger
}

func NewMileageHandler(
	Ledger ledger.Ledger,
) MileageHandler {
	return &mileageHandler{
		Ledger: Ledger,
	}
}

type distanceRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// CalculateDistance handles POST /mileage/distance
func (mh *mileageHandler) CalculateDistance(c echo.Context) error {
	var req distanceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	// The estimator never hard-fails; a missing address comes back as
	// success=false in the body, still HTTP 200.
	result := mh.Ledger.CalculateDistance(c.Request().Context(), req.Origin, req.Destination)
	return c.JSON(http.StatusOK, result)
}

// CreateMileageLog handles POST /mileage
func (mh *mileageHandler) CreateMileageLog(c echo.Context) error {
	var log models.MileageLog
	if err := c.Bind(&log); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	if log.UserID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	if err := mh.Ledger.CreateMileageLog(c.Request().Context(), &log); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create mileage log"})
	}

	return c.JSON(http.StatusCreated, log)
}

// ListMileageLogs handles GET /mileage
func (mh *mileageHandler) ListMileageLogs(c echo.Context) error {
	userID, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	limit, _ := strconv.ParseUint(c.QueryParam("limit"), 10, 64)
	offset, _ := strconv.ParseUint(c.QueryParam("offset"), 10, 64)
	if limit == 0 {
		limit = 20
	}

	logs, err := mh.Ledger.ListMileageLogs(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list mileage logs"})
	}

	return c.JSON(http.StatusOK, logs)
}

// DeleteMileageLog handles DELETE /mileage/:id
func (mh *mileageHandler) DeleteMileageLog(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid mileage log id"})
	}

	if err = mh.Ledger.DeleteMileageLog(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete mileage log"})
	}

	return c.NoContent(http.StatusNoContent)
}
