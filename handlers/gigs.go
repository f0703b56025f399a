package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"gigflow.io/ledger"
	"gigflow.io/ledger/models"
)

type GigHandler interface {
	CreateGig(c echo.Context) error
	GetGig(c echo.Context) error
	UpdateGig(c echo.Context) error
	DeleteGig(c echo.Context) error
	ListGigs(c echo.Context) error
}

type gigHandler struct {
	Ledger ledger.Ledger
}

func NewGigHandler(
	Ledger ledger.Ledger,
) GigHandler {
	return &gigHandler{
		Ledger: Ledger,
	}
}

// CreateGig handles POST /gig
func (gh *gigHandler) CreateGig(c echo.Context) error {
	var gig models.Gig
	if err := c.Bind(&gig); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	if gig.UserID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	if err := gh.Ledger.CreateGig(c.Request().Context(), &gig); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create gig"})
	}

	return c.JSON(http.StatusCreated, gig)
}

// GetGig handles GET /gig/:id
func (gh *gigHandler) GetGig(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid gig id"})
	}

	gig, err := gh.Ledger.GetGig(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Gig not found"})
	}

	return c.JSON(http.StatusOK, gig)
}

// UpdateGig handles PUT /gig/:id
func (gh *gigHandler) UpdateGig(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid gig id"})
	}

	var gig models.PartialGig
	if err = c.Bind(&gig); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	gig.ID = id

	if err = gh.Ledger.UpdateGig(c.Request().Context(), &gig); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update gig"})
	}

	return c.NoContent(http.StatusOK)
}

// DeleteGig handles DELETE /gig/:id
func (gh *gigHandler) DeleteGig(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid gig id"})
	}

	if err = gh.Ledger.DeleteGig(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete gig"})
	}

	return c.NoContent(http.StatusNoContent)
}

// ListGigs handles GET /gig
func (gh *gigHandler) ListGigs(c echo.Context) error {
	userID, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	limit, _ := strconv.ParseUint(c.QueryParam("limit"), 10, 64)
	offset, _ := strconv.ParseUint(c.QueryParam("offset"), 10, 64)
	if limit == 0 {
		limit = 20
	}

	gigs, err := gh.Ledger.ListGigs(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list gigs"})
	}

	return c.JSON(http.StatusOK, gigs)
}
