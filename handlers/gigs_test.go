package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigflow.io/ledger"
	"gigflow.io/ledger/backup"
	"gigflow.io/ledger/mileage"
	"gigflow.io/ledger/models"
	"gigflow.io/ledger/taxes"
)

// fakeLedger satisfies ledger.Ledger with overridable hooks for the methods
// a test cares about. Unhooked methods return zero values.
type fakeLedger struct {
	createGig         func(ctx context.Context, gig *models.Gig) error
	getGig            func(ctx context.Context, id uint64) (*models.Gig, error)
	listGigs          func(ctx context.Context, userID, limit, offset uint64) ([]*models.Gig, error)
	calculateDistance func(ctx context.Context, origin, destination string) mileage.Result
}

func (f *fakeLedger) CreateUser(context.Context, *models.User) error        { return nil }
func (f *fakeLedger) GetUser(context.Context, uint64) (*models.User, error) { return nil, nil }
func (f *fakeLedger) UpdateUser(context.Context, *models.PartialUser) error { return nil }

func (f *fakeLedger) CreateGig(ctx context.Context, gig *models.Gig) error {
	if f.createGig != nil {
		return f.createGig(ctx, gig)
	}
	return nil
}

func (f *fakeLedger) GetGig(ctx context.Context, id uint64) (*models.Gig, error) {
	if f.getGig != nil {
		return f.getGig(ctx, id)
	}
	return nil, nil
}

func (f *fakeLedger) UpdateGig(context.Context, *models.PartialGig) error { return nil }
func (f *fakeLedger) DeleteGig(context.Context, uint64) error             { return nil }

func (f *fakeLedger) ListGigs(ctx context.Context, userID, limit, offset uint64) ([]*models.Gig, error) {
	if f.listGigs != nil {
		return f.listGigs(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (f *fakeLedger) CreateExpense(context.Context, *models.Expense) error { return nil }
func (f *fakeLedger) GetExpense(context.Context, uint64) (*models.Expense, error) {
	return nil, nil
}
func (f *fakeLedger) UpdateExpense(context.Context, *models.PartialExpense) error { return nil }
func (f *fakeLedger) DeleteExpense(context.Context, uint64) error                 { return nil }
func (f *fakeLedger) ListExpenses(context.Context, uint64, uint64, uint64) ([]*models.Expense, error) {
	return nil, nil
}

func (f *fakeLedger) CalculateDistance(ctx context.Context, origin, destination string) mileage.Result {
	if f.calculateDistance != nil {
		return f.calculateDistance(ctx, origin, destination)
	}
	return mileage.Result{}
}

func (f *fakeLedger) CreateMileageLog(context.Context, *models.MileageLog) error { return nil }
func (f *fakeLedger) ListMileageLogs(context.Context, uint64, uint64, uint64) ([]*models.MileageLog, error) {
	return nil, nil
}
func (f *fakeLedger) DeleteMileageLog(context.Context, uint64) error { return nil }

func (f *fakeLedger) UploadReceipt(context.Context, uint64, string, string, string) (*models.Receipt, error) {
	return nil, nil
}
func (f *fakeLedger) GetReceipt(context.Context, uint64) (*models.Receipt, error) {
	return nil, nil
}
func (f *fakeLedger) DeleteReceipt(context.Context, uint64) error { return nil }

func (f *fakeLedger) DashboardSummary(context.Context, uint64, time.Time, time.Time) (*models.DashboardSummary, error) {
	return nil, nil
}
func (f *fakeLedger) TaxEstimate(context.Context, uint64, time.Time, time.Time) (*taxes.Estimate, error) {
	return nil, nil
}

func (f *fakeLedger) RunBackup(context.Context) (*backup.Result, error) { return nil, nil }
func (f *fakeLedger) Close()                                            {}

var _ ledger.Ledger = (*fakeLedger)(nil)

func TestCreateGig(t *testing.T) {

	var captured *models.Gig
	fl := &fakeLedger{
		createGig: func(_ context.Context, gig *models.Gig) error {
			gig.ID = 7
			captured = gig
			return nil
		},
	}
	h := NewGigHandler(fl)

	body := `{"user_id": 42, "platform": "rideshare", "actual_pay": "120.50", "tax_percentage": 0}`
	req := httptest.NewRequest(http.MethodPost, "/gig", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.CreateGig(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, captured)
	assert.Equal(t, int64(42), captured.UserID)
	require.NotNil(t, captured.TaxPercentage, "explicit zero rate must survive binding")
	assert.Equal(t, int32(0), *captured.TaxPercentage)

	var resp models.Gig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
}

func TestCreateGigMissingUser(t *testing.T) {

	h := NewGigHandler(&fakeLedger{})

	req := httptest.NewRequest(http.MethodPost, "/gig", strings.NewReader(`{"platform": "delivery"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.CreateGig(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetGigNotFound(t *testing.T) {

	fl := &fakeLedger{
		getGig: func(context.Context, uint64) (*models.Gig, error) {
			return nil, errors.New("no rows")
		},
	}
	h := NewGigHandler(fl)

	req := httptest.NewRequest(http.MethodGet, "/gig/9", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	require.NoError(t, h.GetGig(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListGigsDefaultsLimit(t *testing.T) {

	var gotLimit uint64
	fl := &fakeLedger{
		listGigs: func(_ context.Context, userID, limit, offset uint64) ([]*models.Gig, error) {
			gotLimit = limit
			return []*models.Gig{}, nil
		},
	}
	h := NewGigHandler(fl)

	req := httptest.NewRequest(http.MethodGet, "/gig?user_id=42", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.ListGigs(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(20), gotLimit)
}

func TestCalculateDistanceAlwaysOK(t *testing.T) {

	fl := &fakeLedger{
		calculateDistance: func(_ context.Context, origin, destination string) mileage.Result {
			return mileage.Result{Success: false, Error: "origin and destination are required"}
		},
	}
	h := NewMileageHandler(fl)

	req := httptest.NewRequest(http.MethodPost, "/mileage/distance", strings.NewReader(`{"origin": "", "destination": ""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.CalculateDistance(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var result mileage.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}
