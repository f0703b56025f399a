package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"gigflow.io/ledger"
	"gigflow.io/ledger/models"
)

type ExpenseHandler interface {
	CreateExpense(c echo.Context) error
	GetExpense(c echo.Context) error
	UpdateExpense(c echo.Context) error
	DeleteExpense(c echo.Context) error
	ListExpenses(c echo.Context) error
}

type expenseHandler struct {
	Ledger ledger.Ledger
}

func NewExpenseHandler(
	Ledger ledger.Ledger,
) ExpenseHandler {
	return &expenseHandler{
		Ledger: Ledger,
	}
}

// CreateExpense handles POST /expense
func (eh *expenseHandler) CreateExpense(c echo.Context) error {
	var expense models.Expense
	if err := c.Bind(&expense); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	if expense.UserID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	if err := eh.Ledger.CreateExpense(c.Request().Context(), &expense); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create expense"})
	}

	return c.JSON(http.StatusCreated, expense)
}

// GetExpense handles GET /expense/:id
func (eh *expenseHandler) GetExpense(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid expense id"})
	}

	expense, err := eh.Ledger.GetExpense(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Expense not found"})
	}

	return c.JSON(http.StatusOK, expense)
}

// UpdateExpense handles PUT /expense/:id
func (eh *expenseHandler) UpdateExpense(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid expense id"})
	}

	var expense models.PartialExpense
	if err = c.Bind(&expense); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	expense.ID = id

	if err = eh.Ledger.UpdateExpense(c.Request().Context(), &expense); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update expense"})
	}

	return c.NoContent(http.StatusOK)
}

// DeleteExpense handles DELETE /expense/:id
func (eh *expenseHandler) DeleteExpense(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid expense id"})
	}

	if err = eh.Ledger.DeleteExpense(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete expense"})
	}

	return c.NoContent(http.StatusNoContent)
}

// ListExpenses handles GET /expense
func (eh *expenseHandler) ListExpenses(c echo.Context) error {
	userID, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	limit, _ := strconv.ParseUint(c.QueryParam("limit"), 10, 64)
	offset, _ := strconv.ParseUint(c.QueryParam("offset"), 10, 64)
	if limit == 0 {
		limit = 20
	}

	expenses, err := eh.Ledger.ListExpenses(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list expenses"})
	}

	return c.JSON(http.StatusOK, expenses)
}
