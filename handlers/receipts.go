package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"gigflow.io/ledger"
)

type ReceiptHandler interface {
	UploadReceipt(c echo.Context) error
	GetReceipt(c echo.Context) error
	DeleteReceipt(c echo.Context) error
}

type receiptHandler struct {
	Ledger ledger.Ledger
}

func NewReceiptHandler(
	Ledger ledger.Ledger,
) ReceiptHandler {
	return &receiptHandler{
		Ledger: Ledger,
	}
}

type uploadReceiptRequest struct {
	UserID      uint64 `json:"user_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        string `json:"data"` // base64, optionally a data URL
}

// UploadReceipt handles POST /receipt
func (rh *receiptHandler) UploadReceipt(c echo.Context) error {
	var req uploadReceiptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	if req.UserID == 0 || req.FileName == "" || req.Data == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id, file_name and data are required"})
	}

	receipt, err := rh.Ledger.UploadReceipt(c.Request().Context(), req.UserID, req.FileName, req.ContentType, req.Data)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to upload receipt"})
	}

	return c.JSON(http.StatusCreated, receipt)
}

// GetReceipt handles GET /receipt/:id
func (rh *receiptHandler) GetReceipt(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid receipt id"})
	}

	receipt, err := rh.Ledger.GetReceipt(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Receipt not found"})
	}

	return c.JSON(http.StatusOK, receipt)
}

// DeleteReceipt handles DELETE /receipt/:id
func (rh *receiptHandler) DeleteReceipt(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid receipt id"})
	}

	if err = rh.Ledger.DeleteReceipt(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete receipt"})
	}

	return c.NoContent(http.StatusNoContent)
}
