package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/salesdash/internal/service"
)

type SheetHandler struct {
	service *service.SheetService
}

func NewSheetHandler(service *service.SheetService) *SheetHandler {
	return &SheetHandler{service: service}
}

type appendRowRequest struct {
	Row []string `json:"row" binding:"required"`
}

// AppendRow sends one row to a sheet. 202 means the row was handed to the
// spreadsheet endpoint, not that it was stored.
func (h *SheetHandler) AppendRow(c *gin.Context) {
	var req appendRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "invalid request body", fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	}

	res, err := h.service.AppendRow(c.Request.Context(), c.Param("sheet"), req.Row)
	if err != nil {
		errorResponse(c, "failed to send row", err)
		return
	}

	status := http.StatusAccepted
	if res.Duplicate {
		status = http.StatusOK
	}
	c.JSON(status, res)
}
