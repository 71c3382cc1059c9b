package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/salesdash/internal/service"
)

type BudgetHandler struct {
	service *service.BudgetService
}

func NewBudgetHandler(service *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

type upsertFiguresRequest struct {
	Months map[string]float64 `json:"months" binding:"required"`
}

func (h *BudgetHandler) GetReport(c *gin.Context) {
	report, err := h.service.Report(c.Request.Context(), c.Query("fiscal_year"), c.Query("salesperson"))
	if err != nil {
		errorResponse(c, "failed to build budget report", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *BudgetHandler) ExportReport(c *gin.Context) {
	res, err := h.service.ExportReport(c.Request.Context(), c.Query("fiscal_year"), c.Query("salesperson"))
	if err != nil {
		errorResponse(c, "failed to export budget report", err)
		return
	}

	writeWorkbook(c, res)
}

func (h *BudgetHandler) ListFigures(c *gin.Context) {
	records, err := h.service.List(c.Request.Context(), c.Param("kind"))
	if err != nil {
		errorResponse(c, "failed to list figures", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": records, "total": len(records)})
}

func (h *BudgetHandler) GetFigures(c *gin.Context) {
	rec, err := h.service.Get(c.Request.Context(), c.Param("kind"), c.Param("fiscal_year"))
	if err != nil {
		errorResponse(c, "failed to fetch figures", err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *BudgetHandler) UpsertFigures(c *gin.Context) {
	var req upsertFiguresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "invalid request body", fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	}

	months, err := service.ParseMonthlyInput(req.Months)
	if err != nil {
		errorResponse(c, "invalid months", err)
		return
	}

	rec, err := h.service.Upsert(c.Request.Context(), c.Param("kind"), c.Param("fiscal_year"), months)
	if err != nil {
		errorResponse(c, "failed to save figures", err)
		return
	}

	c.JSON(http.StatusOK, rec)
}
