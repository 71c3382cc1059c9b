package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/salesdash/internal/export"
	"github.com/andresuchdata/salesdash/internal/service"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) parsePerformanceQuery(c *gin.Context) service.PerformanceQuery {
	return service.PerformanceQuery{
		GroupBy:     strings.TrimSpace(c.Query("group_by")),
		Revenue:     strings.TrimSpace(c.Query("revenue")),
		SalesPerson: strings.TrimSpace(c.Query("salesperson")),
		Preset:      strings.TrimSpace(c.Query("preset")),
		Start:       strings.TrimSpace(c.Query("start")),
		End:         strings.TrimSpace(c.Query("end")),
	}
}

func (h *ReportHandler) parseGainLossQuery(c *gin.Context) service.GainLossQuery {
	return service.GainLossQuery{
		SalesPerson: strings.TrimSpace(c.Query("salesperson")),
		Sort:        c.Query("sort"),
		Direction:   c.Query("dir"),
	}
}

func (h *ReportHandler) GetPerformance(c *gin.Context) {
	report, err := h.service.Performance(c.Request.Context(), h.parsePerformanceQuery(c))
	if err != nil {
		errorResponse(c, "failed to build performance report", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) ExportPerformance(c *gin.Context) {
	res, err := h.service.ExportPerformance(c.Request.Context(), h.parsePerformanceQuery(c))
	if err != nil {
		errorResponse(c, "failed to export performance report", err)
		return
	}

	writeWorkbook(c, res)
}

func (h *ReportHandler) ExportGainsLosses(c *gin.Context) {
	res, err := h.service.ExportGainsLosses(c.Request.Context(), h.parseGainLossQuery(c))
	if err != nil {
		errorResponse(c, "failed to export gains and losses report", err)
		return
	}

	writeWorkbook(c, res)
}

func writeWorkbook(c *gin.Context, res service.ExportResult) {
	c.Header("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	if res.ArchiveKey != "" {
		c.Header("X-Archive-Key", res.ArchiveKey)
	}
	c.Data(http.StatusOK, export.ContentType, res.Data)
}

func (h *ReportHandler) ListExports(c *gin.Context) {
	objects, err := h.service.ListExports(c.Request.Context())
	if err != nil {
		errorResponse(c, "failed to list exports", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": objects, "total": len(objects)})
}

func (h *ReportHandler) GetGainsLosses(c *gin.Context) {
	report, err := h.service.GainsLosses(c.Request.Context(), h.parseGainLossQuery(c))
	if err != nil {
		errorResponse(c, "failed to build gains and losses report", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) GetBaseline(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Baseline(c.Request.Context(), c.Query("salesperson")))
}

func (h *ReportHandler) GetDailyAverage(c *gin.Context) {
	res, err := h.service.DailyAverage(c.Request.Context(), service.RangeQuery{
		SalesPerson: strings.TrimSpace(c.Query("salesperson")),
		Preset:      strings.TrimSpace(c.Query("preset")),
		Start:       strings.TrimSpace(c.Query("start")),
		End:         strings.TrimSpace(c.Query("end")),
	})
	if err != nil {
		errorResponse(c, "failed to compute daily average", err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ReportHandler) GetInventory(c *gin.Context) {
	onlyShort, _ := strconv.ParseBool(c.DefaultQuery("only_short", "false"))
	includeBlocked, _ := strconv.ParseBool(c.DefaultQuery("include_blocked", "false"))

	items := h.service.Inventory(c.Request.Context(), onlyShort, includeBlocked)
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}
