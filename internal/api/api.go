// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/salesdash/internal/api/handlers"
	"github.com/andresuchdata/salesdash/internal/api/middleware"
	"github.com/andresuchdata/salesdash/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	ReportService *service.ReportService
	BudgetService *service.BudgetService
	SheetService  *service.SheetService
	Loader        *service.Loader
	Store         *service.DataStore
}

type Options struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(services *Services, opts Options) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Archive-Key"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.AllowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(opts.AllowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")
	apiGroup.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))

	if services != nil {
		if services.ReportService != nil {
			reportHandler := handlers.NewReportHandler(services.ReportService)
			reportGroup := apiGroup.Group("/reports")
			{
				reportGroup.GET("/performance", reportHandler.GetPerformance)
				reportGroup.GET("/performance/export", reportHandler.ExportPerformance)
				reportGroup.GET("/exports", reportHandler.ListExports)
				reportGroup.GET("/gains-losses", reportHandler.GetGainsLosses)
				reportGroup.GET("/gains-losses/export", reportHandler.ExportGainsLosses)
				reportGroup.GET("/baseline", reportHandler.GetBaseline)
				reportGroup.GET("/daily-average", reportHandler.GetDailyAverage)
				reportGroup.GET("/inventory", reportHandler.GetInventory)
			}
		}

		if services.BudgetService != nil {
			budgetHandler := handlers.NewBudgetHandler(services.BudgetService)
			apiGroup.GET("/reports/budget", budgetHandler.GetReport)
			apiGroup.GET("/reports/budget/export", budgetHandler.ExportReport)

			figuresGroup := apiGroup.Group("/figures/:kind")
			{
				figuresGroup.GET("", budgetHandler.ListFigures)
				figuresGroup.GET("/:fiscal_year", budgetHandler.GetFigures)
				figuresGroup.PUT("/:fiscal_year", budgetHandler.UpsertFigures)
			}
		}

		if services.SheetService != nil {
			sheetHandler := handlers.NewSheetHandler(services.SheetService)
			apiGroup.POST("/sheets/:sheet/rows", sheetHandler.AppendRow)
		}

		if services.Loader != nil && services.Store != nil {
			dataHandler := handlers.NewDataHandler(services.Loader, services.Store)
			dataGroup := apiGroup.Group("/data")
			{
				dataGroup.POST("/reload", dataHandler.Reload)
				dataGroup.GET("/status", dataHandler.Status)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
