// Package app wires configuration into the services shared by the HTTP
// server and the command line tool.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/salesdash/internal/cache"
	"github.com/andresuchdata/salesdash/internal/config"
	"github.com/andresuchdata/salesdash/internal/repository"
	"github.com/andresuchdata/salesdash/internal/repository/postgres"
	"github.com/andresuchdata/salesdash/internal/service"
	"github.com/andresuchdata/salesdash/internal/sheets"
	"github.com/andresuchdata/salesdash/internal/storage"
)

type App struct {
	Store   *service.DataStore
	Loader  *service.Loader
	Reports *service.ReportService
	Budgets *service.BudgetService
	Sheets  *service.SheetService

	db *postgres.DB
}

// New builds every component from cfg. It does not load the datasets.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	var source sheets.Source
	switch cfg.Sheets.Source {
	case "api":
		apiSource, err := sheets.NewAPISource(ctx, cfg.Sheets.CredentialsJSON)
		if err != nil {
			return nil, err
		}
		source = apiSource
	case "csv", "":
		source = sheets.NewCSVSource(cfg.Sheets.FeedBaseURL, httpClient)
	default:
		return nil, fmt.Errorf("unknown sheets source %q", cfg.Sheets.Source)
	}

	feedCache, err := cache.NewFeedCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("feed cache unavailable, continuing without it")
		feedCache = cache.NewNoopFeedCache()
	}

	feed := sheets.NewFeed(source, feedCache, sheets.RetryPolicy{
		Attempts:       cfg.Sheets.Attempts,
		BaseDelay:      cfg.Sheets.BaseDelay,
		AttemptTimeout: cfg.Sheets.AttemptTimeout,
	})

	a := &App{Store: service.NewDataStore()}
	a.Loader = service.NewLoader(feed, feedCache, Datasets(cfg.Sheets), a.Store)

	var (
		budgets  repository.BudgetRepository
		actuals  repository.ActualRepository
		writeLog repository.WriteLog
	)
	if cfg.Database.Enabled {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.db = db
		budgets = postgres.NewBudgetRepository(db)
		actuals = postgres.NewActualRepository(db)
		writeLog = postgres.NewWriteLogRepository(db)
	} else {
		log.Info().Msg("database disabled, budget and actual figures are kept in memory")
		budgets = repository.NewMemoryFiguresRepository()
		actuals = repository.NewMemoryFiguresRepository()
		writeLog = repository.NewMemoryWriteLog()
	}

	var archive storage.ObjectStorage
	if cfg.Storage.Enabled {
		s3, err := storage.NewS3Client(storage.S3Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		archive = s3
	}

	writer := sheets.NewWriter(cfg.Sheets.WriteEndpoint, cfg.Sheets.WriteSheetID, httpClient)
	a.Sheets = service.NewSheetService(writer, writeLog)
	a.Reports = service.NewReportService(a.Store, archive, cfg.Storage.Prefix, cfg.App.Location)
	a.Budgets = service.NewBudgetService(budgets, actuals, a.Store, a.Sheets, cfg.App.Location)

	return a, nil
}

// Datasets maps the sheet configuration to the three dataset descriptors.
func Datasets(cfg config.SheetsConfig) service.Datasets {
	return service.Datasets{
		Items:     sheets.Dataset{Name: "items", SpreadsheetID: cfg.ItemsSheetID, Tab: cfg.ItemsTab},
		Customers: sheets.Dataset{Name: "customers", SpreadsheetID: cfg.CustomersSheetID, Tab: cfg.CustomersTab},
		Sales:     sheets.Dataset{Name: "sales", SpreadsheetID: cfg.SalesSheetID, Tab: cfg.SalesTab},
	}
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
