package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/salesdash/internal/analytics"
	"github.com/andresuchdata/salesdash/internal/domain"
	"github.com/andresuchdata/salesdash/internal/export"
	"github.com/andresuchdata/salesdash/internal/repository"
)

// Sources of an actual figure on a budget line.
const (
	ActualSourceManual = "manual"
	ActualSourceSales  = "sales"
)

// Mirror sheet names for admin entered figures.
const (
	BudgetSheet = "Budget"
	ActualSheet = "Actual"
)

type BudgetService struct {
	budgets repository.BudgetRepository
	actuals repository.ActualRepository
	store   *DataStore
	sheets  *SheetService
	loc     *time.Location
	now     func() time.Time
}

// NewBudgetService wires the budget and actual repositories. sheetWriter may
// be nil; when set every saved month is mirrored to the spreadsheet.
func NewBudgetService(budgets repository.BudgetRepository, actuals repository.ActualRepository, store *DataStore, sheetWriter *SheetService, loc *time.Location) *BudgetService {
	if loc == nil {
		loc = time.UTC
	}
	return &BudgetService{
		budgets: budgets,
		actuals: actuals,
		store:   store,
		sheets:  sheetWriter,
		loc:     loc,
		now:     time.Now,
	}
}

// ParseMonthlyInput validates month names of a partial update.
func ParseMonthlyInput(in map[string]float64) (domain.MonthlyFigures, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: no months given", ErrInvalidInput)
	}
	out := make(domain.MonthlyFigures, len(in))
	for name, v := range in {
		m, err := domain.ParseFiscalMonth(name)
		if err != nil {
			return nil, err
		}
		out[m] = v
	}
	return out, nil
}

func (s *BudgetService) repo(kind string) (repository.FiguresRepository, string, error) {
	switch strings.ToLower(kind) {
	case "budget", "budgets":
		return s.budgets, BudgetSheet, nil
	case "actual", "actuals":
		return s.actuals, ActualSheet, nil
	}
	return nil, "", fmt.Errorf("%w: unknown figures kind %q", ErrInvalidInput, kind)
}

// Get returns the stored record of kind ("budget" or "actual") for a fiscal year label.
func (s *BudgetService) Get(ctx context.Context, kind, fiscalYear string) (*domain.FiscalFigures, error) {
	repo, _, err := s.repo(kind)
	if err != nil {
		return nil, err
	}
	fy, err := domain.ParseFiscalYear(fiscalYear)
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, fy)
}

func (s *BudgetService) List(ctx context.Context, kind string) ([]*domain.FiscalFigures, error) {
	repo, _, err := s.repo(kind)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

// Upsert merges months into the stored record of kind for a fiscal year.
func (s *BudgetService) Upsert(ctx context.Context, kind, fiscalYear string, months domain.MonthlyFigures) (*domain.FiscalFigures, error) {
	repo, sheet, err := s.repo(kind)
	if err != nil {
		return nil, err
	}
	fy, err := domain.ParseFiscalYear(fiscalYear)
	if err != nil {
		return nil, err
	}

	rec, err := repo.Upsert(ctx, fy, months)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("kind", kind).
		Str("fiscal_year", rec.FiscalYear).
		Int("months", len(months)).
		Int("version", rec.Version).
		Msg("fiscal figures saved")

	if s.sheets != nil && s.sheets.Enabled() {
		for _, m := range domain.FiscalMonths {
			v, ok := months[m]
			if !ok {
				continue
			}
			row := []string{rec.FiscalYear, string(m), strconv.FormatFloat(v, 'f', 2, 64), strconv.Itoa(rec.Version)}
			if _, err := s.sheets.AppendRow(ctx, sheet, row); err != nil {
				log.Warn().Err(err).Str("sheet", sheet).Str("month", string(m)).Msg("failed to mirror figures to sheet")
			}
		}
	}
	return rec, nil
}

func (s *BudgetService) figures(ctx context.Context, repo repository.FiguresRepository, fy domain.FiscalYear) (domain.MonthlyFigures, error) {
	rec, err := repo.Get(ctx, fy)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.MonthlyFigures{}, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.Months, nil
}

// Report builds the budget versus actual view of a fiscal year. Actuals come
// from the admin entered record when a month was entered, otherwise from the
// sales sheet. The month in progress compares against a pro-rated budget.
func (s *BudgetService) Report(ctx context.Context, fiscalYear, salesPerson string) (domain.BudgetReport, error) {
	today := analytics.Civil(s.now().In(s.loc))

	current := domain.FiscalYearOf(today)
	currentMonth := domain.FiscalMonthOf(today.Month())

	fy := current
	if strings.TrimSpace(fiscalYear) != "" {
		var err error
		fy, err = domain.ParseFiscalYear(fiscalYear)
		if err != nil {
			return domain.BudgetReport{}, err
		}
	}

	budget, err := s.figures(ctx, s.budgets, fy)
	if err != nil {
		return domain.BudgetReport{}, err
	}
	actual, err := s.figures(ctx, s.actuals, fy)
	if err != nil {
		return domain.BudgetReport{}, err
	}
	lastYear, err := s.figures(ctx, s.actuals, fy.Previous())
	if err != nil {
		return domain.BudgetReport{}, err
	}

	sales := s.store.Current().Sales
	fromSales := analytics.MonthlyTotals(sales, salesPerson, 0)

	report := domain.BudgetReport{
		FiscalYear: fy.String(),
		Lines:      make([]domain.BudgetMonthLine, 0, len(domain.FiscalMonths)),
		Baseline:   analytics.CalculateBaseline(sales, salesPerson, today),
	}

	for _, m := range domain.FiscalMonths {
		start := fy.MonthStart(m, time.UTC)
		key := analytics.MonthKey(start)
		prevKey := analytics.MonthKey(start.AddDate(-1, 0, 0))

		line := domain.BudgetMonthLine{
			Month:        m,
			MonthKey:     key,
			Budget:       budget[m],
			Actual:       fromSales[key],
			ActualSource: ActualSourceSales,
		}
		if v, ok := actual[m]; ok {
			line.Actual = v
			line.ActualSource = ActualSourceManual
		}
		if v, ok := lastYear[m]; ok {
			line.LastYearActual = v
		} else {
			line.LastYearActual = fromSales[prevKey]
		}

		if fy == current && m == currentMonth {
			line.Partial = true
			line.Budget = analytics.PartialMonthFigure(line.Budget, start.Year(), start.Month(), today.Day())
		}

		line.VsBudget = analytics.CalculateVariance(line.Actual, line.Budget)
		line.VsLastYear = analytics.CalculateVariance(line.Actual, line.LastYearActual)

		if !start.After(today) {
			report.YTDBudget += line.Budget
			report.YTDActual += line.Actual
		}
		report.Lines = append(report.Lines, line)
	}

	switch {
	case fy == current:
		report.YTDRange = analytics.YTDDateRange(today)
	case fy.StartYear < current.StartYear:
		report.YTDRange = domain.DateRange{Start: fy.Start(time.UTC), End: fy.End(time.UTC)}
	}
	report.YTDVsBudget = analytics.CalculateVariance(report.YTDActual, report.YTDBudget)

	return report, nil
}

// ExportReport renders the budget report of a fiscal year as a workbook.
func (s *BudgetService) ExportReport(ctx context.Context, fiscalYear, salesPerson string) (ExportResult, error) {
	report, err := s.Report(ctx, fiscalYear, salesPerson)
	if err != nil {
		return ExportResult{}, err
	}
	data, err := export.BudgetWorkbook(report)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{
		Filename: fmt.Sprintf("budget-%s.xlsx", report.FiscalYear),
		Data:     data,
	}, nil
}
