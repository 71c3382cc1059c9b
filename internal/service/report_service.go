package service

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/salesdash/internal/analytics"
	"github.com/andresuchdata/salesdash/internal/domain"
	"github.com/andresuchdata/salesdash/internal/export"
	"github.com/andresuchdata/salesdash/internal/storage"
)

// PerformanceQuery are the raw parameters of a grouped performance report.
type PerformanceQuery struct {
	GroupBy     string
	Revenue     string
	SalesPerson string
	Preset      string
	Start       string
	End         string
}

// GainLossQuery are the raw parameters of the gains and losses report.
type GainLossQuery struct {
	SalesPerson string
	Sort        string
	Direction   string
}

// RangeQuery selects sales for range based figures.
type RangeQuery struct {
	SalesPerson string
	Preset      string
	Start       string
	End         string
}

// BaselineResult is the baseline figure of a salesperson.
type BaselineResult struct {
	SalesPerson string  `json:"sales_person"`
	Baseline    float64 `json:"baseline"`
}

// ExportResult is a rendered workbook and, when archived, its object key.
type ExportResult struct {
	Filename   string
	Data       []byte
	ArchiveKey string
}

type ReportService struct {
	store         *DataStore
	archive       storage.ObjectStorage
	archivePrefix string
	holidays      analytics.HolidayCalendar
	loc           *time.Location
	now           func() time.Time
}

// NewReportService builds the report service. archive may be nil when no
// object storage is configured.
func NewReportService(store *DataStore, archive storage.ObjectStorage, archivePrefix string, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		store:         store,
		archive:       archive,
		archivePrefix: strings.Trim(archivePrefix, "/"),
		holidays:      analytics.ThaiHolidays,
		loc:           loc,
		now:           time.Now,
	}
}

// today returns the current instant in the configured timezone.
func (s *ReportService) today() time.Time {
	return s.now().In(s.loc)
}

func (s *ReportService) Performance(ctx context.Context, q PerformanceQuery) (domain.PerformanceReport, error) {
	dim, err := analytics.ParseDimension(q.GroupBy)
	if err != nil {
		return domain.PerformanceReport{}, err
	}
	strategy, err := analytics.ParseStrategy(q.Revenue)
	if err != nil {
		return domain.PerformanceReport{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if strategy == "" {
		strategy = domain.DefaultStrategy(dim)
	}
	r, err := resolveRange(q.Preset, q.Start, q.End, s.today())
	if err != nil {
		return domain.PerformanceReport{}, err
	}

	filter := domain.SalesFilter{SalesPerson: strings.TrimSpace(q.SalesPerson), Range: r}
	groups, err := analytics.Aggregate(s.store.Current().Sales, analytics.Options{
		Dimension: dim,
		Strategy:  strategy,
		Filter:    filter,
	})
	if err != nil {
		return domain.PerformanceReport{}, err
	}

	report := domain.PerformanceReport{
		Dimension:   dim,
		Strategy:    strategy,
		Filter:      filter,
		Rows:        analytics.Rows(groups),
		GeneratedAt: s.now().UTC(),
	}
	for _, row := range report.Rows {
		report.TotalQuantity += row.TotalQuantity
		report.TotalRevenue += row.TotalRevenue
	}
	return report, nil
}

// ExportPerformance renders the report as a workbook and archives it when
// object storage is configured. Archive failures are logged, not returned.
func (s *ReportService) ExportPerformance(ctx context.Context, q PerformanceQuery) (ExportResult, error) {
	report, err := s.Performance(ctx, q)
	if err != nil {
		return ExportResult{}, err
	}
	data, err := export.PerformanceWorkbook(report)
	if err != nil {
		return ExportResult{}, err
	}

	filename := fmt.Sprintf("performance-%s-%s.xlsx", report.Dimension, s.today().Format("20060102-150405"))
	return s.archiveExport(ctx, filename, data), nil
}

// ExportGainsLosses renders the gains and losses report as a workbook,
// archived like performance exports.
func (s *ReportService) ExportGainsLosses(ctx context.Context, q GainLossQuery) (ExportResult, error) {
	report, err := s.GainsLosses(ctx, q)
	if err != nil {
		return ExportResult{}, err
	}
	data, err := export.GainLossWorkbook(report)
	if err != nil {
		return ExportResult{}, err
	}

	filename := fmt.Sprintf("gains-losses-%s.xlsx", s.today().Format("20060102-150405"))
	return s.archiveExport(ctx, filename, data), nil
}

func (s *ReportService) archiveExport(ctx context.Context, filename string, data []byte) ExportResult {
	res := ExportResult{Filename: filename, Data: data}
	if s.archive == nil {
		return res
	}
	key := path.Join(s.archivePrefix, filename)
	if err := s.archive.UploadObject(ctx, key, data, export.ContentType); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to archive export")
		return res
	}
	res.ArchiveKey = key
	return res
}

// ListExports returns archived workbooks, newest first.
func (s *ReportService) ListExports(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.archive == nil {
		return []storage.ObjectInfo{}, nil
	}
	objects, err := s.archive.ListObjects(ctx, s.archivePrefix)
	if err != nil {
		return nil, err
	}
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].LastModified.After(objects[j].LastModified)
	})
	return objects, nil
}

// DownloadExport copies an archived workbook to destPath.
func (s *ReportService) DownloadExport(ctx context.Context, key, destPath string) error {
	if s.archive == nil {
		return fmt.Errorf("%w: object storage is not configured", ErrInvalidInput)
	}
	return s.archive.DownloadObject(ctx, key, destPath)
}

func (s *ReportService) GainsLosses(ctx context.Context, q GainLossQuery) (domain.GainLossReport, error) {
	by := analytics.GainLossSort(strings.ToLower(strings.TrimSpace(q.Sort)))
	switch by {
	case "", analytics.SortByName, analytics.SortByRevenue, analytics.SortByItems:
	default:
		return domain.GainLossReport{}, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, q.Sort)
	}
	var descending bool
	switch strings.ToLower(strings.TrimSpace(q.Direction)) {
	case "", "asc":
	case "desc":
		descending = true
	default:
		return domain.GainLossReport{}, fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, q.Direction)
	}

	report := analytics.DetectGainsLosses(s.store.Current().Sales, strings.TrimSpace(q.SalesPerson))
	report.GeneratedAt = s.now().UTC()
	if by != "" {
		for i := range report.Periods {
			analytics.SortEntries(report.Periods[i].Entries, by, descending)
		}
	}
	return report, nil
}

func (s *ReportService) Baseline(ctx context.Context, salesPerson string) BaselineResult {
	salesPerson = strings.TrimSpace(salesPerson)
	if salesPerson == "" {
		salesPerson = analytics.AllSalesPersons
	}
	return BaselineResult{
		SalesPerson: salesPerson,
		Baseline:    analytics.CalculateBaseline(s.store.Current().Sales, salesPerson, s.today()),
	}
}

// DailyAverage spreads the revenue of a range over its working days. Without
// explicit bounds the current month to date is used.
func (s *ReportService) DailyAverage(ctx context.Context, q RangeQuery) (domain.DailyAverage, error) {
	preset := q.Preset
	if preset == "" && q.Start == "" && q.End == "" {
		preset = string(analytics.PresetThisMonth)
	}
	r, err := resolveRange(preset, q.Start, q.End, s.today())
	if err != nil {
		return domain.DailyAverage{}, err
	}
	if r.Start.IsZero() || r.End.IsZero() {
		return domain.DailyAverage{}, fmt.Errorf("%w: daily average needs a bounded date range", ErrInvalidInput)
	}

	revenue := analytics.RevenueInRange(s.store.Current().Sales, q.SalesPerson, r)
	days := analytics.CountWorkingDays(r.Start, r.End, s.holidays)
	return domain.DailyAverage{
		Range:        r,
		Revenue:      revenue,
		WorkingDays:  days,
		DailyAverage: analytics.DailyAverage(revenue, days),
	}, nil
}

// Inventory lists catalog products sorted by item code. onlyShort keeps
// products with no stock left; blocked products are left out unless asked for.
func (s *ReportService) Inventory(ctx context.Context, onlyShort, includeBlocked bool) []domain.Product {
	products := s.store.Current().Products
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Blocked && !includeBlocked {
			continue
		}
		if onlyShort && p.Inventory > 0 {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemCode < out[j].ItemCode })
	return out
}

// resolveRange turns request parameters into a date range. Explicit start or
// end dates take precedence over a preset.
func resolveRange(preset, start, end string, now time.Time) (domain.DateRange, error) {
	if start != "" || end != "" {
		var r domain.DateRange
		if start != "" {
			d, ok := analytics.ParseDate(start)
			if !ok {
				return r, fmt.Errorf("%w: bad start date %q", ErrInvalidInput, start)
			}
			r.Start = d
		}
		if end != "" {
			d, ok := analytics.ParseDate(end)
			if !ok {
				return r, fmt.Errorf("%w: bad end date %q", ErrInvalidInput, end)
			}
			r.End = d
		}
		if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
			return r, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
		}
		return r, nil
	}

	r, err := analytics.PresetRange(analytics.Preset(strings.TrimSpace(preset)), now)
	if err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return r, nil
}
