package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/andresuchdata/salesdash/internal/domain"
)

type memoryFiguresRepository struct {
	mu      sync.RWMutex
	records map[string]domain.FiscalFigures
	now     func() time.Time
}

// NewMemoryFiguresRepository keeps records in process memory. It backs the
// server when no database is configured and is used in tests.
func NewMemoryFiguresRepository() *memoryFiguresRepository {
	return &memoryFiguresRepository{
		records: make(map[string]domain.FiscalFigures),
		now:     time.Now,
	}
}

func (r *memoryFiguresRepository) Get(ctx context.Context, fy domain.FiscalYear) (*domain.FiscalFigures, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[fy.String()]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(rec), nil
}

func (r *memoryFiguresRepository) List(ctx context.Context) ([]*domain.FiscalFigures, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.FiscalFigures, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, clone(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FiscalYear < out[j].FiscalYear })
	return out, nil
}

func (r *memoryFiguresRepository) Upsert(ctx context.Context, fy domain.FiscalYear, months domain.MonthlyFigures) (*domain.FiscalFigures, error) {
	if err := ValidateMonths(months); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec := r.records[fy.String()]
	rec.FiscalYear = fy.String()
	rec.Months = rec.Months.Merge(months)
	rec.Total = rec.Months.Total()
	rec.Version++
	rec.LastModified = r.now().UTC()
	r.records[rec.FiscalYear] = rec

	return clone(rec), nil
}

func clone(rec domain.FiscalFigures) *domain.FiscalFigures {
	out := rec
	out.Months = domain.MonthlyFigures{}.Merge(rec.Months)
	return &out
}
