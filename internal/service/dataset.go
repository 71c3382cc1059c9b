package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/andresuchdata/salesdash/internal/cache"
	"github.com/andresuchdata/salesdash/internal/domain"
	"github.com/andresuchdata/salesdash/internal/sheets"
)

// Snapshot is an immutable, fully decoded copy of the three datasets.
type Snapshot struct {
	Products  []domain.Product
	Customers []domain.Customer
	Sales     []domain.Sale
	Stats     map[string]sheets.DecodeStats
	LoadedAt  time.Time
}

// SnapshotInfo summarizes a snapshot for the API.
type SnapshotInfo struct {
	Products  int                           `json:"products"`
	Customers int                           `json:"customers"`
	Sales     int                           `json:"sales"`
	Dropped   map[string]sheets.DecodeStats `json:"decode_stats"`
	LoadedAt  time.Time                     `json:"loaded_at"`
}

func (s *Snapshot) Info() SnapshotInfo {
	return SnapshotInfo{
		Products:  len(s.Products),
		Customers: len(s.Customers),
		Sales:     len(s.Sales),
		Dropped:   s.Stats,
		LoadedAt:  s.LoadedAt,
	}
}

// DataStore holds the current snapshot. Readers never see a partially
// loaded snapshot.
type DataStore struct {
	mu   sync.RWMutex
	snap *Snapshot
}

func NewDataStore() *DataStore {
	return &DataStore{snap: &Snapshot{Stats: map[string]sheets.DecodeStats{}}}
}

// Current returns the latest snapshot. Callers must not modify it.
func (s *DataStore) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Replace swaps in a new snapshot.
func (s *DataStore) Replace(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

// Fetcher returns the data rows of a dataset, header removed.
type Fetcher interface {
	Fetch(ctx context.Context, ds sheets.Dataset) ([][]string, error)
}

// Datasets names the tabs holding items, customers and sales.
type Datasets struct {
	Items     sheets.Dataset
	Customers sheets.Dataset
	Sales     sheets.Dataset
}

// Loader fetches and decodes the datasets into a DataStore.
type Loader struct {
	fetcher  Fetcher
	cache    cache.FeedCache
	datasets Datasets
	store    *DataStore
	now      func() time.Time
}

func NewLoader(fetcher Fetcher, feedCache cache.FeedCache, datasets Datasets, store *DataStore) *Loader {
	if feedCache == nil {
		feedCache = cache.NewNoopFeedCache()
	}
	return &Loader{
		fetcher:  fetcher,
		cache:    feedCache,
		datasets: datasets,
		store:    store,
		now:      time.Now,
	}
}

// Load reads the three datasets in parallel. On any failure the current
// snapshot is kept and the error returned.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	var (
		itemRows, customerRows, saleRows [][]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		itemRows, err = l.fetcher.Fetch(gctx, l.datasets.Items)
		return err
	})
	g.Go(func() error {
		var err error
		customerRows, err = l.fetcher.Fetch(gctx, l.datasets.Customers)
		return err
	})
	g.Go(func() error {
		var err error
		saleRows, err = l.fetcher.Fetch(gctx, l.datasets.Sales)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}

	products, productStats := sheets.DecodeProducts(itemRows)
	customers, customerStats := sheets.DecodeCustomers(customerRows)
	sales, saleStats := sheets.DecodeSales(saleRows)

	snap := &Snapshot{
		Products:  products,
		Customers: customers,
		Sales:     sales,
		Stats: map[string]sheets.DecodeStats{
			l.datasets.Items.Name:     productStats,
			l.datasets.Customers.Name: customerStats,
			l.datasets.Sales.Name:     saleStats,
		},
		LoadedAt: l.now().UTC(),
	}
	for name, stats := range snap.Stats {
		if stats.Dropped > 0 {
			log.Warn().
				Str("dataset", name).
				Int("dropped", stats.Dropped).
				Int("total", stats.Total).
				Str("first_reason", stats.FirstReason).
				Msg("dropped malformed rows")
		}
	}

	l.store.Replace(snap)

	log.Info().
		Int("products", len(products)).
		Int("customers", len(customers)).
		Int("sales", len(sales)).
		Dur("elapsed", time.Since(start)).
		Msg("datasets loaded")

	return snap, nil
}

// Reload drops cached documents and loads fresh data.
func (l *Loader) Reload(ctx context.Context) (*Snapshot, error) {
	if err := l.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate feed cache")
	}
	return l.Load(ctx)
}
