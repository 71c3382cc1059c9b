package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryPolicy bounds how hard the feed tries before giving up on a dataset.
type RetryPolicy struct {
	Attempts       int
	BaseDelay      time.Duration
	AttemptTimeout time.Duration
}

var DefaultRetryPolicy = RetryPolicy{
	Attempts:       3,
	BaseDelay:      2 * time.Second,
	AttemptTimeout: 10 * time.Second,
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.Attempts <= 0 {
		p.Attempts = DefaultRetryPolicy.Attempts
	}
	if p.BaseDelay < 0 {
		p.BaseDelay = 0
	}
	if p.AttemptTimeout <= 0 {
		p.AttemptTimeout = DefaultRetryPolicy.AttemptTimeout
	}
	return p
}

// RowCache stores fetched documents, header included.
type RowCache interface {
	GetRows(ctx context.Context, spreadsheetID, tab string) ([][]string, bool)
	SetRows(ctx context.Context, spreadsheetID, tab string, rows [][]string)
}

// Feed reads datasets from a Source with retries and an optional cache.
type Feed struct {
	source Source
	cache  RowCache
	policy RetryPolicy
}

func NewFeed(source Source, cache RowCache, policy RetryPolicy) *Feed {
	return &Feed{
		source: source,
		cache:  cache,
		policy: policy.normalized(),
	}
}

// Fetch returns the data rows of ds with the header row removed. A tab with
// no rows, or only a header, yields an empty slice.
func (f *Feed) Fetch(ctx context.Context, ds Dataset) ([][]string, error) {
	if f.cache != nil {
		if rows, ok := f.cache.GetRows(ctx, ds.SpreadsheetID, ds.Tab); ok {
			log.Debug().Str("dataset", ds.Name).Int("rows", len(rows)).Msg("sheet served from cache")
			return dropHeader(rows), nil
		}
	}

	rows, err := f.fetchWithRetry(ctx, ds)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		f.cache.SetRows(ctx, ds.SpreadsheetID, ds.Tab, rows)
	}
	return dropHeader(rows), nil
}

func (f *Feed) fetchWithRetry(ctx context.Context, ds Dataset) ([][]string, error) {
	delay := f.policy.BaseDelay
	var lastErr error

	attempt := 0
	for attempt < f.policy.Attempts {
		attempt++

		attemptCtx, cancel := context.WithTimeout(ctx, f.policy.AttemptTimeout)
		start := time.Now()
		rows, err := f.source.Rows(attemptCtx, ds)
		cancel()
		if err == nil {
			log.Debug().
				Str("dataset", ds.Name).
				Int("rows", len(rows)).
				Int("attempt", attempt).
				Dur("elapsed", time.Since(start)).
				Msg("sheet fetched")
			return rows, nil
		}
		lastErr = err

		var te *TransportError
		if !errors.As(err, &te) || !te.IsRetryable() {
			break
		}
		if ctx.Err() != nil || attempt == f.policy.Attempts {
			break
		}

		if te.RateLimited() {
			delay *= 2
		}
		log.Warn().
			Err(err).
			Str("dataset", ds.Name).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Msg("sheet fetch failed, retrying")

		if err := sleep(ctx, delay); err != nil {
			break
		}
	}

	var te *TransportError
	if errors.As(lastErr, &te) {
		te.Attempts = attempt
		return nil, te
	}
	return nil, fmt.Errorf("fetch %s: %w", ds.Name, lastErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
