package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/andresuchdata/salesdash/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const feedKeyPrefix = "sheets:feed"

// FeedCache keeps recently fetched sheet documents so that reloads within the
// TTL do not hit the spreadsheet backend. Only raw rows are cached; reports
// are always recomputed.
type FeedCache interface {
	GetRows(ctx context.Context, spreadsheetID, tab string) ([][]string, bool)
	SetRows(ctx context.Context, spreadsheetID, tab string, rows [][]string)
	InvalidateAll(ctx context.Context) error
}

type redisFeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopFeedCache struct{}

// NewFeedCache connects to redis when caching is enabled and returns a no-op
// cache otherwise.
func NewFeedCache(cfg config.CacheConfig) (FeedCache, error) {
	if !cfg.Enabled {
		return NewNoopFeedCache(), nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisFeedCache{client: client, ttl: ttl}, nil
}

func NewNoopFeedCache() FeedCache {
	return &noopFeedCache{}
}

func (c *redisFeedCache) GetRows(ctx context.Context, spreadsheetID, tab string) ([][]string, bool) {
	key := BuildFeedKey(spreadsheetID, tab)

	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("feed cache read failed")
		return nil, false
	}

	var rows [][]string
	if err := json.Unmarshal(payload, &rows); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("feed cache entry is corrupt")
		return nil, false
	}
	return rows, true
}

func (c *redisFeedCache) SetRows(ctx context.Context, spreadsheetID, tab string, rows [][]string) {
	key := BuildFeedKey(spreadsheetID, tab)

	payload, err := json.Marshal(rows)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("encode feed cache entry")
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("feed cache write failed")
	}
}

func (c *redisFeedCache) InvalidateAll(ctx context.Context) error {
	if err := deleteKeysWithPrefix(ctx, c.client, feedKeyPrefix, scanBatchSize); err != nil {
		return fmt.Errorf("invalidate feed cache: %w", err)
	}
	return nil
}

func (n *noopFeedCache) GetRows(ctx context.Context, spreadsheetID, tab string) ([][]string, bool) {
	return nil, false
}

func (n *noopFeedCache) SetRows(ctx context.Context, spreadsheetID, tab string, rows [][]string) {}

func (n *noopFeedCache) InvalidateAll(ctx context.Context) error {
	return nil
}

// BuildFeedKey derives the redis key of one spreadsheet tab.
func BuildFeedKey(spreadsheetID, tab string) string {
	hash := sha1.Sum([]byte(spreadsheetID + "|" + tab))
	return fmt.Sprintf("%s:%s", feedKeyPrefix, hex.EncodeToString(hash[:]))
}
