package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/pharmreg_api/internal/metrics"
	"github.com/GTDGit/pharmreg_api/internal/models"
)

// Store is the key-value subset of RedisClient the reference cache uses.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ReferenceCache keeps pltab lookup results per (column, language).
// Failures are logged and reported as misses; callers fall back to the database.
// A nil *ReferenceCache is a valid, always-missing cache.
type ReferenceCache struct {
	store Store
	ttl   time.Duration
}

// NewReferenceCache creates a ReferenceCache on top of store.
func NewReferenceCache(store Store, ttl time.Duration) *ReferenceCache {
	return &ReferenceCache{store: store, ttl: ttl}
}

// key returns the Redis key for one lookup list: pltab:{column}:{lang}.
func (c *ReferenceCache) key(column, lang string) string {
	return fmt.Sprintf("pltab:%s:%s", column, lang)
}

// Get returns the cached entries and whether they were found.
func (c *ReferenceCache) Get(ctx context.Context, column, lang string) ([]models.PltabEntry, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.store.Get(ctx, c.key(column, lang))
	if errors.Is(err, ErrMiss) {
		metrics.ReferenceCache.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		metrics.ReferenceCache.WithLabelValues("error").Inc()
		log.Warn().Err(err).Str("column", column).Str("lang", lang).Msg("reference cache read failed")
		return nil, false
	}

	var entries []models.PltabEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		metrics.ReferenceCache.WithLabelValues("error").Inc()
		log.Warn().Err(err).Str("column", column).Str("lang", lang).Msg("reference cache entry corrupt")
		return nil, false
	}

	metrics.ReferenceCache.WithLabelValues("hit").Inc()
	return entries, true
}

// Put stores entries for (column, lang) with the configured TTL.
func (c *ReferenceCache) Put(ctx context.Context, column, lang string, entries []models.PltabEntry) {
	if c == nil {
		return
	}

	data, err := json.Marshal(entries)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal reference entries")
		return
	}
	if err := c.store.Set(ctx, c.key(column, lang), string(data), c.ttl); err != nil {
		log.Warn().Err(err).Str("column", column).Str("lang", lang).Msg("reference cache write failed")
	}
}

// Invalidate drops the cached list for (column, lang).
func (c *ReferenceCache) Invalidate(ctx context.Context, column, lang string) {
	if c == nil {
		return
	}

	if err := c.store.Delete(ctx, c.key(column, lang)); err != nil {
		log.Warn().Err(err).Str("column", column).Str("lang", lang).Msg("reference cache eviction failed")
	}
}
