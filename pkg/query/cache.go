// Package query wraps the catalog client with key-based caching,
// request de-duplication, bounded retry, cursor-ordered pagination, and
// anticipatory prefetch. It is the layer the view side talks to; the
// raw catalog client underneath never sees duplicate concurrent work.
package query

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/BehshadMoeini/rick-and-morty/pkg/characters"
	"github.com/BehshadMoeini/rick-and-morty/pkg/errors"
	"github.com/BehshadMoeini/rick-and-morty/pkg/logging"
)

// Catalog is the slice of the catalog client this layer consumes.
type Catalog interface {
	ListCharacters(ctx context.Context, page int, filter characters.Filter) (*characters.Page, error)
	GetCharacter(ctx context.Context, id int) (*characters.Character, error)
	GetCharacters(ctx context.Context, ids []int) ([]characters.Character, error)
}

// entry is one cached result with its fetch timestamp. Freshness is
// decided against the timestamp; the store's own TTL implements the
// idle-eviction window and is refreshed on every observation.
type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache is the query cache and fetch coordinator. Safe for concurrent
// use; at most one fetch per key is in flight at any time.
type Cache struct {
	catalog Catalog
	cfg     Config
	store   *gocache.Cache
	group   singleflight.Group
	logger  *zerolog.Logger

	// newBackOff is swappable so tests don't sleep through real
	// backoff intervals.
	newBackOff func() backoff.BackOff
}

// NewCache creates a query cache over the given catalog client.
// Zero-valued config fields take their defaults.
func NewCache(catalog Catalog, cfg Config, logger *zerolog.Logger) *Cache {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = logging.Default()
	}
	return &Cache{
		catalog: catalog,
		cfg:     cfg,
		store:   gocache.New(cfg.Single.Idle, cfg.CleanupInterval),
		logger:  logger,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

// List returns one page of a filtered list query, served from cache
// when fresh.
func (c *Cache) List(ctx context.Context, page int, filter characters.Filter) (*characters.Page, error) {
	if page < 1 {
		page = 1
	}
	v, err := c.fetch(ctx, listKey(page, filter), c.cfg.List, c.cfg.ListRetries, func(ctx context.Context) (any, error) {
		return c.catalog.ListCharacters(ctx, page, filter)
	})
	if err != nil {
		return nil, err
	}
	return v.(*characters.Page), nil
}

// Character returns a single character by identifier, served from cache
// when fresh. A definitive not-found propagates immediately and is
// never retried.
func (c *Cache) Character(ctx context.Context, id int) (*characters.Character, error) {
	v, err := c.fetch(ctx, detailKey(id), c.cfg.Single, c.cfg.SingleRetries, func(ctx context.Context) (any, error) {
		return c.catalog.GetCharacter(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*characters.Character), nil
}

// Characters returns a batch of characters by identifier set, served
// from cache when fresh. The key is set-structural: input order and
// duplicates do not split cache entries.
func (c *Cache) Characters(ctx context.Context, ids []int) ([]characters.Character, error) {
	if len(ids) == 0 {
		return []characters.Character{}, nil
	}
	v, err := c.fetch(ctx, batchKey(ids), c.cfg.Batch, c.cfg.BatchRetries, func(ctx context.Context) (any, error) {
		return c.catalog.GetCharacters(ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	return v.([]characters.Character), nil
}

// Prefetch populates the single-lookup entry for id in the background
// when it is absent or stale. It never blocks and never surfaces
// errors: the user has not asked for this data yet, and an explicit
// request later will retry normally.
func (c *Cache) Prefetch(id int) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := c.Character(ctx, id); err != nil {
			c.logger.Debug().Err(err).Int("id", id).Msg("Prefetch failed")
		}
	}()
}

// Flush drops every cached entry. Exposed for the view layer's manual
// retry affordance.
func (c *Cache) Flush() {
	c.store.Flush()
}

// ItemCount returns the number of live cache entries.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// fetch serves key from cache when fresh, otherwise coalesces callers
// through singleflight and re-fetches with bounded retry.
func (c *Cache) fetch(ctx context.Context, key string, w Windows, retries uint64, fn func(context.Context) (any, error)) (any, error) {
	if v, ok := c.store.Get(key); ok {
		e := v.(entry)
		if time.Since(e.fetchedAt) < w.Fresh {
			// Observation keeps the entry alive: reset the idle clock.
			c.store.Set(key, e, w.Idle)
			return e.value, nil
		}
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		// A fetch that completed while this caller waited for the
		// flight slot counts as fresh enough.
		if v, ok := c.store.Get(key); ok {
			e := v.(entry)
			if time.Since(e.fetchedAt) < w.Fresh {
				return e.value, nil
			}
		}

		val, err := c.retry(ctx, key, retries, fn)
		if err != nil {
			return nil, err
		}
		c.store.Set(key, entry{value: val, fetchedAt: time.Now()}, w.Idle)
		return val, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug().Str("key", key).Msg("Coalesced concurrent fetch")
	}
	return v, nil
}

// retry runs fn with exponential backoff up to the configured retry
// budget. Errors the taxonomy marks non-retryable, not-found above all,
// stop immediately: retrying a definitive absence only wastes a round
// trip and delays user-visible feedback.
func (c *Cache) retry(ctx context.Context, key string, retries uint64, fn func(context.Context) (any, error)) (any, error) {
	var result any
	attempt := 0
	op := func() error {
		attempt++
		v, err := fn(ctx)
		if err != nil {
			if !errors.Retryable(err) {
				return backoff.Permanent(err)
			}
			c.logger.Warn().
				Err(err).
				Str("key", key).
				Int("attempt", attempt).
				Msg("Fetch failed, will retry")
			return err
		}
		result = v
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), retries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return nil, err
	}
	return result, nil
}
