package rickmorty

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/BehshadMoeini/rick-and-morty/pkg/characters"
	"github.com/BehshadMoeini/rick-and-morty/pkg/favorites"
	"github.com/BehshadMoeini/rick-and-morty/pkg/logging"
	"github.com/BehshadMoeini/rick-and-morty/pkg/query"
)

// Option is a function that configures a client instance.
type Option func(*options) error

// options holds the configured state for a client.
type options struct {
	baseURL        string
	httpClient     *http.Client
	logger         *zerolog.Logger
	cacheConfig    query.Config
	debounceWindow time.Duration
	filter         characters.Filter
	favoritesPath  string
	favoritesStore *favorites.Store
	catalog        query.Catalog
}

// defaults returns the default options.
func defaults() *options {
	return &options{
		logger:      logging.Default(),
		cacheConfig: query.DefaultConfig(),
	}
}

// WithBaseURL configures the catalog endpoint URL.
func WithBaseURL(url string) Option {
	return func(o *options) error {
		o.baseURL = url
		return nil
	}
}

// WithHTTPClient configures the HTTP client used for catalog requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) error {
		o.httpClient = c
		return nil
	}
}

// WithLogger configures the logger used by all components.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}

// WithCacheConfig configures staleness windows, retry budgets, and the
// store cleanup interval. Zero fields keep their defaults.
func WithCacheConfig(cfg query.Config) Option {
	return func(o *options) error {
		o.cacheConfig = cfg
		return nil
	}
}

// WithDebounceWindow configures how long filter changes are debounced
// before triggering a fetch.
func WithDebounceWindow(window time.Duration) Option {
	return func(o *options) error {
		o.debounceWindow = window
		return nil
	}
}

// WithFilter configures the initial list filter.
func WithFilter(f characters.Filter) Option {
	return func(o *options) error {
		o.filter = f
		return nil
	}
}

// WithFavoritesPath configures where the favorites set is persisted.
func WithFavoritesPath(path string) Option {
	return func(o *options) error {
		o.favoritesPath = path
		return nil
	}
}

// WithFavoritesStore injects a pre-built favorites store, bypassing
// file persistence setup. Useful for tests.
func WithFavoritesStore(s *favorites.Store) Option {
	return func(o *options) error {
		o.favoritesStore = s
		return nil
	}
}

// WithCatalog injects a catalog implementation, bypassing the GraphQL
// client. Useful for tests.
func WithCatalog(c query.Catalog) Option {
	return func(o *options) error {
		o.catalog = c
		return nil
	}
}
