// Package rickmorty is a browsing client for the public Rick and Morty
// character catalog. It combines a GraphQL catalog client, a query
// cache with cursor-ordered pagination, and a persisted favorites set
// behind one entry point.
//
// Example usage:
//
//	rm, err := rickmorty.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rm.Close()
//
//	// Page through the list
//	if err := rm.FetchNext(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range rm.Characters() {
//	    fmt.Printf("%d %s (%s)\n", c.ID, c.Name, c.Status)
//	}
//
//	// Narrow the list; the change is debounced before it triggers
//	// a new fetch
//	rm.SetFilter(characters.Filter{Status: characters.StatusAlive})
//
//	// Look up and favorite a character
//	c, err := rm.Character(ctx, 1)
//	if err == nil {
//	    _ = rm.Favorites().Add(*c)
//	}
package rickmorty

import (
	"context"

	"github.com/BehshadMoeini/rick-and-morty/pkg/characters"
	"github.com/BehshadMoeini/rick-and-morty/pkg/client"
	"github.com/BehshadMoeini/rick-and-morty/pkg/favorites"
	"github.com/BehshadMoeini/rick-and-morty/pkg/query"
)

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	o := defaults()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	catalog := o.catalog
	if catalog == nil {
		catalog = client.New(o.baseURL, o.httpClient, o.logger)
	}

	cache := query.NewCache(catalog, o.cacheConfig, o.logger)

	favs := o.favoritesStore
	if favs == nil {
		path := o.favoritesPath
		if path == "" {
			var err error
			if path, err = favorites.DefaultPath(); err != nil {
				return nil, err
			}
		}
		var err error
		if favs, err = favorites.Open(path, o.logger); err != nil {
			return nil, err
		}
	}

	return &rickmorty{
		options:   o,
		catalog:   catalog,
		cache:     cache,
		pager:     cache.NewPager(o.filter),
		debouncer: query.NewDebouncer(o.debounceWindow),
		favorites: favs,
	}, nil
}

// rickmorty is the internal implementation of the Client interface.
type rickmorty struct {
	options   *options
	catalog   query.Catalog
	cache     *query.Cache
	pager     *query.Pager
	debouncer *query.Debouncer
	favorites *favorites.Store
}

// Characters returns the accumulated list results in cursor order.
func (r *rickmorty) Characters() []characters.Character {
	return r.pager.Characters()
}

// List returns the accumulated list results, fetching the first page on
// demand when nothing has been fetched yet.
func (r *rickmorty) List(ctx context.Context) ([]characters.Character, error) {
	if len(r.pager.Characters()) == 0 && r.pager.HasMore() {
		if err := r.pager.FetchNext(ctx); err != nil {
			return nil, err
		}
	}
	return r.pager.Characters(), nil
}

// FetchNext fetches the next page of the current list, in cursor order.
func (r *rickmorty) FetchNext(ctx context.Context) error {
	return r.pager.FetchNext(ctx)
}

// HasMore reports whether further list pages exist.
func (r *rickmorty) HasMore() bool {
	return r.pager.HasMore()
}

// SetFilter replaces the list filter. The change is debounced: rapid
// successive calls collapse into one reset, and only the last filter
// wins.
func (r *rickmorty) SetFilter(f characters.Filter) {
	r.debouncer.Do(func() {
		r.pager.Reset(f)
	})
}

// Filter returns the filter of the current (settled) list.
func (r *rickmorty) Filter() characters.Filter {
	return r.pager.Filter()
}

// Character returns a single character through the cache.
func (r *rickmorty) Character(ctx context.Context, id int) (*characters.Character, error) {
	return r.cache.Character(ctx, id)
}

// CharactersByID returns a batch of characters through the cache.
func (r *rickmorty) CharactersByID(ctx context.Context, ids []int) ([]characters.Character, error) {
	return r.cache.Characters(ctx, ids)
}

// Prefetch warms the single-lookup cache for id in the background.
func (r *rickmorty) Prefetch(id int) {
	r.cache.Prefetch(id)
}

// Favorites returns the favorites store.
func (r *rickmorty) Favorites() *favorites.Store {
	return r.favorites
}

// Cache exposes the query cache, mainly for the view layer's manual
// retry affordance.
func (r *rickmorty) Cache() *query.Cache {
	return r.cache
}

// Close flushes any pending debounced filter change and releases the
// client. The cache and favorites store themselves are teardown-free.
func (r *rickmorty) Close() error {
	r.debouncer.Flush()
	return nil
}
