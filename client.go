package rickmorty

import (
	"context"

	"github.com/BehshadMoeini/rick-and-morty/pkg/characters"
	"github.com/BehshadMoeini/rick-and-morty/pkg/favorites"
	"github.com/BehshadMoeini/rick-and-morty/pkg/query"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*rickmorty)(nil)

// Browser pages through the filtered character list.
type Browser interface {

	// Characters returns the accumulated results in cursor order.
	Characters() []characters.Character

	// List returns the accumulated results, fetching page 1 on demand.
	List(ctx context.Context) ([]characters.Character, error)

	// FetchNext fetches the next page; no-op while one is in flight.
	FetchNext(ctx context.Context) error

	// HasMore reports whether further pages exist.
	HasMore() bool

	// SetFilter replaces the list filter, debounced.
	SetFilter(f characters.Filter)

	// Filter returns the current list filter.
	Filter() characters.Filter
}

// Lookup resolves individual characters through the cache.
type Lookup interface {

	// Character returns one character by identifier.
	Character(ctx context.Context, id int) (*characters.Character, error)

	// CharactersByID resolves a set of identifiers in one round trip.
	CharactersByID(ctx context.Context, ids []int) ([]characters.Character, error)

	// Prefetch warms the cache for an anticipated lookup.
	Prefetch(id int)
}

// Client is the catalog browsing client.
type Client interface {

	// Browser pages through the filtered character list
	Browser

	// Lookup resolves individual characters
	Lookup

	// Favorites returns the persisted favorites set
	Favorites() *favorites.Store

	// Cache exposes the query cache
	Cache() *query.Cache

	// Close flushes pending debounced work
	Close() error
}
