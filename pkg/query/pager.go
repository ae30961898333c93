package query

import (
	"context"
	"sync"

	"github.com/BehshadMoeini/rick-and-morty/pkg/characters"
)

// Pager accumulates the pages of one filtered list query into a single
// flattened, order-preserving sequence for infinite-scroll consumption.
//
// Pages are requested strictly in cursor order: page N+1 is never
// started before page N has settled, so the accumulated sequence is
// gap-free and duplicate-free. FetchNext is a no-op while a fetch is
// already in flight. Changing the filter resets the accumulation and
// bumps a generation counter so a still-in-flight fetch for the old
// filter cannot corrupt the new state.
type Pager struct {
	mu         sync.Mutex
	cache      *Cache
	filter     characters.Filter
	pages      []*characters.Page
	fetched    map[int]bool
	next       *int
	inFlight   bool
	generation uint64
}

// NewPager creates a pager over this cache for the given filter.
func (c *Cache) NewPager(filter characters.Filter) *Pager {
	first := 1
	return &Pager{
		cache:   c,
		filter:  filter,
		fetched: make(map[int]bool),
		next:    &first,
	}
}

// Filter returns the filter the pager is accumulating for.
func (p *Pager) Filter() characters.Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

// HasMore reports whether the most recently fetched page announced a
// next-page cursor. True before the first fetch.
func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next != nil
}

// InFlight reports whether a page fetch is currently pending.
func (p *Pager) InFlight() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight
}

// Characters returns the flattened concatenation of all fetched pages'
// results, in cursor order.
func (p *Pager) Characters() []characters.Character {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []characters.Character
	for _, page := range p.pages {
		out = append(out, page.Results...)
	}
	return out
}

// TotalCount returns the total result count the service reported, or 0
// before the first page settles.
func (p *Pager) TotalCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pages) == 0 {
		return 0
	}
	return p.pages[len(p.pages)-1].Info.Count
}

// FetchNext fetches the next page in cursor order and appends its
// results to the accumulation. It is a no-op when a fetch is already in
// flight or no further pages exist. This is the demand signal the view
// layer raises when the terminal list item becomes visible.
func (p *Pager) FetchNext(ctx context.Context) error {
	p.mu.Lock()
	if p.inFlight || p.next == nil {
		p.mu.Unlock()
		return nil
	}
	page := *p.next
	filter := p.filter
	gen := p.generation
	p.inFlight = true
	p.mu.Unlock()

	result, err := p.cache.List(ctx, page, filter)

	p.mu.Lock()
	defer p.mu.Unlock()

	// A reset happened while the fetch was pending; its result belongs
	// to a view that no longer exists and must not mutate state.
	if p.generation != gen {
		return nil
	}
	p.inFlight = false

	if err != nil {
		return err
	}
	if p.fetched[page] {
		return nil
	}
	p.fetched[page] = true
	p.pages = append(p.pages, result)
	p.next = result.Info.Next
	return nil
}

// Reset discards the accumulation and starts over from page 1 with the
// given filter. Any in-flight fetch settles into the void.
func (p *Pager) Reset(filter characters.Filter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	first := 1
	p.generation++
	p.filter = filter
	p.pages = nil
	p.fetched = make(map[int]bool)
	p.next = &first
	p.inFlight = false
}
