package query

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BehshadMoeini/rick-and-morty/pkg/characters"
	"github.com/BehshadMoeini/rick-and-morty/pkg/errors"
	"github.com/BehshadMoeini/rick-and-morty/pkg/logging"
)

// fakeCatalog is an in-memory Catalog that counts calls.
type fakeCatalog struct {
	mu         sync.Mutex
	listCalls  int
	getCalls   int
	batchCalls int

	listFn  func(page int, filter characters.Filter) (*characters.Page, error)
	getFn   func(id int) (*characters.Character, error)
	batchFn func(ids []int) ([]characters.Character, error)
}

func (f *fakeCatalog) ListCharacters(_ context.Context, page int, filter characters.Filter) (*characters.Page, error) {
	f.mu.Lock()
	f.listCalls++
	fn := f.listFn
	f.mu.Unlock()
	if fn == nil {
		return &characters.Page{}, nil
	}
	return fn(page, filter)
}

func (f *fakeCatalog) GetCharacter(_ context.Context, id int) (*characters.Character, error) {
	f.mu.Lock()
	f.getCalls++
	fn := f.getFn
	f.mu.Unlock()
	if fn == nil {
		return &characters.Character{ID: characters.ID(id)}, nil
	}
	return fn(id)
}

func (f *fakeCatalog) GetCharacters(_ context.Context, ids []int) ([]characters.Character, error) {
	f.mu.Lock()
	f.batchCalls++
	fn := f.batchFn
	f.mu.Unlock()
	if fn == nil {
		out := make([]characters.Character, len(ids))
		for i, id := range ids {
			out[i] = characters.Character{ID: characters.ID(id)}
		}
		return out, nil
	}
	return fn(ids)
}

func (f *fakeCatalog) counts() (list, get, batch int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.getCalls, f.batchCalls
}

// newTestCache builds a cache over the fake with sleep-free retries.
func newTestCache(f *fakeCatalog, cfg Config) *Cache {
	c := NewCache(f, cfg, &logging.Nop)
	c.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return c
}

func TestCache_StructuralKeyEquality(t *testing.T) {
	fake := &fakeCatalog{}
	c := newTestCache(fake, Config{})

	f1 := characters.Filter{Name: "rick", Status: characters.StatusAlive}
	f2 := characters.Filter{Status: characters.StatusAlive, Name: "rick"}

	_, err := c.List(context.Background(), 1, f1)
	require.NoError(t, err)
	_, err = c.List(context.Background(), 1, f2)
	require.NoError(t, err)

	list, _, _ := fake.counts()
	assert.Equal(t, 1, list, "field-wise equal filters must hit the same cache entry")
}

func TestCache_AtMostOneInFlightPerKey(t *testing.T) {
	release := make(chan struct{})
	fake := &fakeCatalog{
		getFn: func(id int) (*characters.Character, error) {
			<-release
			return &characters.Character{ID: characters.ID(id)}, nil
		},
	}
	c := newTestCache(fake, Config{})

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Character(context.Background(), 5)
			assert.NoError(t, err)
		}()
	}

	// Let both goroutines reach the flight before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	_, get, _ := fake.counts()
	assert.Equal(t, 1, get, "concurrent identical requests must share one fetch")
}

func TestCache_NotFoundIsNeverRetried(t *testing.T) {
	fake := &fakeCatalog{
		getFn: func(id int) (*characters.Character, error) {
			return nil, errors.NewNotFoundError("character", id)
		},
	}
	c := newTestCache(fake, Config{SingleRetries: 5})

	_, err := c.Character(context.Background(), 999999)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound), "must stay a NotFoundError, not a generic error after retries")
	_, get, _ := fake.counts()
	assert.Equal(t, 1, get, "a definitive absence must produce exactly one network call")
}

func TestCache_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	fake := &fakeCatalog{
		listFn: func(int, characters.Filter) (*characters.Page, error) {
			attempts++
			if attempts < 3 {
				return nil, errors.NewTransportError("ListCharacters", errors.New("flaky"))
			}
			return &characters.Page{}, nil
		},
	}
	c := newTestCache(fake, Config{ListRetries: 3})

	_, err := c.List(context.Background(), 1, characters.Filter{})
	require.NoError(t, err)

	list, _, _ := fake.counts()
	assert.Equal(t, 3, list)
}

func TestCache_RetryBudgetExhausted(t *testing.T) {
	fake := &fakeCatalog{
		batchFn: func([]int) ([]characters.Character, error) {
			return nil, errors.NewTransportError("GetCharacters", errors.New("down"))
		},
	}
	c := newTestCache(fake, Config{BatchRetries: 2})

	_, err := c.Characters(context.Background(), []int{1, 2})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTransport))
	_, _, batch := fake.counts()
	assert.Equal(t, 3, batch, "initial attempt plus two retries")
}

func TestCache_ServesFreshAndRefetchesStale(t *testing.T) {
	fake := &fakeCatalog{}
	c := newTestCache(fake, Config{
		Single: Windows{Fresh: 30 * time.Millisecond, Idle: time.Minute},
	})

	_, err := c.Character(context.Background(), 1)
	require.NoError(t, err)
	_, err = c.Character(context.Background(), 1)
	require.NoError(t, err)

	_, get, _ := fake.counts()
	assert.Equal(t, 1, get, "second request inside the fresh window must be served from cache")

	time.Sleep(50 * time.Millisecond)

	_, err = c.Character(context.Background(), 1)
	require.NoError(t, err)
	_, get, _ = fake.counts()
	assert.Equal(t, 2, get, "a stale entry must be re-fetched on request")
}

func TestCache_BatchKeyIsSetStructural(t *testing.T) {
	fake := &fakeCatalog{}
	c := newTestCache(fake, Config{})

	_, err := c.Characters(context.Background(), []int{1, 2})
	require.NoError(t, err)
	_, err = c.Characters(context.Background(), []int{2, 1, 1})
	require.NoError(t, err)

	_, _, batch := fake.counts()
	assert.Equal(t, 1, batch, "set-wise equal batches must share an entry")
}

func TestCache_EmptyBatchShortCircuits(t *testing.T) {
	fake := &fakeCatalog{}
	c := newTestCache(fake, Config{})

	got, err := c.Characters(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, _, batch := fake.counts()
	assert.Equal(t, 0, batch)
}

func TestCache_PrefetchPopulatesAndSwallowsErrors(t *testing.T) {
	fake := &fakeCatalog{}
	c := newTestCache(fake, Config{})

	c.Prefetch(7)
	require.Eventually(t, func() bool {
		_, get, _ := fake.counts()
		return get == 1
	}, time.Second, 5*time.Millisecond)

	// The explicit request afterwards is served from cache.
	got, err := c.Character(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, characters.ID(7), got.ID)
	_, get, _ := fake.counts()
	assert.Equal(t, 1, get)

	// A failing prefetch surfaces nothing.
	failing := &fakeCatalog{
		getFn: func(int) (*characters.Character, error) {
			return nil, errors.NewTransportError("GetCharacter", errors.New("down"))
		},
	}
	c2 := newTestCache(failing, Config{SingleRetries: 1})
	c2.Prefetch(8)
	require.Eventually(t, func() bool {
		_, get, _ := failing.counts()
		return get >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestCache_FlushDropsEntries(t *testing.T) {
	fake := &fakeCatalog{}
	c := newTestCache(fake, Config{})

	_, err := c.Character(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, c.ItemCount())

	c.Flush()
	assert.Equal(t, 0, c.ItemCount())

	_, err = c.Character(context.Background(), 1)
	require.NoError(t, err)
	_, get, _ := fake.counts()
	assert.Equal(t, 2, get)
}
