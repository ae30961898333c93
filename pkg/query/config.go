package query

import "time"

// Default freshness and idle-eviction windows per operation kind.
const (
	DefaultListFresh  = 5 * time.Minute
	DefaultListIdle   = 10 * time.Minute
	DefaultSingleFresh = 10 * time.Minute
	DefaultSingleIdle  = 30 * time.Minute
	DefaultBatchFresh = 5 * time.Minute
	DefaultBatchIdle  = 15 * time.Minute

	// DefaultCleanupInterval is how often expired entries are removed
	// from memory by the underlying store.
	DefaultCleanupInterval = time.Minute

	// DefaultDebounceWindow is the delay between a filter change and
	// the fetch it triggers.
	DefaultDebounceWindow = 500 * time.Millisecond
)

// Default retry budgets: retries after the initial attempt.
const (
	DefaultListRetries   = 3
	DefaultSingleRetries = 3
	DefaultBatchRetries  = 2
)

// Windows holds the two staleness windows of one operation kind.
// Fresh is how long a successful result is served without re-fetching;
// Idle is how long an unobserved entry stays in memory before eviction.
type Windows struct {
	Fresh time.Duration
	Idle  time.Duration
}

// Config holds the cache tuning knobs. The zero value of any field is
// replaced by its default in NewCache.
type Config struct {
	List   Windows
	Single Windows
	Batch  Windows

	ListRetries   uint64
	SingleRetries uint64
	BatchRetries  uint64

	CleanupInterval time.Duration
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		List:   Windows{Fresh: DefaultListFresh, Idle: DefaultListIdle},
		Single: Windows{Fresh: DefaultSingleFresh, Idle: DefaultSingleIdle},
		Batch:  Windows{Fresh: DefaultBatchFresh, Idle: DefaultBatchIdle},

		ListRetries:   DefaultListRetries,
		SingleRetries: DefaultSingleRetries,
		BatchRetries:  DefaultBatchRetries,

		CleanupInterval: DefaultCleanupInterval,
	}
}

// withDefaults fills zero-valued fields with their defaults.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.List.Fresh == 0 {
		c.List.Fresh = def.List.Fresh
	}
	if c.List.Idle == 0 {
		c.List.Idle = def.List.Idle
	}
	if c.Single.Fresh == 0 {
		c.Single.Fresh = def.Single.Fresh
	}
	if c.Single.Idle == 0 {
		c.Single.Idle = def.Single.Idle
	}
	if c.Batch.Fresh == 0 {
		c.Batch.Fresh = def.Batch.Fresh
	}
	if c.Batch.Idle == 0 {
		c.Batch.Idle = def.Batch.Idle
	}
	if c.ListRetries == 0 {
		c.ListRetries = def.ListRetries
	}
	if c.SingleRetries == 0 {
		c.SingleRetries = def.SingleRetries
	}
	if c.BatchRetries == 0 {
		c.BatchRetries = def.BatchRetries
	}
	if c.CleanupInterval == 0 {
		c.CleanupInterval = def.CleanupInterval
	}
	return c
}
