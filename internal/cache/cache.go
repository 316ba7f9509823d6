// Package cache provides the in-process key/value stores used by the
// aggregators: per-identifier detail records and per-request results.
//
// A Store is bounded by an optional capacity (least recently used entries
// are evicted first) and an optional TTL. Concurrent misses for the same
// key share a single fetch.
package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"tourapi/internal/metrics"
)

// Options configures a Store. Zero values mean unbounded and never
// expiring, with failed fetches not remembered.
type Options struct {
	// Capacity is the maximum number of entries; 0 disables eviction.
	Capacity int
	// TTL bounds how long a successful value is served; 0 keeps it for the
	// lifetime of the process.
	TTL time.Duration
	// NegativeTTL bounds how long a failed fetch is remembered. While
	// remembered, GetOrFetch returns the stored error without fetching.
	NegativeTTL time.Duration
	Metrics     *metrics.Metrics
}

// Stats is a point-in-time snapshot of a Store.
type Stats struct {
	Name      string `json:"name"`
	Entries   int    `json:"entries"`
	Hits      int64  `json:"hits"`
	Misses    int64  `json:"misses"`
	Shared    int64  `json:"shared"`
	Negative  int64  `json:"negative"`
	Evictions int64  `json:"evictions"`
}

// Store is a concurrency-safe cache keyed by string.
type Store[V any] struct {
	name string
	opts Options

	values *expirable.LRU[string, V]
	// failures is nil when NegativeTTL is 0.
	failures *expirable.LRU[string, error]

	mu    sync.Mutex
	gen   uint64
	stats Stats

	group singleflight.Group
}

// New creates an empty store. name labels its metrics and stats.
func New[V any](name string, opts Options) *Store[V] {
	s := &Store[V]{
		name:   name,
		opts:   opts,
		values: expirable.NewLRU[string, V](opts.Capacity, nil, opts.TTL),
	}
	if opts.NegativeTTL > 0 {
		s.failures = expirable.NewLRU[string, error](opts.Capacity, nil, opts.NegativeTTL)
	}
	return s
}

// Name returns the label the store was created with.
func (s *Store[V]) Name() string { return s.name }

// Get returns the cached value for key. Remembered failures are reported
// as absent.
func (s *Store[V]) Get(key string) (V, bool) {
	v, ok := s.values.Get(key)
	if !ok {
		s.record("miss")
		return v, false
	}
	s.record("hit")
	return v, true
}

// Set stores value under key, replacing any previous entry.
func (s *Store[V]) Set(key string, value V) {
	if s.add(key, value) {
		s.mu.Lock()
		s.stats.Evictions++
		s.mu.Unlock()
	}
	s.opts.Metrics.CacheEntries(s.name, s.values.Len())
}

// Delete drops key. It does nothing when key is absent.
func (s *Store[V]) Delete(key string) {
	s.values.Remove(key)
	if s.failures != nil {
		s.failures.Remove(key)
	}
	s.opts.Metrics.CacheEntries(s.name, s.values.Len())
}

// Clear drops every entry. Fetches already in flight complete for their
// callers but do not repopulate the store, and later callers start a new
// fetch instead of joining them.
func (s *Store[V]) Clear() int {
	s.mu.Lock()
	n := s.values.Len()
	s.values.Purge()
	if s.failures != nil {
		s.failures.Purge()
	}
	s.gen++
	s.mu.Unlock()

	s.opts.Metrics.CacheEntries(s.name, 0)
	return n
}

// Len returns the number of stored values, expired ones included until
// they are swept.
func (s *Store[V]) Len() int {
	return s.values.Len()
}

// Stats returns counters accumulated since creation.
func (s *Store[V]) Stats() Stats {
	s.mu.Lock()
	st := s.stats
	s.mu.Unlock()

	st.Name = s.name
	st.Entries = s.values.Len()
	return st
}

// GetOrFetch returns the cached value for key, calling fetch on a miss.
//
// Concurrent callers missing on the same key wait for one shared fetch.
// The fetch runs on a context that is not cancelled when the first caller
// goes away; a caller whose ctx ends while waiting gets ctx.Err().
func (s *Store[V]) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, error) {
	var zero V

	if v, ok := s.values.Get(key); ok {
		s.record("hit")
		return v, nil
	}
	if err, ok := s.failure(key); ok {
		s.record("negative")
		return zero, err
	}

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(strconv.FormatUint(gen, 10)+"\x00"+key, func() (any, error) {
		if v, ok := s.values.Get(key); ok {
			return v, nil
		}
		if err, ok := s.failure(key); ok {
			return zero, err
		}

		v, err := fetch(fetchCtx)

		s.mu.Lock()
		if gen == s.gen {
			if err != nil {
				if s.failures != nil {
					s.failures.Add(key, err)
				}
			} else if s.add(key, v) {
				s.stats.Evictions++
			}
		}
		s.mu.Unlock()

		s.opts.Metrics.CacheEntries(s.name, s.values.Len())
		return v, err
	})

	select {
	case res := <-ch:
		if res.Shared {
			s.record("shared")
		} else {
			s.record("miss")
		}
		v, _ := res.Val.(V)
		return v, res.Err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (s *Store[V]) failure(key string) (error, bool) {
	if s.failures == nil {
		return nil, false
	}
	return s.failures.Get(key)
}

// add stores value and reports whether an entry was evicted to make room.
func (s *Store[V]) add(key string, value V) bool {
	if s.failures != nil {
		s.failures.Remove(key)
	}
	return s.values.Add(key, value)
}

func (s *Store[V]) record(outcome string) {
	s.mu.Lock()
	switch outcome {
	case "hit":
		s.stats.Hits++
	case "miss":
		s.stats.Misses++
	case "shared":
		s.stats.Shared++
	case "negative":
		s.stats.Negative++
	}
	s.mu.Unlock()

	s.opts.Metrics.CacheRequest(s.name, outcome)
}
