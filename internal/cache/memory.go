package cache

import (
	"sync"
	"time"
)

// MemoryStore is a process-local Store backed by a map. It honors the same
// TTL, capacity and schema-version semantics as the SQLite store.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    map[string]*Entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithMaxEntries overrides the capacity bound.
func WithMaxEntries(n int) MemoryOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// WithClock substitutes the time source. Tests use this to step through
// expiry without sleeping.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries:    make(map[string]*Entry),
		ttl:        DefaultTTL,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the live entry for key, or false when absent, expired or
// written by an older schema version.
func (s *MemoryStore) Get(key string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok || !entry.Valid(s.now()) {
		return nil, false
	}
	copied := *entry
	return &copied, true
}

// Put writes or overwrites the entry for key, then evicts oldest-created
// entries until the store is back within capacity.
func (s *MemoryStore) Put(key, url string, score float64, source string) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &Entry{
		Key:           key,
		URL:           url,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.ttl),
		Score:         score,
		Source:        source,
		SchemaVersion: SchemaVersion,
	}

	for len(s.entries) > s.maxEntries {
		s.evictOldestLocked()
	}
}

// Len returns the number of stored entries, live or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for key, entry := range s.entries {
		if oldestKey == "" || entry.CreatedAt.Before(oldest) {
			oldestKey = key
			oldest = entry.CreatedAt
		}
	}
	if oldestKey != "" {
		delete(s.entries, oldestKey)
	}
}
