// Package cache provides the resolved-cover store: a key/value cache of
// previously resolved image URLs with TTL expiry, a bounded entry count and
// schema versioning. Two implementations exist: an in-memory map (tests,
// short-lived runs) and a SQLite-backed store (persistent).
package cache

import "time"

const (
	// SchemaVersion tags every entry. Bump it when resolution logic changes
	// so stale entries are treated as misses and re-resolved.
	SchemaVersion = "2"

	// DefaultTTL is how long a resolved cover stays valid.
	DefaultTTL = 24 * time.Hour

	// DefaultMaxEntries bounds the store; oldest-created entries are evicted
	// first when over capacity.
	DefaultMaxEntries = 1000
)

// Entry is one cached resolution result.
type Entry struct {
	Key           string    `json:"key"`
	URL           string    `json:"url"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	Score         float64   `json:"score"`
	Source        string    `json:"source"`
	SchemaVersion string    `json:"schema_version"`
}

// Valid reports whether the entry is live at the given instant: current
// schema version and not expired.
func (e *Entry) Valid(now time.Time) bool {
	return e.SchemaVersion == SchemaVersion && now.Before(e.ExpiresAt)
}

// Store is the cache contract the resolver depends on. Get returns false for
// absent, expired or schema-mismatched entries. Put overwrites
// unconditionally; concurrent writers to one key are last-write-wins.
type Store interface {
	Get(key string) (*Entry, bool)
	Put(key, url string, score float64, source string)
}
