package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the persistent Store implementation. Individual operations
// are serialized with a mutex; concurrent Puts to the same key are
// last-write-wins, matching the Store contract.
type SQLiteStore struct {
	db         *sql.DB
	mu         sync.RWMutex
	path       string
	ttl        time.Duration
	maxEntries int
}

// SQLiteOption configures a SQLiteStore.
type SQLiteOption func(*SQLiteStore)

// WithSQLiteTTL overrides the default entry lifetime.
func WithSQLiteTTL(ttl time.Duration) SQLiteOption {
	return func(s *SQLiteStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSQLiteMaxEntries overrides the capacity bound.
func WithSQLiteMaxEntries(n int) SQLiteOption {
	return func(s *SQLiteStore) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// NewSQLiteStore opens (or creates) the cache database at dbPath and ensures
// the covers table exists.
func NewSQLiteStore(dbPath string, opts ...SQLiteOption) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to cache database: %w", err), closeErr)
	}

	store := &SQLiteStore{
		db:         db,
		path:       dbPath,
		ttl:        DefaultTTL,
		maxEntries: DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(store)
	}

	if _, err := db.Exec(CoversCacheSchema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create covers table: %w", err), closeErr)
	}

	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the live entry for key. Expired or schema-mismatched rows are
// treated as misses; read errors are logged and reported as misses too, so
// cache corruption never fails a resolution.
func (s *SQLiteStore) Get(key string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entry Entry
	err := s.db.QueryRow(`
		SELECT cache_key, url, score, source, schema_version, created_at, expires_at
		FROM covers_cache
		WHERE cache_key = ?
	`, key).Scan(&entry.Key, &entry.URL, &entry.Score, &entry.Source,
		&entry.SchemaVersion, &entry.CreatedAt, &entry.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		slog.Warn("Failed to read cover cache, treating as miss", "key", key, "error", err)
		return nil, false
	}

	if !entry.Valid(time.Now().UTC()) {
		slog.Debug("Cover cache entry stale", "key", key,
			"schema_version", entry.SchemaVersion, "expires_at", entry.ExpiresAt)
		return nil, false
	}

	return &entry, true
}

// Put writes or overwrites the entry for key, then evicts the
// oldest-created rows beyond capacity. Write failures are logged, not
// returned: a broken cache must not stop a resolution.
func (s *SQLiteStore) Put(key, url string, score float64, source string) {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO covers_cache
			(cache_key, url, score, source, schema_version, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, key, url, score, source, SchemaVersion, now, now.Add(s.ttl))
	if err != nil {
		slog.Warn("Failed to write cover cache", "key", key, "error", err)
		return
	}

	if err := s.evictOverCapacityLocked(); err != nil {
		slog.Warn("Failed to evict cover cache entries", "error", err)
	}
}

// Len returns the number of stored rows, live or not.
func (s *SQLiteStore) Len() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM covers_cache`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return count, nil
}

// InvalidateAll deletes every cached cover and returns the number removed.
func (s *SQLiteStore) InvalidateAll() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`DELETE FROM covers_cache`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cache entries: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	slog.Debug("Cover cache cleared", "rows_deleted", rows)
	return rows, nil
}

// ClearExpired removes rows past their expiry.
func (s *SQLiteStore) ClearExpired() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`DELETE FROM covers_cache WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to clear expired cache: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows > 0 {
		slog.Info("Cleared expired cover cache entries", "count", rows)
	}
	return nil
}

func (s *SQLiteStore) evictOverCapacityLocked() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM covers_cache`).Scan(&count); err != nil {
		return err
	}
	if count <= s.maxEntries {
		return nil
	}

	_, err := s.db.Exec(`
		DELETE FROM covers_cache
		WHERE cache_key IN (
			SELECT cache_key FROM covers_cache
			ORDER BY created_at ASC
			LIMIT ?
		)
	`, count-s.maxEntries)
	return err
}
