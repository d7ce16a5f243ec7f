package cache

// CoversCacheSchema defines the table holding resolved cover entries.
// created_at drives capacity eviction, expires_at drives TTL validation and
// schema_version invalidates entries written before a logic change.
const CoversCacheSchema = `
CREATE TABLE IF NOT EXISTS covers_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	url TEXT NOT NULL,
	score REAL NOT NULL,
	source TEXT NOT NULL,
	schema_version TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_covers_created_at ON covers_cache(created_at);
`
