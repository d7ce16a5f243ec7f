package sources

import (
	"context"
	"hash/fnv"

	"github.com/lepinkainen/kansi/internal/cover"
)

// fallbackConfidence is the fixed score of the deterministic fallback; high
// enough to cache, low enough that any real source outranks it.
const fallbackConfidence = 0.5

// fallbackPool is the fixed set of generic manga-style placeholder covers
// the fallback adapter selects from.
var fallbackPool = []string{
	"https://images.unsplash.com/photo-1612178537253-bccd437b730e?w=300&h=450&fit=crop",
	"https://images.unsplash.com/photo-1613376023733-0a73315d9b06?w=300&h=450&fit=crop",
	"https://images.unsplash.com/photo-1560942485-b2a11cc13456?w=300&h=450&fit=crop",
	"https://images.unsplash.com/photo-1618519764620-7403abdbdfe9?w=300&h=450&fit=crop",
	"https://images.unsplash.com/photo-1601850494422-3cf14624b0b3?w=300&h=450&fit=crop",
	"https://images.unsplash.com/photo-1588497859490-85d1c17db96d?w=300&h=450&fit=crop",
}

// Fallback is the deterministic last-resort adapter. It always succeeds: the
// title hash picks a stable entry from a fixed pool, so the same title
// always maps to the same image.
type Fallback struct {
	pool []string
}

// Compile-time check that Fallback implements cover.Source.
var _ cover.Source = (*Fallback)(nil)

// NewFallback creates the fallback adapter over the default pool.
func NewFallback() *Fallback {
	return &Fallback{pool: fallbackPool}
}

// NewFallbackWithPool creates a fallback adapter over a custom pool. Used by
// tests; an empty pool falls back to the default.
func NewFallbackWithPool(pool []string) *Fallback {
	if len(pool) == 0 {
		pool = fallbackPool
	}
	return &Fallback{pool: pool}
}

// Name identifies this adapter in cache entries and logs.
func (f *Fallback) Name() string {
	return "fallback"
}

// Search never fails and never returns nil.
func (f *Fallback) Search(_ context.Context, title, _ string) (*cover.Result, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(cover.NormalizeKey(title)))
	url := f.pool[h.Sum32()%uint32(len(f.pool))]
	return &cover.Result{URL: url, Score: fallbackConfidence}, nil
}

// Default returns the full adapter chain in priority order: the live API
// first, then the static tables, then the always-succeeding fallback.
func Default(aliases cover.AliasTable) []cover.Source {
	return []cover.Source{
		NewGoogleBooks(aliases),
		NewCuratedLookup(),
		NewCommunityLookup(),
		NewFallback(),
	}
}
