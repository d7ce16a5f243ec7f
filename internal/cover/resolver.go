package cover

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/kansi/internal/cache"
)

const (
	defaultAdapterTimeout = 10 * time.Second
	defaultBatchSize      = 5
	defaultBatchDelay     = 200 * time.Millisecond
)

// Fingerprint derives the cache key for a (title, author) pair: case-folded
// with whitespace runs collapsed, author appended when present.
func Fingerprint(title, author string) string {
	key := strings.Join(strings.Fields(strings.ToLower(title)), " ")
	if author = strings.TrimSpace(author); author != "" {
		key += "|" + strings.Join(strings.Fields(strings.ToLower(author)), " ")
	}
	return key
}

// Resolver drives the resolution pipeline: cache check, ordered source loop
// with per-source timeout, deterministic placeholder when everything fails.
type Resolver struct {
	store          cache.Store
	sources        []Source
	adapterTimeout time.Duration
	batchSize      int
	batchDelay     time.Duration
}

// Option is a functional option for configuring the Resolver.
type Option func(*Resolver)

// WithAdapterTimeout bounds how long one source may take before it is
// treated as having returned nothing.
func WithAdapterTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.adapterTimeout = d
		}
	}
}

// WithBatchSize sets how many titles ResolveMany works on concurrently.
func WithBatchSize(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithBatchDelay sets the pause between ResolveMany batches, throttling the
// external request rate.
func WithBatchDelay(d time.Duration) Option {
	return func(r *Resolver) {
		if d >= 0 {
			r.batchDelay = d
		}
	}
}

// NewResolver creates a Resolver over the given store and ordered sources.
// Sources are tried sequentially per title; the first accepted result wins.
func NewResolver(store cache.Store, sources []Source, opts ...Option) *Resolver {
	r := &Resolver{
		store:          store,
		sources:        sources,
		adapterTimeout: defaultAdapterTimeout,
		batchSize:      defaultBatchSize,
		batchDelay:     defaultBatchDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the best cover image URL for the request. It never fails:
// the worst case is a deterministic placeholder URL, which is cached so
// repeated lookups of an unresolvable title stay cheap.
func (r *Resolver) Resolve(ctx context.Context, req Request) string {
	title := strings.TrimSpace(req.Title)
	key := Fingerprint(title, req.Author)

	if !req.ForceRefresh {
		if entry, ok := r.store.Get(key); ok {
			slog.Debug("Cover cache hit", "title", title, "source", entry.Source)
			return entry.URL
		}
	}

	for _, src := range r.sources {
		result := r.trySource(ctx, src, title, req.Author)
		if result == nil {
			continue
		}
		slog.Debug("Cover resolved", "title", title, "source", src.Name(), "score", result.Score)
		r.store.Put(key, result.URL, result.Score, src.Name())
		return result.URL
	}

	// Every source came up empty. Hand back something stable anyway and
	// cache it so the next lookup skips the whole search.
	url := PlaceholderURL(title)
	slog.Debug("All sources exhausted, using placeholder", "title", title)
	r.store.Put(key, url, 0, "default")
	return url
}

// trySource runs one source under the adapter timeout, converting errors and
// panics into nil results.
func (r *Resolver) trySource(ctx context.Context, src Source, title, author string) (result *Result) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn("Source panicked", "source", src.Name(), "title", title, "panic", rec)
			result = nil
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.adapterTimeout)
	defer cancel()

	result, err := src.Search(ctx, title, author)
	if err != nil {
		slog.Debug("Source failed", "source", src.Name(), "title", title, "error", err)
		return nil
	}
	return result
}

// ResolveMany resolves a list of requests, returning a title → URL map.
// Titles are processed in fixed-size concurrent batches with a short delay
// between batches; a source sequence for any single title stays sequential.
// Per-item failures are isolated, and cancelling the context stops unstarted
// batches while letting the in-flight one finish.
func (r *Resolver) ResolveMany(ctx context.Context, reqs []Request) map[string]string {
	results := make(map[string]string, len(reqs))
	var mu sync.Mutex

	for start := 0; start < len(reqs); start += r.batchSize {
		if ctx.Err() != nil {
			slog.Debug("Batch resolution cancelled", "resolved", start, "total", len(reqs))
			break
		}

		end := start + r.batchSize
		if end > len(reqs) {
			end = len(reqs)
		}

		g := new(errgroup.Group)
		for _, req := range reqs[start:end] {
			g.Go(func() error {
				url := r.resolveIsolated(ctx, req)
				mu.Lock()
				results[req.Title] = url
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		if end < len(reqs) && r.batchDelay > 0 {
			select {
			case <-time.After(r.batchDelay):
			case <-ctx.Done():
			}
		}
	}

	return results
}

// resolveIsolated shields the batch from anything a single resolution might
// do wrong; Resolve itself never errors, so only panics are left to catch.
func (r *Resolver) resolveIsolated(ctx context.Context, req Request) (url string) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn("Resolution panicked", "title", req.Title, "panic", rec)
			url = PlaceholderURL(req.Title)
		}
	}()
	return r.Resolve(ctx, req)
}
