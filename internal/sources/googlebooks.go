// Package sources contains the search backends the resolver tries in order:
// the Google Books API, two fixed lookup tables and a deterministic
// placeholder generator.
package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/kansi/internal/cover"
	"github.com/lepinkainen/kansi/internal/ratelimit"
)

const (
	googleBooksBaseURL   = "https://www.googleapis.com/books/v1"
	defaultMaxResults    = 20
	defaultMaxAttempts   = 3
	defaultRatePerSecond = 1
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// GoogleBooks is the primary metadata adapter. For each query produced by
// the query builder it searches English-language comic results, filters and
// scores them, and stops at the first query whose best result clears the
// per-query acceptance threshold.
type GoogleBooks struct {
	apiKey        string
	baseURL       string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	queries       *cover.QueryBuilder
	selector      *cover.Selector
	retryAttempts int
	maxResults    int
	accept        float64
}

// Compile-time check that GoogleBooks implements cover.Source.
var _ cover.Source = (*GoogleBooks)(nil)

// GoogleBooksOption is a functional option for configuring the adapter.
type GoogleBooksOption func(*GoogleBooks)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) GoogleBooksOption {
	return func(g *GoogleBooks) {
		if c != nil {
			g.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the Google Books API.
func WithBaseURL(base string) GoogleBooksOption {
	return func(g *GoogleBooks) {
		if base != "" {
			g.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRetryAttempts sets the number of attempts for failed requests.
func WithRetryAttempts(attempts int) GoogleBooksOption {
	return func(g *GoogleBooks) {
		if attempts > 0 {
			g.retryAttempts = attempts
		}
	}
}

// WithRateLimiter sets a custom rate limiter.
func WithRateLimiter(limiter *ratelimit.Limiter) GoogleBooksOption {
	return func(g *GoogleBooks) {
		if limiter != nil {
			g.rateLimiter = limiter
		}
	}
}

// WithAcceptThreshold overrides the per-query acceptance threshold.
func WithAcceptThreshold(min float64) GoogleBooksOption {
	return func(g *GoogleBooks) {
		if min > 0 {
			g.accept = min
		}
	}
}

// NewGoogleBooks creates the primary adapter. The API key comes from the
// googlebooks.apikey config key (bound to GOOGLE_BOOKS_API_KEY) and is
// optional; unauthenticated requests just get a lower quota.
func NewGoogleBooks(aliases cover.AliasTable, opts ...GoogleBooksOption) *GoogleBooks {
	g := &GoogleBooks{
		apiKey:        viper.GetString("googlebooks.apikey"),
		baseURL:       googleBooksBaseURL,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		rateLimiter:   ratelimit.New("GoogleBooks", defaultRatePerSecond),
		queries:       cover.NewQueryBuilder(aliases),
		selector:      cover.NewSelector(aliases),
		retryAttempts: defaultMaxAttempts,
		maxResults:    defaultMaxResults,
		accept:        cover.PerQueryThreshold,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name identifies this adapter in cache entries and logs.
func (g *GoogleBooks) Name() string {
	return "googlebooks"
}

// Search walks the generated queries in order and returns the first result
// that clears the acceptance threshold, or nil when no query produces one.
// Individual query failures are logged and skipped.
func (g *GoogleBooks) Search(ctx context.Context, title, author string) (*cover.Result, error) {
	for _, query := range g.queries.Build(title, author) {
		candidates, err := g.searchQuery(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Debug("Google Books query failed", "query", query, "error", err)
			continue
		}
		if len(candidates) == 0 {
			continue
		}

		best := g.selector.Select(candidates, title, author, g.accept)
		if best == nil {
			continue
		}

		imageURL := cover.CleanImageURL(best.Candidate.ImageURL)
		if imageURL == "" {
			continue
		}

		slog.Debug("Google Books accepted candidate",
			"query", query, "candidate", best.Candidate.Title, "score", best.Score)
		return &cover.Result{URL: imageURL, Score: best.Score}, nil
	}

	return nil, nil
}

// googleBooksResponse matches the Google Books API response structure.
type googleBooksResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Subtitle      string   `json:"subtitle"`
			Authors       []string `json:"authors"`
			PublishedDate string   `json:"publishedDate"`
			Description   string   `json:"description"`
			PageCount     int      `json:"pageCount"`
			Categories    []string `json:"categories"`
			Language      string   `json:"language"`
			ImageLinks    struct {
				Thumbnail      string `json:"thumbnail"`
				SmallThumbnail string `json:"smallThumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (g *GoogleBooks) searchQuery(ctx context.Context, query string) ([]cover.Candidate, error) {
	if err := g.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query+" subject:comics")
	params.Set("langRestrict", "en")
	params.Set("printType", "books")
	params.Set("orderBy", "relevance")
	params.Set("maxResults", strconv.Itoa(g.maxResults))
	if g.apiKey != "" {
		params.Set("key", g.apiKey)
	}
	endpoint := fmt.Sprintf("%s/volumes?%s", g.baseURL, params.Encode())

	var result googleBooksResponse
	if err := g.getJSON(ctx, endpoint, &result); err != nil {
		return nil, err
	}

	if result.TotalItems == 0 || len(result.Items) == 0 {
		return nil, nil
	}

	candidates := make([]cover.Candidate, 0, len(result.Items))
	for _, item := range result.Items {
		vol := item.VolumeInfo

		imageURL := vol.ImageLinks.Thumbnail
		if imageURL == "" {
			imageURL = vol.ImageLinks.SmallThumbnail
		}

		candidates = append(candidates, cover.Candidate{
			Title:         vol.Title,
			Subtitle:      vol.Subtitle,
			Description:   vol.Description,
			Language:      vol.Language,
			Authors:       vol.Authors,
			Categories:    vol.Categories,
			ImageURL:      imageURL,
			PageCount:     vol.PageCount,
			PublishedYear: parseYear(vol.PublishedDate),
		})
	}
	return candidates, nil
}

func (g *GoogleBooks) getJSON(ctx context.Context, endpoint string, target any) error {
	var lastErr error
	for attempt := 1; attempt <= g.retryAttempts; attempt++ {
		if err := g.doJSONRequest(ctx, endpoint, target); err != nil {
			lastErr = err
			if !isRetryable(err) || attempt == g.retryAttempts {
				return err
			}
			time.Sleep(backoffDelay(attempt))
			continue
		}
		return nil
	}
	return lastErr
}

func (g *GoogleBooks) doJSONRequest(ctx context.Context, endpoint string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("googlebooks: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(target)
}

// parseYear extracts the year from Google's publishedDate, which may be
// "2003", "2003-06" or "2003-06-03".
func parseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func isRetryable(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		// Network errors (connection resets etc.)
		if strings.Contains(urlErr.Error(), "connection") {
			return true
		}
	}
	return false
}

func backoffDelay(attempt int) time.Duration {
	// exponential backoff capped at 10 seconds
	delay := time.Duration(1<<uint(attempt-1)) * time.Second
	if delay > 10*time.Second {
		return 10 * time.Second
	}
	return delay
}
