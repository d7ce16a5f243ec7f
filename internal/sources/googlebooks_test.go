package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/kansi/internal/cover"
	"github.com/lepinkainen/kansi/internal/ratelimit"
)

const onePieceResponse = `{
	"totalItems": 2,
	"items": [
		{
			"volumeInfo": {
				"title": "One Piece, Vol. 1",
				"subtitle": "Romance Dawn",
				"authors": ["Eiichiro Oda"],
				"publishedDate": "2003-06-02",
				"description": "As a child, Monkey D. Luffy dreamed of becoming King of the Pirates.",
				"pageCount": 216,
				"categories": ["Comics & Graphic Novels"],
				"language": "en",
				"imageLinks": {
					"thumbnail": "http://books.google.com/books/content?id=5WkBjwEACAAJ&printsec=frontcover&img=1&zoom=1&edge=curl"
				}
			}
		},
		{
			"volumeInfo": {
				"title": "One Piece, Vol. 3",
				"authors": ["Eiichiro Oda"],
				"publishedDate": "2004-01-07",
				"pageCount": 208,
				"categories": ["Comics & Graphic Novels"],
				"language": "en",
				"imageLinks": {
					"thumbnail": "http://books.google.com/books/content?id=other&img=1"
				}
			}
		}
	]
}`

func newTestGoogleBooks(baseURL string) *GoogleBooks {
	return NewGoogleBooks(cover.DefaultAliases,
		WithBaseURL(baseURL),
		WithRateLimiter(ratelimit.New("test", 1000)),
		WithRetryAttempts(1),
	)
}

func TestGoogleBooksSearchAcceptsFirstVolume(t *testing.T) {
	var gotQueries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/volumes", r.URL.Path)
		require.Equal(t, "en", r.URL.Query().Get("langRestrict"))
		require.Equal(t, "books", r.URL.Query().Get("printType"))
		require.Equal(t, "relevance", r.URL.Query().Get("orderBy"))
		q := r.URL.Query().Get("q")
		require.Contains(t, q, "subject:comics")
		gotQueries = append(gotQueries, q)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(onePieceResponse))
	}))
	defer server.Close()

	g := newTestGoogleBooks(server.URL)

	result, err := g.Search(context.Background(), "One Piece", "Eiichiro Oda")
	require.NoError(t, err)
	require.NotNil(t, result)

	// The thumbnail URL is cleaned: https, no page curl, full-size zoom.
	require.Contains(t, result.URL, "https://books.google.com/books/content")
	require.NotContains(t, result.URL, "edge=curl")
	require.Contains(t, result.URL, "zoom=0")
	require.GreaterOrEqual(t, result.Score, cover.PerQueryThreshold)

	// The first query already produced an acceptable result, so no further
	// queries were issued.
	require.Len(t, gotQueries, 1)
	require.Contains(t, gotQueries[0], "One Piece volume 1 manga")
}

func TestGoogleBooksSearchNoUsableResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	}))
	defer server.Close()

	g := newTestGoogleBooks(server.URL)

	result, err := g.Search(context.Background(), "Nonexistent Series", "")
	require.NoError(t, err)
	require.Nil(t, result)
}

func TestGoogleBooksSearchSkipsRejectedCandidates(t *testing.T) {
	// Only a Japanese-language edition comes back; the selector rejects it, so
	// the adapter keeps trying queries and ends with nothing.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalItems": 1,
			"items": [{"volumeInfo": {
				"title": "One Piece, Vol. 1",
				"language": "ja",
				"imageLinks": {"thumbnail": "http://example.com/ja.jpg"}
			}}]
		}`))
	}))
	defer server.Close()

	g := newTestGoogleBooks(server.URL)

	result, err := g.Search(context.Background(), "One Piece", "")
	require.NoError(t, err)
	require.Nil(t, result)
}

func TestGoogleBooksSearchServerErrorsSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := newTestGoogleBooks(server.URL)

	// Per-query failures are skipped, not propagated.
	result, err := g.Search(context.Background(), "One Piece", "")
	require.NoError(t, err)
	require.Nil(t, result)
}

func TestGoogleBooksSearchHonorsCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	}))
	defer server.Close()

	g := newTestGoogleBooks(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := g.Search(ctx, "One Piece", "")
	require.Error(t, err)
	require.Nil(t, result)
}

func TestGoogleBooksAPIKeyParam(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(onePieceResponse))
	}))
	defer server.Close()

	g := newTestGoogleBooks(server.URL)
	g.apiKey = "test-api-key"

	_, err := g.Search(context.Background(), "One Piece", "")
	require.NoError(t, err)
	require.Equal(t, "test-api-key", gotKey)
}

func TestParseYear(t *testing.T) {
	require.Equal(t, 2003, parseYear("2003"))
	require.Equal(t, 2003, parseYear("2003-06"))
	require.Equal(t, 2003, parseYear("2003-06-02"))
	require.Equal(t, 0, parseYear(""))
	require.Equal(t, 0, parseYear("n/a"))
}
