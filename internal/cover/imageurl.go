package cover

import (
	"net/url"
	"strings"
)

// CleanImageURL normalizes an external cover image URL: forces https and
// strips the page-curl effect Google's book thumbnails carry by default.
// Malformed URLs are returned with only the scheme rewrite applied.
func CleanImageURL(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") {
		raw = "https://" + strings.TrimPrefix(raw, "http://")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	q := u.Query()
	if q.Get("edge") == "curl" {
		q.Del("edge")
	}
	// zoom=1 is the small preview; zoom=0 serves the full-size scan.
	if q.Get("zoom") == "1" {
		q.Set("zoom", "0")
	}
	u.RawQuery = q.Encode()

	return u.String()
}
