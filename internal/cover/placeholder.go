package cover

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"
	"unicode"
)

// placeholderColors is the fixed palette the deterministic placeholder
// generator picks from. The choice only depends on the title hash, so the
// same title always renders the same placeholder.
var placeholderColors = []string{
	"1a237e", // indigo
	"b71c1c", // red
	"1b5e20", // green
	"4a148c", // purple
	"e65100", // orange
	"006064", // teal
	"880e4f", // pink
	"3e2723", // brown
}

// titleHash returns a stable hash of the normalized title.
func titleHash(title string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(NormalizeKey(title)))
	return h.Sum32()
}

// PlaceholderURL builds a deterministic placeholder cover for a title: the
// title's first character on a hash-selected background color.
func PlaceholderURL(title string) string {
	initial := "?"
	for _, r := range strings.TrimSpace(title) {
		initial = string(unicode.ToUpper(r))
		break
	}

	color := placeholderColors[titleHash(title)%uint32(len(placeholderColors))]
	return fmt.Sprintf("https://placehold.co/300x450/%s/ffffff?text=%s", color, url.QueryEscape(initial))
}
