package cover

import (
	"fmt"
	"strings"
)

// Volume phrases and qualifiers combined into the volume-qualified query
// variants. Ordered most-specific first so the scorer can short-circuit on
// an early high-confidence match.
var (
	volumePhrases = []string{"volume 1", "vol.1", "first volume"}
	qualifiers    = []string{"manga", "comic", "english edition", "english version", "japanese manga"}
)

// QueryBuilder produces ordered candidate search-query strings for a title.
// The alias table is injected at construction so tests can substitute a fake.
type QueryBuilder struct {
	aliases AliasTable
}

// NewQueryBuilder creates a QueryBuilder backed by the given alias table.
// A nil table disables alias expansion.
func NewQueryBuilder(aliases AliasTable) *QueryBuilder {
	return &QueryBuilder{aliases: aliases}
}

// Build returns a finite, deduplicated, ordered list of search queries for
// the title and optional author. The list is computed fresh on every call.
//
// Ordering: volume-qualified variants of the canonical name(s) first, then
// alias qualifier variants, then generic fallbacks on the raw title.
func (b *QueryBuilder) Build(title, author string) []string {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	var queries []string
	aliases := b.aliases.Lookup(title)

	// Volume-qualified variants use canonical names when the alias table
	// knows the series, otherwise the title as given.
	names := aliases
	if len(names) == 0 {
		names = []string{title}
	}
	for _, name := range names {
		for _, phrase := range volumePhrases {
			for _, q := range qualifiers {
				queries = append(queries, fmt.Sprintf("%s %s %s", name, phrase, q))
			}
		}
	}

	// Alias qualifier variants.
	for _, alias := range aliases {
		queries = append(queries,
			alias+" manga",
			alias+" comic",
			alias+` "graphic novel"`,
			alias,
		)
		if author != "" {
			queries = append(queries,
				fmt.Sprintf("%s %s manga", alias, author),
				fmt.Sprintf("%s %s comic", alias, author),
			)
		}
	}

	// Unqualified fallbacks on the raw title.
	queries = append(queries,
		title+" manga",
		title+" comic",
		title+` "graphic novel"`,
	)

	return dedupeQueries(queries)
}

// dedupeQueries removes exact duplicates and blank entries while preserving
// first-seen order.
func dedupeQueries(queries []string) []string {
	seen := make(map[string]bool, len(queries))
	out := make([]string, 0, len(queries))
	for _, q := range queries {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
	}
	return out
}
