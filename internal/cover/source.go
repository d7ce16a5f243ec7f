package cover

import "context"

// Source is one independent search backend. Search returns the best accepted
// cover for the title, nil when the source has nothing acceptable, or an
// error for transport/parse failures. The resolver treats errors the same as
// nil results; they never abort a resolution.
type Source interface {
	// Name identifies the source in cache entries and logs.
	Name() string

	Search(ctx context.Context, title, author string) (*Result, error)
}
