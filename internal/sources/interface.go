package sources

import "context"

// Item is one raw candidate record produced by a collector, before
// sentiment scoring and normalization.
type Item struct {
	Platform string
	Content  string
	Likes    int
	Shares   int
	Comments int
	Author   string
	URL      string
}

// Source is the contract for all platform collectors. Implementations
// expand the brand into query variants, drop irrelevant results and
// deduplicate by source URL before returning.
type Source interface {
	Name() string
	Enabled() bool
	Fetch(ctx context.Context, brandName string) ([]Item, error)
}
