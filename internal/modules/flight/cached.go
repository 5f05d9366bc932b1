package flight

import (
	"context"
	"fmt"

	"tripplanner/internal/cache"
)

// CachedSearcher memoizes search results per route, date and direction.
type CachedSearcher struct {
	next   Searcher
	loader *cache.Loader
}

func NewCachedSearcher(next Searcher, loader *cache.Loader) *CachedSearcher {
	return &CachedSearcher{next: next, loader: loader}
}

func (c *CachedSearcher) Search(ctx context.Context, req SearchRequest) ([]Offer, error) {
	key := fmt.Sprintf("flights:%s:%s:%s:%s", req.Origin, req.Destination, req.Date.Format("2006-01-02"), req.Direction)
	offers, _, err := cache.GetOrFetch(ctx, c.loader, key, func(ctx context.Context) ([]Offer, error) {
		return c.next.Search(ctx, req)
	})
	return offers, err
}
