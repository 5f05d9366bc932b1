package hotel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tripplanner/internal/cache"
)

// CachedSearcher memoizes property lists per location and date range.
type CachedSearcher struct {
	next   Searcher
	loader *cache.Loader
}

func NewCachedSearcher(next Searcher, loader *cache.Loader) *CachedSearcher {
	return &CachedSearcher{next: next, loader: loader}
}

func (c *CachedSearcher) Search(ctx context.Context, req SearchRequest) ([]Property, error) {
	key := fmt.Sprintf("hotels:%s:%s:%s",
		strings.ToLower(strings.TrimSpace(req.Location)),
		req.CheckIn.Format(time.DateOnly),
		req.CheckOut.Format(time.DateOnly))
	props, _, err := cache.GetOrFetch(ctx, c.loader, key, func(ctx context.Context) ([]Property, error) {
		return c.next.Search(ctx, req)
	})
	return props, err
}
