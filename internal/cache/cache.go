// README: Response cache for collaborator lookups with request collapsing.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Store is a byte-oriented key/value store with per-entry TTL.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DefaultFetchTimeout bounds a shared fetch once it is detached from its callers.
const DefaultFetchTimeout = time.Minute

// Loader wraps a Store with a TTL and collapses concurrent fetches of the same key.
type Loader struct {
	store        Store
	ttl          time.Duration
	fetchTimeout time.Duration
	group        singleflight.Group
	logger       *zap.Logger
}

type LoaderOption func(*Loader)

// WithFetchTimeout sets how long a collapsed fetch may run.
func WithFetchTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d > 0 {
			l.fetchTimeout = d
		}
	}
}

func NewLoader(store Store, ttl time.Duration, logger *zap.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loader{store: store, ttl: ttl, fetchTimeout: DefaultFetchTimeout, logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// GetOrFetch returns the cached value for key, or calls fetch and caches its
// result. Fetch errors are never cached. Store failures are logged and
// bypassed. The bool reports a cache hit.
//
// Concurrent callers share one fetch. The fetch keeps the first caller's
// values but not its cancellation, so a caller that gives up only abandons
// its own wait.
func GetOrFetch[T any](ctx context.Context, l *Loader, key string, fetch func(context.Context) (T, error)) (T, bool, error) {
	var zero T
	if l == nil || l.store == nil {
		v, err := fetch(ctx)
		return v, false, err
	}

	if raw, ok, err := l.store.Get(ctx, key); err != nil {
		l.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, true, nil
		}
		l.logger.Warn("cache entry undecodable", zap.String("key", key))
	}

	shared := context.WithoutCancel(ctx)
	ch := l.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(shared, l.fetchTimeout)
		defer cancel()

		v, err := fetch(fctx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return v, nil
		}
		if err := l.store.Set(fctx, key, raw, l.ttl); err != nil {
			l.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, false, res.Err
		}
		v, ok := res.Val.(T)
		if !ok {
			return zero, false, fmt.Errorf("cache: unexpected value type %T for key %s", res.Val, key)
		}
		return v, false, nil
	}
}
