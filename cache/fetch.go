package cache

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Loader produces the value for a key that missed the cache. The bool return
// signals whether a value exists at all; return false to report "not found"
// without caching a zero value.
type Loader[T any] func(ctx context.Context) (T, bool, error)

// Fetcher is a cache-aside helper bound to one cache. Concurrent fetches for
// the same key share a single Loader call.
type Fetcher[T any] struct {
	cache Cache[T]
	group singleflight.Group
}

// NewFetcher returns a Fetcher reading through c.
func NewFetcher[T any](c Cache[T]) *Fetcher[T] {
	return &Fetcher[T]{cache: c}
}

type fetchResult[T any] struct {
	value T
	found bool
}

// Fetch returns the cached value for key, or calls load to produce it. A
// loaded value is stored before returning; a load that reports found=false
// is not cached. If the store refuses the insert, the value is still
// returned; the caller got what it asked for.
func (f *Fetcher[T]) Fetch(ctx context.Context, key string, load Loader[T]) (T, bool, error) {
	if val, ok := f.cache.Get(key); ok {
		return val, true, nil
	}

	v, err, _ := f.group.Do(key, func() (interface{}, error) {
		// Another fetch may have populated the key while we queued.
		if val, ok := f.cache.Get(key); ok {
			return fetchResult[T]{value: val, found: true}, nil
		}
		val, ok, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return fetchResult[T]{}, nil
		}
		_ = f.cache.Insert(key, val)
		return fetchResult[T]{value: val, found: true}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	res := v.(fetchResult[T])
	if !res.found {
		var zero T
		return zero, false, nil
	}
	return res.value, true, nil
}
