package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokeproxy/go-cache/logger"
)

func TestFetchCacheHit(t *testing.T) {
	c := New[string](DefaultConfig(), WithLogger(logger.NewTestLogger()))
	require.NoError(t, c.Insert("25", "pikachu"))
	f := NewFetcher[string](c)

	val, found, err := f.Fetch(context.Background(), "25", func(ctx context.Context) (string, bool, error) {
		t.Fatal("loader must not run on a cache hit")
		return "", false, nil
	})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "pikachu", val)
}

func TestFetchLoadsAndCaches(t *testing.T) {
	c := New[string](DefaultConfig(), WithLogger(logger.NewTestLogger()))
	f := NewFetcher[string](c)

	var loads int32
	loader := func(ctx context.Context) (string, bool, error) {
		atomic.AddInt32(&loads, 1)
		return "bulbasaur", true, nil
	}

	val, found, err := f.Fetch(context.Background(), "1", loader)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "bulbasaur", val)

	// Second fetch is served from the cache.
	val, found, err = f.Fetch(context.Background(), "1", loader)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "bulbasaur", val)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
}

func TestFetchNotFoundIsNotCached(t *testing.T) {
	c := New[string](DefaultConfig(), WithLogger(logger.NewTestLogger()))
	f := NewFetcher[string](c)

	_, found, err := f.Fetch(context.Background(), "0", func(ctx context.Context) (string, bool, error) {
		return "", false, nil
	})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, c.Size())
}

func TestFetchPropagatesLoaderError(t *testing.T) {
	c := New[string](DefaultConfig(), WithLogger(logger.NewTestLogger()))
	f := NewFetcher[string](c)

	boom := errors.New("upstream unavailable")
	_, found, err := f.Fetch(context.Background(), "9", func(ctx context.Context) (string, bool, error) {
		return "", false, boom
	})
	assert.False(t, found)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, 0, c.Size())
}

func TestFetchCollapsesConcurrentLoads(t *testing.T) {
	c := New[string](DefaultConfig(), WithLogger(logger.NewTestLogger()))
	f := NewFetcher[string](c)

	var loads int32
	release := make(chan struct{})
	loader := func(ctx context.Context) (string, bool, error) {
		atomic.AddInt32(&loads, 1)
		<-release
		return "charizard", true, nil
	}

	const fetchers = 5
	var wg sync.WaitGroup
	results := make([]string, fetchers)
	for i := 0; i < fetchers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			val, found, err := f.Fetch(context.Background(), "6", loader)
			assert.NoError(t, err)
			assert.True(t, found)
			results[i] = val
		}(i)
	}

	// Let every fetch reach the in-flight load before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
	for _, val := range results {
		assert.Equal(t, "charizard", val)
	}
}
