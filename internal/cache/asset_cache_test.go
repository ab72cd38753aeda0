package cache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeCounter struct {
	closed atomic.Int32
	err    error
}

func (c *closeCounter) Close() error {
	c.closed.Add(1)
	return c.err
}

func TestAssetCache_LoadOncePerKey(t *testing.T) {
	c := NewAssetCache(AssetOptions{})

	var fills atomic.Int32
	start := make(chan struct{})

	const callers = 32
	results := make([]any, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			v, _, err := c.Load("hero", func() (any, error) {
				fills.Add(1)
				time.Sleep(10 * time.Millisecond)
				return &closeCounter{}, nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), fills.Load())
	for _, v := range results {
		assert.Same(t, results[0], v)
	}
}

func TestAssetCache_DifferentKeysInParallel(t *testing.T) {
	c := NewAssetCache(AssetOptions{})

	entered := make(chan string, 2)
	release := make(chan struct{})

	var wg sync.WaitGroup
	for _, key := range []string{"a", "b"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			_, _, err := c.Load(key, func() (any, error) {
				entered <- key
				<-release
				return key, nil
			})
			assert.NoError(t, err)
		}(key)
	}

	// Both fills must be in flight at the same time.
	for range 2 {
		select {
		case <-entered:
		case <-time.After(time.Second):
			t.Fatal("fill for a different key was blocked")
		}
	}
	close(release)
	wg.Wait()
	assert.Equal(t, []string{"a", "b"}, c.Keys())
}

func TestAssetCache_FailedFillIsRetried(t *testing.T) {
	c := NewAssetCache(AssetOptions{})
	boom := errors.New("boom")

	_, _, err := c.Load("k", func() (any, error) { return nil, boom })
	assert.Same(t, boom, err)
	assert.False(t, c.Contains("k"))

	v, hit, err := c.Load("k", func() (any, error) { return 42, nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 42, v)

	v, hit, err = c.Load("k", func() (any, error) { return 0, errors.New("must not run") })
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 42, v)
}

func TestAssetCache_UnloadDisposesOnce(t *testing.T) {
	var evicted []string
	c := NewAssetCache(AssetOptions{OnEvict: func(key string, _ any) { evicted = append(evicted, key) }})
	value := &closeCounter{}

	_, _, err := c.Load("k", func() (any, error) { return value, nil })
	require.NoError(t, err)
	assert.Equal(t, 1, c.Lockers())

	assert.True(t, c.Unload("k"))
	assert.False(t, c.Unload("k"))
	assert.False(t, c.Unload("never"))

	assert.Equal(t, int32(1), value.closed.Load())
	assert.Equal(t, []string{"k"}, evicted)
	assert.False(t, c.Contains("k"))
	assert.Equal(t, 0, c.Lockers())
}

func TestAssetCache_UnloadAfterFailedLoad(t *testing.T) {
	c := NewAssetCache(AssetOptions{})

	_, _, err := c.Load("k", func() (any, error) { return nil, errors.New("boom") })
	require.Error(t, err)
	assert.Equal(t, 1, c.Lockers())

	assert.False(t, c.Unload("k"))
	assert.Equal(t, 1, c.Lockers())

	v, hit, err := c.Load("k", func() (any, error) { return "ok", nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "ok", v)
	assert.True(t, c.Unload("k"))
	assert.Equal(t, 0, c.Lockers())
}

func TestAssetCache_UnloadWaitsForLoad(t *testing.T) {
	c := NewAssetCache(AssetOptions{})
	value := &closeCounter{}
	inFill := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_, _, _ = c.Load("k", func() (any, error) {
			close(inFill)
			<-release
			return value, nil
		})
	}()
	<-inFill

	done := make(chan bool)
	go func() { done <- c.Unload("k") }()

	select {
	case <-done:
		t.Fatal("unload did not wait for the in-flight load")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	assert.True(t, <-done)
	assert.Equal(t, int32(1), value.closed.Load())

	// A load after the unload re-fills.
	v, hit, err := c.Load("k", func() (any, error) { return "fresh", nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "fresh", v)
}

func TestAssetCache_UnloadAll(t *testing.T) {
	var closeErrs []error
	c := NewAssetCache(AssetOptions{OnCloseError: func(_ string, err error) { closeErrs = append(closeErrs, err) }})

	values := make([]*closeCounter, 5)
	for i := range values {
		values[i] = &closeCounter{}
		if i == 0 {
			values[i].err = errors.New("close failed")
		}
		v := values[i]
		_, _, err := c.Load(fmt.Sprintf("k%d", i), func() (any, error) { return v, nil })
		require.NoError(t, err)
	}
	_, _, _ = c.Load("failed", func() (any, error) { return nil, errors.New("nope") })
	assert.Equal(t, 6, c.Lockers())

	assert.Equal(t, 5, c.UnloadAll())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Lockers())
	for _, v := range values {
		assert.Equal(t, int32(1), v.closed.Load())
	}
	assert.Len(t, closeErrs, 1)
}

func TestAssetCache_Get(t *testing.T) {
	c := NewAssetCache(AssetOptions{})
	_, ok := c.Get("k")
	assert.False(t, ok)

	_, _, err := c.Load("k", func() (any, error) { return "v", nil })
	require.NoError(t, err)

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	assert.Equal(t, 1, c.Len())
}
