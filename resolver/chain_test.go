package resolver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

type failingResolver struct{ err error }

func (f failingResolver) Exists(context.Context, string) (bool, error) { return false, f.err }
func (f failingResolver) Resolve(context.Context, string) (io.ReadCloser, error) {
	return nil, f.err
}

func TestChain_FirstMatchWins(t *testing.T) {
	a, b := NewMemory(), NewMemory()
	a.Put("foo", []byte("from-a"))
	b.Put("foo", []byte("from-b"))
	b.Put("bar", []byte("only-b"))

	c := NewChain(a, b)
	ctx := context.Background()

	rc, err := c.Resolve(ctx, "foo")
	require.NoError(t, err)
	assert.Equal(t, "from-a", readAll(t, rc))

	rc, err = c.Resolve(ctx, "bar")
	require.NoError(t, err)
	assert.Equal(t, "only-b", readAll(t, rc))

	_, err = c.Resolve(ctx, "baz")
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := c.Exists(ctx, "bar")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Exists(ctx, "baz")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChain_NoResolver(t *testing.T) {
	c := NewChain()
	ctx := context.Background()

	_, err := c.Resolve(ctx, "foo")
	assert.ErrorIs(t, err, ErrNoResolver)

	_, err = c.Exists(ctx, "foo")
	assert.ErrorIs(t, err, ErrNoResolver)
}

func TestChain_AddInsertRemove(t *testing.T) {
	a, b, d := NewMemory(), NewMemory(), NewMemory()
	a.Put("foo", []byte("a"))
	d.Put("foo", []byte("d"))

	c := NewChain(a)
	c.Add(b)
	c.Add(nil)
	assert.Equal(t, 2, c.Len())

	c.Insert(0, d)
	assert.Equal(t, []Resolver{d, a, b}, c.Snapshot())

	rc, err := c.Resolve(context.Background(), "foo")
	require.NoError(t, err)
	assert.Equal(t, "d", readAll(t, rc))

	assert.True(t, c.Remove(d))
	assert.False(t, c.Remove(d))
	c.Insert(99, d)
	assert.Equal(t, []Resolver{a, b, d}, c.Snapshot())
}

// mapResolver is a resolver whose dynamic type cannot be compared.
type mapResolver map[string][]byte

func (m mapResolver) Exists(_ context.Context, path string) (bool, error) {
	_, ok := m[path]
	return ok, nil
}

func (m mapResolver) Resolve(_ context.Context, path string) (io.ReadCloser, error) {
	b, ok := m[path]
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func TestChain_RemoveNonComparable(t *testing.T) {
	mr := mapResolver{"a": []byte("x")}
	mem := NewMemory()
	c := NewChain(mr, mem)

	assert.NotPanics(t, func() {
		assert.False(t, c.Remove(mapResolver{"a": []byte("x")}))
	})
	assert.Equal(t, 2, c.Len())

	assert.True(t, c.Remove(mem))
	assert.Equal(t, 1, c.Len())

	rc, err := c.Resolve(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "x", readAll(t, rc))
}

func TestChain_ErrorStopsWalk(t *testing.T) {
	boom := errors.New("backend down")
	later := NewMemory()
	later.Put("foo", []byte("x"))

	c := NewChain(failingResolver{err: boom}, later)

	_, err := c.Resolve(context.Background(), "foo")
	assert.ErrorIs(t, err, boom)

	_, err = c.Exists(context.Background(), "foo")
	assert.ErrorIs(t, err, boom)

	// Not-found errors keep walking.
	c = NewChain(failingResolver{err: ErrNotFound}, later)
	rc, err := c.Resolve(context.Background(), "foo")
	require.NoError(t, err)
	assert.Equal(t, "x", readAll(t, rc))
}

func TestChain_SnapshotIsolatedFromMutation(t *testing.T) {
	a := NewMemory()
	c := NewChain(a)

	snap := c.Snapshot()
	c.Add(NewMemory())
	c.Remove(a)

	assert.Len(t, snap, 1)
	assert.Same(t, a, snap[0])
}

func TestChain_ConcurrentMutation(t *testing.T) {
	m := NewMemory()
	m.Put("foo", []byte("x"))
	c := NewChain(m)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 100 {
				extra := NewMemory()
				c.Add(extra)
				c.Remove(extra)
			}
		}()
		go func() {
			defer wg.Done()
			for range 100 {
				rc, err := c.Resolve(ctx, "foo")
				if assert.NoError(t, err) {
					_ = rc.Close()
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
}
