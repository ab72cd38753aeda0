package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"sync"
)

// Chain is an ordered list of resolvers. The first resolver that can serve a
// path wins. Mutations are safe at any time: lookups walk a point-in-time
// snapshot of the list, never the live slice.
type Chain struct {
	mu        sync.Mutex
	resolvers []Resolver
}

// NewChain creates a chain with the given resolvers in order.
func NewChain(resolvers ...Resolver) *Chain {
	c := &Chain{}
	for _, r := range resolvers {
		c.Add(r)
	}
	return c
}

// Add appends r to the chain.
func (c *Chain) Add(r Resolver) {
	if r == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolvers = append(c.resolvers, r)
}

// Insert places r at index i, clamped to the chain bounds.
func (c *Chain) Insert(i int, r Resolver) {
	if r == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i = min(max(i, 0), len(c.resolvers))
	c.resolvers = slices.Insert(c.resolvers, i, r)
}

// Remove removes the first occurrence of r. It reports whether r was found.
// Resolvers of a non-comparable type never match.
func (c *Chain) Remove(r Resolver) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, cur := range c.resolvers {
		if sameResolver(cur, r) {
			c.resolvers = slices.Delete(c.resolvers, i, i+1)
			return true
		}
	}
	return false
}

func sameResolver(a, b Resolver) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Snapshot returns a copy of the registered resolvers in order.
func (c *Chain) Snapshot() []Resolver {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.resolvers)
}

// Len returns the number of registered resolvers.
func (c *Chain) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.resolvers)
}

// Exists reports whether any resolver can serve path.
func (c *Chain) Exists(ctx context.Context, path string) (bool, error) {
	resolvers := c.Snapshot()
	if len(resolvers) == 0 {
		return false, ErrNoResolver
	}
	for i, r := range resolvers {
		ok, err := r.Exists(ctx, path)
		if err != nil {
			return false, fmt.Errorf("resolver %d: %w", i, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Resolve returns the stream of the first resolver that can serve path.
// It returns ErrNotFound if none can. Any other resolver error stops the walk.
func (c *Chain) Resolve(ctx context.Context, path string) (io.ReadCloser, error) {
	resolvers := c.Snapshot()
	if len(resolvers) == 0 {
		return nil, ErrNoResolver
	}
	for i, r := range resolvers {
		rc, err := r.Resolve(ctx, path)
		if err == nil && rc != nil {
			return rc, nil
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("resolver %d: %w", i, err)
		}
	}
	return nil, ErrNotFound
}
