package assetkit

import (
	"context"
	"reflect"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Load returns the asset name decoded as T.
//
// The first Load of a name resolves and decodes it while holding the name's
// locker; concurrent Loads of the same name wait and then return the cached
// value. Failed loads cache nothing, so a later Load retries from scratch.
//
// Load fails with *AssetNotFoundError if no resolver serves the name, with
// ErrConfiguration or *UnsupportedTypeError if no usable reader is declared
// for T, and with *TypeMismatchError if the cached value is not a T. Errors
// returned by the reader are passed through unchanged.
//
// The per-name wait is not bound to ctx; ctx reaches resolvers and readers.
func Load[T any](ctx context.Context, m *Manager, name string, optFns ...LoadOption) (T, error) {
	var zero T
	if m.closed.Load() {
		return zero, ErrClosed
	}

	o := applyLoadOptions(optFns)
	t := reflect.TypeFor[T]()
	start := time.Now()

	done := m.beginLoad()
	v, hit, err := m.cache.Load(foldName(name), func() (any, error) {
		return m.readAsset(ctx, name, t, o.readOptions)
	})
	done()

	if hit {
		m.metrics.RecordCacheHit(name)
	} else {
		m.metrics.RecordLoad(name, time.Since(start), err)
	}
	m.logger.LogLoad(ctx, name, m.resolvePath(name), hit, time.Since(start), err)

	if err != nil {
		return zero, err
	}

	out, ok := v.(T)
	if !ok {
		return zero, &TypeMismatchError{Name: name, Want: t, Got: reflect.TypeOf(v)}
	}
	return out, nil
}

// Preload loads names as T concurrently and returns the first error.
// Loads already in flight when an error occurs run to completion.
func Preload[T any](ctx context.Context, m *Manager, names ...string) error {
	limit := m.preloadLimit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := Load[T](gctx, m, name)
			return err
		})
	}
	return g.Wait()
}
