package assetkit

import (
	"context"
	"io"
	"path"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/hupe1980/assetkit/internal/cache"
	"github.com/hupe1980/assetkit/resolver"
	"github.com/hupe1980/assetkit/resource"
)

// Manager loads, caches and disposes named assets.
//
// All methods are safe for concurrent use, except that UnloadAll (and Close)
// must not overlap other calls on the same Manager.
type Manager struct {
	id string

	mu      sync.RWMutex // guards root
	root    string
	loading atomic.Int64 // loads in flight; incremented under mu.RLock

	chain     *resolver.Chain
	registry  *readerRegistry
	cache     *cache.AssetCache
	services  ServiceProvider
	resources *resource.Controller

	logger       *Logger
	metrics      MetricsCollector
	preloadLimit int

	closeOnce sync.Once
	closed    atomic.Bool

	disposeMu   sync.Mutex
	disposeErrs []error
	collecting  bool
}

// New creates a Manager.
func New(optFns ...Option) *Manager {
	o := applyOptions(optFns)

	m := &Manager{
		id:           uuid.NewString(),
		root:         o.rootDirectory,
		chain:        resolver.NewChain(o.resolvers...),
		services:     o.services,
		resources:    o.resources,
		metrics:      o.metricsCollector,
		preloadLimit: o.preloadLimit,
	}
	m.logger = o.logger.WithManagerID(m.id)
	m.registry = newReaderRegistry(func(rt, t reflect.Type) {
		m.logger.LogReaderCreated(context.Background(), rt, t)
	})
	for _, r := range o.readers {
		m.registry.add(r)
	}
	m.cache = cache.NewAssetCache(cache.AssetOptions{
		OnEvict:      m.onEvict,
		OnCloseError: m.onDisposeError,
	})

	return m
}

// ID returns the manager's instance id.
func (m *Manager) ID() string { return m.id }

// RootDirectory returns the directory prepended to asset names when resolving.
func (m *Manager) RootDirectory() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.root
}

// SetRootDirectory changes the root directory. It fails with ErrConfiguration
// while any asset is cached or a load is in flight.
func (m *Manager) SetRootDirectory(dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n := m.loading.Load(); n > 0 {
		return configError("cannot change root directory while %d loads are in flight", n)
	}
	if n := m.cache.Len(); n > 0 {
		return configError("cannot change root directory while %d assets are loaded", n)
	}
	m.root = dir
	return nil
}

// Exists reports whether any resolver can serve name. It fails with
// ErrConfiguration if no resolver is registered.
func (m *Manager) Exists(ctx context.Context, name string) (bool, error) {
	p := m.resolvePath(name)
	ok, err := m.chain.Exists(ctx, p)
	if err != nil {
		return false, translateError(name, p, err)
	}
	return ok, nil
}

// IsLoaded reports whether name is cached.
func (m *Manager) IsLoaded(name string) bool {
	return m.cache.Contains(foldName(name))
}

// Len returns the number of cached assets.
func (m *Manager) Len() int {
	return m.cache.Len()
}

// LoadedNames returns the case-folded names of all cached assets, sorted.
func (m *Manager) LoadedNames() []string {
	return m.cache.Keys()
}

// Unload removes name from the cache and disposes its value. It returns false
// if name was never loaded or has already been unloaded.
func (m *Manager) Unload(name string) bool {
	removed := m.cache.Unload(foldName(name))
	m.metrics.RecordUnload(name, removed)
	m.logger.LogUnload(context.Background(), name, removed)
	return removed
}

// UnloadAll disposes every cached asset.
//
// UnloadAll takes no per-name locks. Callers must not run it concurrently with
// Load, Unload or Preload on the same Manager.
func (m *Manager) UnloadAll() {
	n := m.cache.UnloadAll()
	m.metrics.RecordUnloadAll(n)
	m.logger.LogUnloadAll(context.Background(), n)
}

// AddResolver appends r to the resolver chain.
func (m *Manager) AddResolver(r resolver.Resolver) { m.chain.Add(r) }

// InsertResolver places r at index i of the resolver chain.
func (m *Manager) InsertResolver(i int, r resolver.Resolver) { m.chain.Insert(i, r) }

// RemoveResolver removes r from the chain and reports whether it was present.
func (m *Manager) RemoveResolver(r resolver.Resolver) bool { return m.chain.Remove(r) }

// Resolvers returns the registered resolvers in order.
func (m *Manager) Resolvers() []resolver.Resolver { return m.chain.Snapshot() }

// AddReader registers r. It replaces a registered reader of the same concrete
// type, so a pre-configured instance wins over default construction.
func (m *Manager) AddReader(r Reader) { m.registry.add(r) }

// RemoveReader unregisters r and reports whether it was registered.
func (m *Manager) RemoveReader(r Reader) bool { return m.registry.remove(r) }

// Readers returns the registered readers, including those constructed on
// demand.
func (m *Manager) Readers() []Reader { return m.registry.snapshot() }

// Services returns the service provider passed to readers.
func (m *Manager) Services() ServiceProvider { return m.services }

// Resources returns the resource controller, or nil if loads are unbounded.
func (m *Manager) Resources() *resource.Controller { return m.resources }

// Logger returns the manager's logger.
func (m *Manager) Logger() *Logger { return m.logger }

// beginLoad pins the root directory until the returned func is called.
func (m *Manager) beginLoad() func() {
	m.mu.RLock()
	m.loading.Add(1)
	m.mu.RUnlock()
	return func() { m.loading.Add(-1) }
}

func (m *Manager) resolvePath(name string) string {
	m.mu.RLock()
	root := m.root
	m.mu.RUnlock()

	if root == "" {
		return name
	}
	return path.Join(root, name)
}

// readAsset resolves and decodes name on a cache miss. It runs under the
// per-name locker.
func (m *Manager) readAsset(ctx context.Context, name string, t reflect.Type, readOptions any) (any, error) {
	if err := m.resources.AcquireLoad(ctx); err != nil {
		return nil, err
	}
	defer m.resources.ReleaseLoad()

	p := m.resolvePath(name)
	rc, err := m.chain.Resolve(ctx, p)
	if err != nil {
		return nil, translateError(name, p, err)
	}

	params := &ReadParams{
		Name:    name,
		Path:    p,
		Type:    t,
		Stream:  resource.NewRateLimitedReader(ctx, rc, m.resources),
		Options: readOptions,
	}
	defer func() {
		if params.KeepStreamOpen {
			return
		}
		if err := rc.Close(); err != nil {
			m.logger.LogDisposeError(ctx, name, err)
		}
	}()

	r, err := m.registry.readerFor(t)
	if err != nil {
		return nil, err
	}

	v, err := r.ReadContent(ctx, m, params)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, &UnsupportedTypeError{Type: t, Reason: "reader returned no value"}
	}
	if got := reflect.TypeOf(v); !got.AssignableTo(t) {
		m.dispose(ctx, name, v)
		return nil, &TypeMismatchError{Name: name, Want: t, Got: got}
	}

	if s, ok := v.(Sizer); ok {
		if err := m.resources.TryAcquireMemory(s.SizeBytes()); err != nil {
			m.dispose(ctx, name, v)
			return nil, err
		}
	}
	return v, nil
}

func (m *Manager) dispose(ctx context.Context, name string, v any) {
	if c, ok := v.(io.Closer); ok {
		if err := c.Close(); err != nil {
			m.logger.LogDisposeError(ctx, name, err)
		}
	}
}

func (m *Manager) onEvict(_ string, v any) {
	if s, ok := v.(Sizer); ok {
		m.resources.ReleaseMemory(s.SizeBytes())
	}
}

func foldName(name string) string {
	return cases.Fold().String(name)
}
