package assetkit

import (
	"log/slog"

	"github.com/hupe1980/assetkit/resolver"
	"github.com/hupe1980/assetkit/resource"
)

type options struct {
	rootDirectory    string
	resolvers        []resolver.Resolver
	readers          []Reader
	metricsCollector MetricsCollector
	logger           *Logger
	resources        *resource.Controller
	services         ServiceProvider
	preloadLimit     int
}

// Option configures a Manager.
type Option func(*options)

// WithRootDirectory sets the directory prepended to every asset name when
// resolving. The cache key is never affected.
func WithRootDirectory(dir string) Option {
	return func(o *options) {
		o.rootDirectory = dir
	}
}

// WithResolvers appends resolvers to the chain in the given order.
func WithResolvers(rs ...resolver.Resolver) Option {
	return func(o *options) {
		o.resolvers = append(o.resolvers, rs...)
	}
}

// WithReaders pre-registers reader instances. A registered instance is reused
// for every type that declares its reader type.
func WithReaders(rs ...Reader) Option {
	return func(o *options) {
		o.readers = append(o.readers, rs...)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &assetkit.BasicMetricsCollector{}
//	m := assetkit.New(assetkit.WithMetricsCollector(metrics))
//	// ... use m ...
//	stats := metrics.GetStats()
//	fmt.Printf("Loads: %d, Hits: %d\n", stats.LoadCount, stats.CacheHits)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := assetkit.NewJSONLogger(slog.LevelInfo)
//	m := assetkit.New(assetkit.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController bounds concurrent loads, stream throughput and
// resident memory. A nil controller imposes no limits.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithServices sets the service provider readers can reach through
// Manager.Services.
func WithServices(sp ServiceProvider) Option {
	return func(o *options) {
		o.services = sp
	}
}

// WithPreloadConcurrency limits the number of loads Preload runs at once.
// Values <= 0 mean GOMAXPROCS.
func WithPreloadConcurrency(n int) Option {
	return func(o *options) {
		o.preloadLimit = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.services == nil {
		o.services = NewServiceMap()
	}
	return o
}

type loadOptions struct {
	readOptions any
}

// LoadOption configures a single Load call.
type LoadOption func(*loadOptions)

// WithReadOptions passes reader-specific options through ReadParams.Options.
// They only take effect when the load is a cache miss.
func WithReadOptions(v any) LoadOption {
	return func(o *loadOptions) {
		o.readOptions = v
	}
}

func applyLoadOptions(optFns []LoadOption) loadOptions {
	var o loadOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
