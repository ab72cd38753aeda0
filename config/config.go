package config

// Resolver types.
const (
	ResolverDir      = "dir"
	ResolverS3       = "s3"
	ResolverMinIO    = "minio"
	ResolverDynamoDB = "dynamodb"
)

// Config is the root configuration of a content manager.
type Config struct {
	// RootDirectory is prepended to every asset name when resolving.
	RootDirectory string `yaml:"root_directory"`

	// PreloadConcurrency bounds Preload. 0 means GOMAXPROCS.
	PreloadConcurrency int `yaml:"preload_concurrency"`

	Logging   LoggingConfig    `yaml:"logging"`
	Resources ResourcesConfig  `yaml:"resources"`
	Resolvers []ResolverConfig `yaml:"resolvers"`
}

// LoggingConfig configures the manager logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// ResourcesConfig mirrors resource.Config. Zero values mean unlimited.
type ResourcesConfig struct {
	MemoryLimitBytes   int64 `yaml:"memory_limit_bytes"`
	MaxConcurrentLoads int64 `yaml:"max_concurrent_loads"`
	IOLimitBytesPerSec int64 `yaml:"io_limit_bytes_per_sec"`
}

// ResolverConfig configures one entry of the resolver chain. Fields not used
// by Type are ignored.
type ResolverConfig struct {
	Type string `yaml:"type"`

	// Path is the directory of a dir resolver.
	Path string `yaml:"path"`

	// Bucket and Prefix locate objects in s3 and minio.
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`

	// Region applies to s3 and dynamodb.
	Region string `yaml:"region"`

	// Endpoint selects an S3-compatible service for s3, or the server for minio.
	Endpoint string `yaml:"endpoint"`

	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`

	// Table is the DynamoDB table name.
	Table string `yaml:"table"`

	// Compressed also tries .zst and .lz4 variants of every path.
	Compressed bool `yaml:"compressed"`

	// CacheBytes keeps up to this many resolved bytes in memory. 0 disables.
	CacheBytes int64 `yaml:"cache_bytes"`
}
