package config

// Default values for configuration fields.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultDirPath   = "."
)

// ApplyDefaults fills unset fields with their defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
	for i := range cfg.Resolvers {
		r := &cfg.Resolvers[i]
		if r.Type == ResolverDir && r.Path == "" {
			r.Path = DefaultDirPath
		}
	}
}
