package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "resolvers[0].bucket").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Validate validates the configuration and returns a ValidationError listing
// every failed rule. It returns nil if the configuration is valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateLogging(&cfg.Logging)...)
	errs = append(errs, validateResources(&cfg.Resources)...)

	if cfg.PreloadConcurrency < 0 {
		errs = append(errs, FieldError{Field: "preload_concurrency", Message: "must not be negative"})
	}

	for i := range cfg.Resolvers {
		errs = append(errs, validateResolver(i, &cfg.Resolvers[i])...)
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateLogging(l *LoggingConfig) []FieldError {
	var errs []FieldError

	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		errs = append(errs, FieldError{Field: "logging.level", Message: fmt.Sprintf("invalid level %q", l.Level)})
	}

	switch l.Format {
	case "text", "json":
	default:
		errs = append(errs, FieldError{Field: "logging.format", Message: fmt.Sprintf("must be text or json, got %q", l.Format)})
	}
	return errs
}

func validateResources(r *ResourcesConfig) []FieldError {
	var errs []FieldError
	if r.MemoryLimitBytes < 0 {
		errs = append(errs, FieldError{Field: "resources.memory_limit_bytes", Message: "must not be negative"})
	}
	if r.MaxConcurrentLoads < 0 {
		errs = append(errs, FieldError{Field: "resources.max_concurrent_loads", Message: "must not be negative"})
	}
	if r.IOLimitBytesPerSec < 0 {
		errs = append(errs, FieldError{Field: "resources.io_limit_bytes_per_sec", Message: "must not be negative"})
	}
	return errs
}

func validateResolver(i int, r *ResolverConfig) []FieldError {
	field := func(name string) string { return fmt.Sprintf("resolvers[%d].%s", i, name) }
	required := func(name, val string) []FieldError {
		if val == "" {
			return []FieldError{{Field: field(name), Message: "is required"}}
		}
		return nil
	}

	var errs []FieldError
	switch r.Type {
	case ResolverDir:
		errs = append(errs, required("path", r.Path)...)
	case ResolverS3:
		errs = append(errs, required("bucket", r.Bucket)...)
	case ResolverMinIO:
		errs = append(errs, required("bucket", r.Bucket)...)
		errs = append(errs, required("endpoint", r.Endpoint)...)
	case ResolverDynamoDB:
		errs = append(errs, required("table", r.Table)...)
	default:
		errs = append(errs, FieldError{Field: field("type"), Message: fmt.Sprintf("unknown resolver type %q", r.Type)})
	}

	if r.CacheBytes < 0 {
		errs = append(errs, FieldError{Field: field("cache_bytes"), Message: "must not be negative"})
	}
	return errs
}
