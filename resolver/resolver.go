package resolver

import (
	"context"
	"errors"
	"io"
	"os"
)

var (
	// ErrNotFound is returned when a resolver cannot produce a stream for a path.
	//
	// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
	// The default maps to `os.ErrNotExist`.
	ErrNotFound = os.ErrNotExist

	// ErrNoResolver is returned by a Chain that has no registered resolvers.
	ErrNoResolver = errors.New("no resolver registered")
)

// Resolver supplies byte streams for asset paths.
type Resolver interface {
	// Exists reports whether path can be resolved.
	Exists(ctx context.Context, path string) (bool, error)
	// Resolve opens path for reading. The caller closes the stream.
	Resolve(ctx context.Context, path string) (io.ReadCloser, error)
}
