package resource

import (
	"context"
	"io"
)

// RateLimitedReader wraps an io.ReadCloser with the controller's IO limit.
type RateLimitedReader struct {
	r   io.ReadCloser
	rc  *Controller
	ctx context.Context
}

// NewRateLimitedReader creates a new RateLimitedReader.
// If rc has no IO limit, r is returned unchanged.
func NewRateLimitedReader(ctx context.Context, r io.ReadCloser, rc *Controller) io.ReadCloser {
	if rc.ioBurst() == 0 {
		return r
	}
	return &RateLimitedReader{r: r, rc: rc, ctx: ctx}
}

func (r *RateLimitedReader) Read(p []byte) (int, error) {
	// WaitN rejects reservations larger than the burst.
	if burst := r.rc.ioBurst(); len(p) > burst {
		p = p[:burst]
	}
	if err := r.rc.AcquireIO(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Close closes the wrapped reader.
func (r *RateLimitedReader) Close() error {
	return r.r.Close()
}
