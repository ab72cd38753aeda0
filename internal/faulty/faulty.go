package faulty

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/assetkit/resolver"
)

// ErrInjected is the error used when a Fault carries none.
var ErrInjected = errors.New("injected fault error")

// Fault defines specific failure behavior.
type Fault struct {
	FailOnResolve  bool
	FailOnExists   bool
	FailAfterBytes int64 // Fail reads after this many bytes read from one stream. -1 to disable.
	FailOnClose    bool
	Err            error
}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

// Resolver wraps a resolver and injects faults.
type Resolver struct {
	inner resolver.Resolver

	mu      sync.Mutex
	rules   map[string]Fault // path pattern -> Fault
	Default Fault

	opened atomic.Int64
	closed atomic.Int64
}

// New creates a Resolver wrapping inner.
func New(inner resolver.Resolver) *Resolver {
	return &Resolver{
		inner:   inner,
		rules:   make(map[string]Fault),
		Default: Fault{FailAfterBytes: -1},
	}
}

// AddRule adds a fault injection rule for paths containing pattern.
func (r *Resolver) AddRule(pattern string, fault Fault) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[pattern] = fault
}

// ClearRules removes every rule.
func (r *Resolver) ClearRules() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.rules)
}

// Open returns the number of streams handed out and not yet closed.
func (r *Resolver) Open() int64 {
	return r.opened.Load() - r.closed.Load()
}

func (r *Resolver) faultFor(path string) Fault {
	r.mu.Lock()
	defer r.mu.Unlock()

	fault := r.Default
	longest := -1
	for pattern, rule := range r.rules {
		if strings.Contains(path, pattern) && len(pattern) > longest {
			fault, longest = rule, len(pattern)
		}
	}
	return fault
}

// Exists implements resolver.Resolver.
func (r *Resolver) Exists(ctx context.Context, path string) (bool, error) {
	if f := r.faultFor(path); f.FailOnExists {
		return false, f.err()
	}
	return r.inner.Exists(ctx, path)
}

// Resolve implements resolver.Resolver.
func (r *Resolver) Resolve(ctx context.Context, path string) (io.ReadCloser, error) {
	fault := r.faultFor(path)
	if fault.FailOnResolve {
		return nil, fault.err()
	}

	rc, err := r.inner.Resolve(ctx, path)
	if err != nil {
		return nil, err
	}
	r.opened.Add(1)
	return &stream{ReadCloser: rc, r: r, fault: fault}, nil
}

type stream struct {
	io.ReadCloser
	r      *Resolver
	fault  Fault
	read   int64
	closed bool
}

func (s *stream) Read(p []byte) (int, error) {
	if s.fault.FailAfterBytes >= 0 {
		remaining := s.fault.FailAfterBytes - s.read
		if remaining <= 0 {
			return 0, s.fault.err()
		}
		if int64(len(p)) > remaining {
			p = p[:remaining]
		}
	}
	n, err := s.ReadCloser.Read(p)
	s.read += int64(n)
	return n, err
}

func (s *stream) Close() error {
	if !s.closed {
		s.closed = true
		s.r.closed.Add(1)
	}
	err := s.ReadCloser.Close()
	if s.fault.FailOnClose {
		return s.fault.err()
	}
	return err
}
