package assetkit

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/assetkit/resolver"
)

// note is declared through its own method and decoded by *noteReader.
type note struct {
	text string
}

func (*note) ContentReader() any { return &noteReader{} }

type noteReader struct {
	tag   string
	calls atomic.Int64
}

func (r *noteReader) ReadContent(_ context.Context, _ *Manager, p *ReadParams) (any, error) {
	r.calls.Add(1)
	b, err := io.ReadAll(p.Stream)
	if err != nil {
		return nil, err
	}
	return &note{text: string(b)}, nil
}

// label is a value type whose reader is a value type.
type label string

func (label) ContentReader() any { return labelReader{} }

type labelReader struct{}

func (labelReader) ReadContent(_ context.Context, _ *Manager, p *ReadParams) (any, error) {
	b, err := io.ReadAll(p.Stream)
	if err != nil {
		return nil, err
	}
	return label(b), nil
}

// handle tracks disposal.
type handle struct {
	name   string
	size   int64
	closes atomic.Int32
	err    error
}

func (h *handle) Close() error {
	h.closes.Add(1)
	return h.err
}

func (h *handle) SizeBytes() int64 { return h.size }

type handleReader struct {
	mu      sync.Mutex
	created []*handle
	size    int64
	failing map[string]error
}

func (r *handleReader) ReadContent(_ context.Context, _ *Manager, p *ReadParams) (any, error) {
	if _, err := io.Copy(io.Discard, p.Stream); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	h := &handle{name: p.Name, size: r.size, err: r.failing[p.Name]}
	r.created = append(r.created, h)
	return h, nil
}

func (r *handleReader) handles() []*handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*handle(nil), r.created...)
}

func init() {
	Declare[*handle, *handleReader]()
}

// trackingStream records whether it was closed.
type trackingStream struct {
	*bytes.Reader
	closed atomic.Bool
}

func (s *trackingStream) Close() error {
	s.closed.Store(true)
	return nil
}

// countingResolver serves from a Memory resolver and counts Resolve calls.
type countingResolver struct {
	*resolver.Memory
	resolves atomic.Int64

	mu      sync.Mutex
	streams []*trackingStream
}

func newCountingResolver() *countingResolver {
	return &countingResolver{Memory: resolver.NewMemory()}
}

func (r *countingResolver) Resolve(ctx context.Context, p string) (io.ReadCloser, error) {
	r.resolves.Add(1)
	rc, err := r.Memory.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	s := &trackingStream{Reader: bytes.NewReader(b)}
	r.mu.Lock()
	r.streams = append(r.streams, s)
	r.mu.Unlock()
	return s, nil
}

func (r *countingResolver) lastStream() *trackingStream {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.streams) == 0 {
		return nil
	}
	return r.streams[len(r.streams)-1]
}

var errDecode = errors.New("decode: bad magic")
