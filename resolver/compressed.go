package resolver

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression suffixes probed by Compressed, in order.
const (
	SuffixZstd = ".zst"
	SuffixLZ4  = ".lz4"
)

var zstdDecoderPool sync.Pool

func getZstdDecoder(r io.Reader) (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		dec := v.(*zstd.Decoder)
		if err := dec.Reset(r); err != nil {
			dec.Close()
			return nil, err
		}
		return dec, nil
	}
	return zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
}

func putZstdDecoder(dec *zstd.Decoder) {
	// Drop the reference to the finished stream before pooling.
	if err := dec.Reset(nil); err != nil {
		dec.Close()
		return
	}
	zstdDecoderPool.Put(dec)
}

// Compressed wraps a Resolver so that an asset stored compressed is served
// decompressed. For a path p it tries p, then p+".zst", then p+".lz4".
type Compressed struct {
	inner Resolver
}

// NewCompressed creates a Compressed resolver over inner.
func NewCompressed(inner Resolver) *Compressed {
	return &Compressed{inner: inner}
}

// Exists reports whether path or one of its compressed siblings exists.
func (c *Compressed) Exists(ctx context.Context, path string) (bool, error) {
	for _, p := range []string{path, path + SuffixZstd, path + SuffixLZ4} {
		ok, err := c.inner.Exists(ctx, p)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// Resolve opens path, decompressing a compressed sibling if path itself is absent.
func (c *Compressed) Resolve(ctx context.Context, path string) (io.ReadCloser, error) {
	rc, err := c.open(ctx, path)
	if !errors.Is(err, ErrNotFound) {
		return rc, err
	}

	rc, err = c.open(ctx, path+SuffixZstd)
	if err == nil {
		dec, err := getZstdDecoder(rc)
		if err != nil {
			_ = rc.Close()
			return nil, err
		}
		return &zstdStream{dec: dec, src: rc}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	rc, err = c.open(ctx, path+SuffixLZ4)
	if err != nil {
		return nil, err
	}
	return &lz4Stream{Reader: lz4.NewReader(rc), src: rc}, nil
}

// open resolves p on the inner resolver. A nil stream counts as not found.
func (c *Compressed) open(ctx context.Context, p string) (io.ReadCloser, error) {
	rc, err := c.inner.Resolve(ctx, p)
	if err == nil && rc == nil {
		return nil, ErrNotFound
	}
	return rc, err
}

type zstdStream struct {
	dec  *zstd.Decoder
	src  io.ReadCloser
	once sync.Once
}

func (s *zstdStream) Read(p []byte) (int, error) {
	return s.dec.Read(p)
}

func (s *zstdStream) Close() error {
	var err error
	s.once.Do(func() {
		putZstdDecoder(s.dec)
		err = s.src.Close()
	})
	return err
}

type lz4Stream struct {
	*lz4.Reader
	src io.ReadCloser
}

func (s *lz4Stream) Close() error {
	return s.src.Close()
}
