package resolver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zstdBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write(data)
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	return buf.Bytes()
}

func lz4Bytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestCompressed_Resolve(t *testing.T) {
	payload := []byte(strings.Repeat("compress me with zstd! ", 200))

	m := NewMemory()
	m.Put("plain.txt", []byte("plain"))
	m.Put("big.txt.zst", zstdBytes(t, payload))
	m.Put("fast.txt.lz4", lz4Bytes(t, payload))

	c := NewCompressed(m)
	ctx := context.Background()

	rc, err := c.Resolve(ctx, "plain.txt")
	require.NoError(t, err)
	assert.Equal(t, "plain", readAll(t, rc))

	// Decoders are pooled; resolve twice to reuse one.
	for range 2 {
		rc, err = c.Resolve(ctx, "big.txt")
		require.NoError(t, err)
		assert.Equal(t, string(payload), readAll(t, rc))
	}

	rc, err = c.Resolve(ctx, "fast.txt")
	require.NoError(t, err)
	assert.Equal(t, string(payload), readAll(t, rc))

	_, err = c.Resolve(ctx, "missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	for path, want := range map[string]bool{"plain.txt": true, "big.txt": true, "fast.txt": true, "missing.txt": false} {
		ok, err := c.Exists(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, want, ok, path)
	}
}

// silentResolver reports a missing path as a nil stream without an error.
type silentResolver struct{ *Memory }

func (s silentResolver) Resolve(ctx context.Context, path string) (io.ReadCloser, error) {
	rc, err := s.Memory.Resolve(ctx, path)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return rc, err
}

func TestCompressed_NilStreamFallsThrough(t *testing.T) {
	payload := []byte("sibling payload")
	m := NewMemory()
	m.Put("a.bin.zst", zstdBytes(t, payload))
	m.Put("b.bin.lz4", lz4Bytes(t, payload))

	c := NewCompressed(silentResolver{m})
	ctx := context.Background()

	rc, err := c.Resolve(ctx, "a.bin")
	require.NoError(t, err)
	assert.Equal(t, string(payload), readAll(t, rc))

	rc, err = c.Resolve(ctx, "b.bin")
	require.NoError(t, err)
	assert.Equal(t, string(payload), readAll(t, rc))

	_, err = c.Resolve(ctx, "none.bin")
	assert.ErrorIs(t, err, ErrNotFound)
}
