package reader

import (
	"context"
	"io"

	"github.com/hupe1980/assetkit"
)

func init() {
	assetkit.Declare[[]byte, Raw]()
	assetkit.Declare[string, Text]()
}

// Raw reads the whole stream as []byte.
type Raw struct{}

// ReadContent implements assetkit.Reader.
func (Raw) ReadContent(_ context.Context, _ *assetkit.Manager, p *assetkit.ReadParams) (any, error) {
	return io.ReadAll(p.Stream)
}

// Text reads the whole stream as a string.
type Text struct{}

// ReadContent implements assetkit.Reader.
func (Text) ReadContent(_ context.Context, _ *assetkit.Manager, p *assetkit.ReadParams) (any, error) {
	b, err := io.ReadAll(p.Stream)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
