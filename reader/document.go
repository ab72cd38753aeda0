package reader

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/assetkit"
	"github.com/hupe1980/assetkit/codec"
)

// JSON decodes documents of type T with a JSON codec.
//
// The codec is chosen in order from: the Codec field, a codec.Codec passed via
// assetkit.WithReadOptions, a codec.Codec service, codec.Default.
type JSON[T any] struct {
	Codec codec.Codec
}

// ReadContent implements assetkit.Reader.
func (r JSON[T]) ReadContent(_ context.Context, m *assetkit.Manager, p *assetkit.ReadParams) (any, error) {
	return decode[T](pickCodec(r.Codec, m, p, codec.Default), p)
}

// YAML decodes documents of type T. Codec selection follows JSON, falling
// back to codec.YAML.
type YAML[T any] struct {
	Codec codec.Codec
}

// ReadContent implements assetkit.Reader.
func (r YAML[T]) ReadContent(_ context.Context, m *assetkit.Manager, p *assetkit.ReadParams) (any, error) {
	return decode[T](pickCodec(r.Codec, m, p, codec.YAML{}), p)
}

func pickCodec(own codec.Codec, m *assetkit.Manager, p *assetkit.ReadParams, fallback codec.Codec) codec.Codec {
	if own != nil {
		return own
	}
	if c, ok := p.Options.(codec.Codec); ok {
		return c
	}
	if m != nil {
		if c, ok := assetkit.ServiceFor[codec.Codec](m.Services()); ok {
			return c
		}
	}
	return fallback
}

func decode[T any](c codec.Codec, p *assetkit.ReadParams) (any, error) {
	data, err := io.ReadAll(p.Stream)
	if err != nil {
		return nil, err
	}
	var v T
	if err := c.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%s: decode %s: %w", p.Name, c.Name(), err)
	}
	return v, nil
}
