package reader

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/assetkit"
)

// Mask is a set of cell indices (collision maps, visibility masks, spawn
// tables) stored as a serialized roaring bitmap.
type Mask struct {
	rb *roaring.Bitmap
}

// NewMask creates a mask containing cells.
func NewMask(cells ...uint32) *Mask {
	return &Mask{rb: roaring.BitmapOf(cells...)}
}

// ContentReader declares MaskReader as the reader for *Mask.
func (*Mask) ContentReader() any { return MaskReader{} }

// Contains reports whether cell is set.
func (m *Mask) Contains(cell uint32) bool { return m.rb.Contains(cell) }

// Cardinality returns the number of set cells.
func (m *Mask) Cardinality() uint64 { return m.rb.GetCardinality() }

// Cells returns the set cells in ascending order.
func (m *Mask) Cells() []uint32 { return m.rb.ToArray() }

// Intersects reports whether m and other share a cell.
func (m *Mask) Intersects(other *Mask) bool { return m.rb.Intersects(other.rb) }

// SizeBytes implements assetkit.Sizer.
func (m *Mask) SizeBytes() int64 { return int64(m.rb.GetSizeInBytes()) }

// MarshalBinary returns the portable roaring serialization.
func (m *Mask) MarshalBinary() ([]byte, error) { return m.rb.ToBytes() }

// MaskReader decodes portable roaring bitmaps.
type MaskReader struct{}

// ReadContent implements assetkit.Reader.
func (MaskReader) ReadContent(_ context.Context, _ *assetkit.Manager, p *assetkit.ReadParams) (any, error) {
	rb := roaring.New()
	if _, err := rb.ReadFrom(p.Stream); err != nil {
		return nil, fmt.Errorf("%s: decode mask: %w", p.Name, err)
	}
	return &Mask{rb: rb}, nil
}
