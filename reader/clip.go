package reader

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hupe1980/assetkit"
	"github.com/tphakala/flac"
)

// ErrUnknownAudioFormat is returned for streams that are neither WAV nor FLAC.
var ErrUnknownAudioFormat = errors.New("unknown audio format")

// Audio container formats.
const (
	FormatWAV  = "wav"
	FormatFLAC = "flac"
)

// Clip is a decoded PCM audio asset.
type Clip struct {
	Format     string
	SampleRate int
	Channels   int
	BitDepth   int
	// Data holds interleaved integer samples.
	Data []int
}

// ContentReader declares ClipReader as the reader for *Clip.
func (*Clip) ContentReader() any { return ClipReader{} }

// Frames returns the number of sample frames.
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Data) / c.Channels
}

// Duration returns the playback length.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// SizeBytes implements assetkit.Sizer.
func (c *Clip) SizeBytes() int64 {
	return int64(len(c.Data)) * 8
}

// Buffer returns the samples as a go-audio buffer sharing Data.
func (c *Clip) Buffer() *audio.IntBuffer {
	return &audio.IntBuffer{
		Data:           c.Data,
		SourceBitDepth: c.BitDepth,
		Format:         &audio.Format{SampleRate: c.SampleRate, NumChannels: c.Channels},
	}
}

// ClipReader decodes WAV and FLAC streams, detected by their magic bytes.
type ClipReader struct{}

// ReadContent implements assetkit.Reader.
func (ClipReader) ReadContent(_ context.Context, _ *assetkit.Manager, p *assetkit.ReadParams) (any, error) {
	rs, err := readSeeker(p.Stream)
	if err != nil {
		return nil, err
	}

	var magic [4]byte
	if _, err := io.ReadFull(rs, magic[:]); err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, ErrUnknownAudioFormat)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	switch string(magic[:]) {
	case "RIFF":
		return decodeWAV(rs)
	case "fLaC":
		return decodeFLAC(rs)
	default:
		return nil, fmt.Errorf("%s: %w", p.Name, ErrUnknownAudioFormat)
	}
}

func readSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

func decodeWAV(rs io.ReadSeeker) (*Clip, error) {
	d := wav.NewDecoder(rs)
	d.ReadInfo()
	if !d.IsValidFile() {
		return nil, errors.New("invalid WAV file format")
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}

	return &Clip{
		Format:     FormatWAV,
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
		Data:       buf.Data,
	}, nil
}

func decodeFLAC(r io.Reader) (*Clip, error) {
	d, err := flac.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decode flac: %w", err)
	}

	bytesPerSample := d.BitsPerSample / 8
	switch d.BitsPerSample {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d", d.BitsPerSample)
	}

	c := &Clip{
		Format:     FormatFLAC,
		SampleRate: d.SampleRate,
		Channels:   d.NChannels,
		BitDepth:   d.BitsPerSample,
		Data:       make([]int, 0, int(d.TotalSamples)*d.NChannels),
	}

	for {
		frame, err := d.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decode flac: %w", err)
		}

		for i := 0; i+bytesPerSample <= len(frame); i += bytesPerSample {
			c.Data = append(c.Data, pcmSample(frame[i:], d.BitsPerSample))
		}
	}
	return c, nil
}

// pcmSample decodes one little-endian signed sample.
func pcmSample(b []byte, bits int) int {
	switch bits {
	case 16:
		return int(int16(binary.LittleEndian.Uint16(b)))
	case 24:
		v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		return int(v<<8) >> 8
	default:
		return int(int32(binary.LittleEndian.Uint32(b)))
	}
}
