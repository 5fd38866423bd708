// SPDX-License-Identifier: EPL-2.0

package clip

import (
	"bytes"
	"encoding/binary"
	"io"
	"time"
)

// Clip is an opened, seekable PCM16-LE stream together with its format and
// total length. Clips live for a single editing operation: the caller that
// opens one closes it on every exit path.
type Clip struct {
	r      io.ReadSeeker
	format Format
	size   int64
	closer func() error
}

// New wraps an existing seekable PCM stream. size is the PCM byte length and
// must be block aligned (it is truncated down if not).
func New(r io.ReadSeeker, format Format, size int64) *Clip {
	return &Clip{
		r:      r,
		format: format,
		size:   format.AlignDown(size),
	}
}

// FromPCM16 builds an in-memory clip from interleaved int16 samples.
func FromPCM16(samples []int16, sampleRate, channels int) *Clip {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:2*i+2], uint16(s))
	}

	format := Format{SampleRate: sampleRate, Channels: channels, BitsPerSample: 16}
	return New(bytes.NewReader(data), format, int64(len(data)))
}

func (c *Clip) Format() Format { return c.format }

// Size is the total PCM byte length, always a BlockAlign multiple.
func (c *Clip) Size() int64 { return c.size }

// Frames is the total frame count.
func (c *Clip) Frames() int64 { return c.size / int64(c.format.BlockAlign()) }

// Duration is the total stream time derived from Size and the format.
func (c *Clip) Duration() time.Duration { return c.format.DurationOf(c.size) }

func (c *Clip) Read(p []byte) (int, error) {
	return c.r.Read(p)
}

func (c *Clip) Seek(offset int64, whence int) (int64, error) {
	return c.r.Seek(offset, whence)
}

// Close releases the underlying file or buffer. Safe to call on memory-backed
// clips.
func (c *Clip) Close() error {
	if c.closer == nil {
		return nil
	}
	fn := c.closer
	c.closer = nil
	return fn()
}
