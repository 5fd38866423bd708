// SPDX-License-Identifier: EPL-2.0

package clip

import "time"

// Format describes the sample layout of a PCM stream. Two clips may be
// combined without conversion only when their formats are equal.
type Format struct {
	// SampleRate in Hz.
	SampleRate int
	// Channels count (1=mono, 2=stereo).
	Channels int
	// BitsPerSample per channel; the engine always carries 16.
	BitsPerSample int
}

// BlockAlign is the number of bytes occupied by one frame across all
// channels. Every byte offset and length used to address samples must be a
// multiple of this.
func (f Format) BlockAlign() int {
	return f.Channels * f.BitsPerSample / 8
}

// ByteRate is the number of PCM bytes per second.
func (f Format) ByteRate() int {
	return f.SampleRate * f.BlockAlign()
}

func (f Format) Valid() bool {
	return f.SampleRate > 0 && f.Channels > 0 && f.BitsPerSample > 0 && f.BitsPerSample%8 == 0
}

func (f Format) Equal(o Format) bool {
	return f == o
}

// AlignDown truncates n to the nearest lower BlockAlign multiple.
func (f Format) AlignDown(n int64) int64 {
	ba := int64(f.BlockAlign())
	return n - n%ba
}

// BytesFor converts a duration to a block-aligned byte count, rounding the
// frame count down.
func (f Format) BytesFor(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	frames := int64(d) * int64(f.SampleRate) / int64(time.Second)
	return frames * int64(f.BlockAlign())
}

// FramesFor converts a duration to a whole frame count, rounding down.
func (f Format) FramesFor(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(d) * int64(f.SampleRate) / int64(time.Second)
}

// DurationOf converts a byte count into stream time. Partial trailing frames
// do not count.
func (f Format) DurationOf(n int64) time.Duration {
	frames := n / int64(f.BlockAlign())
	return time.Duration(frames * int64(time.Second) / int64(f.SampleRate))
}
