// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

const headerSize = 44

// Writer emits a canonical 16-bit PCM WAV file. The header is written up
// front with zero sizes and patched on Close, so the total data length does
// not need to be known in advance. Writes must be block aligned
// (channels * 2 bytes per frame).
type Writer struct {
	ws         io.WriteSeeker
	sampleRate int
	channels   int
	written    int64
	closed     bool
}

// NewWriter writes the WAV header for a 16-bit PCM stream and returns a
// Writer accepting raw little-endian sample bytes.
func NewWriter(ws io.WriteSeeker, sampleRate, channels int) (*Writer, error) {
	w := &Writer{
		ws:         ws,
		sampleRate: sampleRate,
		channels:   channels,
	}
	if err := w.writeHeader(0); err != nil {
		return nil, fmt.Errorf("writing wav header: %w", err)
	}
	return w, nil
}

func (w *Writer) blockAlign() int { return w.channels * 2 }

func (w *Writer) writeHeader(dataSize uint32) error {
	numChannels := uint16(w.channels)
	bitsPerSample := uint16(16)
	byteRate := uint32(w.sampleRate) * uint32(numChannels) * uint32(bitsPerSample/8)
	blockAlign := uint16(numChannels) * uint16(bitsPerSample/8)
	riffSize := 36 + dataSize

	header := make([]byte, headerSize)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.ws.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Write appends raw PCM16-LE bytes to the data chunk.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}
	if len(p)%w.blockAlign() != 0 {
		return 0, ErrNotBlockAligned
	}

	n, err := w.ws.Write(p)
	w.written += int64(n)
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}
	return n, nil
}

// WriteSamples appends interleaved int16 samples.
func (w *Writer) WriteSamples(samples []int16) error {
	if w.closed {
		return ErrWriterClosed
	}

	const chunkFrames = 8192
	buf := make([]byte, 0)

	for i := 0; i < len(samples); i += chunkFrames {
		end := min(i+chunkFrames, len(samples))
		chunk := samples[i:end]
		if cap(buf) < len(chunk)*2 {
			buf = make([]byte, len(chunk)*2)
		}
		buf = buf[:len(chunk)*2]
		for j, s := range chunk {
			binary.LittleEndian.PutUint16(buf[j*2:j*2+2], uint16(s))
		}
		if _, err := w.ws.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
		w.written += int64(len(buf))
	}

	return nil
}

// WriteSilence appends frames of zero-valued samples.
func (w *Writer) WriteSilence(frames int64) error {
	if w.closed {
		return ErrWriterClosed
	}
	if frames <= 0 {
		return nil
	}

	const chunkSize = 16384
	zeros := make([]byte, chunkSize)
	remaining := frames * int64(w.blockAlign())

	for remaining > 0 {
		n := int64(chunkSize)
		if n > remaining {
			n = remaining
		}
		if _, err := w.ws.Write(zeros[:n]); err != nil {
			return fmt.Errorf("%w", err)
		}
		w.written += n
		remaining -= n
	}

	return nil
}

// Written reports the number of data bytes written so far.
func (w *Writer) Written() int64 { return w.written }

// Close seeks back and patches the RIFF and data chunk sizes. The underlying
// writer is not closed.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if _, err := w.ws.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to wav header: %w", err)
	}
	if err := w.writeHeader(uint32(w.written)); err != nil {
		return err
	}
	if _, err := w.ws.Seek(headerSize+w.written, io.SeekStart); err != nil {
		return fmt.Errorf("seeking past wav data: %w", err)
	}
	return nil
}

// WritePCM16 writes a complete 16-bit PCM WAV in one call. samples are
// interleaved across channels.
func WritePCM16(ws io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	w, err := NewWriter(ws, sampleRate, channels)
	if err != nil {
		return err
	}
	if err := w.WriteSamples(samples); err != nil {
		return err
	}
	return w.Close()
}
