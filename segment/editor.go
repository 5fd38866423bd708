// SPDX-License-Identifier: EPL-2.0

package segment

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/orenbm/audedit/clip"
	"github.com/orenbm/audedit/formats/wav"
)

// blockDuration is the streaming granularity. Copies move roughly 100 ms of
// audio per read, always a whole number of frames.
const blockDuration = 100 * time.Millisecond

// Remove writes c to outPath with the given time ranges cut out, shortening
// the timeline. Segments must be valid, inside the clip and pairwise
// non-overlapping. On any failure the partial output file is removed.
func Remove(c *clip.Clip, segments []Segment, outPath string) error {
	sorted, err := validate(segments, c.Duration(), false)
	if err != nil {
		return err
	}

	keep := keepList(c.Size(), toByteRanges(c.Format(), sorted))

	return writeClipRanges(c, keep, outPath)
}

// DurationAfterRemoval projects the duration Remove would produce, without
// writing anything.
func DurationAfterRemoval(c *clip.Clip, segments []Segment) (time.Duration, error) {
	sorted, err := validate(segments, c.Duration(), false)
	if err != nil {
		return 0, err
	}

	remaining := c.Size()
	for _, r := range toByteRanges(c.Format(), sorted) {
		remaining -= r.length()
	}

	return c.Format().DurationOf(remaining), nil
}

// Mute writes c to outPath with the given time ranges replaced by zero
// samples. The timeline length never changes; that is the defining contract
// relative to Remove. Overlapping mute segments are allowed (muting twice is
// a harmless duplicate, not a conflict).
func Mute(c *clip.Clip, segments []Segment, outPath string) error {
	sorted, err := validate(segments, c.Duration(), true)
	if err != nil {
		return err
	}
	muted := toByteRanges(c.Format(), sorted)

	format := c.Format()
	out, w, err := createOutput(outPath, format)
	if err != nil {
		return err
	}

	if err := muteCopy(c, w, muted); err != nil {
		out.Close()
		os.Remove(outPath)
		return err
	}

	return finishOutput(out, w, outPath)
}

// Split cuts c into len(points)+1 contiguous parts at the given timestamps
// and writes each part to its own file under outDir, named by applying the
// part index to pattern (fmt-style, e.g. "part_%03d.wav"). Points must lie
// strictly inside the clip; duplicates are dropped. Returns the output paths
// in order. On failure every already-written part is removed.
func Split(c *clip.Clip, points []time.Duration, outDir, pattern string) ([]string, error) {
	bounds, err := splitBounds(c, points)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if pattern == "" {
		pattern = "part_%03d.wav"
	}

	paths := make([]string, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		path := filepath.Join(outDir, partName(pattern, i))
		r := byteRange{start: bounds[i], end: bounds[i+1]}

		if err := writeClipRanges(c, []byteRange{r}, path); err != nil {
			for _, p := range paths {
				os.Remove(p)
			}
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// splitBounds validates and converts split points into a sorted list of byte
// offsets bracketed by 0 and the clip size.
func splitBounds(c *clip.Clip, points []time.Duration) ([]int64, error) {
	total := c.Duration()
	offsets := make(map[int64]struct{}, len(points))
	for _, p := range points {
		if p <= 0 || p >= total {
			return nil, fmt.Errorf("split point %v in %v source: %w", p, total, ErrInvalidSplitPoint)
		}
		off := c.Format().BytesFor(p)
		if off <= 0 || off >= c.Size() {
			return nil, fmt.Errorf("split point %v in %v source: %w", p, total, ErrInvalidSplitPoint)
		}
		offsets[off] = struct{}{}
	}

	bounds := make([]int64, 0, len(offsets)+2)
	bounds = append(bounds, 0)
	for off := range offsets {
		bounds = append(bounds, off)
	}
	bounds = append(bounds, c.Size())

	for i := 1; i < len(bounds); i++ {
		for j := i; j > 0 && bounds[j] < bounds[j-1]; j-- {
			bounds[j], bounds[j-1] = bounds[j-1], bounds[j]
		}
	}

	return bounds, nil
}

func partName(pattern string, index int) string {
	if hasOneIntVerb(pattern) {
		return fmt.Sprintf(pattern, index)
	}
	ext := filepath.Ext(pattern)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(pattern, ext), index, ext)
}

// hasOneIntVerb reports whether pattern contains exactly one integer fmt verb
// and nothing that would mangle a filename, like %s or a dangling %. Patterns
// failing the check get the index appended before the extension instead of
// being handed to Sprintf.
func hasOneIntVerb(pattern string) bool {
	count := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			continue
		}
		i++
		if i == len(pattern) {
			return false
		}
		if pattern[i] == '%' {
			continue
		}
		for i < len(pattern) && strings.ContainsRune("+-# 0123456789", rune(pattern[i])) {
			i++
		}
		if i == len(pattern) {
			return false
		}
		switch pattern[i] {
		case 'd', 'b', 'o', 'x', 'X':
			count++
		default:
			return false
		}
	}
	return count == 1
}

// writeClipRanges streams the given byte ranges of c, in order, into a fresh
// WAV file at outPath. The partial file is removed on any failure.
func writeClipRanges(c *clip.Clip, ranges []byteRange, outPath string) error {
	out, w, err := createOutput(outPath, c.Format())
	if err != nil {
		return err
	}

	for _, r := range ranges {
		if err := copyRange(c, w, r); err != nil {
			out.Close()
			os.Remove(outPath)
			return err
		}
	}

	return finishOutput(out, w, outPath)
}

func createOutput(outPath string, format clip.Format) (*os.File, *wav.Writer, error) {
	out, err := os.Create(outPath)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", outPath, err)
	}

	w, err := wav.NewWriter(out, format.SampleRate, format.Channels)
	if err != nil {
		out.Close()
		os.Remove(outPath)
		return nil, nil, err
	}

	return out, w, nil
}

func finishOutput(out *os.File, w *wav.Writer, outPath string) error {
	if err := w.Close(); err != nil {
		out.Close()
		os.Remove(outPath)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("closing %s: %w", outPath, err)
	}
	return nil
}

// copyRange copies one byte range of c into w in block-sized reads. A short
// read means the source lied about its length; the caller gets
// clip.ErrUnexpectedEOS rather than a silently truncated output.
func copyRange(c *clip.Clip, w *wav.Writer, r byteRange) error {
	if r.length() <= 0 {
		return nil
	}

	if _, err := c.Seek(r.start, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to %d: %w", r.start, err)
	}

	buf := make([]byte, blockBytes(c.Format()))
	remaining := r.length()

	for remaining > 0 {
		n := int64(len(buf))
		if n > remaining {
			n = remaining
		}

		if _, err := io.ReadFull(c, buf[:n]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return fmt.Errorf("%d bytes short at offset %d: %w", remaining, r.end-remaining, clip.ErrUnexpectedEOS)
			}
			return fmt.Errorf("reading source: %w", err)
		}

		if _, err := w.Write(buf[:n]); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		remaining -= n
	}

	return nil
}

// muteCopy streams the whole clip, zeroing the intersection of each block
// with every muted range.
func muteCopy(c *clip.Clip, w *wav.Writer, muted []byteRange) error {
	if _, err := c.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to start: %w", err)
	}

	buf := make([]byte, blockBytes(c.Format()))
	var (
		pos int64
		idx int
	)

	for pos < c.Size() {
		n := int64(len(buf))
		if n > c.Size()-pos {
			n = c.Size() - pos
		}

		if _, err := io.ReadFull(c, buf[:n]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return fmt.Errorf("%d bytes short at offset %d: %w", c.Size()-pos, pos, clip.ErrUnexpectedEOS)
			}
			return fmt.Errorf("reading source: %w", err)
		}

		// Drop ranges the playhead has fully passed.
		for idx < len(muted) && muted[idx].end <= pos {
			idx++
		}

		// Overlaps may exist, so every range touching this block gets zeroed
		// independently.
		for j := idx; j < len(muted) && muted[j].start < pos+n; j++ {
			from := muted[j].start - pos
			if from < 0 {
				from = 0
			}
			to := muted[j].end - pos
			if to > n {
				to = n
			}
			for i := from; i < to; i++ {
				buf[i] = 0
			}
		}

		if _, err := w.Write(buf[:n]); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		pos += n
	}

	return nil
}

// blockBytes sizes the streaming buffer to ~100 ms of audio, never less than
// one frame.
func blockBytes(f clip.Format) int64 {
	n := f.BytesFor(blockDuration)
	if n < int64(f.BlockAlign()) {
		n = int64(f.BlockAlign())
	}
	return n
}
