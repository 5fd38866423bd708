// SPDX-License-Identifier: EPL-2.0

package stitch

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/orenbm/audedit/audio"
	"github.com/orenbm/audedit/clip"
	"github.com/orenbm/audedit/formats/wav"
	"github.com/orenbm/audedit/utils"
)

// planEntry is one source as it will be written: already in the target
// format, with the gain to apply while copying.
type planEntry struct {
	c    *clip.Clip
	gain float64
}

// Files concatenates the clips, in order, into a single WAV at outPath.
//
// The first clip's format is the negotiated target; the others are rendered
// through the resampler/channel mapper as needed. The caller keeps ownership
// of the clips; converted intermediates are memory-backed and need no
// cleanup. On failure the partial output file is removed.
func Files(clips []*clip.Clip, opts Options, outPath string) error {
	if len(clips) == 0 {
		return ErrNoInputs
	}
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return err
	}

	plan, err := buildPlan(clips, opts)
	if err != nil {
		return err
	}

	target := clips[0].Format()
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	w, err := wav.NewWriter(out, target.SampleRate, target.Channels)
	if err != nil {
		out.Close()
		os.Remove(outPath)
		return err
	}

	if opts.Crossfade > 0 {
		err = writeCrossfaded(plan, w, target.FramesFor(opts.Crossfade), target.Channels)
	} else {
		err = writeConcatenated(plan, w, target.FramesFor(opts.InsertSilence))
	}
	if err != nil {
		out.Close()
		os.Remove(outPath)
		return err
	}

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

// TotalDuration sums the clips' durations. Read-only.
func TotalDuration(clips []*clip.Clip) time.Duration {
	var total time.Duration
	for _, c := range clips {
		total += c.Duration()
	}
	return total
}

func buildPlan(clips []*clip.Clip, opts Options) ([]planEntry, error) {
	target := clips[0].Format()

	plan := make([]planEntry, len(clips))
	for i, c := range clips {
		entry := planEntry{c: c, gain: 1}

		if !c.Format().Equal(target) {
			conv, err := convert(c, target)
			if err != nil {
				return nil, err
			}
			entry.c = conv
		}

		if opts.Normalize {
			peak, err := scanPeak(entry.c)
			if err != nil {
				return nil, err
			}
			if peak > 0 {
				entry.gain = opts.TargetPeak / peak
			}
		}

		plan[i] = entry
	}

	return plan, nil
}

// convert re-renders a clip into the target format through the streaming
// pipeline. Offline path, so the cubic resampler always runs at full
// quality.
func convert(c *clip.Clip, target clip.Format) (*clip.Clip, error) {
	src, err := newPCMSource(c)
	if err != nil {
		return nil, err
	}

	var s audio.Source = src
	if c.Format().SampleRate != target.SampleRate {
		s = audio.NewResampler(s, target.SampleRate)
	}
	if c.Format().Channels != target.Channels {
		s = audio.NewChannelMapper(s, target.Channels)
	}

	samples, err := audio.CollectPCM16(s, 4096)
	if err != nil {
		return nil, fmt.Errorf("converting source: %w", err)
	}

	return clip.FromPCM16(samples, target.SampleRate, target.Channels), nil
}

// scanPeak reads the whole clip and reports the maximum sample magnitude as
// a fraction of full scale.
func scanPeak(c *clip.Clip) (float64, error) {
	if _, err := c.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("rewinding for peak scan: %w", err)
	}

	buf := make([]byte, 16384)
	samples := make([]int16, len(buf)/2)
	var peak int32

	remaining := c.Size()
	for remaining > 0 {
		n := int64(len(buf))
		if n > remaining {
			n = remaining
		}
		if _, err := io.ReadFull(c, buf[:n]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return 0, fmt.Errorf("peak scan: %w", clip.ErrUnexpectedEOS)
			}
			return 0, fmt.Errorf("peak scan: %w", err)
		}

		count := utils.BytesToInt16(buf[:n], samples)
		for _, s := range samples[:count] {
			v := int32(s)
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}

		remaining -= n
	}

	return float64(peak) / 32768.0, nil
}

// writeConcatenated copies each entry in order with a hard cut, inserting
// silenceFrames of zeros after every entry except the last.
func writeConcatenated(plan []planEntry, w *wav.Writer, silenceFrames int64) error {
	for i, e := range plan {
		if err := copyFrames(e.c, w, 0, e.c.Frames(), e.gain); err != nil {
			return err
		}
		if silenceFrames > 0 && i+1 < len(plan) {
			if err := w.WriteSilence(silenceFrames); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeCrossfaded overlaps the tail of each entry with the head of the next,
// ramping the first down to silence and the second up from silence across
// the window, then summing. The overlap shrinks when either neighbour is
// shorter than the requested fade.
func writeCrossfaded(plan []planEntry, w *wav.Writer, fadeFrames int64, channels int) error {
	consumed := int64(0) // frames of the current entry already mixed away

	for i, e := range plan {
		frames := e.c.Frames()

		overlap := int64(0)
		if i+1 < len(plan) {
			overlap = fadeFrames
			if rest := frames - consumed; overlap > rest {
				overlap = rest
			}
			if next := plan[i+1].c.Frames(); overlap > next {
				overlap = next
			}
			if overlap < 0 {
				overlap = 0
			}
		}

		body := frames - consumed - overlap
		if err := copyFrames(e.c, w, consumed, body, e.gain); err != nil {
			return err
		}

		if overlap > 0 {
			next := plan[i+1]
			tail, err := readFrames(e.c, consumed+body, overlap, channels, e.gain)
			if err != nil {
				return err
			}
			head, err := readFrames(next.c, 0, overlap, channels, next.gain)
			if err != nil {
				return err
			}

			mixed := make([]int16, len(tail))
			for f := int64(0); f < overlap; f++ {
				t := float64(f) / float64(overlap)
				for ch := 0; ch < channels; ch++ {
					idx := f*int64(channels) + int64(ch)
					v := float64(tail[idx])*(1-t) + float64(head[idx])*t
					mixed[idx] = clampInt16(v)
				}
			}
			if err := w.WriteSamples(mixed); err != nil {
				return err
			}
		}

		consumed = overlap
	}

	return nil
}

// copyFrames streams a frame range of c into w, scaling by gain. The gain==1
// path copies raw bytes without converting.
func copyFrames(c *clip.Clip, w *wav.Writer, startFrame, frames int64, gain float64) error {
	if frames <= 0 {
		return nil
	}

	blockAlign := int64(c.Format().BlockAlign())
	if _, err := c.Seek(startFrame*blockAlign, io.SeekStart); err != nil {
		return fmt.Errorf("seeking source: %w", err)
	}

	buf := make([]byte, 16384-16384%int(blockAlign))
	samples := make([]int16, len(buf)/2)
	remaining := frames * blockAlign

	for remaining > 0 {
		n := int64(len(buf))
		if n > remaining {
			n = remaining
		}

		if _, err := io.ReadFull(c, buf[:n]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return fmt.Errorf("source ended %d bytes early: %w", remaining, clip.ErrUnexpectedEOS)
			}
			return fmt.Errorf("reading source: %w", err)
		}

		if gain != 1 {
			count := utils.BytesToInt16(buf[:n], samples)
			for i := 0; i < count; i++ {
				samples[i] = clampInt16(float64(samples[i]) * gain)
			}
			utils.Int16ToBytes(samples[:count], buf[:n])
		}

		if _, err := w.Write(buf[:n]); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		remaining -= n
	}

	return nil
}

// readFrames loads a frame range of c into memory with gain applied.
func readFrames(c *clip.Clip, startFrame, frames int64, channels int, gain float64) ([]int16, error) {
	blockAlign := int64(c.Format().BlockAlign())
	if _, err := c.Seek(startFrame*blockAlign, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking source: %w", err)
	}

	buf := make([]byte, frames*blockAlign)
	if _, err := io.ReadFull(c, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("reading fade window: %w", clip.ErrUnexpectedEOS)
		}
		return nil, fmt.Errorf("reading fade window: %w", err)
	}

	samples := make([]int16, frames*int64(channels))
	utils.BytesToInt16(buf, samples)

	if gain != 1 {
		for i := range samples {
			samples[i] = clampInt16(float64(samples[i]) * gain)
		}
	}

	return samples, nil
}

func clampInt16(v float64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
