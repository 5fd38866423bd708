// SPDX-License-Identifier: EPL-2.0

package stitch

import (
	"fmt"
	"io"

	"github.com/orenbm/audedit/clip"
	"github.com/orenbm/audedit/utils"
)

// pcmSource adapts a clip back into the streaming float32 pipeline so the
// resampler and channel mapper can run on it during format negotiation.
// Closing it does not close the clip; the clip's owner does that.
type pcmSource struct {
	c   *clip.Clip
	buf []byte
}

func newPCMSource(c *clip.Clip) (*pcmSource, error) {
	if _, err := c.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding source: %w", err)
	}
	return &pcmSource{c: c, buf: make([]byte, 8192)}, nil
}

func (s *pcmSource) SampleRate() int { return s.c.Format().SampleRate }
func (s *pcmSource) Channels() int   { return s.c.Format().Channels }
func (s *pcmSource) Close() error    { return nil }

func (s *pcmSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	want := len(dst) * 2
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}

	n, err := io.ReadFull(s.c, s.buf[:want])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("%w", err)
	}

	samples := n / 2
	for i := 0; i < samples; i++ {
		dst[i] = utils.Int16ToFloat32(int16(uint16(s.buf[2*i]) | uint16(s.buf[2*i+1])<<8))
	}

	if samples == 0 && (err == io.EOF || err == io.ErrUnexpectedEOF) {
		return 0, io.EOF
	}
	return samples, nil
}
