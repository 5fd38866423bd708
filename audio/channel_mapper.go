// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMapper adapts a source to a different channel count.
// Mono sources are replicated across the target channels; multi-channel
// sources headed for fewer channels are averaged down to mono first and
// then replicated. Same-count sources pass through untouched.
type ChannelMapper struct {
	src      Source
	channels int
	mono     *MonoMixer
	tmp      []float32
}

func NewChannelMapper(src Source, channels int) *ChannelMapper {
	m := &ChannelMapper{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}
	if src.Channels() != 1 && src.Channels() != channels {
		m.mono = NewMonoMixer(src)
	}
	return m
}

func (m *ChannelMapper) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMapper) Channels() int   { return m.channels }

func (m *ChannelMapper) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *ChannelMapper) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if m.channels <= 0 {
		return 0, ErrInvalidChannelCount
	}
	if m.src.Channels() == m.channels {
		return m.src.ReadSamples(dst)
	}
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / m.channels
	if cap(m.tmp) < frames {
		m.tmp = make([]float32, frames)
	}
	buf := m.tmp[:frames]

	var (
		n   int
		err error
	)
	if m.mono != nil {
		n, err = m.mono.ReadSamples(buf)
	} else {
		// Source is already mono
		n, err = m.src.ReadSamples(buf)
	}
	if n == 0 {
		return 0, err
	}

	for f := 0; f < n; f++ {
		base := f * m.channels
		for c := 0; c < m.channels; c++ {
			dst[base+c] = buf[f]
		}
	}

	return n * m.channels, err
}
