// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// CollectPCM16 drains src completely and returns its samples as interleaved
// 16-bit PCM. The channel layout and rate are whatever src reports; bufferSize
// controls the read granularity (e.g. 4096).
//
// This is the bridge between the streaming decoder pipeline and the
// byte-oriented editing engine, which needs the whole stream in a seekable
// buffer before it can address samples by offset.
func CollectPCM16(src Source, bufferSize int) ([]int16, error) {
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	// Pre-allocate a couple of seconds' worth and grow from there.
	estimated := src.SampleRate() * src.Channels() * 2
	pcm16 := make([]int16, 0, estimated)
	buf := make([]float32, bufferSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			if cap(pcm16)-len(pcm16) < n {
				newCap := len(pcm16) + max(n, cap(pcm16))
				grown := make([]int16, len(pcm16), newCap)
				copy(grown, pcm16)
				pcm16 = grown
			}

			// Batch convert float32 to int16 (inlined for performance)
			start := len(pcm16)
			pcm16 = pcm16[:start+n]
			const scale float32 = 32767.0
			for i := 0; i < n; i++ {
				x := buf[i]
				if x > 1 {
					x = 1
				} else if x < -1 {
					x = -1
				}
				pcm16[start+i] = int16(x * scale)
			}
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return pcm16, nil
}
