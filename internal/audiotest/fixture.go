// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orenbm/audedit/formats/wav"
)

// Tone generates interleaved int16 samples of a sine tone. Every channel
// carries the same signal.
func Tone(sampleRate, channels int, d time.Duration, freq, amp float64) []int16 {
	frames := int(d.Seconds() * float64(sampleRate))
	samples := make([]int16, frames*channels)
	for f := 0; f < frames; f++ {
		t := float64(f) / float64(sampleRate)
		v := int16(amp * 32767.0 * math.Sin(2*math.Pi*freq*t))
		for c := 0; c < channels; c++ {
			samples[f*channels+c] = v
		}
	}
	return samples
}

// Ramp generates a deterministic non-repeating pattern, handy for
// byte-identity checks after editing.
func Ramp(frames, channels int) []int16 {
	samples := make([]int16, frames*channels)
	for f := 0; f < frames; f++ {
		for c := 0; c < channels; c++ {
			samples[f*channels+c] = int16((f*7+c*3)%4001 - 2000)
		}
	}
	return samples
}

// WriteWAVFile writes samples as a 16-bit PCM WAV under dir and returns the
// path.
func WriteWAVFile(tb testing.TB, dir, name string, sampleRate, channels int, samples []int16) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("creating fixture %s: %v", path, err)
	}
	defer f.Close()

	if err := wav.WritePCM16(f, sampleRate, channels, samples); err != nil {
		tb.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}

// ReadWAVData returns the raw bytes of a WAV file's data chunk, assuming the
// canonical 44-byte header the package's own writer produces.
func ReadWAVData(tb testing.TB, path string) []byte {
	tb.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("reading %s: %v", path, err)
	}
	if len(data) < 44 {
		tb.Fatalf("%s: too short for a WAV header (%d bytes)", path, len(data))
	}
	return data[44:]
}
