// SPDX-License-Identifier: EPL-2.0

package clip

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	gowav "github.com/go-audio/wav"

	"github.com/orenbm/audedit/audio"
	"github.com/orenbm/audedit/formats/aiff"
	"github.com/orenbm/audedit/formats/mp3"
	"github.com/orenbm/audedit/formats/vorbis"
)

// registry maps sniffed format keys to streaming decoders. Populated once at
// package init; immutable afterwards.
var registry = audio.NewRegistry()

func init() {
	registry.Register("mp3", mp3.Decoder{})
	registry.Register("ogg vorbis", vorbis.Decoder{})
	registry.Register("aiff", aiff.Decoder{})
}

// SupportedFormats lists the formats Open decodes without the ffmpeg
// fallback, sorted.
func SupportedFormats() []string {
	formats := append(registry.Formats(), "wav")
	sort.Strings(formats)
	return formats
}

// Open opens an audio file of any supported format as a seekable PCM clip.
//
// WAV sources stream straight from the file through a section reader over the
// data chunk. MP3, Ogg Vorbis and AIFF decoders cannot seek reliably, so
// those sources are fully decoded into memory first. Anything else goes
// through the ffmpeg binary as a transcode-to-WAV fallback.
//
// On failure no partial clip is returned and nothing stays open.
func Open(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	kind := sniff(f, path)
	switch kind {
	case "wav":
		return openWAV(f)
	case "mp3", "ogg vorbis", "aiff":
		dec, ok := registry.Get(kind)
		if !ok {
			f.Close()
			return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
		}
		return decodeToMemory(f, dec)
	default:
		f.Close()
		return openTranscoded(path)
	}
}

// sniff inspects the file's magic bytes, falling back to the extension. The
// read position is restored before returning.
func sniff(f *os.File, path string) string {
	header := make([]byte, 12)
	n, _ := io.ReadFull(f, header)
	f.Seek(0, io.SeekStart)
	header = header[:n]

	switch {
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")):
		return "wav"
	case len(header) >= 4 && bytes.Equal(header[:4], []byte("OggS")):
		return "ogg vorbis"
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("FORM")) && (bytes.Equal(header[8:12], []byte("AIFF")) || bytes.Equal(header[8:12], []byte("AIFC"))):
		return "aiff"
	case len(header) >= 3 && bytes.Equal(header[:3], []byte("ID3")):
		return "mp3"
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		// Raw MPEG frame sync
		return "mp3"
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return "wav"
	case ".mp3":
		return "mp3"
	case ".ogg", ".oga":
		return "ogg vorbis"
	case ".aif", ".aiff", ".aifc":
		return "aiff"
	}

	return ""
}

// openWAV wraps the file's data chunk in a section reader, so downstream
// seeks address PCM bytes directly without re-parsing RIFF structure.
func openWAV(f *os.File) (*Clip, error) {
	dec := gowav.NewDecoder(f)
	if !dec.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("%s: %w", f.Name(), ErrUnsupportedFormat)
	}

	if dec.WavAudioFormat != 1 || dec.BitDepth != 16 {
		f.Close()
		return nil, fmt.Errorf("%s: only 16-bit PCM WAV: %w", f.Name(), ErrUnsupportedFormat)
	}

	format := Format{
		SampleRate:    int(dec.SampleRate),
		Channels:      int(dec.NumChans),
		BitsPerSample: int(dec.BitDepth),
	}
	if !format.Valid() {
		f.Close()
		return nil, fmt.Errorf("%s: %w", f.Name(), ErrFormatIndeterminate)
	}

	if err := dec.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: locating data chunk: %w", f.Name(), ErrFormatIndeterminate)
	}

	dataStart, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}

	size := format.AlignDown(dec.PCMLen())
	c := New(io.NewSectionReader(f, dataStart, size), format, size)
	c.closer = f.Close
	return c, nil
}

// decodeToMemory drains a non-seekable codec stream into an in-memory PCM16
// buffer and wraps it in a seekable clip. Trades memory for exact
// seek-then-read semantics.
func decodeToMemory(f *os.File, dec audio.Decoder) (*Clip, error) {
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", f.Name(), err, ErrUnsupportedFormat)
	}
	defer src.Close()

	if src.SampleRate() <= 0 || src.Channels() <= 0 {
		return nil, fmt.Errorf("%s: %w", f.Name(), ErrFormatIndeterminate)
	}

	samples, err := audio.CollectPCM16(src, 4096)
	if err != nil {
		return nil, fmt.Errorf("%s: decoding: %w", f.Name(), err)
	}

	return FromPCM16(samples, src.SampleRate(), src.Channels()), nil
}

// openTranscoded shells out to ffmpeg to render an unknown container to a
// temporary 16-bit PCM WAV, then opens that. The temp file is removed when
// the clip is closed.
func openTranscoded(path string) (*Clip, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("%s: no decoder and no ffmpeg in PATH: %w", path, ErrUnsupportedFormat)
	}

	tmp, err := os.CreateTemp("", "audedit-*.wav")
	if err != nil {
		return nil, fmt.Errorf("creating transcode temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	cmd := exec.Command(ffmpegPath,
		"-y",
		"-i", path,
		"-acodec", "pcm_s16le",
		"-f", "wav",
		tmpPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("%s: ffmpeg transcode failed (%s): %w", path, lastLine(stderr.String()), ErrUnsupportedFormat)
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("opening transcoded %s: %w", tmpPath, err)
	}

	c, err := openWAV(f)
	if err != nil {
		os.Remove(tmpPath)
		return nil, err
	}

	fileClose := c.closer
	c.closer = func() error {
		err := fileClose()
		if rmErr := os.Remove(tmpPath); err == nil {
			err = rmErr
		}
		return err
	}
	return c, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
