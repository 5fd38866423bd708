// SPDX-License-Identifier: EPL-2.0

// Package audedit edits and combines audio recordings by operating directly
// on decoded PCM sample streams.
//
// The package does three things: it removes or silences arbitrary time
// ranges inside a single recording (optionally splitting it into several
// files at chosen timestamps), it concatenates recordings of possibly
// different formats into one stream, and it answers duration questions about
// either operation without writing anything.
//
// # Supported Formats
//
// Inputs may be WAV (PCM 16-bit), MP3, Ogg Vorbis or AIFF; anything else is
// transcoded through the ffmpeg binary when one is installed. Output is
// always uncompressed 16-bit PCM WAV. Lossy re-encoding of the output, where
// wanted, is a separate step outside this package.
//
// # Quick Start
//
//	segs := []segment.Segment{
//	    {Start: 10 * time.Second, End: 15 * time.Second},
//	    {Start: 30 * time.Second, End: 35 * time.Second},
//	}
//	if err := audedit.RemoveSegments("in.wav", segs, "out.wav"); err != nil {
//	    log.Fatal(err)
//	}
//
//	err := audedit.StitchAudioFiles(
//	    []string{"a.wav", "b.mp3"},
//	    stitch.Options{Normalize: true, InsertSilence: 500 * time.Millisecond},
//	    "joined.wav",
//	)
//
// # Engine Layout
//
// The root package is a thin path-based boundary; the work happens below it:
//
//   - clip opens any supported file as a seekable PCM byte stream
//   - segment removes, mutes or splits ranges of one clip
//   - stitch resamples, normalizes and concatenates several clips
//   - audio holds the streaming float32 pipeline (resampler, mixers)
//   - formats/... hold the per-codec decoders and the WAV writer
//
// Every call is stateless and synchronous: it opens its inputs, streams one
// output file (or several, for splitting) and releases everything on every
// exit path. A failed call deletes whatever partial output it produced.
// Callers that must not block an event loop run calls on their own
// goroutine; the engine itself never spawns one.
package audedit
