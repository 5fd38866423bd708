// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV (RIFF) decoding and encoding for 16-bit PCM.
//
// Decoding is built on github.com/go-audio/wav, which walks the RIFF chunk
// structure rather than assuming a canonical 44-byte header. Only
// uncompressed 16-bit PCM content is accepted; everything else is rejected
// at Decode time.
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("audio.wav")
//	source, err := decoder.Decode(file)
//
// The decoder returns an audio.Source yielding float32 samples in [-1, 1].
//
// # Writing
//
// Writer streams raw PCM16-LE bytes (or int16 samples) into a canonical WAV
// file, patching the RIFF sizes when closed:
//
//	f, _ := os.Create("out.wav")
//	w, _ := wav.NewWriter(f, 44100, 2)
//	w.WriteSamples(samples)
//	w.Close()
//
// WritePCM16 is the one-shot form for fully in-memory sample slices.
package wav
