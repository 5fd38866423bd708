// SPDX-License-Identifier: EPL-2.0

// Package clip is the decoder abstraction under the editing engine.
//
// Open turns a file of any supported container/codec into a Clip: a seekable
// stream of raw 16-bit little-endian PCM bytes plus a Format descriptor and
// total length. Every downstream algorithm works purely in block-aligned
// byte offsets against that stream.
//
// WAV files are served straight from disk through a section reader over the
// RIFF data chunk. Compressed formats (MP3, Ogg Vorbis, AIFF via the
// streaming decoders) are fully decoded into memory once, because their
// native readers cannot seek to arbitrary sample offsets. Unrecognized
// containers are transcoded to WAV through the ffmpeg binary when one is
// available in PATH.
//
// Clips are single-operation resources: open, edit, close. Nothing in this
// package keeps state across calls apart from the immutable decoder
// registry.
package clip
