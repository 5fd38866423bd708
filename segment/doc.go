// SPDX-License-Identifier: EPL-2.0

// Package segment edits one decoded PCM clip at a time.
//
// Remove cuts time ranges out of the clip (the timeline shrinks), Mute
// replaces them with zero samples (the timeline keeps its length), Split
// cuts the clip into contiguous parts at chosen timestamps, and
// DurationAfterRemoval projects a removal's result without writing.
//
// All three writers work the same way: time ranges are projected onto
// block-aligned byte ranges, and the surviving bytes are streamed to a fresh
// WAV file in ~100 ms blocks. Removal is expressed through the keep-list:
// the chronological complement of the sorted removal ranges. A source that
// delivers fewer bytes than its header promised aborts the operation with
// clip.ErrUnexpectedEOS and the partial output file is deleted, so a failed
// run never leaves a half-written file behind.
package segment
