// SPDX-License-Identifier: EPL-2.0

// Package stitch concatenates decoded PCM clips into one output stream.
//
// The first clip's format becomes the target; clips that differ are rendered
// through the resampler and channel mapper first. Optional per-source peak
// normalization scales each clip so its loudest sample lands on a target
// level before copying. Between adjacent clips the stitcher either cuts hard
// (optionally padding the joint with silence) or crossfades, overlapping the
// tail of one clip with the head of the next under a linear ramp.
//
// Normalization measures and scales each source independently; quiet and
// loud sources all land on the same target peak rather than keeping their
// relative levels.
package stitch
