// SPDX-License-Identifier: EPL-2.0

package audedit

import (
	"time"

	"github.com/orenbm/audedit/clip"
	"github.com/orenbm/audedit/segment"
	"github.com/orenbm/audedit/stitch"
)

// RemoveSegments writes inputPath to outputPath with the given time ranges
// cut out, shortening the timeline by their summed duration. Segments must
// be valid, inside the recording and pairwise non-overlapping.
func RemoveSegments(inputPath string, segments []segment.Segment, outputPath string) error {
	c, err := clip.Open(inputPath)
	if err != nil {
		return err
	}
	defer c.Close()

	return segment.Remove(c, segments, outputPath)
}

// MuteSegments writes inputPath to outputPath with the given time ranges
// replaced by silence. The output keeps the input's exact duration;
// overlapping segments are allowed.
func MuteSegments(inputPath string, segments []segment.Segment, outputPath string) error {
	c, err := clip.Open(inputPath)
	if err != nil {
		return err
	}
	defer c.Close()

	return segment.Mute(c, segments, outputPath)
}

// SplitAudioFile cuts inputPath into len(splitPoints)+1 contiguous parts and
// writes them under outputDir named by the fmt-style namePattern (one %d
// verb, e.g. "part_%03d.wav"). Points may arrive unsorted; duplicates are
// dropped. Returns the written paths in timeline order.
func SplitAudioFile(inputPath, outputDir, namePattern string, splitPoints []time.Duration) ([]string, error) {
	c, err := clip.Open(inputPath)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	return segment.Split(c, splitPoints, outputDir, namePattern)
}

// StitchAudioFiles concatenates the inputs, in order, into a single WAV at
// outputPath. The first input's format is the output format; the rest are
// resampled/remapped to match. See stitch.Options for silence insertion,
// peak normalization and crossfading.
func StitchAudioFiles(inputPaths []string, opts stitch.Options, outputPath string) error {
	if len(inputPaths) == 0 {
		return stitch.ErrNoInputs
	}

	clips := make([]*clip.Clip, 0, len(inputPaths))
	defer func() {
		for _, c := range clips {
			c.Close()
		}
	}()

	for _, path := range inputPaths {
		c, err := clip.Open(path)
		if err != nil {
			return err
		}
		clips = append(clips, c)
	}

	return stitch.Files(clips, opts, outputPath)
}

// GetTotalDuration sums the durations of the given recordings without
// writing anything.
func GetTotalDuration(inputPaths []string) (time.Duration, error) {
	clips := make([]*clip.Clip, 0, len(inputPaths))
	defer func() {
		for _, c := range clips {
			c.Close()
		}
	}()

	for _, path := range inputPaths {
		c, err := clip.Open(path)
		if err != nil {
			return 0, err
		}
		clips = append(clips, c)
	}

	return stitch.TotalDuration(clips), nil
}

// GetDurationAfterRemoval projects the duration RemoveSegments would produce
// for inputPath and the given segments, without writing anything.
func GetDurationAfterRemoval(inputPath string, segments []segment.Segment) (time.Duration, error) {
	c, err := clip.Open(inputPath)
	if err != nil {
		return 0, err
	}
	defer c.Close()

	return segment.DurationAfterRemoval(c, segments)
}
