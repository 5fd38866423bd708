// SPDX-License-Identifier: EPL-2.0

package segment

import (
	"fmt"
	"sort"
	"time"

	"github.com/orenbm/audedit/clip"
)

// Segment is a half-open time range [Start, End) inside a recording.
type Segment struct {
	Start time.Duration
	End   time.Duration
}

func (s Segment) Duration() time.Duration { return s.End - s.Start }

func (s Segment) valid() bool { return s.Start >= 0 && s.End > s.Start }

// byteRange is a segment projected onto a clip's PCM byte space. Offsets are
// always block aligned because they are derived from whole frame counts.
type byteRange struct {
	start int64
	end   int64
}

func (r byteRange) length() int64 { return r.end - r.start }

// validate sorts a copy of segments by start and checks each against the
// clip. Overlap between sorted neighbours is a hard error unless
// allowOverlap is set: two removal ranges crossing each other almost always
// means a caller bug, and silently merging them would hide it.
func validate(segments []Segment, total time.Duration, allowOverlap bool) ([]Segment, error) {
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}

	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	for i, s := range sorted {
		if !s.valid() {
			return nil, fmt.Errorf("segment %v-%v: %w", s.Start, s.End, ErrInvalidSegment)
		}
		if s.End > total {
			return nil, fmt.Errorf("segment %v-%v exceeds duration %v: %w", s.Start, s.End, total, ErrSegmentOutOfRange)
		}
		if !allowOverlap && i > 0 && sorted[i-1].End > s.Start {
			return nil, fmt.Errorf("segments %v-%v and %v-%v: %w",
				sorted[i-1].Start, sorted[i-1].End, s.Start, s.End, ErrOverlappingSegments)
		}
	}

	return sorted, nil
}

// toByteRanges maps sorted segments onto the clip's byte space.
func toByteRanges(f clip.Format, sorted []Segment) []byteRange {
	ranges := make([]byteRange, len(sorted))
	for i, s := range sorted {
		ranges[i] = byteRange{
			start: f.BytesFor(s.Start),
			end:   f.BytesFor(s.End),
		}
	}
	return ranges
}

// keepList is the complement of the sorted, non-overlapping removal ranges
// within [0, size): the byte ranges that survive a removal, in chronological
// order. Recomputed per call, never mutated.
func keepList(size int64, removed []byteRange) []byteRange {
	keep := make([]byteRange, 0, len(removed)+1)
	pos := int64(0)
	for _, r := range removed {
		if r.start > pos {
			keep = append(keep, byteRange{start: pos, end: r.start})
		}
		pos = r.end
	}
	if pos < size {
		keep = append(keep, byteRange{start: pos, end: size})
	}
	return keep
}
