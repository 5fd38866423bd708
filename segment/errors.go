// SPDX-License-Identifier: EPL-2.0

package segment

import "errors"

var (
	ErrNoSegments          = errors.New("no segments given")
	ErrInvalidSegment      = errors.New("invalid segment")
	ErrSegmentOutOfRange   = errors.New("segment out of range")
	ErrOverlappingSegments = errors.New("overlapping segments")
	ErrInvalidSplitPoint   = errors.New("split point outside source")
)
