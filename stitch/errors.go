// SPDX-License-Identifier: EPL-2.0

package stitch

import "errors"

var (
	ErrNoInputs           = errors.New("no input sources")
	ErrConflictingOptions = errors.New("crossfade and silence insertion are mutually exclusive")
	ErrInvalidTargetPeak  = errors.New("target peak must be in (0, 1]")
	ErrNegativeOption     = errors.New("option durations must not be negative")
)
