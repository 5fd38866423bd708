// SPDX-License-Identifier: EPL-2.0

package stitch

import "time"

// DefaultTargetPeak is where normalization lands each source's peak: close
// to, but below, full scale.
const DefaultTargetPeak = 0.95

// Options controls one stitch run.
//
// InsertSilence appends a gap of zero samples after every source except the
// last. Crossfade instead overlaps adjacent sources, ramping the first down
// and the second up across the window; the two modes are mutually
// exclusive. Normalize scales each source so its peak magnitude reaches
// TargetPeak before it is copied.
type Options struct {
	InsertSilence time.Duration
	Normalize     bool
	TargetPeak    float64
	Crossfade     time.Duration
}

func (o Options) withDefaults() Options {
	if o.Normalize && o.TargetPeak == 0 {
		o.TargetPeak = DefaultTargetPeak
	}
	return o
}

func (o Options) validate() error {
	if o.InsertSilence < 0 || o.Crossfade < 0 {
		return ErrNegativeOption
	}
	if o.InsertSilence > 0 && o.Crossfade > 0 {
		return ErrConflictingOptions
	}
	if o.Normalize && (o.TargetPeak <= 0 || o.TargetPeak > 1) {
		return ErrInvalidTargetPeak
	}
	return nil
}
