// SPDX-License-Identifier: EPL-2.0

package clip

import "errors"

var (
	// ErrUnsupportedFormat reports a container/codec no decoder (or the
	// transcode fallback) can handle.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrFormatIndeterminate reports a recognized container whose sample
	// format could not be established.
	ErrFormatIndeterminate = errors.New("audio format indeterminate")
	// ErrUnexpectedEOS reports a source that delivered fewer bytes than its
	// declared length promised (corrupt or truncated file).
	ErrUnexpectedEOS = errors.New("unexpected end of stream")
)
