// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrDecodeGeometry reports a buffer whose sample rate or channel count
	// cannot describe audio (rate <= 0, channels <= 0, or a sample count
	// that is not a whole number of frames).
	ErrDecodeGeometry = errors.New("invalid decode geometry")

	// ErrUnsupportedChannelLayout reports a channel count other than mono or stereo.
	ErrUnsupportedChannelLayout = errors.New("unsupported channel layout")
)
