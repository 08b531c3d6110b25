// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"math"

	"github.com/ik5/audmix/audio"
)

// MaxStartFrame is the last frame a clip may start on, a little over 13.5
// hours at TargetRate.
const MaxStartFrame = math.MaxInt32

// StartFrame converts a millisecond offset into a frame index at rate:
// round(offsetMs * rate / 1000). Offsets landing after MaxStartFrame fail
// with ErrOffsetOutOfRange.
func StartFrame(offsetMs float64, rate int) (int, error) {
	if math.IsNaN(offsetMs) || math.IsInf(offsetMs, 0) || offsetMs < 0 {
		return 0, fmt.Errorf("%w: %v ms", ErrInvalidOffset, offsetMs)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("%w: sample rate %d", audio.ErrDecodeGeometry, rate)
	}

	frame := math.Round(offsetMs * float64(rate) / 1000)
	if frame > MaxStartFrame {
		return 0, fmt.Errorf("%w: %v ms is frame %.0f at %d Hz, limit %d",
			ErrOffsetOutOfRange, offsetMs, frame, rate, MaxStartFrame)
	}

	return int(frame), nil
}
