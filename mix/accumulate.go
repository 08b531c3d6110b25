// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"

	"github.com/ik5/audmix/audio"
)

// Accumulate adds the stereo clip into track starting at frame start,
// growing the track when the clip runs past its end. This is plain
// addition: nothing is clamped.
func Accumulate(track *Track, clip *audio.Buffer, start int) error {
	if err := clip.Validate(); err != nil {
		return err
	}
	if clip.Channels != audio.Stereo {
		return fmt.Errorf("%w: accumulate needs stereo, got %d channels",
			audio.ErrUnsupportedChannelLayout, clip.Channels)
	}
	if start < 0 {
		return fmt.Errorf("%w: start frame %d", ErrInvalidOffset, start)
	}

	frames := clip.Frames()
	track.grow(start + frames)
	addFrames(track.Samples, clip.Samples, start, 0, frames)

	return nil
}

// addFrames adds src frames [from, to) into dst at dstStart+frame.
func addFrames(dst, src []float32, dstStart, from, to int) {
	d := dst[(dstStart+from)*audio.Stereo : (dstStart+to)*audio.Stereo]
	s := src[from*audio.Stereo : to*audio.Stereo]
	for i := range s {
		d[i] += s[i]
	}
}
