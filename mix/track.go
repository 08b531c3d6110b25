// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"math"
	"time"

	"github.com/ik5/audmix/audio"
)

// TargetRate is the sample rate of every mixed track.
const TargetRate = 44100

// Track is the mixed output: interleaved stereo float32 samples at
// TargetRate.
type Track struct {
	Samples []float32
}

// NewTrack returns a silent track of frames frames.
func NewTrack(frames int) *Track {
	return &Track{Samples: make([]float32, max(frames, 0)*audio.Stereo)}
}

// Frames returns the number of stereo frames in t.
func (t *Track) Frames() int {
	if t == nil {
		return 0
	}
	return len(t.Samples) / audio.Stereo
}

// Frame returns the left and right sample of frame i.
func (t *Track) Frame(i int) (left, right float32) {
	return t.Samples[i*audio.Stereo], t.Samples[i*audio.Stereo+1]
}

// Duration returns the playback length of t.
func (t *Track) Duration() time.Duration {
	return time.Duration(t.Frames()) * time.Second / TargetRate
}

// Peak returns the largest absolute sample value in t.
func (t *Track) Peak() float32 {
	var peak float32
	for _, s := range t.Samples {
		if a := float32(math.Abs(float64(s))); a > peak {
			peak = a
		}
	}
	return peak
}

// Buffer exposes t as an audio.Buffer sharing the same samples.
func (t *Track) Buffer() *audio.Buffer {
	return &audio.Buffer{
		Samples:    t.Samples,
		SampleRate: TargetRate,
		Channels:   audio.Stereo,
	}
}

// grow extends t to at least frames frames. New frames are silent and the
// backing array grows geometrically so repeated growth stays linear.
func (t *Track) grow(frames int) {
	need := frames * audio.Stereo
	if need <= len(t.Samples) {
		return
	}

	if need > cap(t.Samples) {
		next := make([]float32, len(t.Samples), max(need, 2*cap(t.Samples)))
		copy(next, t.Samples)
		t.Samples = next
	}

	// Reslicing may expose stale values from an earlier shrink
	old := len(t.Samples)
	t.Samples = t.Samples[:need]
	clear(t.Samples[old:])
}
