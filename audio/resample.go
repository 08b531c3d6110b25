// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Resample converts buf to toRate and returns a new Buffer. When the rates
// already match, buf itself is returned.
//
// The result always holds round(frames*toRate/fromRate) frames, so the clip
// keeps its duration to within one output frame. Channels are resampled
// together at identical positions and keep their order.
//
// Resample fails with ErrDecodeGeometry when either rate is not positive or
// buf is otherwise malformed.
//
// Example:
//
//	out, err := audio.Resample(clip, 44100)
//	if err != nil {
//	    return err
//	}
//	// out.SampleRate == 44100
func Resample(buf *Buffer, toRate int) (*Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	if toRate <= 0 {
		return nil, fmt.Errorf("%w: target sample rate %d", ErrDecodeGeometry, toRate)
	}

	if buf.SampleRate == toRate {
		return buf, nil
	}

	want := ResampledFrames(buf.Frames(), buf.SampleRate, toRate)

	out, err := ReadAll(NewResampler(NewBufferSource(buf), toRate))
	if err != nil {
		return nil, fmt.Errorf("resampling %d Hz to %d Hz: %w", buf.SampleRate, toRate, err)
	}

	out.SampleRate = toRate
	out.Samples = fitFrames(out.Samples, want, buf.Channels)

	return out, nil
}

// ResampledFrames returns round(frames*toRate/fromRate) using integer math.
func ResampledFrames(frames, fromRate, toRate int) int {
	if fromRate <= 0 || frames <= 0 {
		return 0
	}
	n := int64(frames) * int64(toRate)
	return int((n + int64(fromRate)/2) / int64(fromRate))
}

// fitFrames trims samples to exactly frames frames, or pads by holding the
// last frame when the interpolator stopped short.
func fitFrames(samples []float32, frames, channels int) []float32 {
	want := frames * channels
	if len(samples) >= want {
		return samples[:want]
	}

	if len(samples) < channels {
		return append(samples, make([]float32, want-len(samples))...)
	}

	last := samples[len(samples)-channels:]
	for len(samples) < want {
		samples = append(samples, last[:channels]...)
		last = samples[len(samples)-channels:]
	}
	return samples
}
