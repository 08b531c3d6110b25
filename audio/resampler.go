// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audmix/utils"
)

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// When downsampling, source frames first pass through a windowed-sinc
// low-pass filter with its stopband at the destination Nyquist frequency.
//
// Output frame k sits at source position k*srcRate/dstRate, and frames are
// produced for every position inside the source, so a source of N frames
// yields ceil(N*dstRate/srcRate) frames. Left and right are interpolated at
// the same position and stay phase aligned.
type Resampler struct {
	src      Source
	srcRate  float64
	dstRate  float64
	ratio    float64 // srcRate / dstRate - how many source samples per output sample
	channels int

	// Window of 4 frames around the read position:
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool

	// Fractional position between frames[1] and frames[2]
	pos float64

	srcBuf []float32
	eof    bool

	lowPass *lowPass
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		srcRate:  float64(src.SampleRate()),
		dstRate:  float64(dstRate),
		ratio:    ratio,
		channels: channels,
		srcBuf:   make([]float32, channels),
	}

	if ratio > 1.0 {
		r.lowPass = newLowPass(r.readRaw, channels, r.srcRate, r.dstRate)
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads the next (filtered when downsampling) frame into dst.
// It reports false once the source is exhausted.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	if r.lowPass != nil {
		return r.lowPass.next(dst)
	}
	return r.readRaw(dst)
}

func (r *Resampler) readRaw(dst []float32) (bool, error) {
	if r.eof {
		return false, nil
	}

	// Loop over short reads until a whole frame is collected
	got := 0
	for got < r.channels {
		n, err := r.src.ReadSamples(r.srcBuf[got:r.channels])
		got += n

		if err == io.EOF {
			r.eof = true
			break
		}
		if err != nil {
			return false, fmt.Errorf("%w", err)
		}
		if n == 0 {
			r.eof = true
			break
		}
	}

	if got < r.channels {
		// Partial trailing frame is dropped
		return false, nil
	}

	copy(dst, r.srcBuf[:r.channels])
	return true, nil
}

// prime loads the first frames. frames[0] starts empty so the first
// output lands exactly on source frame 0.
func (r *Resampler) prime() error {
	r.primed = true
	for i := 1; i < 4; i++ {
		ok, err := r.readFrame(r.frames[i])
		if err != nil {
			return err
		}
		r.hasFrame[i] = ok
		if !ok {
			break
		}
	}
	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.hasFrame[0] = r.hasFrame[1]
	r.hasFrame[1] = r.hasFrame[2]
	r.hasFrame[2] = r.hasFrame[3]

	ok, err := r.readFrame(r.frames[3])
	if err != nil {
		return err
	}
	r.hasFrame[3] = ok
	return nil
}

// ReadSamples produces dst samples at r.dstRate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		// The read position has left the source
		if !r.hasFrame[1] {
			return written * r.channels, io.EOF
		}

		// Duplicate edge frames where the window runs off either end
		y1 := r.frames[1]
		y0 := y1
		if r.hasFrame[0] {
			y0 = r.frames[0]
		}
		y2 := y1
		if r.hasFrame[2] {
			y2 = r.frames[2]
		}
		y3 := y2
		if r.hasFrame[3] {
			y3 = r.frames[3]
		}

		off := written * r.channels
		utils.CubicInterpolateFrame(dst[off:off+r.channels], y0, y1, y2, y3, float32(r.pos))

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
