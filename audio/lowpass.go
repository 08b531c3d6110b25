// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

const (
	// lowPassAttenuation is the stopband target in dB.
	lowPassAttenuation = 80.0
	// lowPassPassband is the passband edge as a fraction of the destination Nyquist.
	lowPassPassband = 0.90
)

// frameReader fills dst with one interleaved frame and reports false at the end.
type frameReader func(dst []float32) (bool, error)

// lowPass is a streaming Kaiser windowed-sinc FIR used before decimation.
// Its group delay is compensated: filtered frame i is centred on source
// frame i, and the edges are extended by holding the first and last frames,
// so it yields exactly as many frames as it reads.
type lowPass struct {
	read     frameReader
	taps     []float32
	channels int

	// ring holds every frame twice so the window is always contiguous.
	ring   []float32
	head   int
	primed bool
	ahead  int // real frames at or after the centre tap
	last   []float32
	frame  []float32
}

// newLowPass designs a filter passing [0, 0.9) of the destination Nyquist
// and stopping everything from the destination Nyquist up, with both edges
// expressed in cycles per source sample.
func newLowPass(read frameReader, channels int, srcRate, dstRate float64) *lowPass {
	nyquist := 0.5 * dstRate / srcRate
	stop := nyquist
	pass := lowPassPassband * nyquist
	cutoff := 0.5 * (pass + stop)
	width := stop - pass

	// Kaiser's estimate for the filter order at the given attenuation
	order := int(math.Ceil((lowPassAttenuation - 7.95) / (2.285 * 2 * math.Pi * width)))
	half := max(order/2, 1)

	return &lowPass{
		read:     read,
		taps:     kaiserSinc(half, cutoff, kaiserBeta(lowPassAttenuation)),
		channels: channels,
		ring:     make([]float32, 2*(2*half+1)*channels),
		last:     make([]float32, channels),
		frame:    make([]float32, channels),
	}
}

func kaiserBeta(att float64) float64 {
	switch {
	case att > 50:
		return 0.1102 * (att - 8.7)
	case att >= 21:
		return 0.5842*math.Pow(att-21, 0.4) + 0.07886*(att-21)
	default:
		return 0
	}
}

// kaiserSinc returns 2*half+1 taps normalised to unity DC gain.
func kaiserSinc(half int, cutoff, beta float64) []float32 {
	n := 2*half + 1
	taps := make([]float64, n)
	norm := besselI0(beta)
	sum := 0.0

	for i := range taps {
		x := float64(i - half)
		s := 2 * cutoff
		if x != 0 {
			s = math.Sin(2*math.Pi*cutoff*x) / (math.Pi * x)
		}
		r := x / float64(half)
		w := besselI0(beta*math.Sqrt(max(0, 1-r*r))) / norm
		taps[i] = s * w
		sum += taps[i]
	}

	out := make([]float32, n)
	for i, v := range taps {
		out[i] = float32(v / sum)
	}
	return out
}

// besselI0 is the zeroth order modified Bessel function of the first kind.
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	q := x * x / 4
	for k := 1; k < 64; k++ {
		term *= q / float64(k*k)
		sum += term
		if term < sum*1e-12 {
			break
		}
	}
	return sum
}

func (f *lowPass) size() int { return len(f.taps) }

// push appends a frame as the newest entry of the window.
func (f *lowPass) push(frame []float32) {
	ch := f.channels
	copy(f.ring[f.head*ch:], frame)
	copy(f.ring[(f.head+f.size())*ch:], frame)
	f.head = (f.head + 1) % f.size()
}

// prime fills the window around the first source frame.
func (f *lowPass) prime() error {
	f.primed = true

	ok, err := f.read(f.last)
	if err != nil || !ok {
		return err
	}

	half := f.size() / 2
	for range half + 1 {
		f.push(f.last)
	}
	f.ahead = 1

	for range half {
		if err := f.pull(); err != nil {
			return err
		}
	}
	return nil
}

// pull reads the next source frame into the window, holding the last one
// once the source is exhausted.
func (f *lowPass) pull() error {
	ok, err := f.read(f.frame)
	if err != nil {
		return err
	}
	if ok {
		copy(f.last, f.frame)
		f.ahead++
	}
	f.push(f.last)
	return nil
}

// next writes the next filtered frame into dst.
func (f *lowPass) next(dst []float32) (bool, error) {
	if !f.primed {
		if err := f.prime(); err != nil {
			return false, err
		}
	} else if f.ahead > 0 {
		f.ahead--
		if err := f.pull(); err != nil {
			return false, err
		}
	}

	if f.ahead == 0 {
		return false, nil
	}

	ch := f.channels
	win := f.ring[f.head*ch : (f.head+f.size())*ch]
	clear(dst[:ch])
	for k, t := range f.taps {
		row := win[k*ch : k*ch+ch]
		for c, v := range row {
			dst[c] += t * v
		}
	}
	return true, nil
}
