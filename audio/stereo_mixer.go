// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// StereoMixer presents a mono or stereo source as stereo. Mono frames are
// copied into both channels; stereo passes through untouched.
type StereoMixer struct {
	src Source
	tmp []float32
}

// NewStereoMixer fails with ErrUnsupportedChannelLayout for anything other
// than mono or stereo input.
func NewStereoMixer(src Source) (*StereoMixer, error) {
	if ch := src.Channels(); ch != Mono && ch != Stereo {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedChannelLayout, ch)
	}

	return &StereoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}, nil
}

func (m *StereoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *StereoMixer) Channels() int   { return Stereo }
func (m *StereoMixer) BufSize() int    { return m.src.BufSize() * Stereo / m.src.Channels() }
func (m *StereoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *StereoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%Stereo != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}
	if m.src.Channels() == Stereo {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / Stereo

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < frames {
		m.tmp = make([]float32, frames)
	}
	m.tmp = m.tmp[:frames]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}

	for f := range n {
		idx := f << 1 // f * 2
		dst[idx] = m.tmp[f]
		dst[idx+1] = m.tmp[f]
	}

	return n * Stereo, err
}

// ToStereo returns buf as a stereo Buffer. Stereo input is returned as is;
// mono input is duplicated into a new Buffer with left[i] == right[i].
// Any other channel count fails with ErrUnsupportedChannelLayout before the
// rest of the geometry is checked.
func ToStereo(buf *Buffer) (*Buffer, error) {
	if buf != nil && buf.Channels != Mono && buf.Channels != Stereo {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedChannelLayout, buf.Channels)
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	if buf.Channels == Stereo {
		return buf, nil
	}

	mixer, err := NewStereoMixer(NewBufferSource(buf))
	if err != nil {
		return nil, err
	}

	out, err := ReadAll(mixer)
	if err != nil {
		return nil, fmt.Errorf("expanding to stereo: %w", err)
	}

	return out, nil
}
