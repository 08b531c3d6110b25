// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

const (
	// Mono is a single channel layout.
	Mono = 1
	// Stereo is an interleaved left/right layout.
	Stereo = 2
)

// Buffer is a fully decoded clip: interleaved float32 samples plus the
// geometry needed to interpret them.
type Buffer struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// Frames returns the number of multi-channel frames held by b.
func (b *Buffer) Frames() int {
	if b == nil || b.Channels <= 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Duration returns the playback length of b.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// Validate checks that b describes usable audio.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrDecodeGeometry)
	}
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrDecodeGeometry, b.SampleRate)
	}
	if b.Channels <= 0 {
		return fmt.Errorf("%w: channel count %d", ErrDecodeGeometry, b.Channels)
	}
	if len(b.Samples)%b.Channels != 0 {
		return fmt.Errorf("%w: %d samples is not a multiple of %d channels",
			ErrDecodeGeometry, len(b.Samples), b.Channels)
	}
	return nil
}

// bufferSource streams a Buffer through the Source interface so in-memory
// clips can feed the same pipelines as decoders.
type bufferSource struct {
	buf *Buffer
	off int
}

// NewBufferSource returns a Source reading b from the start.
func NewBufferSource(b *Buffer) Source {
	return &bufferSource{buf: b}
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return s.buf.Channels }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	if s.off >= len(s.buf.Samples) {
		return 0, io.EOF
	}

	// Only hand out whole frames
	want := len(dst) - len(dst)%s.buf.Channels
	n := copy(dst[:want], s.buf.Samples[s.off:])
	s.off += n

	if s.off >= len(s.buf.Samples) {
		return n, io.EOF
	}
	return n, nil
}

// ReadAll drains src into a Buffer. The source is not closed.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: channel count %d", ErrDecodeGeometry, channels)
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels

	out := &Buffer{
		SampleRate: src.SampleRate(),
		Channels:   channels,
	}
	buf := make([]float32, size)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out.Samples = append(out.Samples, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n == 0 {
			// Guard against sources that never report EOF
			break
		}
	}

	// Drop a trailing partial frame left by a truncated stream
	if extra := len(out.Samples) % channels; extra != 0 {
		out.Samples = out.Samples[:len(out.Samples)-extra]
	}

	return out, nil
}
