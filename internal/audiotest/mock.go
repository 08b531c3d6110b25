// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds synthetic audio sources and buffers for tests.
package audiotest

import (
	"io"
	"math"

	"github.com/ik5/audmix/audio"
)

// MockSource is a test helper that generates audio data for testing.
// It implements the audio.Source interface.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	waveform     func(sample int, channel int) float32
	closed       bool
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
// waveform is a function that generates sample values given sample index and channel.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, sine(sampleRate, frequency, 1))
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)

	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// Tone builds a buffer holding a sine wave of the given amplitude on every channel.
func Tone(sampleRate, channels, frames int, frequency float64, amplitude float32) *audio.Buffer {
	return Generate(sampleRate, channels, frames, sine(sampleRate, frequency, amplitude))
}

// Constant builds a buffer where every sample equals value.
func Constant(sampleRate, channels, frames int, value float32) *audio.Buffer {
	return Generate(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// Ramp builds a buffer whose sample i on channel c equals (i+1)*step, with
// the right channel negated when channels == 2. Useful for telling frames
// and channels apart.
func Ramp(sampleRate, channels, frames int, step float32) *audio.Buffer {
	return Generate(sampleRate, channels, frames, func(i, c int) float32 {
		v := float32(i+1) * step
		if c == 1 {
			return -v
		}
		return v
	})
}

// Generate builds a buffer from a waveform function.
func Generate(sampleRate, channels, frames int, waveform func(sample int, channel int) float32) *audio.Buffer {
	buf := &audio.Buffer{
		Samples:    make([]float32, frames*channels),
		SampleRate: sampleRate,
		Channels:   channels,
	}
	for i := range frames {
		for c := range channels {
			buf.Samples[i*channels+c] = waveform(i, c)
		}
	}
	return buf
}

func sine(sampleRate int, frequency float64, amplitude float32) func(int, int) float32 {
	return func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return amplitude * float32(math.Sin(2*math.Pi*frequency*t))
	}
}
